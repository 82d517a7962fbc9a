package testabilities

import (
	"testing"

	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/stretchr/testify/require"
)

// DefaultMetadata contains standard metadata for testing.
var DefaultMetadata = map[string]*overlay.MetaData{
	"service1": {
		Description: "Description 1",
		Icon:        "https://example.com/icon.png",
		Version:     "1.0.0",
		InfoUrl:     "https://example.com/info",
	},
	"service2": {
		Description: "",
	},
	"service3": nil,
}

// MetadataListProviderMockExpectations defines the expected behavior of the MetadataListProviderMock.
type MetadataListProviderMockExpectations struct {
	MetadataList map[string]*overlay.MetaData
	ListCall     bool
}

// MetadataListProviderMock lists topic managers and lookup services from the same metadata.
type MetadataListProviderMock struct {
	t            *testing.T
	expectations MetadataListProviderMockExpectations
	called       bool
}

// ListTopicManagers returns the predefined metadata list.
func (m *MetadataListProviderMock) ListTopicManagers() map[string]*overlay.MetaData {
	m.t.Helper()
	m.called = true
	return m.expectations.MetadataList
}

// ListLookupServiceProviders returns the predefined metadata list.
func (m *MetadataListProviderMock) ListLookupServiceProviders() map[string]*overlay.MetaData {
	m.t.Helper()
	m.called = true
	return m.expectations.MetadataList
}

// AssertCalled verifies that the list was requested if it was expected to be.
func (m *MetadataListProviderMock) AssertCalled() {
	m.t.Helper()
	require.Equal(m.t, m.expectations.ListCall, m.called, "Discrepancy between expected and actual list call")
}

// NewMetadataListProviderMock creates a new MetadataListProviderMock with the given expectations.
func NewMetadataListProviderMock(t *testing.T, expectations MetadataListProviderMockExpectations) *MetadataListProviderMock {
	return &MetadataListProviderMock{
		t:            t,
		expectations: expectations,
	}
}
