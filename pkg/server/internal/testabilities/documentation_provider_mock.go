package testabilities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// DocumentationProviderMockExpectations defines the expected behavior and outcomes for a DocumentationProviderMock.
type DocumentationProviderMockExpectations struct {
	DocumentationCall bool
	Error             error
	Documentation     string
}

// DefaultDocumentationProviderMockExpectations provides default expectations for DocumentationProviderMock.
var DefaultDocumentationProviderMockExpectations = DocumentationProviderMockExpectations{
	DocumentationCall: true,
	Documentation:     "# Test Documentation\nThis is a test markdown document.",
}

// DocumentationProviderMock serves documentation for both topic managers and lookup services.
type DocumentationProviderMock struct {
	t            *testing.T
	expectations DocumentationProviderMockExpectations
	called       bool

	// CalledName stores the name passed to the last documentation request.
	CalledName string
}

// GetDocumentationForTopicManager returns the predefined documentation or error.
func (m *DocumentationProviderMock) GetDocumentationForTopicManager(topicManager string) (string, error) {
	m.t.Helper()
	return m.documentation(topicManager)
}

// GetDocumentationForLookupServiceProvider returns the predefined documentation or error.
func (m *DocumentationProviderMock) GetDocumentationForLookupServiceProvider(lookupService string) (string, error) {
	m.t.Helper()
	return m.documentation(lookupService)
}

func (m *DocumentationProviderMock) documentation(name string) (string, error) {
	m.called = true
	m.CalledName = name
	if m.expectations.Error != nil {
		return "", m.expectations.Error
	}
	return m.expectations.Documentation, nil
}

// AssertCalled checks whether documentation was requested as expected.
func (m *DocumentationProviderMock) AssertCalled() {
	m.t.Helper()
	require.Equal(m.t, m.expectations.DocumentationCall, m.called, "Discrepancy between expected and actual DocumentationCall")
}

// NewDocumentationProviderMock creates a new DocumentationProviderMock with the given expectations.
func NewDocumentationProviderMock(t *testing.T, expectations DocumentationProviderMockExpectations) *DocumentationProviderMock {
	return &DocumentationProviderMock{
		t:            t,
		expectations: expectations,
	}
}
