package testabilities

import (
	"context"
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/stretchr/testify/require"
)

// EvictOutputProviderMockExpectations defines the expected behavior of the EvictOutputProviderMock.
type EvictOutputProviderMockExpectations struct {
	Error           error
	EvictOutputCall bool
}

// EvictOutputProviderMock is a mock implementation of an output eviction provider.
type EvictOutputProviderMock struct {
	t            *testing.T
	expectations EvictOutputProviderMockExpectations
	called       bool

	// CalledOutpoint and CalledTopic store the arguments passed to EvictOutput.
	CalledOutpoint *engine.Outpoint
	CalledTopic    string
}

// EvictOutput records the call and returns the predefined error.
func (m *EvictOutputProviderMock) EvictOutput(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	m.t.Helper()
	m.called = true
	m.CalledOutpoint = outpoint
	m.CalledTopic = topic
	return m.expectations.Error
}

// AssertCalled verifies that the EvictOutput method was called if it was expected to be.
func (m *EvictOutputProviderMock) AssertCalled() {
	m.t.Helper()
	require.Equal(m.t, m.expectations.EvictOutputCall, m.called, "Discrepancy between expected and actual EvictOutput call")
}

// NewEvictOutputProviderMock creates a new EvictOutputProviderMock with the given expectations.
func NewEvictOutputProviderMock(t *testing.T, expectations EvictOutputProviderMockExpectations) *EvictOutputProviderMock {
	return &EvictOutputProviderMock{
		t:            t,
		expectations: expectations,
	}
}
