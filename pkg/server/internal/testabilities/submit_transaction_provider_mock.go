package testabilities

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/stretchr/testify/require"
)

// SubmitTransactionProviderMockExpectations defines the expected behavior of the SubmitTransactionProviderMock during a test.
type SubmitTransactionProviderMockExpectations struct {
	// STEAK is the value returned when submission succeeds.
	STEAK overlay.Steak

	// Error is the error to return from Submit.
	Error error

	// SubmitCall indicates whether the Submit method is expected to be called during the test.
	SubmitCall bool
}

// DefaultSubmitTransactionProviderMockExpectations provides default expectations for SubmitTransactionProviderMock.
var DefaultSubmitTransactionProviderMockExpectations = SubmitTransactionProviderMockExpectations{
	STEAK: overlay.Steak{
		"tm_helloworld": &overlay.AdmittanceInstructions{
			OutputsToAdmit: []uint32{0},
			CoinsToRetain:  []uint32{},
			CoinsRemoved:   []uint32{1},
		},
	},
	SubmitCall: true,
}

// SubmitTransactionProviderMock is a mock implementation of a transaction submission provider.
type SubmitTransactionProviderMock struct {
	t            *testing.T
	expectations SubmitTransactionProviderMockExpectations
	called       bool

	// CalledTaggedBEEF stores the TaggedBEEF argument passed to Submit.
	CalledTaggedBEEF overlay.TaggedBEEF
}

// Submit records the call and returns the predefined STEAK or error.
func (s *SubmitTransactionProviderMock) Submit(ctx context.Context, taggedBEEF overlay.TaggedBEEF) (overlay.Steak, error) {
	s.t.Helper()

	s.called = true
	s.CalledTaggedBEEF = taggedBEEF

	if s.expectations.Error != nil {
		return nil, s.expectations.Error
	}
	return s.expectations.STEAK, nil
}

// AssertCalled verifies that the Submit method was called if it was expected to be.
func (s *SubmitTransactionProviderMock) AssertCalled() {
	s.t.Helper()
	require.Equal(s.t, s.expectations.SubmitCall, s.called, "Discrepancy between expected and actual Submit call")
}

// NewSubmitTransactionProviderMock creates a new instance of SubmitTransactionProviderMock with the given expectations.
func NewSubmitTransactionProviderMock(t *testing.T, expectations SubmitTransactionProviderMockExpectations) *SubmitTransactionProviderMock {
	return &SubmitTransactionProviderMock{
		t:            t,
		expectations: expectations,
	}
}
