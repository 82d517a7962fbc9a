package testabilities

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
	"github.com/stretchr/testify/require"
)

// LookupQuestionProviderMockExpectations defines the expected behavior of the LookupQuestionProviderMock.
type LookupQuestionProviderMockExpectations struct {
	Error              error
	Answer             *lookup.LookupAnswer
	LookupQuestionCall bool
}

// LookupQuestionProviderMock is a mock implementation of a lookup question provider.
type LookupQuestionProviderMock struct {
	t            *testing.T
	expectations LookupQuestionProviderMockExpectations
	called       bool

	// CalledQuestion stores the question passed to Lookup.
	CalledQuestion *lookup.LookupQuestion
}

// Lookup records the question and returns the predefined answer or error.
func (m *LookupQuestionProviderMock) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	m.t.Helper()
	m.called = true
	m.CalledQuestion = question

	if m.expectations.Error != nil {
		return nil, m.expectations.Error
	}
	return m.expectations.Answer, nil
}

// CalledQuery decodes the query of the recorded question into a generic map.
func (m *LookupQuestionProviderMock) CalledQuery() map[string]any {
	m.t.Helper()
	require.NotNil(m.t, m.CalledQuestion, "Lookup was not called")

	var query map[string]any
	require.NoError(m.t, json.Unmarshal(m.CalledQuestion.Query, &query))
	return query
}

// AssertCalled verifies that the Lookup method was called if it was expected to be.
func (m *LookupQuestionProviderMock) AssertCalled() {
	m.t.Helper()
	require.Equal(m.t, m.expectations.LookupQuestionCall, m.called, "Discrepancy between expected and actual Lookup call")
}

// NewLookupQuestionProviderMock creates a new LookupQuestionProviderMock with the given expectations.
func NewLookupQuestionProviderMock(t *testing.T, expectations LookupQuestionProviderMockExpectations) *LookupQuestionProviderMock {
	return &LookupQuestionProviderMock{
		t:            t,
		expectations: expectations,
	}
}
