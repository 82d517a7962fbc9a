package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-sdk/overlay"
)

// SubmitTransactionProvider defines the interface for sending a tagged transaction
// to the overlay engine for processing.
type SubmitTransactionProvider interface {
	Submit(ctx context.Context, taggedBEEF overlay.TaggedBEEF) (overlay.Steak, error)
}

// SubmitTransactionService coordinates the transaction submission process using configured SubmitTransactionProvider.
type SubmitTransactionService struct {
	provider SubmitTransactionProvider
}

// SubmitTransaction validates the provided topics and hands the transaction to the provider.
// Returns the STEAK on success, or an error if topics are missing or invalid, the
// transaction is rejected, the provider fails, or the request context is done.
func (s *SubmitTransactionService) SubmitTransaction(ctx context.Context, topics TransactionTopics, txBytes ...byte) (overlay.Steak, error) {
	err := topics.Verify()
	if err != nil {
		return nil, err
	}
	if len(txBytes) == 0 {
		return nil, NewEmptyTransactionError()
	}

	steak, err := s.provider.Submit(ctx, overlay.TaggedBEEF{Beef: txBytes, Topics: topics})
	if err != nil {
		return nil, classifyEngineError(err, NewSubmitTransactionProviderError)
	}
	if steak == nil {
		steak = make(overlay.Steak)
	}
	return steak, nil
}

// NewSubmitTransactionService creates a new SubmitTransactionService with the given provider.
// Panics if the provider is nil.
func NewSubmitTransactionService(provider SubmitTransactionProvider) *SubmitTransactionService {
	if provider == nil {
		panic("submit transaction service provider is nil")
	}

	return &SubmitTransactionService{provider: provider}
}

// TransactionTopics represents a list of topics that must be provided when submitting a transaction.
type TransactionTopics []string

// Verify ensures the topic list is non-empty and that each topic is non-blank.
func (tt TransactionTopics) Verify() error {
	if len(tt) == 0 {
		return NewEmptyTransactionTopicsError()
	}

	for i, t := range tt {
		if len(strings.TrimSpace(t)) == 0 {
			return NewErrInvalidTopicFormatError(i)
		}
	}

	return nil
}

// NewEmptyTransactionTopicsError returns an Error indicating that the topics slice is empty,
// which is invalid input when submitting a transaction.
func NewEmptyTransactionTopicsError() Error {
	return Error{
		errorType: ErrorTypeIncorrectInput,
		err:       "Provided topics cannot be an empty slice.",
		slug:      "At least one topic must be provided in the correct string format. Empty topic values are not allowed.",
	}
}

// NewErrInvalidTopicFormatError returns an Error indicating that a specific topic,
// identified by its index, is in an invalid format.
func NewErrInvalidTopicFormatError(i int) Error {
	return Error{
		errorType: ErrorTypeIncorrectInput,
		err:       fmt.Sprintf("Invalid topic header format for topic no. %d.", i+1),
		slug:      "One or more topics are in an invalid format. Empty string values are not allowed.",
	}
}

// NewEmptyTransactionError returns an Error indicating that no transaction bytes were submitted.
func NewEmptyTransactionError() Error {
	const msg = "The submitted transaction octet-stream is empty."
	return NewIncorrectInputError(msg, msg)
}

// NewSubmitTransactionProviderError returns an Error indicating that the configured provider
// failed to process a submitted transaction octet-stream.
func NewSubmitTransactionProviderError(err error) Error {
	return Error{
		errorType: ErrorTypeProviderFailure,
		err:       err.Error(),
		slug:      "Unable to process submitted transaction octet-stream due to an internal error. Please try again later or contact the support team.",
	}
}
