package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
)

// MessagesQueryService answers hello world message queries by routing them to
// the ls_helloworld lookup service.
type MessagesQueryService struct {
	provider LookupQuestionProvider
}

// FindMessages validates the query, performs the lookup and decodes the matching records.
func (s *MessagesQueryService) FindMessages(ctx context.Context, query helloworld.Query) ([]storage.MessageRecord, error) {
	if _, err := query.Parse(); err != nil {
		return nil, classifyEngineError(err, NewMessagesQueryProviderError)
	}

	bb, err := json.Marshal(query)
	if err != nil {
		return nil, NewLookupQuestionParserError(err)
	}

	answer, err := s.provider.Lookup(ctx, &lookup.LookupQuestion{
		Service: helloworld.ServiceName,
		Query:   bb,
	})
	if err != nil {
		return nil, classifyEngineError(err, NewMessagesQueryProviderError)
	}
	if answer == nil {
		return nil, NewMessagesQueryProviderError(errEmptyAnswer)
	}

	return decodeMessageRecords(answer.Result)
}

func decodeMessageRecords(result any) ([]storage.MessageRecord, error) {
	switch records := result.(type) {
	case nil:
		return []storage.MessageRecord{}, nil
	case []storage.MessageRecord:
		return records, nil
	}

	bb, err := json.Marshal(result)
	if err != nil {
		return nil, NewLookupQuestionParserError(err)
	}
	records := []storage.MessageRecord{}
	if err := json.Unmarshal(bb, &records); err != nil {
		return nil, NewLookupQuestionParserError(fmt.Errorf("unexpected lookup result shape: %w", err))
	}
	return records, nil
}

// NewMessagesQueryService creates a MessagesQueryService. Panics if the provider is nil.
func NewMessagesQueryService(provider LookupQuestionProvider) *MessagesQueryService {
	if provider == nil {
		panic("messages query provider is nil")
	}
	return &MessagesQueryService{provider: provider}
}

// NewMessagesQueryProviderError wraps a failure of the lookup service while searching messages.
func NewMessagesQueryProviderError(err error) Error {
	return NewProviderFailureError(
		err.Error(),
		"Unable to search hello world messages due to an internal error. Please try again later or contact the support team.",
	)
}
