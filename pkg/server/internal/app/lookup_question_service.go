package app

import (
	"context"
	"encoding/json"

	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
)

// OutputListItemDTO represents an individual output item returned as part of a lookup answer.
type OutputListItemDTO struct {
	BEEF        []byte
	OutputIndex uint32
}

// LookupAnswerDTO encapsulates the response of a successful lookup question evaluation.
type LookupAnswerDTO struct {
	Outputs []OutputListItemDTO
	Result  json.RawMessage
	Type    string
}

// LookupQuestionProvider defines the interface for any provider capable of evaluating
// lookup questions.
type LookupQuestionProvider interface {
	Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error)
}

// LookupQuestionService validates lookup requests, invokes the provider and
// transforms the result into a transport-friendly DTO.
type LookupQuestionService struct {
	provider LookupQuestionProvider
}

// LookupQuestion handles the end-to-end processing of a lookup question request.
// An absent query is forwarded as JSON null, which the hello world service reads
// as "every record, default page".
func (s *LookupQuestionService) LookupQuestion(ctx context.Context, service string, query json.RawMessage) (*LookupAnswerDTO, error) {
	if len(service) == 0 {
		return nil, NewIncorrectInputWithFieldError("service")
	}
	if len(query) == 0 {
		query = json.RawMessage("null")
	}

	answer, err := s.provider.Lookup(ctx, &lookup.LookupQuestion{
		Service: service,
		Query:   query,
	})
	if err != nil {
		return nil, classifyEngineError(err, NewLookupQuestionProviderError)
	}

	return NewLookupQuestionAnswerDTO(answer)
}

// NewLookupQuestionService constructs a LookupQuestionService with the given provider.
// Panics if the provider is nil.
func NewLookupQuestionService(provider LookupQuestionProvider) *LookupQuestionService {
	if provider == nil {
		panic("lookup question provider is nil")
	}
	return &LookupQuestionService{provider: provider}
}

// NewLookupQuestionAnswerDTO converts a core LookupAnswer model into a LookupAnswerDTO.
// Returns an error if the freeform result cannot be serialized.
func NewLookupQuestionAnswerDTO(answer *lookup.LookupAnswer) (*LookupAnswerDTO, error) {
	if answer == nil {
		return nil, NewLookupQuestionProviderError(errEmptyAnswer)
	}

	var outputs []OutputListItemDTO
	if len(answer.Outputs) > 0 {
		outputs = make([]OutputListItemDTO, len(answer.Outputs))
		for i, output := range answer.Outputs {
			outputs[i] = OutputListItemDTO{
				BEEF:        output.Beef,
				OutputIndex: output.OutputIndex,
			}
		}
	}

	var result json.RawMessage
	if answer.Result != nil {
		bb, err := json.Marshal(answer.Result)
		if err != nil {
			return nil, NewLookupQuestionParserError(err)
		}
		result = bb
	}

	return &LookupAnswerDTO{
		Outputs: outputs,
		Result:  result,
		Type:    string(answer.Type),
	}, nil
}

// NewLookupQuestionParserError creates a structured error to be returned
// when JSON serialization of the lookup answer fails.
func NewLookupQuestionParserError(err error) Error {
	return NewRawDataProcessingError(
		err.Error(),
		"Unable to process the lookup answer content due to an internal error. Please try again later or contact the support team.",
	)
}

// NewLookupQuestionProviderError wraps an internal error that occurred during provider evaluation.
func NewLookupQuestionProviderError(err error) Error {
	return NewProviderFailureError(
		err.Error(),
		"Unable to process lookup question due to an internal error. Please try again later or contact the support team.",
	)
}
