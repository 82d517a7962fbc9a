package app

import (
	"context"
	"strings"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/bsv-blockchain/go-sdk/chainhash"
)

// EvictOutputProvider removes an admitted output from a topic.
type EvictOutputProvider interface {
	EvictOutput(ctx context.Context, outpoint *engine.Outpoint, topic string) error
}

// EvictOutputService validates eviction requests before handing them to the provider.
type EvictOutputService struct {
	provider EvictOutputProvider
}

// EvictOutput removes the output identified by txid and outputIndex from topic.
func (s *EvictOutputService) EvictOutput(ctx context.Context, txid string, outputIndex uint32, topic string) error {
	if strings.TrimSpace(topic) == "" {
		return NewIncorrectInputWithFieldError("topic")
	}
	if txid == "" {
		return NewIncorrectInputWithFieldError("txid")
	}
	hash, err := chainhash.NewHashFromHex(txid)
	if err != nil || len(txid) != chainhash.MaxHashStringSize {
		return NewInvalidTxIDError(txid)
	}

	err = s.provider.EvictOutput(ctx, &engine.Outpoint{Txid: *hash, OutputIndex: outputIndex}, topic)
	if err != nil {
		return classifyEngineError(err, NewEvictOutputProviderError)
	}
	return nil
}

// NewEvictOutputService creates a new EvictOutputService. Panics if the provider is nil.
func NewEvictOutputService(provider EvictOutputProvider) *EvictOutputService {
	if provider == nil {
		panic("evict output provider is nil")
	}
	return &EvictOutputService{provider: provider}
}

// NewInvalidTxIDError returns an Error indicating that the txid is not a 32 byte hex string.
func NewInvalidTxIDError(txid string) Error {
	return NewIncorrectInputError(
		"invalid txid: "+txid,
		"The txid field must be a 64 character hex encoded transaction id.",
	)
}

// NewEvictOutputProviderError wraps a failure of the provider while evicting an output.
func NewEvictOutputProviderError(err error) Error {
	return NewProviderFailureError(
		err.Error(),
		"Unable to evict the requested output due to an internal error. Please try again later or contact the support team.",
	)
}
