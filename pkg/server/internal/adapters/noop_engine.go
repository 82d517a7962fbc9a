package adapters

import (
	"context"
	"fmt"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
)

// NoopEngineProvider is the engine used by a server that was not given one.
// It hosts no topics and no lookup services.
type NoopEngineProvider struct{}

// Submit rejects every topic as unknown.
func (*NoopEngineProvider) Submit(ctx context.Context, taggedBEEF overlay.TaggedBEEF) (overlay.Steak, error) {
	return nil, fmt.Errorf("%w: %v", engine.ErrUnknownTopic, taggedBEEF.Topics)
}

// Lookup rejects every service as unknown.
func (*NoopEngineProvider) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	if question == nil {
		return nil, engine.ErrMissingQuestion
	}
	return nil, fmt.Errorf("%w: %s", engine.ErrUnknownService, question.Service)
}

// EvictOutput rejects every topic as unknown.
func (*NoopEngineProvider) EvictOutput(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	return fmt.Errorf("%w: %s", engine.ErrUnknownTopic, topic)
}

// ListTopicManagers returns an empty list.
func (*NoopEngineProvider) ListTopicManagers() map[string]*overlay.MetaData {
	return map[string]*overlay.MetaData{}
}

// ListLookupServiceProviders returns an empty list.
func (*NoopEngineProvider) ListLookupServiceProviders() map[string]*overlay.MetaData {
	return map[string]*overlay.MetaData{}
}

// GetDocumentationForLookupServiceProvider always reports missing documentation.
func (*NoopEngineProvider) GetDocumentationForLookupServiceProvider(provider string) (string, error) {
	return "", fmt.Errorf("%w: lookup service %s", engine.ErrNoDocumentationFound, provider)
}

// GetDocumentationForTopicManager always reports missing documentation.
func (*NoopEngineProvider) GetDocumentationForTopicManager(provider string) (string, error) {
	return "", fmt.Errorf("%w: topic manager %s", engine.ErrNoDocumentationFound, provider)
}

// NewNoopEngineProvider returns an engine that hosts nothing.
func NewNoopEngineProvider() engine.OverlayEngineProvider {
	return &NoopEngineProvider{}
}
