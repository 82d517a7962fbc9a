package testabilities

import (
	"context"
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/bsv-blockchain/go-sdk/overlay/lookup"
)

// ProviderStateAsserter is an interface for asserting internal state after a test run.
type ProviderStateAsserter interface {
	AssertCalled()
}

// SubmitTransactionProvider extends app.SubmitTransactionProvider with call assertions.
type SubmitTransactionProvider interface {
	app.SubmitTransactionProvider
	ProviderStateAsserter
}

// LookupQuestionProvider extends app.LookupQuestionProvider with call assertions.
type LookupQuestionProvider interface {
	app.LookupQuestionProvider
	ProviderStateAsserter
}

// EvictOutputProvider extends app.EvictOutputProvider with call assertions.
type EvictOutputProvider interface {
	app.EvictOutputProvider
	ProviderStateAsserter
}

// DocumentationProvider serves documentation for topic managers and lookup services with call assertions.
type DocumentationProvider interface {
	app.TopicManagerDocumentationProvider
	app.LookupServiceDocumentationProvider
	ProviderStateAsserter
}

// MetadataListProvider lists topic managers and lookup services with call assertions.
type MetadataListProvider interface {
	app.TopicManagersListProvider
	app.LookupListProvider
	ProviderStateAsserter
}

// TestOverlayEngineStubOption is a functional option type used to configure a TestOverlayEngineStub.
type TestOverlayEngineStubOption func(*TestOverlayEngineStub)

// WithSubmitTransactionProvider sets a custom SubmitTransactionProvider in a TestOverlayEngineStub.
func WithSubmitTransactionProvider(provider SubmitTransactionProvider) TestOverlayEngineStubOption {
	return func(stub *TestOverlayEngineStub) {
		stub.submitTransactionProvider = provider
	}
}

// WithLookupQuestionProvider sets a custom LookupQuestionProvider in a TestOverlayEngineStub.
func WithLookupQuestionProvider(provider LookupQuestionProvider) TestOverlayEngineStubOption {
	return func(stub *TestOverlayEngineStub) {
		stub.lookupQuestionProvider = provider
	}
}

// WithEvictOutputProvider sets a custom EvictOutputProvider in a TestOverlayEngineStub.
func WithEvictOutputProvider(provider EvictOutputProvider) TestOverlayEngineStubOption {
	return func(stub *TestOverlayEngineStub) {
		stub.evictOutputProvider = provider
	}
}

// WithDocumentationProvider sets a custom DocumentationProvider in a TestOverlayEngineStub.
func WithDocumentationProvider(provider DocumentationProvider) TestOverlayEngineStubOption {
	return func(stub *TestOverlayEngineStub) {
		stub.documentationProvider = provider
	}
}

// WithMetadataListProvider sets a custom MetadataListProvider in a TestOverlayEngineStub.
func WithMetadataListProvider(provider MetadataListProvider) TestOverlayEngineStubOption {
	return func(stub *TestOverlayEngineStub) {
		stub.metadataListProvider = provider
	}
}

// TestOverlayEngineStub is a test implementation of the engine.OverlayEngineProvider interface.
// Every operation is delegated to a provider mock that records whether it was called.
type TestOverlayEngineStub struct {
	t                         *testing.T
	submitTransactionProvider SubmitTransactionProvider
	lookupQuestionProvider    LookupQuestionProvider
	evictOutputProvider       EvictOutputProvider
	documentationProvider     DocumentationProvider
	metadataListProvider      MetadataListProvider
}

// Submit delegates to the configured SubmitTransactionProvider.
func (s *TestOverlayEngineStub) Submit(ctx context.Context, taggedBEEF overlay.TaggedBEEF) (overlay.Steak, error) {
	s.t.Helper()
	return s.submitTransactionProvider.Submit(ctx, taggedBEEF)
}

// Lookup delegates to the configured LookupQuestionProvider.
func (s *TestOverlayEngineStub) Lookup(ctx context.Context, question *lookup.LookupQuestion) (*lookup.LookupAnswer, error) {
	s.t.Helper()
	return s.lookupQuestionProvider.Lookup(ctx, question)
}

// EvictOutput delegates to the configured EvictOutputProvider.
func (s *TestOverlayEngineStub) EvictOutput(ctx context.Context, outpoint *engine.Outpoint, topic string) error {
	s.t.Helper()
	return s.evictOutputProvider.EvictOutput(ctx, outpoint, topic)
}

// ListTopicManagers delegates to the configured MetadataListProvider.
func (s *TestOverlayEngineStub) ListTopicManagers() map[string]*overlay.MetaData {
	s.t.Helper()
	return s.metadataListProvider.ListTopicManagers()
}

// ListLookupServiceProviders delegates to the configured MetadataListProvider.
func (s *TestOverlayEngineStub) ListLookupServiceProviders() map[string]*overlay.MetaData {
	s.t.Helper()
	return s.metadataListProvider.ListLookupServiceProviders()
}

// GetDocumentationForTopicManager delegates to the configured DocumentationProvider.
func (s *TestOverlayEngineStub) GetDocumentationForTopicManager(provider string) (string, error) {
	s.t.Helper()
	return s.documentationProvider.GetDocumentationForTopicManager(provider)
}

// GetDocumentationForLookupServiceProvider delegates to the configured DocumentationProvider.
func (s *TestOverlayEngineStub) GetDocumentationForLookupServiceProvider(provider string) (string, error) {
	s.t.Helper()
	return s.documentationProvider.GetDocumentationForLookupServiceProvider(provider)
}

// AssertProvidersState asserts that all configured providers were used as expected.
func (s *TestOverlayEngineStub) AssertProvidersState() {
	s.t.Helper()

	providers := []ProviderStateAsserter{
		s.submitTransactionProvider,
		s.lookupQuestionProvider,
		s.evictOutputProvider,
		s.documentationProvider,
		s.metadataListProvider,
	}
	for _, p := range providers {
		p.AssertCalled()
	}
}

// NewTestOverlayEngineStub creates and returns a new instance of TestOverlayEngineStub with the provided options.
// Providers that are not overridden expect not to be called.
func NewTestOverlayEngineStub(t *testing.T, opts ...TestOverlayEngineStubOption) *TestOverlayEngineStub {
	stub := TestOverlayEngineStub{
		t:                         t,
		submitTransactionProvider: NewSubmitTransactionProviderMock(t, SubmitTransactionProviderMockExpectations{SubmitCall: false}),
		lookupQuestionProvider:    NewLookupQuestionProviderMock(t, LookupQuestionProviderMockExpectations{LookupQuestionCall: false}),
		evictOutputProvider:       NewEvictOutputProviderMock(t, EvictOutputProviderMockExpectations{EvictOutputCall: false}),
		documentationProvider:     NewDocumentationProviderMock(t, DocumentationProviderMockExpectations{DocumentationCall: false}),
		metadataListProvider:      NewMetadataListProviderMock(t, MetadataListProviderMockExpectations{ListCall: false}),
	}

	for _, opt := range opts {
		opt(&stub)
	}
	return &stub
}

var _ engine.OverlayEngineProvider = (*TestOverlayEngineStub)(nil)
