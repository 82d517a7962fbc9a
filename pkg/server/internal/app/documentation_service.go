package app

// TopicManagerDocumentationProvider defines the contract for retrieving documentation
// for a topic manager.
type TopicManagerDocumentationProvider interface {
	GetDocumentationForTopicManager(topicManager string) (string, error)
}

// LookupServiceDocumentationProvider defines the contract for retrieving documentation
// for a lookup service provider.
type LookupServiceDocumentationProvider interface {
	GetDocumentationForLookupServiceProvider(lookupService string) (string, error)
}

// TopicManagerDocumentationService provides functionality for retrieving topic manager documentation.
type TopicManagerDocumentationService struct {
	provider TopicManagerDocumentationProvider
}

// GetDocumentation retrieves documentation for a specific topic manager.
func (s *TopicManagerDocumentationService) GetDocumentation(topicManager string) (string, error) {
	if topicManager == "" {
		return "", NewEmptyTopicManagerNameError()
	}

	documentation, err := s.provider.GetDocumentationForTopicManager(topicManager)
	if err != nil {
		return "", classifyEngineError(err, NewTopicManagerDocumentationProviderError)
	}
	return documentation, nil
}

// NewTopicManagerDocumentationService creates a new TopicManagerDocumentationService.
// Panics if the provider is nil.
func NewTopicManagerDocumentationService(provider TopicManagerDocumentationProvider) *TopicManagerDocumentationService {
	if provider == nil {
		panic("topic manager documentation provider cannot be nil")
	}
	return &TopicManagerDocumentationService{provider: provider}
}

// LookupDocumentationService provides functionality for retrieving lookup service provider documentation.
type LookupDocumentationService struct {
	provider LookupServiceDocumentationProvider
}

// GetDocumentation retrieves documentation for a specific lookup service provider.
func (s *LookupDocumentationService) GetDocumentation(lookupService string) (string, error) {
	if lookupService == "" {
		return "", NewEmptyLookupServiceNameError()
	}

	documentation, err := s.provider.GetDocumentationForLookupServiceProvider(lookupService)
	if err != nil {
		return "", classifyEngineError(err, NewLookupServiceProviderDocumentationError)
	}
	return documentation, nil
}

// NewLookupDocumentationService creates a new LookupDocumentationService.
// Panics if the provider is nil.
func NewLookupDocumentationService(provider LookupServiceDocumentationProvider) *LookupDocumentationService {
	if provider == nil {
		panic("lookup service provider documentation provider cannot be nil")
	}
	return &LookupDocumentationService{provider: provider}
}

// NewEmptyTopicManagerNameError returns an Error indicating that the topic manager name is empty.
func NewEmptyTopicManagerNameError() Error {
	return Error{
		errorType: ErrorTypeIncorrectInput,
		err:       "topic manager name cannot be empty",
		slug:      "A valid topicManager must be provided to retrieve documentation.",
	}
}

// NewEmptyLookupServiceNameError returns an Error indicating that the lookup service name is empty.
func NewEmptyLookupServiceNameError() Error {
	return Error{
		errorType: ErrorTypeIncorrectInput,
		err:       "lookup service name cannot be empty",
		slug:      "A valid lookupService must be provided to retrieve documentation.",
	}
}

// NewTopicManagerDocumentationProviderError returns an Error indicating that the provider
// failed to retrieve documentation for the topic manager.
func NewTopicManagerDocumentationProviderError(err error) Error {
	return Error{
		errorType: ErrorTypeProviderFailure,
		err:       err.Error(),
		slug:      "Unable to retrieve documentation for topic manager due to an internal error. Please try again later or contact the support team.",
	}
}

// NewLookupServiceProviderDocumentationError returns an Error indicating that the provider
// failed to retrieve documentation for the lookup service.
func NewLookupServiceProviderDocumentationError(err error) Error {
	return Error{
		errorType: ErrorTypeProviderFailure,
		err:       err.Error(),
		slug:      "Unable to retrieve documentation for lookup service provider due to an internal error. Please try again later or contact the support team.",
	}
}
