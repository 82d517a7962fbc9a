package ports

import (
	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/gofiber/fiber/v2"
)

// HandlerRegistryService defines the main point for registering HTTP handler dependencies.
type HandlerRegistryService struct {
	submitTransaction         *SubmitTransactionHandler
	lookupQuestion            *LookupQuestionHandler
	messages                  *MessagesHandler
	topicManagersList         *TopicManagersListHandler
	lookupList                *LookupListHandler
	topicManagerDocumentation *TopicManagerDocumentationHandler
	lookupDocumentation       *LookupProviderDocumentationHandler
	evictOutpoint             *EvictOutpointHandler
}

// RegisterHandlersOptions groups the middleware attached to the registered routes.
type RegisterHandlersOptions struct {
	BaseURL          string
	GlobalMiddleware []fiber.Handler
	AdminMiddleware  []fiber.Handler
}

// Register mounts every handler on router under opts.BaseURL. Admin routes are
// additionally wrapped with opts.AdminMiddleware.
func (h *HandlerRegistryService) Register(router fiber.Router, opts RegisterHandlersOptions) {
	for _, m := range opts.GlobalMiddleware {
		router.Use(m)
	}

	api := router.Group(opts.BaseURL)
	api.Post("/submit", h.submitTransaction.Handle)
	api.Post("/lookup", h.lookupQuestion.Handle)
	api.Get("/messages", h.messages.Handle)
	api.Get("/listTopicManagers", h.topicManagersList.Handle)
	api.Get("/listLookupServiceProviders", h.lookupList.Handle)
	api.Get("/getDocumentationForTopicManager", h.topicManagerDocumentation.Handle)
	api.Get("/getDocumentationForLookupServiceProvider", h.lookupDocumentation.Handle)

	admin := api.Group("/admin", opts.AdminMiddleware...)
	admin.Post("/evictOutpoint", h.evictOutpoint.Handle)
}

// NewHandlerRegistryService creates and returns a new HandlerRegistryService instance.
// It initializes all handler implementations with their required dependencies.
func NewHandlerRegistryService(provider engine.OverlayEngineProvider) *HandlerRegistryService {
	return &HandlerRegistryService{
		submitTransaction:         NewSubmitTransactionHandler(provider),
		lookupQuestion:            NewLookupQuestionHandler(provider),
		messages:                  NewMessagesHandler(provider),
		topicManagersList:         NewTopicManagersListHandler(provider),
		lookupList:                NewLookupListHandler(provider),
		topicManagerDocumentation: NewTopicManagerDocumentationHandler(provider),
		lookupDocumentation:       NewLookupProviderDocumentationHandler(provider),
		evictOutpoint:             NewEvictOutpointHandler(provider),
	}
}
