package ports

import (
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
)

// TopicManagerDocumentationHandler retrieves documentation for a specific topic manager.
type TopicManagerDocumentationHandler struct {
	service *app.TopicManagerDocumentationService
}

// Handle reads the `topicManager` query parameter and returns its documentation.
func (h *TopicManagerDocumentationHandler) Handle(c *fiber.Ctx) error {
	documentation, err := h.service.GetDocumentation(c.Query("topicManager"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(openapi.DocumentationResponse{Documentation: documentation})
}

// NewTopicManagerDocumentationHandler creates a new TopicManagerDocumentationHandler.
// Panics if the provider is nil.
func NewTopicManagerDocumentationHandler(provider app.TopicManagerDocumentationProvider) *TopicManagerDocumentationHandler {
	if provider == nil {
		panic("TopicManagerDocumentationProvider cannot be nil")
	}
	return &TopicManagerDocumentationHandler{service: app.NewTopicManagerDocumentationService(provider)}
}

// LookupProviderDocumentationHandler retrieves documentation for a specific lookup service provider.
type LookupProviderDocumentationHandler struct {
	service *app.LookupDocumentationService
}

// Handle reads the `lookupService` query parameter and returns its documentation.
func (h *LookupProviderDocumentationHandler) Handle(c *fiber.Ctx) error {
	documentation, err := h.service.GetDocumentation(c.Query("lookupService"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(openapi.DocumentationResponse{Documentation: documentation})
}

// NewLookupProviderDocumentationHandler creates a new LookupProviderDocumentationHandler.
// Panics if the provider is nil.
func NewLookupProviderDocumentationHandler(provider app.LookupServiceDocumentationProvider) *LookupProviderDocumentationHandler {
	if provider == nil {
		panic("LookupServiceDocumentationProvider cannot be nil")
	}
	return &LookupProviderDocumentationHandler{service: app.NewLookupDocumentationService(provider)}
}
