package ports

import (
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
)

// TopicManagersListHandler handles incoming requests for topic manager information.
type TopicManagersListHandler struct {
	service *app.TopicManagersListService
}

// Handle processes an HTTP request to list all topic managers.
func (h *TopicManagersListHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(NewMetadataListSuccessResponse(h.service.ListTopicManagers()))
}

// NewTopicManagersListHandler creates a new TopicManagersListHandler.
// Panics if the provider is nil.
func NewTopicManagersListHandler(provider app.TopicManagersListProvider) *TopicManagersListHandler {
	if provider == nil {
		panic("topic manager list provider is nil")
	}
	return &TopicManagersListHandler{service: app.NewTopicManagersListService(provider)}
}

// LookupListHandler handles incoming requests for lookup service information.
type LookupListHandler struct {
	service *app.LookupListService
}

// Handle processes an HTTP request to list all lookup service providers.
func (h *LookupListHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(NewMetadataListSuccessResponse(h.service.ListLookupServiceProviders()))
}

// NewLookupListHandler creates a new LookupListHandler.
// Panics if the provider is nil.
func NewLookupListHandler(provider app.LookupListProvider) *LookupListHandler {
	if provider == nil {
		panic("lookup list provider is nil")
	}
	return &LookupListHandler{service: app.NewLookupListService(provider)}
}

// NewMetadataListSuccessResponse maps the metadata list into the response format.
// Empty optional values are omitted.
func NewMetadataListSuccessResponse(list app.MetadataList) openapi.MetadataListResponse {
	optional := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	response := make(openapi.MetadataListResponse, len(list))
	for name, metadata := range list {
		response[name] = openapi.Metadata{
			Name:             metadata.Name,
			ShortDescription: metadata.ShortDescription,
			IconURL:          optional(metadata.IconURL),
			Version:          optional(metadata.Version),
			InformationURL:   optional(metadata.InformationURL),
		}
	}
	return response
}
