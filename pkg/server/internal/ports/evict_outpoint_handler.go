package ports

import (
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
)

// EvictOutpointHandler is the admin handler removing an admitted output from a topic.
type EvictOutpointHandler struct {
	service *app.EvictOutputService
}

// Handle parses the EvictOutpointBody and evicts the referenced output.
func (h *EvictOutpointHandler) Handle(c *fiber.Ctx) error {
	var body openapi.EvictOutpointBody
	if err := c.BodyParser(&body); err != nil {
		return NewRequestBodyParserError(err)
	}

	if err := h.service.EvictOutput(c.UserContext(), body.TxID, body.OutputIndex, body.Topic); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(openapi.EvictOutpointResponse{Message: "Outpoint evicted successfully"})
}

// NewEvictOutpointHandler creates a new EvictOutpointHandler. Panics if the provider is nil.
func NewEvictOutpointHandler(provider app.EvictOutputProvider) *EvictOutpointHandler {
	if provider == nil {
		panic("evict output provider is nil")
	}
	return &EvictOutpointHandler{service: app.NewEvictOutputService(provider)}
}
