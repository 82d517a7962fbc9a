package ports

import (
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
)

// LookupQuestionHandler is a Fiber-compatible HTTP handler that processes
// lookup requests for a specific question against a provider-defined lookup service.
type LookupQuestionHandler struct {
	service *app.LookupQuestionService
}

// Handle processes an HTTP POST request to perform a lookup on a question.
// It expects a JSON body matching the LookupQuestionBody definition.
func (h *LookupQuestionHandler) Handle(c *fiber.Ctx) error {
	var body openapi.LookupQuestionBody

	err := c.BodyParser(&body)
	if err != nil {
		return NewRequestBodyParserError(err)
	}

	dto, err := h.service.LookupQuestion(c.UserContext(), body.Service, body.Query)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(NewLookupQuestionSuccessResponse(dto))
}

// NewLookupQuestionHandler constructs a new LookupQuestionHandler.
// Panics if the provider is nil.
func NewLookupQuestionHandler(provider app.LookupQuestionProvider) *LookupQuestionHandler {
	if provider == nil {
		panic("LookupQuestionProvider cannot be nil")
	}
	return &LookupQuestionHandler{service: app.NewLookupQuestionService(provider)}
}

// NewLookupQuestionSuccessResponse transforms a LookupAnswerDTO into a LookupAnswer response.
func NewLookupQuestionSuccessResponse(dto *app.LookupAnswerDTO) *openapi.LookupAnswer {
	var outputs []openapi.OutputListItem
	if len(dto.Outputs) > 0 {
		outputs = make([]openapi.OutputListItem, len(dto.Outputs))
		for i, output := range dto.Outputs {
			outputs[i] = openapi.OutputListItem{
				Beef:        output.BEEF,
				OutputIndex: output.OutputIndex,
			}
		}
	}

	return &openapi.LookupAnswer{
		Type:    dto.Type,
		Outputs: outputs,
		Result:  dto.Result,
	}
}
