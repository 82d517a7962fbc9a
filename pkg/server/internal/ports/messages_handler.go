package ports

import (
	"context"
	"net/url"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
	"github.com/oapi-codegen/runtime"
)

// MessagesQueryService defines the interface for searching indexed hello world messages.
type MessagesQueryService interface {
	FindMessages(ctx context.Context, query helloworld.Query) ([]storage.MessageRecord, error)
}

// MessagesHandler serves the query-string form of the ls_helloworld lookup.
type MessagesHandler struct {
	service MessagesQueryService
}

// Handle binds the query-string parameters, runs the search and returns the matching records.
func (h *MessagesHandler) Handle(c *fiber.Ctx) error {
	params, err := bindMessagesParams(string(c.Request().URI().QueryString()))
	if err != nil {
		return err
	}

	query := helloworld.Query{
		Message:   params.Message,
		Limit:     params.Limit,
		Skip:      params.Skip,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	}
	if params.SortOrder != nil {
		query.SortOrder = *params.SortOrder
	}

	records, err := h.service.FindMessages(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(NewMessagesSuccessResponse(records))
}

func bindMessagesParams(rawQuery string) (openapi.MessagesParams, error) {
	var params openapi.MessagesParams

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return params, NewInvalidQueryParameterError("query", err)
	}

	bindings := []struct {
		name string
		dest any
	}{
		{"message", &params.Message},
		{"limit", &params.Limit},
		{"skip", &params.Skip},
		{"startDate", &params.StartDate},
		{"endDate", &params.EndDate},
		{"sortOrder", &params.SortOrder},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return params, NewInvalidQueryParameterError(b.name, err)
		}
	}
	return params, nil
}

// NewMessagesHandler creates a new MessagesHandler. Panics if the provider is nil.
func NewMessagesHandler(provider app.LookupQuestionProvider) *MessagesHandler {
	if provider == nil {
		panic("messages query provider is nil")
	}
	return &MessagesHandler{service: app.NewMessagesQueryService(provider)}
}

// NewMessagesSuccessResponse maps message records into the response format.
func NewMessagesSuccessResponse(records []storage.MessageRecord) openapi.MessagesResponse {
	response := openapi.MessagesResponse{Messages: make([]openapi.MessageRecord, 0, len(records))}
	for _, r := range records {
		response.Messages = append(response.Messages, openapi.MessageRecord{
			TxID:        r.Txid,
			OutputIndex: r.OutputIndex,
			Message:     r.Message,
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return response
}

// NewInvalidQueryParameterError returns an error indicating that a query-string parameter could not be bound.
func NewInvalidQueryParameterError(name string, err error) app.Error {
	return app.NewIncorrectInputError(
		"invalid query parameter "+name+": "+err.Error(),
		"Invalid format for query parameter "+name+".",
	)
}
