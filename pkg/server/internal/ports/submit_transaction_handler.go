package ports

import (
	"context"
	"encoding/json"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/middleware"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/bsv-blockchain/go-sdk/overlay"
	"github.com/gofiber/fiber/v2"
)

// XTopicsHeader defines the HTTP header key used for specifying transaction topics.
const XTopicsHeader = "x-topics"

// SubmitTransactionService defines the interface for a service responsible for submitting transactions.
type SubmitTransactionService interface {
	SubmitTransaction(ctx context.Context, topics app.TransactionTopics, body ...byte) (overlay.Steak, error)
}

// SubmitTransactionHandler handles incoming transaction requests.
type SubmitTransactionHandler struct {
	service SubmitTransactionService
}

// Handle processes an HTTP request to submit a transaction. The `x-topics` header must
// carry a JSON array of topic names. On success, it returns HTTP 200 OK with a STEAK.
func (s *SubmitTransactionHandler) Handle(c *fiber.Ctx) error {
	if !middleware.IsOctetStream(c) {
		return NewUnsupportedContentTypeError(fiber.MIMEOctetStream)
	}

	topics, err := parseTopicsHeader(c.Get(XTopicsHeader))
	if err != nil {
		return err
	}

	steak, err := s.service.SubmitTransaction(c.UserContext(), topics, c.Body()...)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(NewSubmitTransactionSuccessResponse(steak))
}

func parseTopicsHeader(header string) (app.TransactionTopics, error) {
	if header == "" {
		return nil, NewMissingTopicsHeaderError()
	}
	var topics app.TransactionTopics
	if err := json.Unmarshal([]byte(header), &topics); err != nil {
		return nil, NewInvalidTopicsHeaderError(err)
	}
	return topics, nil
}

// NewSubmitTransactionHandler creates a new SubmitTransactionHandler with the given provider.
// If the provider is nil, it panics.
func NewSubmitTransactionHandler(provider app.SubmitTransactionProvider) *SubmitTransactionHandler {
	if provider == nil {
		panic("submit transaction provider is nil")
	}

	return &SubmitTransactionHandler{service: app.NewSubmitTransactionService(provider)}
}

// NewSubmitTransactionSuccessResponse maps the STEAK into the response format.
func NewSubmitTransactionSuccessResponse(steak overlay.Steak) *openapi.SubmitTransactionResponse {
	response := openapi.SubmitTransactionResponse{
		STEAK: make(openapi.STEAK, len(steak)),
	}

	for topic, instructions := range steak {
		if instructions == nil {
			response.STEAK[topic] = openapi.AdmittanceInstructions{OutputsToAdmit: []uint32{}, CoinsToRetain: []uint32{}}
			continue
		}

		var ancillaryIDs []string
		for _, id := range instructions.AncillaryTxids {
			ancillaryIDs = append(ancillaryIDs, id.String())
		}

		response.STEAK[topic] = openapi.AdmittanceInstructions{
			AncillaryTxIDs: ancillaryIDs,
			CoinsRemoved:   instructions.CoinsRemoved,
			CoinsToRetain:  nonNil(instructions.CoinsToRetain),
			OutputsToAdmit: nonNil(instructions.OutputsToAdmit),
		}
	}
	return &response
}

func nonNil(s []uint32) []uint32 {
	if s == nil {
		return []uint32{}
	}
	return s
}

// NewMissingTopicsHeaderError returns an error indicating that the x-topics header is absent.
func NewMissingTopicsHeaderError() app.Error {
	const msg = "The x-topics header is required and must contain a JSON array of topic names."
	return app.NewIncorrectInputError(msg, msg)
}

// NewInvalidTopicsHeaderError returns an error indicating that the x-topics header is not a JSON string array.
func NewInvalidTopicsHeaderError(err error) app.Error {
	return app.NewIncorrectInputError(
		"invalid x-topics header: "+err.Error(),
		"The x-topics header must contain a JSON array of topic names.",
	)
}

// NewUnsupportedContentTypeError returns an error indicating that the submitted content type is not supported.
func NewUnsupportedContentTypeError(expected string) app.Error {
	msg := "Unsupported content type. Expected: " + expected + "."
	return app.NewIncorrectInputError(msg, msg)
}
