package ports

import (
	"errors"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gookit/slog"
)

// ErrorHandler returns a Fiber error handler that translates application-level errors
// into appropriate HTTP status codes and JSON responses. The slug of the error is
// returned to the requester. Unrecognised errors yield a generic internal server error.
func ErrorHandler() fiber.ErrorHandler {
	codes := map[app.ErrorType]int{
		app.ErrorTypeAuthorization:     fiber.StatusUnauthorized,
		app.ErrorTypeAccessForbidden:   fiber.StatusForbidden,
		app.ErrorTypeIncorrectInput:    fiber.StatusBadRequest,
		app.ErrorTypeNotFound:          fiber.StatusNotFound,
		app.ErrorTypeOperationTimeout:  fiber.StatusRequestTimeout,
		app.ErrorTypeProviderFailure:   fiber.StatusInternalServerError,
		app.ErrorTypeRawDataProcessing: fiber.StatusInternalServerError,
		app.ErrorTypeUnknown:           fiber.StatusInternalServerError,
	}

	return func(c *fiber.Ctx, err error) error {
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(openapi.Error{Message: fiberErr.Message})
		}

		var appErr app.Error
		if !errors.As(err, &appErr) || appErr.IsZero() {
			slog.WithFields(slog.M{"path": c.Path(), "method": c.Method()}).Errorf("unhandled error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(NewUnhandledErrorTypeResponse())
		}

		code, ok := codes[appErr.ErrorType()]
		if !ok {
			code = fiber.StatusInternalServerError
		}
		if code >= fiber.StatusInternalServerError {
			slog.WithFields(slog.M{
				"path":       c.Path(),
				"method":     c.Method(),
				"error_type": appErr.ErrorType().String(),
			}).Errorf("request failed: %s", appErr.Error())
		}
		return c.Status(code).JSON(openapi.Error{Message: appErr.Slug()})
	}
}

// NewUnhandledErrorTypeResponse is the default response returned when an error occurs
// that does not match any known or handled ErrorType.
func NewUnhandledErrorTypeResponse() openapi.Error {
	return openapi.Error{
		Message: "An internal error occurred during processing the request. Please try again later or contact the support team.",
	}
}

// NewRequestBodyParserError wraps a body parsing failure into an application error.
func NewRequestBodyParserError(err error) app.Error {
	return app.NewIncorrectInputError(
		err.Error(),
		"Unable to process request with given request body. Please verify the request content and try again later.",
	)
}
