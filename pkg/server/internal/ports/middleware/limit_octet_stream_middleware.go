package middleware

import (
	"fmt"
	"strings"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/gofiber/fiber/v2"
)

// ReadBodyLimit1GB defines the maximum allowed bytes read size (in bytes).
const ReadBodyLimit1GB = 1000 * 1024 * 1024 // 1,000 MB

// LimitOctetStreamBodyMiddleware is a Fiber middleware that rejects
// application/octet-stream request bodies that are empty or larger than octetStreamLimit.
func LimitOctetStreamBodyMiddleware(octetStreamLimit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsOctetStream(c) {
			return c.Next()
		}

		size := int64(len(c.Body()))
		if size == 0 {
			return NewEmptyRequestBodyError()
		}
		if octetStreamLimit > 0 && size > octetStreamLimit {
			return NewBodySizeLimitExceededError(octetStreamLimit)
		}
		return c.Next()
	}
}

// NewBodySizeLimitExceededError returns an error indicating that the request body exceeds the allowed maximum size.
func NewBodySizeLimitExceededError(limit int64) app.Error {
	msg := fmt.Sprintf("The submitted octet-stream exceeds the maximum allowed size: %d bytes.", limit)
	return app.NewIncorrectInputError(msg, msg)
}

// NewEmptyRequestBodyError returns an error indicating that the request body is empty, which is not allowed.
func NewEmptyRequestBodyError() app.Error {
	const msg = "Unable to process request with content type octet-stream. The request body is empty."
	return app.NewIncorrectInputError(msg, msg)
}

// IsOctetStream reports whether the request declares an application/octet-stream body.
func IsOctetStream(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEOctetStream)
}
