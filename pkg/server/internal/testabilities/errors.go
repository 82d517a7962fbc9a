package testabilities

import (
	"errors"
	"testing"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/app"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server/internal/ports/openapi"
)

// ErrTestNoopOpFailure is a generic provider failure used across tests.
var ErrTestNoopOpFailure = errors.New("noop operation failure")

// NewTestOpenapiErrorResponse creates an openapi.Error response from the given app.Error.
// It sets the error message to the error's slug.
func NewTestOpenapiErrorResponse(t *testing.T, err app.Error) openapi.Error {
	t.Helper()
	return openapi.Error{
		Message: err.Slug(),
	}
}
