package app

import (
	"context"
	"errors"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
)

var errEmptyAnswer = errors.New("provider returned an empty lookup answer")

// ErrorType represents a generic category of error used as descriptor
// to clarify the nature of a failure that occurred in dependencies.
type ErrorType struct {
	s string
}

func (e ErrorType) String() string { return e.s }

var (
	ErrorTypeProviderFailure   = ErrorType{"provider-failure"}
	ErrorTypeAuthorization     = ErrorType{"authorization"}
	ErrorTypeAccessForbidden   = ErrorType{"access-forbidden"}
	ErrorTypeIncorrectInput    = ErrorType{"incorrect-input"}
	ErrorTypeNotFound          = ErrorType{"not-found"}
	ErrorTypeUnknown           = ErrorType{"unknown"}
	ErrorTypeOperationTimeout  = ErrorType{"operation-timeout"}
	ErrorTypeRawDataProcessing = ErrorType{"raw-data-processing"}
)

// Error defines a generic application-layer error that should be translated
// into a specific response format for the requester.
//
// The source error message may contain internal details, so only the slug
// is meant to be returned to the requester.
type Error struct {
	err       string
	slug      string
	errorType ErrorType
}

func (e Error) Slug() string         { return e.slug }
func (e Error) IsZero() bool         { return e == Error{} }
func (e Error) Error() string        { return e.err }
func (e Error) ErrorType() ErrorType { return e.errorType }

// NewIncorrectInputError returns an error that handles invalid input data,
// typically caused by inappropriate data formats or missing values.
func NewIncorrectInputError(err, slug string) Error {
	return Error{
		slug:      slug,
		err:       err,
		errorType: ErrorTypeIncorrectInput,
	}
}

// NewNotFoundError returns an error describing a missing resource, such as an
// unregistered topic manager or lookup service.
func NewNotFoundError(err, slug string) Error {
	return Error{
		slug:      slug,
		err:       err,
		errorType: ErrorTypeNotFound,
	}
}

// NewProviderFailureError returns an error that handles service dependency failures,
// internal processing issues or other problems that should not be exposed to the requester.
func NewProviderFailureError(err, slug string) Error {
	return Error{
		slug:      slug,
		err:       err,
		errorType: ErrorTypeProviderFailure,
	}
}

// NewAuthorizationError returns an error that handles missing or invalid credentials.
func NewAuthorizationError(err, slug string) Error {
	return Error{
		slug:      slug,
		err:       err,
		errorType: ErrorTypeAuthorization,
	}
}

// NewAccessForbiddenError returns an error for valid-looking credentials that
// do not grant access to the resource.
func NewAccessForbiddenError(err, slug string) Error {
	return Error{
		slug:      slug,
		err:       err,
		errorType: ErrorTypeAccessForbidden,
	}
}

// NewRawDataProcessingError returns an error that handles issues encountered
// while reading or decoding raw request data.
func NewRawDataProcessingError(err, slug string) Error {
	return Error{
		slug:      slug,
		errorType: ErrorTypeRawDataProcessing,
		err:       err,
	}
}

// NewUnknownError returns an error that represents an unexpected or unclassified issue.
func NewUnknownError(err, slug string) Error {
	return Error{
		slug:      slug,
		errorType: ErrorTypeUnknown,
		err:       err,
	}
}

// NewContextCancellationError returns an error indicating that the submitted request exceeded
// the context timeout limit or that a context cancellation signal was emitted.
func NewContextCancellationError() Error {
	const msg = "The submitted request context has been canceled or exceeds the timeout limit."
	return Error{
		errorType: ErrorTypeOperationTimeout,
		err:       msg,
		slug:      msg,
	}
}

// NewIncorrectInputWithFieldError returns an error describing a missing or empty request field.
func NewIncorrectInputWithFieldError(field string) Error {
	return Error{
		errorType: ErrorTypeIncorrectInput,
		err:       "missing or empty field: " + field,
		slug:      "The " + field + " field is required and must not be empty.",
	}
}

// NewUnknownTopicError returns an Error indicating that a requested topic is not hosted by the overlay.
func NewUnknownTopicError(err error) Error {
	return NewIncorrectInputError(err.Error(), "One or more of the requested topics is not hosted by this overlay.")
}

// NewUnknownServiceError returns an Error indicating that a requested lookup service is not hosted by the overlay.
func NewUnknownServiceError(err error) Error {
	return NewIncorrectInputError(err.Error(), "The requested lookup service is not hosted by this overlay.")
}

// NewInvalidTransactionError returns an Error indicating that the submitted bytes are not a transaction.
func NewInvalidTransactionError(err error) Error {
	return NewIncorrectInputError(err.Error(), "The submitted transaction is neither valid BEEF nor a raw transaction.")
}

// NewInvalidLookupQueryError returns an Error describing a malformed lookup question or query.
func NewInvalidLookupQueryError(err error) Error {
	return NewIncorrectInputError(err.Error(), "The lookup query is invalid: "+err.Error())
}

// NewDocumentationNotFoundError returns an Error indicating that no documentation exists for the requested name.
func NewDocumentationNotFoundError(err error) Error {
	return NewNotFoundError(err.Error(), "No documentation found for the requested provider.")
}

// classifyEngineError translates errors returned by the engine and the hello world
// services into application errors. The fallback is used for anything unrecognised.
func classifyEngineError(err error, fallback func(error) Error) Error {
	switch {
	case errors.Is(err, engine.ErrUnknownTopic):
		return NewUnknownTopicError(err)
	case errors.Is(err, engine.ErrUnknownService):
		return NewUnknownServiceError(err)
	case errors.Is(err, engine.ErrInvalidTransaction):
		return NewInvalidTransactionError(err)
	case errors.Is(err, engine.ErrMissingQuestion), errors.Is(err, helloworld.ErrInvalidQuery):
		return NewInvalidLookupQueryError(err)
	case errors.Is(err, engine.ErrNoDocumentationFound):
		return NewDocumentationNotFoundError(err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewContextCancellationError()
	}
	return fallback(err)
}
