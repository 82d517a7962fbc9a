package helloworld

import "errors"

var (
	// ErrInvalidQuery is returned when a lookup question or its query is malformed.
	ErrInvalidQuery = errors.New("invalid-query")
	// ErrStorage is returned when the record store fails while answering a lookup.
	ErrStorage = errors.New("storage-error")
	// ErrInvalidMessage is returned when a token does not carry a usable message.
	ErrInvalidMessage = errors.New("invalid-message")
)
