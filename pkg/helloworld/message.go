package helloworld

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/pushdrop"
)

// MinMessageLength is the minimum number of characters a message must have.
const MinMessageLength = 2

// tokenMessage returns the message carried in the first token field.
func tokenMessage(token *pushdrop.Token) (string, error) {
	if len(token.Fields) < 1 {
		return "", fmt.Errorf("%w: token has no fields", ErrInvalidMessage)
	}
	message := strings.ToValidUTF8(string(token.Fields[0]), string(utf8.RuneError))
	if utf8.RuneCountInString(message) < MinMessageLength {
		return "", fmt.Errorf("%w: message must be at least %d characters", ErrInvalidMessage, MinMessageLength)
	}
	return message, nil
}
