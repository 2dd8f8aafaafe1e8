package domain

import (
	"strings"
	"unicode/utf8"
)

// MaxEchoLength is the maximum number of runes echoed back.
const MaxEchoLength = 64

// EchoResult represents the result of echoing a caller supplied message.
type EchoResult struct {
	ShouldRespond bool
	Response      string
}

// NewEchoResult evaluates the message and creates an EchoResult.
func NewEchoResult(message string) *EchoResult {
	message = strings.TrimSpace(message)
	if message == "" {
		return &EchoResult{}
	}

	if utf8.RuneCountInString(message) > MaxEchoLength {
		message = string([]rune(message)[:MaxEchoLength])
	}

	return &EchoResult{
		ShouldRespond: true,
		Response:      message,
	}
}
