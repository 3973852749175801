package nairaland

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"nairaland-client/lib/htmlutil"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrNotAuthenticated     = errors.New("nairaland: not authenticated")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrMissingParameter     = errors.New("missing parameter")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrUnknownParameter     = errors.New("unknown parameter")
)

// AuthenticationError is returned when logging in fails, either because the
// credentials were rejected or because the login response could not be
// understood.
type AuthenticationError struct {
	Identifier string
	// 0 when no response was received
	StatusCode int
	Reason     string
	Err        error
}

func (e *AuthenticationError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "nairaland: authentication of %q failed", e.Identifier)
	if e.StatusCode != 0 {
		fmt.Fprintf(&msg, " (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		fmt.Fprintf(&msg, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&msg, ": %s", e.Err)
	}
	return msg.String()
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// NotAuthenticatedError is returned when an operation is attempted on a
// client that holds no session. It matches ErrNotAuthenticated.
type NotAuthenticatedError struct {
	Operation Operation
}

func (e *NotAuthenticatedError) Error() string {
	return fmt.Sprintf("nairaland: %s: not authenticated", e.Operation)
}

func (e *NotAuthenticatedError) Unwrap() error {
	return ErrNotAuthenticated
}

// OperationError is returned when the forum rejects or fails an
// authenticated operation. StatusCode and Body carry the raw response when
// there was one.
type OperationError struct {
	Operation  Operation
	Endpoint   string
	StatusCode int
	Body       []byte
	Reason     string
	Err        error
}

func (e *OperationError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "nairaland: %s", e.Operation)
	if e.Endpoint != "" {
		fmt.Fprintf(&msg, " (%s)", e.Endpoint)
	}
	msg.WriteString(" failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&msg, " with status %d", e.StatusCode)
	}
	if e.Reason != "" {
		fmt.Fprintf(&msg, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&msg, ": %s", e.Err)
	}
	if snippet := summarize(e.Body); snippet != "" {
		fmt.Fprintf(&msg, ": %q", snippet)
	}
	return msg.String()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

type UnknownBoardError struct {
	Name string
}

func (e *UnknownBoardError) Error() string {
	return fmt.Sprintf("nairaland: unknown board %q", e.Name)
}

var plainText = bluemonday.StrictPolicy()

const summaryLength = 160

// summarize turns an html body into a short line of plain text fit for an
// error message.
func summarize(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	text := html.UnescapeString(string(plainText.SanitizeBytes(body)))
	text = htmlutil.Normalize(text)
	runes := []rune(text)
	if len(runes) > summaryLength {
		return string(runes[:summaryLength]) + "..."
	}
	return text
}
