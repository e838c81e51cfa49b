package menuapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultReviewFailure is shown when a rejected review carries no server message.
const DefaultReviewFailure = "Failed to submit review. Please try again."

var (
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("unexpected response status")
	// ErrMissingData marks a response without the data field an operation unwraps.
	ErrMissingData = errors.New("response has no data field")
	// ErrEmptyID is returned before any request is made for a blank id.
	ErrEmptyID = errors.New("id is empty")
)

// RequestError is the single failure type of the client: the call failed,
// whatever the reason. StatusCode is 0 when no response arrived.
type RequestError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	// Message is the server supplied "message" of an error body, if any.
	Message string
	Body    string
	Err     error
}

func (e *RequestError) Error() string {
	prefix := e.Op
	if e.Method != "" {
		prefix = fmt.Sprintf("%s: %s %s", e.Op, e.Method, e.URL)
	}
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", prefix, e.StatusCode, e.Message)
	case e.StatusCode != 0 && errors.Is(e.Err, ErrStatus):
		return fmt.Sprintf("%s: status %d body: %s", prefix, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Message returns the server supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}

func serverMessage(body []byte) string {
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Message.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
