package pathfinder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidResponse matches every response that does not satisfy the path schema.
	ErrInvalidResponse = errors.New("invalid pathfinder response")
	// ErrPathNotFound is returned when the backend finds no path between the markers.
	ErrPathNotFound = errors.New("path not found")
)

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode pathfinder response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrInvalidResponse }

// SchemaError reports a decoded response with a missing or out-of-range field.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("pathfinder response field %q %s", e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrInvalidResponse }

// StatusError is a non-2xx answer of the backend.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pathfinder returned status %d: %s", e.Code, e.Detail)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrPathNotFound && e.Code == 404
}

// newStatusError extracts the "detail" member of an error body, falling back
// to the raw body when it is absent or not a string.
func newStatusError(code int, body []byte) *StatusError {
	detail := strings.TrimSpace(string(body))

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var text string
		if json.Unmarshal(payload.Detail, &text) == nil {
			detail = text
		} else {
			detail = string(payload.Detail)
		}
	}

	return &StatusError{Code: code, Detail: detail}
}
