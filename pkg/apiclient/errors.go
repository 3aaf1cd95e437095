package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindRequestFailed Kind = iota
	KindAuthenticationFailed
	KindForbidden
	KindValidationFailed
	KindNotFound
	KindTransport
	KindInvalidResponse
)

var (
	ErrRequestFailed        = errors.New("request failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbidden            = errors.New("forbidden")
	ErrValidationFailed     = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrTransport            = errors.New("transport error")
	ErrInvalidResponse      = errors.New("invalid response")
)

var kindErrors = map[Kind]error{
	KindRequestFailed:        ErrRequestFailed,
	KindAuthenticationFailed: ErrAuthenticationFailed,
	KindForbidden:            ErrForbidden,
	KindValidationFailed:     ErrValidationFailed,
	KindNotFound:             ErrNotFound,
	KindTransport:            ErrTransport,
	KindInvalidResponse:      ErrInvalidResponse,
}

func (k Kind) String() string {
	return kindErrors[k].Error()
}

// Error is returned by every Client call. Use errors.Is with the Err* sentinels
// to branch on the kind.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

// KindOf returns the kind of err, or KindRequestFailed when err did not come from a Client.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindRequestFailed
}

// Message returns the user-facing message carried by err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidationFailed
	case http.StatusUnauthorized:
		return KindAuthenticationFailed
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindRequestFailed
	}
}
