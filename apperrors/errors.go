// apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error at the point of detection. Transport mapping
// happens only at the handler edge via StatusCode.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindBadRequest
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) error  { return &Error{Kind: KindForbidden, Msg: msg} }
func BadRequest(msg string) error { return &Error{Kind: KindBadRequest, Msg: msg} }

// Internal wraps a store or infrastructure failure. The cause is kept for
// logging; the message shown to callers stays generic.
func Internal(err error) error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool  { return KindOf(err) == KindForbidden }
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindBadRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the caller-facing message. Internal causes are not leaked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
