// Package apperr defines the error taxonomy shared by services, repositories
// and HTTP handlers: validation, conflict, auth and not-found failures, with
// optional per-field detail for validation errors.
package apperr

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindValidation Kind = "validation_error"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth_error"
	KindNotFound   Kind = "not_found"
)

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Error struct {
	Kind   Kind
	Msg    string
	Fields []FieldError
	err    error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	var b strings.Builder
	b.WriteString(e.Msg)
	b.WriteString(": ")
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field + ": " + f.Msg)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.err }

func Validation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Msg: "invalid input", Fields: fields}
}

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }
func Auth(msg string) *Error     { return &Error{Kind: KindAuth, Msg: msg} }
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Wrap attaches an underlying cause so errors.Is/As keep working through it.
func Wrap(e *Error, cause error) *Error {
	e.err = cause
	return e
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
