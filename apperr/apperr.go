// Package apperr carries the error taxonomy shared by all services.
// Controllers switch on the kind to pick a transport status; the detail
// message goes to the client verbatim.
package apperr

import "errors"

type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindValidation       Kind = "VALIDATION"
	KindAccessDenied     Kind = "ACCESS_DENIED"
	KindConflict         Kind = "CONFLICT"
	KindUnsupportedState Kind = "UNSUPPORTED_STATE"
)

type kindedError struct {
	kind Kind
	msg  string
}

func (e kindedError) Error() string { return e.msg }
func (e kindedError) Kind() Kind    { return e.kind }

func NotFound(msg string) error         { return kindedError{kind: KindNotFound, msg: msg} }
func Validation(msg string) error       { return kindedError{kind: KindValidation, msg: msg} }
func AccessDenied(msg string) error     { return kindedError{kind: KindAccessDenied, msg: msg} }
func Conflict(msg string) error         { return kindedError{kind: KindConflict, msg: msg} }
func UnsupportedState(msg string) error { return kindedError{kind: KindUnsupportedState, msg: msg} }

// KindOf extracts the kind; unknown errors yield "".
func KindOf(err error) Kind {
	var ke interface{ Kind() Kind }
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return ""
}
