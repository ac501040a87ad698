package xerrors

import "errors"

// Error kinds. Handlers map these to HTTP status codes.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict: resource already exists")
	ErrInternal   = errors.New("internal server error")
)

// Error is a kinded error carrying the message returned to API clients.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is matches the error against its kind, so callers can use
// errors.Is(err, xerrors.ErrNotFound) regardless of the message.
func (e *Error) Is(target error) bool { return target == e.kind }

func BadRequest(msg string) error { return &Error{kind: ErrBadRequest, msg: msg} }
func NotFound(msg string) error   { return &Error{kind: ErrNotFound, msg: msg} }
func Conflict(msg string) error   { return &Error{kind: ErrConflict, msg: msg} }
func Internal(msg string) error   { return &Error{kind: ErrInternal, msg: msg} }

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
