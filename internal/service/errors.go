package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoTasksFound       = errors.New("no tasks found")
	ErrTaskCreation       = errors.New("task creation failed")
	ErrTaskUpdate         = errors.New("task update failed")
	ErrTaskDelete         = errors.New("task delete failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistration       = errors.New("registration failed")
	ErrInvalidInput       = errors.New("invalid input")
)

// Error is the outcome of a failed service operation. Kind is one of the
// sentinel errors above; Err keeps the underlying storage cause, if any.
// errors.Is matches both.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}
