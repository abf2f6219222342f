package fsread

import (
	"errors"
	"fmt"
	"syscall"
)

const (
	// CodeInvalidArgType is the code of ArgumentTypeError.
	CodeInvalidArgType = "ERR_INVALID_ARG_TYPE"
	// CodeInvalidArgValue is the code of ArgumentValueError.
	CodeInvalidArgValue = "ERR_INVALID_ARG_VALUE"
)

// ArgumentTypeError is returned when an argument has the wrong type, or a
// required callback is missing.
type ArgumentTypeError struct {
	// Name is the argument name, e.g. "fd".
	Name string
	// Want describes the accepted type, e.g. "an integer".
	Want string
	// Got is the value received.
	Got interface{}
}

// Code returns CodeInvalidArgType.
func (e *ArgumentTypeError) Code() string { return CodeInvalidArgType }

// Error implements error.
func (e *ArgumentTypeError) Error() string {
	got := "nil"
	if e.Got != nil {
		got = fmt.Sprintf("%T", e.Got)
	}
	return fmt.Sprintf("%s: the %q argument must be %s, got %s", CodeInvalidArgType, e.Name, e.Want, got)
}

// ArgumentValueError is returned when an argument has an accepted type but
// an unusable value.
type ArgumentValueError struct {
	Name   string
	Reason string
}

// Code returns CodeInvalidArgValue.
func (e *ArgumentValueError) Code() string { return CodeInvalidArgValue }

// Error implements error.
func (e *ArgumentValueError) Error() string {
	return fmt.Sprintf("%s: the argument %q %s", CodeInvalidArgValue, e.Name, e.Reason)
}

// PreconditionError is the panic value of a read whose offset or length
// does not fit its buffer. It is never returned: the caller broke the
// contract.
type PreconditionError struct {
	Message      string
	BufferLength int
	Offset       int
	Length       int
}

// Error implements error.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: buffer length %d, offset %d, length %d", e.Message, e.BufferLength, e.Offset, e.Length)
}

// IOError is a failed seek or read on a descriptor.
type IOError struct {
	// Op is "seek" or "read".
	Op string
	FD int32
	// Err is a syscall.Errno.
	Err error
}

// Error implements error.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s fd %d: %s", e.Op, e.FD, e.Err)
}

// Unwrap allows errors.Is(err, syscall.EBADF).
func (e *IOError) Unwrap() error { return e.Err }

// Code returns the errno name, e.g. "EBADF", as a JavaScript host reports
// it in `err.code`. Unknown faults are "EIO".
func (e *IOError) Code() string {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		if code, ok := errnoCodes[errno]; ok {
			return code
		}
	}
	return "EIO"
}

func ioError(op string, fd int32, errno syscall.Errno) *IOError {
	return &IOError{Op: op, FD: fd, Err: errno}
}
