package jsfs

import (
	"errors"

	"github.com/tetratelabs/jsfs/internal/fsread"
)

// ErrClosed is returned by every FS method after FS.Close.
var ErrClosed = errors.New("jsfs: file system closed")

const (
	// CodeInvalidArgType is the code of ArgumentTypeError.
	CodeInvalidArgType = fsread.CodeInvalidArgType
	// CodeInvalidArgValue is the code of ArgumentValueError.
	CodeInvalidArgValue = fsread.CodeInvalidArgValue
)

type (
	// ArgumentTypeError is an argument of the wrong type, including a
	// missing callback. It is returned before the descriptor is touched.
	ArgumentTypeError = fsread.ArgumentTypeError

	// ArgumentValueError is an argument of the right type but unusable
	// value, such as an empty buffer.
	ArgumentValueError = fsread.ArgumentValueError

	// PreconditionError is the panic value of a read whose offset and length
	// do not fit its buffer.
	PreconditionError = fsread.PreconditionError

	// IOError wraps the syscall.Errno of a failed seek, read or write.
	IOError = fsread.IOError
)
