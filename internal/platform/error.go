package platform

import (
	"errors"
	"io"
	"io/fs"
	"syscall"
)

// UnwrapOSError returns a syscall.Errno or zero if the input is nil.
//
// Faults that carry no errno of their own are coerced to the nearest code,
// and anything unrecognized becomes syscall.EIO.
func UnwrapOSError(err error) syscall.Errno {
	if err == nil {
		return 0
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	switch {
	case errors.Is(err, io.EOF):
		return 0 // EOF is a zero length read, not a fault.
	case errors.Is(err, fs.ErrClosed):
		return syscall.EBADF
	case errors.Is(err, fs.ErrInvalid):
		return syscall.EINVAL
	case errors.Is(err, fs.ErrPermission):
		return syscall.EPERM
	case errors.Is(err, fs.ErrExist):
		return syscall.EEXIST
	case errors.Is(err, fs.ErrNotExist):
		return syscall.ENOENT
	}
	return syscall.EIO
}
