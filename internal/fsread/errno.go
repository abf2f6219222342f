package fsread

import "syscall"

// errnoCodes are the errno names a descriptor read can report. Anything
// else is reported as EIO.
//
// See https://github.com/golang/go/blob/go1.20/src/syscall/tables_js.go#L371-L494
var errnoCodes = map[syscall.Errno]string{
	syscall.EACCES:  "EACCES",
	syscall.EAGAIN:  "EAGAIN",
	syscall.EBADF:   "EBADF",
	syscall.EFAULT:  "EFAULT",
	syscall.EINTR:   "EINTR",
	syscall.EINVAL:  "EINVAL",
	syscall.EIO:     "EIO",
	syscall.EISDIR:  "EISDIR",
	syscall.ENOSYS:  "ENOSYS",
	syscall.ENOTSUP: "ENOTSUP",
	syscall.EPERM:   "EPERM",
	syscall.ESPIPE:  "ESPIPE",
}
