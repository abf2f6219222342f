//go:build unix

package sysfs

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/tetratelabs/jsfs/internal/platform"
)

// withFd calls fn with the raw descriptor of f. The os.File keeps the
// descriptor open until fn returns, so a concurrent Close can't hand its
// number to another open mid-call.
func withFd(f *osFile, fn func(fd int) error) syscall.Errno {
	raw, err := f.file.SyscallConn()
	if err != nil {
		return platform.UnwrapOSError(err)
	}
	var opErr error
	if err = raw.Control(func(fd uintptr) { opErr = fn(int(fd)) }); err != nil {
		return syscall.EBADF // closed
	}
	return platform.UnwrapOSError(opErr)
}

// ignoringEINTR retries fn until it is not interrupted.
func ignoringEINTR(fn func() (int, error)) (int, error) {
	for {
		n, err := fn()
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

// seekFile exposes lseek on the raw descriptor.
func seekFile(f *osFile, offset int64, whence int) (off int64, errno syscall.Errno) {
	errno = withFd(f, func(fd int) (err error) {
		off, err = unix.Seek(fd, offset, whence)
		return
	})
	return
}

// readFile exposes read(2), retrying when interrupted.
func readFile(f *osFile, buf []byte) (n int, errno syscall.Errno) {
	errno = withFd(f, func(fd int) (err error) {
		n, err = ignoringEINTR(func() (int, error) { return unix.Read(fd, buf) })
		return
	})
	return
}

// preadFile exposes pread(2), retrying when interrupted.
func preadFile(f *osFile, buf []byte, off int64) (n int, errno syscall.Errno) {
	errno = withFd(f, func(fd int) (err error) {
		n, err = ignoringEINTR(func() (int, error) { return unix.Pread(fd, buf, off) })
		return
	})
	return
}

// writeFile exposes write(2), retrying when interrupted.
func writeFile(f *osFile, buf []byte) (n int, errno syscall.Errno) {
	errno = withFd(f, func(fd int) (err error) {
		n, err = ignoringEINTR(func() (int, error) { return unix.Write(fd, buf) })
		return
	})
	return
}
