package sysfs

import (
	"io/fs"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/fsapi"
	"github.com/tetratelabs/jsfs/internal/platform"
)

// OpenOSFile is like os.OpenFile except it returns a fsapi.File backed by the
// raw descriptor of the opened file.
func OpenOSFile(path string, flag int, perm fs.FileMode) (fsapi.File, syscall.Errno) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, platform.UnwrapOSError(err)
	}
	return NewOSFile(f), 0
}

// NewOSFile adapts an already opened os.File. The result owns the file and
// closes it on Close.
func NewOSFile(f *os.File) fsapi.File {
	return &osFile{file: f}
}

// osFile is a file opened with this package, and uses os.File or syscalls to
// implement fsapi.File. Close may race with the other methods.
type osFile struct {
	fsapi.UnimplementedFile

	file *os.File

	// closed is true when closed was called. This ensures proper EBADF
	closed atomic.Bool
}

// Seek implements the same method as documented on fsapi.File
func (f *osFile) Seek(offset int64, whence int) (int64, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	}
	return seekFile(f, offset, whence)
}

// Read implements the same method as documented on fsapi.File
func (f *osFile) Read(buf []byte) (int, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	} else if len(buf) == 0 {
		return 0, 0 // Short-circuit 0-len reads.
	}
	return readFile(f, buf)
}

// Pread implements the same method as documented on fsapi.File
func (f *osFile) Pread(buf []byte, off int64) (int, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	} else if off < 0 {
		return 0, syscall.EINVAL
	} else if len(buf) == 0 {
		return 0, 0
	}
	return preadFile(f, buf, off)
}

// Write implements the same method as documented on fsapi.File
func (f *osFile) Write(buf []byte) (int, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	} else if len(buf) == 0 {
		return 0, 0
	}
	return writeFile(f, buf)
}

// Close implements the same method as documented on fsapi.File
func (f *osFile) Close() syscall.Errno {
	if !f.closed.CompareAndSwap(false, true) {
		return 0
	}
	return platform.UnwrapOSError(f.file.Close())
}
