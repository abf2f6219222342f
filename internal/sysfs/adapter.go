package sysfs

import (
	"io"
	"io/fs"
	"path"
	"sync/atomic"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/fsapi"
	"github.com/tetratelabs/jsfs/internal/platform"
)

// OpenFSFile opens the named file in a read-only fs.FS and adapts it to a
// fsapi.File.
//
// Note: fs.FS has no descriptor and no cursor of its own, so Seek and Pread
// are only supported when the opened file implements io.Seeker or
// io.ReaderAt, as os.File and fstest.MapFS files do.
func OpenFSFile(fsys fs.FS, name string) (fsapi.File, syscall.Errno) {
	f, err := fsys.Open(cleanPath(name))
	if err != nil {
		return nil, platform.UnwrapOSError(err)
	}
	return NewFSFile(f), 0
}

// NewFSFile adapts an opened fs.File to fsapi.File.
func NewFSFile(f fs.File) fsapi.File {
	return &fsFile{file: f}
}

type fsFile struct {
	fsapi.UnimplementedFile

	file   fs.File
	closed atomic.Bool
}

// Seek implements the same method as documented on fsapi.File
func (f *fsFile) Seek(offset int64, whence int) (int64, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	}
	s, ok := f.file.(io.Seeker)
	if !ok {
		return 0, syscall.ENOTSUP
	}
	newOffset, err := s.Seek(offset, whence)
	return newOffset, platform.UnwrapOSError(err)
}

// Read implements the same method as documented on fsapi.File
func (f *fsFile) Read(buf []byte) (int, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	} else if len(buf) == 0 {
		return 0, 0
	}
	n, err := f.file.Read(buf)
	// io.EOF has no value in the JS error model and a zero count already
	// means end of file.
	return n, platform.UnwrapOSError(err)
}

// Pread implements the same method as documented on fsapi.File
func (f *fsFile) Pread(buf []byte, off int64) (int, syscall.Errno) {
	if f.closed.Load() {
		return 0, syscall.EBADF
	} else if off < 0 {
		return 0, syscall.EINVAL
	}
	ra, ok := f.file.(io.ReaderAt)
	if !ok {
		return 0, syscall.ENOSYS
	}
	n, err := ra.ReadAt(buf, off)
	return n, platform.UnwrapOSError(err)
}

// Write implements the same method as documented on fsapi.File
func (f *fsFile) Write([]byte) (int, syscall.Errno) {
	return 0, syscall.EBADF // fs.FS is read-only
}

// Close implements the same method as documented on fsapi.File
func (f *fsFile) Close() syscall.Errno {
	if !f.closed.CompareAndSwap(false, true) {
		return 0
	}
	return platform.UnwrapOSError(f.file.Close())
}

func cleanPath(name string) string {
	if len(name) == 0 {
		return name
	}
	// fs.ValidPath cannot be rooted (start with '/')
	cleaned := name
	if name[0] == '/' {
		cleaned = name[1:]
	}
	cleaned = path.Clean(cleaned) // e.g. "sub/." -> "sub"
	return cleaned
}
