package sysfs

import (
	"io"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/fsapi"
	"github.com/tetratelabs/jsfs/internal/platform"
)

// NewStdioFile returns a fsapi.File for one of the standard streams. Either
// r or w is nil, and the missing direction returns EBADF. Streams are not
// seekable, so Seek and Pread return ESPIPE.
func NewStdioFile(r io.Reader, w io.Writer) fsapi.File {
	if r == nil && w == nil {
		r = eofReader{}
	}
	return &stdioFile{r: r, w: w}
}

type stdioFile struct {
	fsapi.UnimplementedFile
	r io.Reader
	w io.Writer
}

// Seek implements the same method as documented on fsapi.File
func (f *stdioFile) Seek(int64, int) (int64, syscall.Errno) {
	return 0, syscall.ESPIPE
}

// Read implements the same method as documented on fsapi.File
func (f *stdioFile) Read(buf []byte) (int, syscall.Errno) {
	if f.r == nil {
		return 0, syscall.EBADF
	}
	n, err := f.r.Read(buf)
	return n, platform.UnwrapOSError(err)
}

// Pread implements the same method as documented on fsapi.File
func (f *stdioFile) Pread([]byte, int64) (int, syscall.Errno) {
	return 0, syscall.ESPIPE
}

// Write implements the same method as documented on fsapi.File
func (f *stdioFile) Write(buf []byte) (int, syscall.Errno) {
	if f.w == nil {
		return 0, syscall.EBADF
	}
	n, err := f.w.Write(buf)
	return n, platform.UnwrapOSError(err)
}

type eofReader struct{}

// Read implements io.Reader
func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
