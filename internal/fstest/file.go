// Package fstest includes an in-memory fsapi.File which records every call
// made to it, for tests that need to see exactly which seeks and reads a
// read performed, and in what order.
package fstest

import (
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/fsapi"
)

// Op names a fsapi.File method.
type Op string

const (
	OpSeek  Op = "seek"
	OpRead  Op = "read"
	OpPread Op = "pread"
	OpWrite Op = "write"
	OpClose Op = "close"
)

// Call is one recorded invocation.
type Call struct {
	Op Op
	// Offset is the seek offset or pread offset.
	Offset int64
	// Whence is only meaningful for OpSeek.
	Whence int
	// Len is the length of the buffer passed to read, pread or write.
	Len int
}

// String implements fmt.Stringer
func (c Call) String() string {
	switch c.Op {
	case OpSeek:
		return fmt.Sprintf("seek(%d,%s)", c.Offset, whenceName(c.Whence))
	case OpRead, OpWrite:
		return fmt.Sprintf("%s(%d)", c.Op, c.Len)
	case OpPread:
		return fmt.Sprintf("pread(%d,%d)", c.Len, c.Offset)
	}
	return string(c.Op)
}

func whenceName(whence int) string {
	switch whence {
	case io.SeekStart:
		return "start"
	case io.SeekCurrent:
		return "current"
	case io.SeekEnd:
		return "end"
	}
	return fmt.Sprint(whence)
}

// File is an in-memory fsapi.File.
type File struct {
	fsapi.UnimplementedFile

	// Data is the content of the file.
	Data []byte

	// Cursor is the current offset, moved by Seek, Read and Write.
	Cursor int64

	// Calls are the calls made so far, in order.
	Calls []Call

	// Fail is optional and returns a non-zero errno to fail a call before it
	// has any effect.
	Fail func(Call) syscall.Errno

	// NoPread makes Pread return syscall.ENOSYS.
	NoPread bool

	closed bool
}

// NewFile returns a File holding a copy of data with the cursor at zero.
func NewFile(data string) *File {
	return &File{Data: []byte(data)}
}

// Trace renders Calls like "seek(0,current) read(4)".
func (f *File) Trace() string {
	calls := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		calls = append(calls, c.String())
	}
	return strings.Join(calls, " ")
}

func (f *File) record(c Call) syscall.Errno {
	f.Calls = append(f.Calls, c)
	if f.closed {
		return syscall.EBADF
	}
	if f.Fail != nil {
		return f.Fail(c)
	}
	return 0
}

// Seek implements the same method as documented on fsapi.File
func (f *File) Seek(offset int64, whence int) (int64, syscall.Errno) {
	if errno := f.record(Call{Op: OpSeek, Offset: offset, Whence: whence}); errno != 0 {
		return 0, errno
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.Cursor + offset
	case io.SeekEnd:
		abs = int64(len(f.Data)) + offset
	default:
		return 0, syscall.EINVAL
	}
	if abs < 0 {
		return 0, syscall.EINVAL
	}
	f.Cursor = abs
	return abs, 0
}

// Read implements the same method as documented on fsapi.File
func (f *File) Read(buf []byte) (int, syscall.Errno) {
	if errno := f.record(Call{Op: OpRead, Len: len(buf)}); errno != 0 {
		return 0, errno
	}
	n := f.readAt(buf, f.Cursor)
	f.Cursor += int64(n)
	return n, 0
}

// Pread implements the same method as documented on fsapi.File
func (f *File) Pread(buf []byte, off int64) (int, syscall.Errno) {
	if errno := f.record(Call{Op: OpPread, Offset: off, Len: len(buf)}); errno != 0 {
		return 0, errno
	}
	if f.NoPread {
		return 0, syscall.ENOSYS
	} else if off < 0 {
		return 0, syscall.EINVAL
	}
	return f.readAt(buf, off), 0
}

func (f *File) readAt(buf []byte, off int64) int {
	if off >= int64(len(f.Data)) {
		return 0
	}
	return copy(buf, f.Data[off:])
}

// Write implements the same method as documented on fsapi.File
func (f *File) Write(buf []byte) (int, syscall.Errno) {
	if errno := f.record(Call{Op: OpWrite, Len: len(buf)}); errno != 0 {
		return 0, errno
	}
	end := f.Cursor + int64(len(buf))
	if end > int64(len(f.Data)) {
		grown := make([]byte, end)
		copy(grown, f.Data)
		f.Data = grown
	}
	copy(f.Data[f.Cursor:], buf)
	f.Cursor = end
	return len(buf), 0
}

// Close implements the same method as documented on fsapi.File
func (f *File) Close() syscall.Errno {
	if f.closed {
		return 0
	}
	f.Calls = append(f.Calls, Call{Op: OpClose})
	f.closed = true
	return 0
}
