package sys

import (
	"io"
	"io/fs"
	"sync"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/descriptor"
	"github.com/tetratelabs/jsfs/internal/fsapi"
	"github.com/tetratelabs/jsfs/internal/sysfs"
)

const (
	FdStdin int32 = iota
	FdStdout
	FdStderr
	// FdFirstFile is the file descriptor handed to the first opened file.
	//
	// As in POSIX, the lowest available number is used to open the next
	// file, and 0, 1 and 2 are taken by the standard streams.
	FdFirstFile
)

// FileEntry maps a path to an open file.
type FileEntry struct {
	// Name is the path the file was opened with, or the stream name for
	// stdio.
	Name string

	// File is always non-nil.
	File fsapi.File

	// cursor guards the File's cursor when reads are serialized.
	cursor sync.Mutex
}

// LockCursor acquires exclusive use of this entry's cursor.
func (f *FileEntry) LockCursor() { f.cursor.Lock() }

// UnlockCursor releases LockCursor.
func (f *FileEntry) UnlockCursor() { f.cursor.Unlock() }

// FileTable is a specialization of the descriptor.Table type used to map file
// descriptors to file entries.
type FileTable = descriptor.Table[int32, *FileEntry]

// FSContext is the descriptor table of one jsfs.FS.
type FSContext struct {
	mu sync.RWMutex

	// openedFiles is a map of file descriptor numbers to open files and
	// defaults to empty.
	openedFiles FileTable
}

// NewFSContext creates a FSContext with stdio streams at descriptors 0-2.
func NewFSContext(stdin io.Reader, stdout, stderr io.Writer) *FSContext {
	c := &FSContext{}
	c.openedFiles.InsertAt(&FileEntry{Name: "stdin", File: sysfs.NewStdioFile(stdin, nil)}, FdStdin)
	c.openedFiles.InsertAt(&FileEntry{Name: "stdout", File: sysfs.NewStdioFile(nil, orDiscard(stdout))}, FdStdout)
	c.openedFiles.InsertAt(&FileEntry{Name: "stderr", File: sysfs.NewStdioFile(nil, orDiscard(stderr))}, FdStderr)
	return c
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// OpenFile opens the host file into the table and returns its file
// descriptor. The result must be closed by CloseFile or Close.
func (c *FSContext) OpenFile(path string, flag int, perm fs.FileMode) (int32, syscall.Errno) {
	f, errno := sysfs.OpenOSFile(path, flag, perm)
	if errno != 0 {
		return 0, errno
	}
	return c.InsertFile(path, f)
}

// OpenFS opens a file from a read-only fs.FS into the table and returns its
// file descriptor.
func (c *FSContext) OpenFS(fsys fs.FS, path string) (int32, syscall.Errno) {
	f, errno := sysfs.OpenFSFile(fsys, path)
	if errno != 0 {
		return 0, errno
	}
	return c.InsertFile(path, f)
}

// InsertFile adds an already opened file to the table. On failure the file
// is closed.
func (c *FSContext) InsertFile(name string, f fsapi.File) (int32, syscall.Errno) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fd, ok := c.openedFiles.Insert(&FileEntry{Name: name, File: f}); !ok {
		_ = f.Close()
		return 0, syscall.EMFILE
	} else {
		return fd, 0
	}
}

// LookupFile returns a file if it is in the table.
func (c *FSContext) LookupFile(fd int32) (*FileEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.openedFiles.Lookup(fd)
}

// CloseFile returns any error closing the existing file.
//
// The file is closed under its cursor lock, so a read holding the lock
// completes first. Reads that don't take the lock see EBADF.
func (c *FSContext) CloseFile(fd int32) syscall.Errno {
	c.mu.Lock()
	f, ok := c.openedFiles.Lookup(fd)
	if !ok {
		c.mu.Unlock()
		return syscall.EBADF
	}
	c.openedFiles.Delete(fd)
	c.mu.Unlock()

	f.LockCursor()
	defer f.UnlockCursor()
	return f.File.Close()
}

// Close implements io.Closer
func (c *FSContext) Close() (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Close any files opened in this context
	c.openedFiles.Range(func(fd int32, entry *FileEntry) bool {
		entry.LockCursor()
		defer entry.UnlockCursor()
		if errno := entry.File.Close(); errno != 0 {
			err = errno // This means err returned == the last non-nil error.
		}
		return true
	})
	c.openedFiles.Reset()
	return
}
