// Package jsfs implements the fs.read and fs.readSync functions of
// JavaScript hosts over a table of file descriptors.
//
// Both forms read up to length bytes from a descriptor into
// buffer[offset:], either from the descriptor's cursor, advancing it, or
// from an explicit position, leaving the cursor where it was. The callback
// form is not asynchronous: the callback is invoked before Read returns.
//
//	fsys := jsfs.NewFS(nil)
//	defer fsys.Close()
//
//	fd, err := fsys.OpenFile("data.txt", os.O_RDONLY, 0)
//	...
//	buf := make([]byte, 10)
//	n, err := fsys.ReadSync(fd, jsfs.Positional{Buffer: buf, Length: 10, Position: jsfs.At(0)})
package jsfs

import (
	"io/fs"
	"sync/atomic"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/fsread"
	"github.com/tetratelabs/jsfs/internal/logging"
	"github.com/tetratelabs/jsfs/internal/sys"
)

// FS is a table of open file descriptors, with 0, 1 and 2 taken by the
// standard streams. It is safe for concurrent use, though reads at explicit
// positions on one descriptor also need FSConfig.WithCursorLock.
type FS struct {
	fsc    *sys.FSContext
	reader *fsread.Reader
	closed atomic.Bool
}

// NewFS returns an FS configured by cfg, or NewFSConfig when nil.
func NewFS(cfg *FSConfig) *FS {
	if cfg == nil {
		cfg = NewFSConfig()
	}
	fsc := sys.NewFSContext(cfg.stdin, cfg.stdout, cfg.stderr)
	return &FS{
		fsc: fsc,
		reader: &fsread.Reader{
			FSC:      fsc,
			Executor: cfg.executor,
			Log:      logging.New(cfg.log),
		},
	}
}

// OpenFile opens a host file like os.OpenFile and returns its descriptor,
// the lowest one free.
func (f *FS) OpenFile(path string, flag int, perm fs.FileMode) (int32, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	fd, errno := f.fsc.OpenFile(path, flag, perm)
	if errno != 0 {
		return 0, &fs.PathError{Op: "open", Path: path, Err: errno}
	}
	return fd, nil
}

// OpenFS opens name in fsys read-only and returns its descriptor.
func (f *FS) OpenFS(fsys fs.FS, name string) (int32, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	fd, errno := f.fsc.OpenFS(fsys, name)
	if errno != 0 {
		return 0, &fs.PathError{Op: "open", Path: name, Err: errno}
	}
	return fd, nil
}

// Seek moves the cursor of fd like io.Seeker and returns the new offset.
func (f *FS) Seek(fd int32, offset int64, whence int) (int64, error) {
	entry, err := f.lookup("seek", fd)
	if err != nil {
		return 0, err
	}
	newOffset, errno := entry.File.Seek(offset, whence)
	if errno != 0 {
		return 0, &IOError{Op: "seek", FD: fd, Err: errno}
	}
	return newOffset, nil
}

// Write writes buf at the cursor of fd.
func (f *FS) Write(fd int32, buf []byte) (int, error) {
	entry, err := f.lookup("write", fd)
	if err != nil {
		return 0, err
	}
	n, errno := entry.File.Write(buf)
	if errno != 0 {
		return n, &IOError{Op: "write", FD: fd, Err: errno}
	}
	return n, nil
}

// CloseFile closes fd, freeing it for the next open.
func (f *FS) CloseFile(fd int32) error {
	if f.closed.Load() {
		return ErrClosed
	}
	if errno := f.fsc.CloseFile(fd); errno != 0 {
		return &IOError{Op: "close", FD: fd, Err: errno}
	}
	return nil
}

// Close closes every open descriptor. Subsequent calls return ErrClosed.
func (f *FS) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return f.fsc.Close()
}

// Read is fs.read: it reads per args, then calls callback before returning.
//
// Invalid arguments are returned without invoking callback. I/O errors,
// including an unknown descriptor, are delivered to callback and Read
// returns nil. A range that does not fit the buffer panics with a
// *PreconditionError.
func (f *FS) Read(fd int32, args Args, callback Callback) error {
	if f.closed.Load() {
		return ErrClosed
	}
	return f.reader.Read(fd, args, callback)
}

// ReadSync is fs.readSync: it returns the count of bytes read, which is zero
// at end of file. args is Positional or BufferOptions.
func (f *FS) ReadSync(fd int32, args Args) (int, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.reader.ReadSync(fd, args)
}

// Invoke calls "read" or "readSync" with loosely typed arguments, resolving
// the overload from their types the way a JavaScript host does. Integers of
// any kind and integral float64 values are accepted as numbers, and a
// map[string]interface{} as an options object:
//
//	fsys.Invoke("read", fd, map[string]interface{}{"position": 0}, callback)
//	n, err := fsys.Invoke("readSync", fd, buf, 0, len(buf), nil)
//
// read returns a nil value; readSync returns the count read as an int.
func (f *FS) Invoke(method string, args ...interface{}) (interface{}, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	return f.reader.Invoke(method, args...)
}

func (f *FS) lookup(op string, fd int32) (*sys.FileEntry, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	entry, ok := f.fsc.LookupFile(fd)
	if !ok {
		return nil, &IOError{Op: op, FD: fd, Err: syscall.EBADF}
	}
	return entry, nil
}
