package fsread

import (
	"io"
	"syscall"

	"github.com/tetratelabs/jsfs/internal/sys"
)

// Executor performs validated requests against a descriptor table.
//
// The zero value reads exactly like fs.read in JavaScript hosts: an explicit
// position is honored by saving the cursor, seeking, reading and seeking
// back, and the cursor is only restored when the seek and the read both
// succeed. A failed read leaves the cursor wherever the failure left it.
type Executor struct {
	// CursorLock serializes requests on the same descriptor, so that the
	// seek, read and restore of one request never interleave with another.
	CursorLock bool

	// PositionedRead uses fsapi.File Pread for explicit positions, leaving
	// the cursor untouched. Files without Pread (syscall.ENOSYS) fall back to
	// seeking.
	PositionedRead bool

	// RestoreOnError restores the cursor even when the seek to the position
	// or the read fails.
	RestoreOnError bool
}

// Execute reads req.Length bytes into req.Buffer at req.Offset and returns
// the count read. A short read, including zero at end of file, is not an
// error.
func (x Executor) Execute(fsc *sys.FSContext, req *Request) (int, error) {
	f, ok := fsc.LookupFile(req.FD)
	if !ok {
		return 0, ioError("read", req.FD, syscall.EBADF)
	}

	if x.CursorLock {
		f.LockCursor()
		defer f.UnlockCursor()
	}

	buf := req.View()
	pos, ok := req.Position.Offset()
	if !ok {
		n, errno := f.File.Read(buf)
		if errno != 0 {
			return 0, ioError("read", req.FD, errno)
		}
		return n, nil
	}

	if x.PositionedRead {
		if n, errno := f.File.Pread(buf, pos); errno == 0 {
			return n, nil
		} else if errno != syscall.ENOSYS {
			return 0, ioError("read", req.FD, errno)
		}
	}

	saved, errno := f.File.Seek(0, io.SeekCurrent)
	if errno != 0 {
		return 0, ioError("seek", req.FD, errno)
	}
	if _, errno = f.File.Seek(pos, io.SeekStart); errno != 0 {
		x.restoreOnError(f, saved)
		return 0, ioError("seek", req.FD, errno)
	}
	n, errno := f.File.Read(buf)
	if errno != 0 {
		x.restoreOnError(f, saved)
		return 0, ioError("read", req.FD, errno)
	}
	if _, errno = f.File.Seek(saved, io.SeekStart); errno != 0 {
		return 0, ioError("seek", req.FD, errno)
	}
	return n, nil
}

// restoreOnError puts the cursor back after a failure when configured to.
// The original error wins over any error restoring.
func (x Executor) restoreOnError(f *sys.FileEntry, saved int64) {
	if x.RestoreOnError {
		_, _ = f.File.Seek(saved, io.SeekStart)
	}
}
