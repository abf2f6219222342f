package sysfs

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

var fileBytes = []byte("jsfsio")

func openTestFile(t *testing.T) *os.File {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, fileBytes, 0o600))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	return f
}

func TestOSFile_Read(t *testing.T) {
	f := NewOSFile(openTestFile(t))
	defer f.Close()

	buf := make([]byte, 3)
	n, errno := f.Read(buf)
	require.Zero(t, errno)
	require.Equal(t, 3, n)
	require.Equal(t, "jsf", string(buf))

	// The cursor advanced, so the next read continues.
	n, errno = f.Read(buf)
	require.Zero(t, errno)
	require.Equal(t, 3, n)
	require.Equal(t, "sio", string(buf))

	// End of file is a zero count, not an error.
	n, errno = f.Read(buf)
	require.Zero(t, errno)
	require.Zero(t, n)

	// Zero length reads are short-circuited.
	n, errno = f.Read(nil)
	require.Zero(t, errno)
	require.Zero(t, n)
}

func TestOSFile_Seek(t *testing.T) {
	f := NewOSFile(openTestFile(t))
	defer f.Close()

	off, errno := f.Seek(4, io.SeekStart)
	require.Zero(t, errno)
	require.Equal(t, int64(4), off)

	off, errno = f.Seek(0, io.SeekCurrent)
	require.Zero(t, errno)
	require.Equal(t, int64(4), off)

	buf := make([]byte, 10)
	n, errno := f.Read(buf)
	require.Zero(t, errno)
	require.Equal(t, "io", string(buf[:n]))

	off, errno = f.Seek(0, io.SeekEnd)
	require.Zero(t, errno)
	require.Equal(t, int64(len(fileBytes)), off)

	_, errno = f.Seek(-1, io.SeekStart)
	require.Equal(t, syscall.EINVAL, errno)
}

func TestOSFile_Pread(t *testing.T) {
	f := NewOSFile(openTestFile(t))
	defer f.Close()

	buf := make([]byte, 3)
	n, errno := f.Pread(buf, 2)
	require.Zero(t, errno)
	require.Equal(t, "fsi", string(buf[:n]))

	// Pread does not move the cursor.
	off, errno := f.Seek(0, io.SeekCurrent)
	require.Zero(t, errno)
	require.Zero(t, off)

	// Past the end is a short read.
	n, errno = f.Pread(buf, 5)
	require.Zero(t, errno)
	require.Equal(t, "o", string(buf[:n]))

	_, errno = f.Pread(buf, -1)
	require.Equal(t, syscall.EINVAL, errno)
}

func TestOSFile_Write(t *testing.T) {
	f := NewOSFile(openTestFile(t))
	defer f.Close()

	_, errno := f.Seek(0, io.SeekEnd)
	require.Zero(t, errno)

	n, errno := f.Write([]byte("!!"))
	require.Zero(t, errno)
	require.Equal(t, 2, n)

	buf := make([]byte, 8)
	n, errno = f.Pread(buf, 0)
	require.Zero(t, errno)
	require.Equal(t, "jsfsio!!", string(buf[:n]))
}

func TestOSFile_Close(t *testing.T) {
	f := NewOSFile(openTestFile(t))
	require.Zero(t, f.Close())

	// Closing twice is not an error.
	require.Zero(t, f.Close())

	_, errno := f.Read(make([]byte, 1))
	require.Equal(t, syscall.EBADF, errno)
	_, errno = f.Seek(0, io.SeekStart)
	require.Equal(t, syscall.EBADF, errno)
	_, errno = f.Pread(make([]byte, 1), 0)
	require.Equal(t, syscall.EBADF, errno)
	_, errno = f.Write([]byte{1})
	require.Equal(t, syscall.EBADF, errno)
}

// TestOSFile_ClosedUnderneath ensures a descriptor number freed by closing the
// os.File is never used again, even once another open reuses the number.
func TestOSFile_ClosedUnderneath(t *testing.T) {
	file := openTestFile(t)
	f := NewOSFile(file)
	require.NoError(t, file.Close())

	other := openTestFile(t)
	defer other.Close()

	_, errno := f.Seek(2, io.SeekStart)
	require.Equal(t, syscall.EBADF, errno)
	_, errno = f.Read(make([]byte, 1))
	require.Equal(t, syscall.EBADF, errno)

	off, err := other.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	require.Zero(t, off)
}

func TestOSFile_CloseDuringRead(t *testing.T) {
	for i := 0; i < 50; i++ {
		f := NewOSFile(openTestFile(t))

		buf := make([]byte, 3)
		var n int
		var readErrno, closeErrno syscall.Errno
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			n, readErrno = f.Pread(buf, 1)
		}()
		go func() {
			defer wg.Done()
			closeErrno = f.Close()
		}()
		wg.Wait()

		require.Zero(t, closeErrno)
		if readErrno != 0 {
			require.Equal(t, syscall.EBADF, readErrno)
		} else {
			require.Equal(t, "sfs", string(buf[:n]))
		}
	}
}

func TestOpenOSFile(t *testing.T) {
	_, errno := OpenOSFile(filepath.Join(t.TempDir(), "missing"), os.O_RDONLY, 0)
	require.Equal(t, syscall.ENOENT, errno)
}
