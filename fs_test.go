package jsfs_test

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"testing/fstest"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/jsfs"
)

const testData = "abcdefghij"

func writeTestFile(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func openTestFile(t *testing.T, cfg *jsfs.FSConfig, data string) (*jsfs.FS, int32) {
	fsys := jsfs.NewFS(cfg)
	t.Cleanup(func() { _ = fsys.Close() })

	fd, err := fsys.OpenFile(writeTestFile(t, data), os.O_RDONLY, 0)
	require.NoError(t, err)
	require.Equal(t, int32(3), fd)
	return fsys, fd
}

func cursor(t *testing.T, fsys *jsfs.FS, fd int32) int64 {
	pos, err := fsys.Seek(fd, 0, io.SeekCurrent)
	require.NoError(t, err)
	return pos
}

func TestFS_ReadSync(t *testing.T) {
	fsys, fd := openTestFile(t, nil, testData)

	buf := make([]byte, 10)
	n, err := fsys.ReadSync(fd, jsfs.Positional{Buffer: buf, Offset: 0, Length: 10, Position: jsfs.Unset})
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, testData, string(buf))
	require.Equal(t, int64(10), cursor(t, fsys, fd))

	n, err = fsys.ReadSync(fd, jsfs.BufferOptions{Buffer: buf})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestFS_ReadSync_Position(t *testing.T) {
	for _, cfg := range []*jsfs.FSConfig{
		jsfs.NewFSConfig(),
		jsfs.NewFSConfig().WithPositionedRead(true),
		jsfs.NewFSConfig().WithCursorLock(true),
	} {
		fsys, fd := openTestFile(t, cfg, testData)

		_, err := fsys.Seek(fd, 3, io.SeekStart)
		require.NoError(t, err)

		buf := make([]byte, 8)
		n, err := fsys.ReadSync(fd, jsfs.BufferOptions{Buffer: buf, Options: jsfs.Options{Offset: 4, Length: jsfs.Int(4), Position: jsfs.At(6)}})
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, "ghij", string(buf[4:]))
		require.Equal(t, int64(3), cursor(t, fsys, fd))
	}
}

func TestFS_Read(t *testing.T) {
	fsys, fd := openTestFile(t, nil, testData)

	var calls int
	err := fsys.Read(fd, jsfs.Options{Buffer: make([]byte, 20), Position: jsfs.At(5)}, func(err error, n int, buffer []byte) {
		calls++
		require.NoError(t, err)
		require.Equal(t, 5, n)
		// The view is the requested length, not the count read.
		require.Equal(t, 20, len(buffer))
		require.Equal(t, "fghij", string(buffer[:n]))
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls, "the callback is invoked before Read returns")
	require.Zero(t, cursor(t, fsys, fd))
}

func TestFS_Read_EmptyFile(t *testing.T) {
	fsys, fd := openTestFile(t, nil, "")

	var calls int
	require.NoError(t, fsys.Read(fd, jsfs.CallbackOnly{}, func(err error, n int, buffer []byte) {
		calls++
		require.NoError(t, err)
		require.Zero(t, n)
		require.Equal(t, jsfs.DefaultBufferSize, len(buffer))
	}))
	require.Equal(t, 1, calls)
}

func TestFS_Read_BadFD(t *testing.T) {
	fsys := jsfs.NewFS(nil)
	defer fsys.Close()

	var got error
	require.NoError(t, fsys.Read(9, nil, func(err error, n int, buffer []byte) {
		got = err
		require.Zero(t, n)
		require.Nil(t, buffer)
	}))
	require.ErrorIs(t, got, syscall.EBADF)

	var ioErr *jsfs.IOError
	require.ErrorAs(t, got, &ioErr)
	require.Equal(t, "EBADF", ioErr.Code())
}

func TestFS_Read_ArgumentErrors(t *testing.T) {
	fsys, fd := openTestFile(t, nil, testData)
	noop := func(error, int, []byte) { t.Fatal("callback invoked") }

	err := fsys.Read(fd, jsfs.Positional{Buffer: []byte{}}, noop)
	var valueErr *jsfs.ArgumentValueError
	require.ErrorAs(t, err, &valueErr)
	require.Equal(t, jsfs.CodeInvalidArgValue, valueErr.Code())

	err = fsys.Read(fd, nil, nil)
	var typeErr *jsfs.ArgumentTypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, "callback", typeErr.Name)

	_, err = fsys.Invoke("read", "fd", noop)
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, "fd", typeErr.Name)
	require.Equal(t, jsfs.CodeInvalidArgType, typeErr.Code())

	require.Zero(t, cursor(t, fsys, fd))
}

func TestFS_Read_Precondition(t *testing.T) {
	fsys, fd := openTestFile(t, nil, testData)

	require.PanicsWithError(t, "offset out of range: buffer length 4, offset -1, length 1", func() {
		_, _ = fsys.ReadSync(fd, jsfs.Positional{Buffer: make([]byte, 4), Offset: -1, Length: 1})
	})

	defer func() {
		var precondition *jsfs.PreconditionError
		require.ErrorAs(t, recover().(error), &precondition)
		require.Equal(t, 5, precondition.Length)
	}()
	_, _ = fsys.ReadSync(fd, jsfs.Positional{Buffer: make([]byte, 4), Length: 5})
}

// TestFS_RoundTrip writes bytes at a position, then reads them from there.
func TestFS_RoundTrip(t *testing.T) {
	fsys := jsfs.NewFS(nil)
	defer fsys.Close()

	path := filepath.Join(t.TempDir(), "rw")
	fd, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	require.NoError(t, err)

	for _, pos := range []int64{0, 7, 4096} {
		_, err = fsys.Seek(fd, pos, io.SeekStart)
		require.NoError(t, err)
		n, err := fsys.Write(fd, []byte(testData))
		require.NoError(t, err)
		require.Equal(t, len(testData), n)

		buf := make([]byte, len(testData))
		n, err = fsys.ReadSync(fd, jsfs.Positional{Buffer: buf, Length: len(buf), Position: jsfs.At(pos)})
		require.NoError(t, err)
		require.Equal(t, len(testData), n)
		require.Equal(t, testData, string(buf))
		require.Equal(t, pos+int64(len(testData)), cursor(t, fsys, fd))
	}
}

func TestFS_OpenFS(t *testing.T) {
	fsys := jsfs.NewFS(nil)
	defer fsys.Close()

	fd, err := fsys.OpenFS(fstest.MapFS{"a.txt": {Data: []byte(testData)}}, "a.txt")
	require.NoError(t, err)

	v, err := fsys.Invoke("readSync", fd, make([]byte, 3), map[string]interface{}{"position": 7})
	require.NoError(t, err)
	require.Equal(t, 3, v)

	_, err = fsys.Write(fd, []byte("x"))
	require.ErrorIs(t, err, syscall.EBADF)

	_, err = fsys.OpenFS(fstest.MapFS{}, "missing.txt")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFS_OpenFile_Missing(t *testing.T) {
	fsys := jsfs.NewFS(nil)
	defer fsys.Close()

	_, err := fsys.OpenFile(filepath.Join(t.TempDir(), "missing"), os.O_RDONLY, 0)
	require.ErrorIs(t, err, fs.ErrNotExist)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, "open", pathErr.Op)
}

func TestFS_Stdio(t *testing.T) {
	var stdout strings.Builder
	fsys := jsfs.NewFS(jsfs.NewFSConfig().WithStdin(strings.NewReader("typed")).WithStdout(&stdout))
	defer fsys.Close()

	buf := make([]byte, 8)
	n, err := fsys.ReadSync(0, jsfs.BufferOptions{Buffer: buf})
	require.NoError(t, err)
	require.Equal(t, "typed", string(buf[:n]))

	// Streams cannot seek, so an explicit position fails.
	_, err = fsys.ReadSync(0, jsfs.BufferOptions{Buffer: buf, Options: jsfs.Options{Position: jsfs.At(0)}})
	require.ErrorIs(t, err, syscall.ESPIPE)

	_, err = fsys.Write(1, []byte("out"))
	require.NoError(t, err)
	require.Equal(t, "out", stdout.String())
}

func TestFS_CloseFile(t *testing.T) {
	fsys, fd := openTestFile(t, nil, testData)

	require.NoError(t, fsys.CloseFile(fd))
	require.ErrorIs(t, fsys.CloseFile(fd), syscall.EBADF)

	_, err := fsys.ReadSync(fd, jsfs.BufferOptions{Buffer: make([]byte, 1)})
	require.ErrorIs(t, err, syscall.EBADF)
}

func TestFS_Close(t *testing.T) {
	fsys := jsfs.NewFS(nil)
	fd, err := fsys.OpenFile(writeTestFile(t, testData), os.O_RDONLY, 0)
	require.NoError(t, err)

	require.NoError(t, fsys.Close())
	require.ErrorIs(t, fsys.Close(), jsfs.ErrClosed)

	_, err = fsys.ReadSync(fd, jsfs.BufferOptions{Buffer: make([]byte, 1)})
	require.ErrorIs(t, err, jsfs.ErrClosed)
	require.ErrorIs(t, fsys.Read(fd, nil, func(error, int, []byte) {}), jsfs.ErrClosed)
	_, err = fsys.Invoke("readSync", fd, make([]byte, 1))
	require.ErrorIs(t, err, jsfs.ErrClosed)
	_, err = fsys.OpenFile("x", os.O_RDONLY, 0)
	require.ErrorIs(t, err, jsfs.ErrClosed)
	_, err = fsys.Seek(fd, 0, io.SeekStart)
	require.ErrorIs(t, err, jsfs.ErrClosed)
	require.ErrorIs(t, fsys.CloseFile(fd), jsfs.ErrClosed)
}

func TestFS_Logger(t *testing.T) {
	var log strings.Builder
	l := lgr.Func(func(format string, args ...interface{}) {
		fmt.Fprintf(&log, format+"\n", args...)
	})
	fsys, fd := openTestFile(t, jsfs.NewFSConfig().WithLogger(l), testData)

	_, err := fsys.ReadSync(fd, jsfs.Positional{Buffer: make([]byte, 4), Length: 4, Position: jsfs.At(2)})
	require.NoError(t, err)
	require.Equal(t, `[DEBUG] ==> fs.readSync(fd=3,buffer_len=4,offset=0,length=4,position=2)
[DEBUG] <== (err=<nil>,n=4)
`, log.String())
}

// TestFS_CursorLock reads every byte concurrently, each at its own position,
// through one descriptor.
func TestFS_CursorLock(t *testing.T) {
	fsys, fd := openTestFile(t, jsfs.NewFSConfig().WithCursorLock(true), testData)

	results := make([]byte, len(testData))
	errs := make([]error, len(testData))
	var wg sync.WaitGroup
	for i := range testData {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			buf := make([]byte, 1)
			_, errs[i] = fsys.ReadSync(fd, jsfs.Positional{Buffer: buf, Length: 1, Position: jsfs.At(int64(i))})
			results[i] = buf[0]
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, testData, string(results))
	require.Zero(t, cursor(t, fsys, fd))
}

// TestFS_CloseFile_DuringRead closes a descriptor while a read at an explicit
// position is in flight on it. Run with -race.
func TestFS_CloseFile_DuringRead(t *testing.T) {
	path := writeTestFile(t, testData)

	for _, cfg := range []*jsfs.FSConfig{
		jsfs.NewFSConfig(),
		jsfs.NewFSConfig().WithCursorLock(true),
		jsfs.NewFSConfig().WithPositionedRead(true),
	} {
		fsys := jsfs.NewFS(cfg)

		for i := 0; i < 50; i++ {
			fd, err := fsys.OpenFile(path, os.O_RDONLY, 0)
			require.NoError(t, err)

			buf := make([]byte, 4)
			var n int
			var readErr, closeErr error
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				n, readErr = fsys.ReadSync(fd, jsfs.Positional{Buffer: buf, Length: 4, Position: jsfs.At(2)})
			}()
			go func() {
				defer wg.Done()
				closeErr = fsys.CloseFile(fd)
			}()
			wg.Wait()

			require.NoError(t, closeErr)
			if readErr != nil {
				require.ErrorIs(t, readErr, syscall.EBADF)
			} else {
				require.Equal(t, "cdef", string(buf[:n]))
			}
		}
		require.NoError(t, fsys.Close())
	}
}
