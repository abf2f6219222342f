package fsapi

import "syscall"

// File is the descriptor-backed file bridge used by fs.read and fs.readSync.
//
// Implementations should embed UnimplementedFile for forward compatibility.
// Any unsupported method or parameter should return syscall.ENOSYS.
//
// # Errors
//
// All methods that can return an error return a syscall.Errno, which is zero
// on success.
//
// Restricting to syscall.Errno keeps the error surface to well-known codes,
// the same ones a JavaScript host reports as `err.code`, e.g. "EBADF".
type File interface {
	// Seek moves the cursor of this file and returns the resulting absolute
	// offset.
	//
	// # Errors
	//
	// A zero syscall.Errno is success. The below are expected otherwise:
	//   - syscall.ENOSYS: the implementation does not support this function.
	//   - syscall.EBADF: the file or directory was closed or not readable.
	//   - syscall.EINVAL: the offset was negative after applying whence.
	//   - syscall.ESPIPE: the file is a pipe or otherwise not seekable.
	//
	// # Notes
	//
	//   - This is like io.Seeker and `lseek` in POSIX, preferring semantics
	//     of io.Seeker. See https://pubs.opengroup.org/onlinepubs/9699919799/functions/lseek.html
	Seek(offset int64, whence int) (newOffset int64, errno syscall.Errno)

	// Read attempts to read all bytes in the file into `buf`, advancing the
	// cursor by the count read.
	//
	// # Errors
	//
	// A zero syscall.Errno is success. The below are expected otherwise:
	//   - syscall.ENOSYS: the implementation does not support this function.
	//   - syscall.EBADF: the file or directory was closed or not readable.
	//   - syscall.EISDIR: the file was a directory.
	//
	// # Notes
	//
	//   - This is like io.Reader and `read` in POSIX, preferring semantics of
	//     io.Reader. See https://pubs.opengroup.org/onlinepubs/9699919799/functions/read.html
	//   - Unlike io.Reader, there is no io.EOF returned on end-of-file. To
	//     read the file completely, the caller must repeat until `n` is zero.
	Read(buf []byte) (n int, errno syscall.Errno)

	// Pread attempts to read all bytes in the file into `buf`, starting at the
	// offset `off`, without moving the cursor.
	//
	// # Errors
	//
	// A zero syscall.Errno is success. The below are expected otherwise:
	//   - syscall.ENOSYS: the implementation does not support this function.
	//   - syscall.EBADF: the file or directory was closed or not readable.
	//   - syscall.EINVAL: the offset was negative.
	//   - syscall.ESPIPE: the file is a pipe or otherwise not seekable.
	//
	// # Notes
	//
	//   - This is like io.ReaderAt and `pread` in POSIX, preferring semantics
	//     of io.ReaderAt. See https://pubs.opengroup.org/onlinepubs/9699919799/functions/pread.html
	//   - Unlike io.ReaderAt, there is no io.EOF returned on end-of-file.
	Pread(buf []byte, off int64) (n int, errno syscall.Errno)

	// Write attempts to write all bytes in `buf` to the file at its cursor.
	//
	// # Errors
	//
	// A zero syscall.Errno is success. The below are expected otherwise:
	//   - syscall.ENOSYS: the implementation does not support this function.
	//   - syscall.EBADF: the file was closed, not writeable, or a directory.
	Write(buf []byte) (n int, errno syscall.Errno)

	// Close closes the underlying file.
	//
	// A zero syscall.Errno is returned if unimplemented or success.
	Close() syscall.Errno
}

// UnimplementedFile is a File that returns syscall.ENOSYS for all functions,
// except Close.
type UnimplementedFile struct{}

// Seek implements File.Seek
func (UnimplementedFile) Seek(int64, int) (int64, syscall.Errno) {
	return 0, syscall.ENOSYS
}

// Read implements File.Read
func (UnimplementedFile) Read([]byte) (int, syscall.Errno) {
	return 0, syscall.ENOSYS
}

// Pread implements File.Pread
func (UnimplementedFile) Pread([]byte, int64) (int, syscall.Errno) {
	return 0, syscall.ENOSYS
}

// Write implements File.Write
func (UnimplementedFile) Write([]byte) (int, syscall.Errno) {
	return 0, syscall.ENOSYS
}

// Close implements File.Close
func (UnimplementedFile) Close() (errno syscall.Errno) { return }
