//go:build !unix

package sysfs

import (
	"syscall"

	"github.com/tetratelabs/jsfs/internal/platform"
)

func seekFile(f *osFile, offset int64, whence int) (int64, syscall.Errno) {
	off, err := f.file.Seek(offset, whence)
	return off, platform.UnwrapOSError(err)
}

func readFile(f *osFile, buf []byte) (int, syscall.Errno) {
	n, err := f.file.Read(buf)
	return n, platform.UnwrapOSError(err)
}

func preadFile(f *osFile, buf []byte, off int64) (int, syscall.Errno) {
	n, err := f.file.ReadAt(buf, off)
	return n, platform.UnwrapOSError(err)
}

func writeFile(f *osFile, buf []byte) (int, syscall.Errno) {
	n, err := f.file.Write(buf)
	return n, platform.UnwrapOSError(err)
}
