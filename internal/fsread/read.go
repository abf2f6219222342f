// Package fsread implements fs.read and fs.readSync on a descriptor table:
// argument normalization, bounds validation, the positioned read itself and
// delivery of the result.
package fsread

import (
	"github.com/tetratelabs/jsfs/internal/custom"
	"github.com/tetratelabs/jsfs/internal/logging"
	"github.com/tetratelabs/jsfs/internal/sys"
)

// Reader reads from the descriptors of one FSContext.
type Reader struct {
	FSC      *sys.FSContext
	Executor Executor
	Log      *logging.Logger
}

// Read is fs.read(fd, ..., callback).
//
// Argument errors are returned and the callback is not invoked. Otherwise
// the read runs to completion and the callback is invoked, with any I/O
// error, before Read returns.
func (r *Reader) Read(fd int32, args Args, callback Callback) error {
	req, err := NormalizeRead(fd, args, callback)
	if err != nil {
		r.logArgError(custom.NameFsRead, fd, err)
		return err
	}
	return r.read(req)
}

// ReadSync is fs.readSync(fd, buffer, ...). It returns the count of bytes
// read or the error.
func (r *Reader) ReadSync(fd int32, args Args) (int, error) {
	req, err := NormalizeReadSync(fd, args)
	if err != nil {
		r.logArgError(custom.NameFsReadSync, fd, err)
		return 0, err
	}
	return r.readSync(req)
}

func (r *Reader) read(req *Request) error {
	if err := Validate(req); err != nil {
		r.logArgError(custom.NameFsRead, req.FD, err)
		return err
	}
	r.Log.LogParams(custom.NameFsRead, req.FD, req.Buffer, req.Offset, req.Length, req.Position, req.Callback)
	n, err := r.Executor.Execute(r.FSC, req)
	r.Log.LogResults(custom.NameFsRead, err, n)
	deliverCallback(req, n, err)
	return nil
}

func (r *Reader) readSync(req *Request) (int, error) {
	if err := Validate(req); err != nil {
		r.logArgError(custom.NameFsReadSync, req.FD, err)
		return 0, err
	}
	r.Log.LogParams(custom.NameFsReadSync, req.FD, req.Buffer, req.Offset, req.Length, req.Position)
	n, err := r.Executor.Execute(r.FSC, req)
	r.Log.LogResults(custom.NameFsReadSync, err, n)
	return deliverSync(n, err)
}

func (r *Reader) logArgError(funcName string, fd interface{}, err error) {
	r.Log.LogParams(funcName, fd)
	r.Log.LogResults(funcName, err)
}
