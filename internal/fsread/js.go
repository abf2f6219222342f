package fsread

import (
	"fmt"

	"github.com/tetratelabs/jsfs/internal/custom"
)

// jsFn is a function of the fs object, invoked with JavaScript style
// arguments.
type jsFn interface {
	invoke(r *Reader, args ...interface{}) (interface{}, error)
}

// jsfs are the functions reachable from Reader.Invoke.
var jsfs = map[string]jsFn{
	custom.NameFsRead:     jsfsRead{},
	custom.NameFsReadSync: jsfsReadSync{},
}

// Invoke calls the fs function named method, e.g. "read", resolving its
// overloads from the types of args the same way a JavaScript host does.
//
// read returns nil, as it delivers through its callback. readSync returns
// the count read as an int.
func (r *Reader) Invoke(method string, args ...interface{}) (interface{}, error) {
	fn, ok := jsfs[method]
	if !ok {
		return nil, fmt.Errorf("%s.%s is not a function", custom.NameFs, method)
	}
	return fn.invoke(r, args...)
}

// jsfsRead implements fs.read
//
//	fs.read(fd, callback)
//	fs.read(fd, options, callback)
//	fs.read(fd, buffer, offset, length, position, callback)
type jsfsRead struct{}

// invoke implements jsFn.invoke
func (jsfsRead) invoke(r *Reader, args ...interface{}) (interface{}, error) {
	req, err := NormalizeReadValues(args)
	if err != nil {
		r.logArgError(custom.NameFsRead, arg(args, 0), err)
		return nil, err
	}
	return nil, r.read(req)
}

// jsfsReadSync implements fs.readSync
//
//	n := fs.readSync(fd, buffer, offset, length, position)
//	n := fs.readSync(fd, buffer, options)
type jsfsReadSync struct{}

// invoke implements jsFn.invoke
func (jsfsReadSync) invoke(r *Reader, args ...interface{}) (interface{}, error) {
	req, err := NormalizeReadSyncValues(args)
	if err != nil {
		r.logArgError(custom.NameFsReadSync, arg(args, 0), err)
		return nil, err
	}
	n, err := r.readSync(req)
	if err != nil {
		return nil, err
	}
	return n, nil
}
