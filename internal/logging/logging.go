// Package logging traces fs calls through a lgr.L, one line when a call
// starts and one when its result is delivered:
//
//	[DEBUG] ==> fs.read(fd=3,buffer_len=10,offset=0,length=10,position=nil)
//	[DEBUG] <== (err=<nil>,n=10)
package logging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/tetratelabs/jsfs/internal/custom"
)

// Writer is the subset of strings.Builder used to format a line.
type Writer interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

// Logger formats fs calls. The zero value and a nil *Logger discard.
type Logger struct {
	l lgr.L
}

// New returns a Logger writing to l, or one that discards when l is nil.
func New(l lgr.L) *Logger {
	return &Logger{l: l}
}

// Enabled returns true if lines are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.l != nil
}

// LogParams writes the "==>" line of funcName. vals are in the order of
// custom.FsNameSection ParamNames and may be shorter than it.
func (l *Logger) LogParams(funcName string, vals ...interface{}) {
	if !l.Enabled() {
		return
	}
	var b strings.Builder
	b.WriteString("==> ")
	b.WriteString(custom.NameFs)
	b.WriteByte('.')
	b.WriteString(funcName)
	b.WriteByte('(')
	writeVals(&b, names(funcName).ParamNames, vals)
	b.WriteByte(')')
	l.l.Logf("[DEBUG] %s", b.String())
}

// LogResults writes the "<==" line of funcName. vals are in the order of
// custom.FsNameSection ResultNames and may be shorter than it.
func (l *Logger) LogResults(funcName string, vals ...interface{}) {
	if !l.Enabled() {
		return
	}
	var b strings.Builder
	b.WriteString("<== (")
	writeVals(&b, names(funcName).ResultNames, vals)
	b.WriteByte(')')
	l.l.Logf("[DEBUG] %s", b.String())
}

func names(funcName string) *custom.Names {
	if n, ok := custom.FsNameSection[funcName]; ok {
		return n
	}
	panic(fmt.Sprintf("BUG: no names for fs.%s", funcName))
}

func writeVals(w Writer, names []string, vals []interface{}) {
	results := len(names) > 0 && names[0] == "err"
	first := true
	for i, val := range vals {
		if i >= len(names) {
			return
		}
		name := names[i]
		if name == custom.NameCallback {
			return // last val
		} else if results && name == "buffer" {
			continue // the requested view, so implied by the params
		}
		if !first {
			w.WriteByte(',')
		}
		first = false
		writeVal(w, name, val)
	}
}

func writeVal(w Writer, name string, val interface{}) {
	w.WriteString(name)
	if b, ok := val.([]byte); ok {
		// Write the length instead of a byte array.
		w.WriteString("_len=")
		w.WriteString(strconv.Itoa(len(b)))
		return
	}
	w.WriteByte('=')
	w.WriteString(fmt.Sprintf("%v", val))
}
