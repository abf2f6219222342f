package fsread

import "strconv"

// DefaultBufferSize is the length of the buffer allocated when the callback
// form of read is called without one.
const DefaultBufferSize = 16384

// Callback receives the result of read. err is nil on success, in which case
// n is the count of bytes read and buffer is the requested view.
type Callback func(err error, n int, buffer []byte)

// Position is the file offset a read starts at. The zero value is Unset,
// which reads from the descriptor's cursor and advances it.
type Position struct {
	offset int64
	set    bool
}

// Unset reads from the cursor of the descriptor.
var Unset = Position{}

// At returns the position of an explicit file offset. Negative offsets are
// Unset, like a null position.
func At(offset int64) Position {
	if offset < 0 {
		return Unset
	}
	return Position{offset: offset, set: true}
}

// Offset returns the file offset and true, or false if Unset.
func (p Position) Offset() (int64, bool) {
	return p.offset, p.set
}

// String implements fmt.Stringer
func (p Position) String() string {
	if !p.set {
		return "nil"
	}
	return strconv.FormatInt(p.offset, 10)
}

// Args is one of the call shapes accepted after the descriptor:
//
//   - CallbackOnly: read(fd, callback)
//   - Options: read(fd, options, callback)
//   - Positional: read(fd, buffer, offset, length, position, callback) and
//     readSync(fd, buffer, offset, length, position)
//   - BufferOptions: readSync(fd, buffer, options)
type Args interface {
	isArgs()
}

// CallbackOnly reads into a fresh DefaultBufferSize buffer from the cursor.
type CallbackOnly struct{}

// Options are the optional fields of read(fd, options, callback) and
// readSync(fd, buffer, options).
type Options struct {
	// Buffer defaults to a fresh DefaultBufferSize buffer. readSync ignores
	// this field as its buffer is positional.
	Buffer []byte

	// Offset is where in Buffer to start writing. Defaults to zero.
	Offset int

	// Length is the maximum count of bytes to read. Defaults to len(Buffer)
	// when nil.
	Length *int

	// Position defaults to Unset.
	Position Position
}

// Positional is the fully explicit shape.
type Positional struct {
	Buffer   []byte
	Offset   int
	Length   int
	Position Position
}

// BufferOptions is readSync(fd, buffer, options).
type BufferOptions struct {
	Buffer  []byte
	Options Options
}

func (CallbackOnly) isArgs()  {}
func (Options) isArgs()       {}
func (Positional) isArgs()    {}
func (BufferOptions) isArgs() {}

// Int returns a pointer to v, for Options.Length.
func Int(v int) *int {
	return &v
}

// Request is a normalized read: up to Length bytes from FD into
// Buffer[Offset:], from Position when set.
type Request struct {
	FD       int32
	Buffer   []byte
	Offset   int
	Length   int
	Position Position

	// Callback is nil for readSync.
	Callback Callback
}

// View returns the slice of Buffer the caller asked to fill. Its extent is
// the requested length, not the count read.
func (r *Request) View() []byte {
	return r.Buffer[r.Offset : r.Offset+r.Length]
}

// applyOptions sets everything except FD and Callback from o.
func (r *Request) applyOptions(buffer []byte, o Options) {
	r.Buffer = buffer
	r.Offset = o.Offset
	if o.Length != nil {
		r.Length = *o.Length
	} else {
		r.Length = len(buffer)
	}
	r.Position = o.Position
}
