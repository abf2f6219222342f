package jsfs

import "github.com/tetratelabs/jsfs/internal/fsread"

// DefaultBufferSize is the length of the buffer Read allocates when called
// without one.
const DefaultBufferSize = fsread.DefaultBufferSize

type (
	// Callback receives the result of Read: (err, 0, nil) on failure, or
	// (nil, n, view) where view is buffer[offset:offset+length].
	Callback = fsread.Callback

	// Position is where a read starts: Unset for the descriptor's cursor,
	// or an explicit file offset from At.
	Position = fsread.Position

	// Args is one of CallbackOnly, Options, Positional or BufferOptions.
	Args = fsread.Args

	// CallbackOnly is fs.read(fd, callback).
	CallbackOnly = fsread.CallbackOnly

	// Options is fs.read(fd, options, callback), and the options of
	// BufferOptions.
	Options = fsread.Options

	// Positional is fs.read(fd, buffer, offset, length, position, callback)
	// or fs.readSync(fd, buffer, offset, length, position).
	Positional = fsread.Positional

	// BufferOptions is fs.readSync(fd, buffer, options).
	BufferOptions = fsread.BufferOptions
)

// Unset reads from the descriptor's cursor and advances it.
var Unset = fsread.Unset

// At returns an explicit file offset. A negative offset is Unset.
func At(offset int64) Position {
	return fsread.At(offset)
}

// Int returns a pointer to v, for Options.Length.
func Int(v int) *int {
	return fsread.Int(v)
}
