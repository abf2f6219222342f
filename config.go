package jsfs

import (
	"io"

	"github.com/go-pkgz/lgr"

	"github.com/tetratelabs/jsfs/internal/fsread"
)

// FSConfig configures an FS, with the default implementation as NewFSConfig.
//
// Each With method returns a copy, so a base config can be shared:
//
//	base := jsfs.NewFSConfig().WithLogger(lgr.Default())
//	locked := base.WithCursorLock(true)
type FSConfig struct {
	log      lgr.L
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	executor fsread.Executor
}

// NewFSConfig returns a config which reads like fs.read in a JavaScript
// host: no logging, empty standard streams and the plain seek, read and
// restore sequence for explicit positions.
func NewFSConfig() *FSConfig {
	return &FSConfig{}
}

// clone ensures all fields are copied even if nil.
func (c *FSConfig) clone() *FSConfig {
	ret := *c
	return &ret
}

// WithLogger traces each fs call at debug level. Defaults to none.
//
// For example, with lgr.New(lgr.Debug) a read logs:
//
//	[DEBUG] ==> fs.read(fd=3,buffer_len=10,offset=0,length=10,position=nil)
//	[DEBUG] <== (err=<nil>,n=10)
func (c *FSConfig) WithLogger(l lgr.L) *FSConfig {
	ret := c.clone()
	ret.log = l
	return ret
}

// WithStdin configures what descriptor 0 reads. Defaults to io.EOF.
//
// Note: The caller is responsible to close any io.Reader they supply: It is
// not closed on FS.Close.
func (c *FSConfig) WithStdin(stdin io.Reader) *FSConfig {
	ret := c.clone()
	ret.stdin = stdin
	return ret
}

// WithStdout configures where descriptor 1 writes. Defaults to io.Discard.
func (c *FSConfig) WithStdout(stdout io.Writer) *FSConfig {
	ret := c.clone()
	ret.stdout = stdout
	return ret
}

// WithStderr configures where descriptor 2 writes. Defaults to io.Discard.
func (c *FSConfig) WithStderr(stderr io.Writer) *FSConfig {
	ret := c.clone()
	ret.stderr = stderr
	return ret
}

// WithCursorLock serializes reads on the same descriptor. Defaults to false.
//
// Without it, two reads with explicit positions on one descriptor from
// different goroutines can interleave their seeks, and each may read from
// the other's position.
func (c *FSConfig) WithCursorLock(enabled bool) *FSConfig {
	ret := c.clone()
	ret.executor.CursorLock = enabled
	return ret
}

// WithPositionedRead reads explicit positions with pread(2), leaving the
// cursor untouched instead of seeking there and back. Defaults to false.
//
// Files which cannot pread, such as an fs.FS file without io.ReaderAt, fall
// back to seeking.
func (c *FSConfig) WithPositionedRead(enabled bool) *FSConfig {
	ret := c.clone()
	ret.executor.PositionedRead = enabled
	return ret
}

// WithRestoreOnError restores the cursor after a failed read at an explicit
// position. Defaults to false, which leaves the cursor wherever the failure
// left it.
func (c *FSConfig) WithRestoreOnError(enabled bool) *FSConfig {
	ret := c.clone()
	ret.executor.RestoreOnError = enabled
	return ret
}
