package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"
	"github.com/jessevdk/go-flags"

	"github.com/tetratelabs/jsfs"
)

type options struct {
	Offset     int   `long:"offset" env:"JSFS_OFFSET" default:"0" description:"index in the buffer to read into"`
	Length     int   `long:"length" env:"JSFS_LENGTH" default:"-1" description:"max bytes to read, negative for the rest of the buffer"`
	Position   int64 `long:"position" env:"JSFS_POSITION" default:"-1" description:"file offset to read at, negative for the cursor"`
	BufferSize int   `long:"buffer-size" env:"JSFS_BUFFER_SIZE" default:"16384" description:"size of the buffer to read into"`
	Pread      bool  `long:"pread" env:"JSFS_PREAD" description:"read explicit positions with pread instead of seeking"`
	Lock       bool  `long:"lock" env:"JSFS_LOCK" description:"fail unless a shared lock on the file can be held while reading"`
	Callback   bool  `long:"callback" env:"JSFS_CALLBACK" description:"use the callback form of read"`
	Dbg        bool  `long:"dbg" env:"JSFS_DEBUG" description:"debug mode, which traces each fs call"`

	Args struct {
		File string `positional-arg-name:"FILE" description:"file to read"`
	} `positional-args:"yes" required:"yes"`
}

var revision = "latest"

func main() {
	doMain(os.Args[1:], os.Stdout, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdOut io.Writer, exit func(code int)) {
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			exit(0)
			return
		}
		exit(1)
		return
	}
	setupLog(opts.Dbg)
	log.Printf("[DEBUG] jsfs %s", revision)

	if err := run(opts, stdOut); err != nil {
		log.Printf("[ERROR] %v", err)
		exit(1)
		return
	}
	exit(0)
}

// run reads one region of opts.Args.File and writes the bytes read to
// stdOut.
func run(opts options, stdOut io.Writer) error {
	path := opts.Args.File
	if opts.Lock {
		fileLock := flock.New(path)
		locked, err := fileLock.TryRLock()
		if err != nil {
			return fmt.Errorf("can't lock %s: %w", path, err)
		}
		if !locked {
			return fmt.Errorf("%s is locked by another process", path)
		}
		defer func() { _ = fileLock.Unlock() }()
	}

	cfg := jsfs.NewFSConfig().WithLogger(lgr.Default()).WithPositionedRead(opts.Pread)
	fsys := jsfs.NewFS(cfg)
	defer fsys.Close()

	fd, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return err
	}

	buf := make([]byte, opts.BufferSize)
	length := opts.Length
	if length < 0 {
		length = len(buf) - opts.Offset
	}
	region := jsfs.Positional{Buffer: buf, Offset: opts.Offset, Length: length, Position: jsfs.At(opts.Position)}

	n, err := readRegion(fsys, fd, region, opts.Callback)
	if err != nil {
		return fmt.Errorf("can't read %s: %w", path, err)
	}
	log.Printf("[INFO] read %d bytes from %s, position=%s", n, path, region.Position)

	_, err = stdOut.Write(buf[opts.Offset : opts.Offset+n])
	return err
}

// readRegion reads with readSync, or read when callback is true. A region
// outside the buffer is returned as an error instead of panicking.
func readRegion(fsys *jsfs.FS, fd int32, region jsfs.Positional, callback bool) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			var precondition *jsfs.PreconditionError
			if e, ok := r.(error); ok && errors.As(e, &precondition) {
				err = precondition
				return
			}
			panic(r)
		}
	}()

	if !callback {
		return fsys.ReadSync(fd, region)
	}

	var readErr error
	if err = fsys.Read(fd, region, func(err error, count int, _ []byte) {
		readErr, n = err, count
	}); err != nil {
		return 0, err
	}
	return n, readErr
}

// setupLog writes logs to stderr, as stdout carries the bytes read.
func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Out(os.Stderr), lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
