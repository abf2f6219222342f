package fsread

import "math"

// NormalizeRead resolves the arguments of the callback form of read.
//
// A nil args is read(fd, null, callback), so the same as Options{}.
func NormalizeRead(fd int32, args Args, callback Callback) (*Request, error) {
	if callback == nil {
		return nil, &ArgumentTypeError{Name: "callback", Want: "a function"}
	}

	req := &Request{FD: fd, Callback: callback}
	switch a := args.(type) {
	case nil, CallbackOnly, *CallbackOnly:
		req.applyOptions(make([]byte, DefaultBufferSize), Options{})
	case Options:
		req.applyOptions(bufferOrDefault(a.Buffer), a)
	case *Options:
		if a == nil {
			a = &Options{}
		}
		req.applyOptions(bufferOrDefault(a.Buffer), *a)
	case Positional:
		req.applyPositional(a)
	case *Positional:
		if a == nil {
			return nil, &ArgumentTypeError{Name: "buffer", Want: "a []byte", Got: a}
		}
		req.applyPositional(*a)
	default:
		// e.g. read(fd, buffer, options, callback), where no callable is in
		// the slots read looks at.
		return nil, &ArgumentTypeError{Name: "callback", Want: "a function", Got: a}
	}
	return req, nil
}

// NormalizeReadSync resolves the arguments of readSync. Unlike read, the
// buffer is required.
func NormalizeReadSync(fd int32, args Args) (*Request, error) {
	req := &Request{FD: fd}
	switch a := args.(type) {
	case Positional:
		req.applyPositional(a)
	case *Positional:
		if a == nil {
			return nil, &ArgumentTypeError{Name: "buffer", Want: "a []byte", Got: a}
		}
		req.applyPositional(*a)
	case BufferOptions:
		req.applyOptions(a.Buffer, a.Options)
	case *BufferOptions:
		if a == nil {
			return nil, &ArgumentTypeError{Name: "buffer", Want: "a []byte", Got: a}
		}
		req.applyOptions(a.Buffer, a.Options)
	default:
		return nil, &ArgumentTypeError{Name: "buffer", Want: "a []byte", Got: a}
	}
	return req, nil
}

func bufferOrDefault(buffer []byte) []byte {
	if buffer == nil {
		return make([]byte, DefaultBufferSize)
	}
	return buffer
}

func (r *Request) applyPositional(p Positional) {
	r.Buffer = p.Buffer
	r.Offset = p.Offset
	r.Length = p.Length
	r.Position = p.Position
}

// NormalizeReadValues resolves JavaScript style arguments of read, where
// args[0] is the descriptor and the callback is the first callable found at
// args[1], args[2] then args[5].
func NormalizeReadValues(args []interface{}) (*Request, error) {
	fd, err := fdArg(args)
	if err != nil {
		return nil, err
	}

	if callback, ok := callbackArg(args, 1); ok {
		return NormalizeRead(fd, CallbackOnly{}, callback)
	} else if callback, ok = callbackArg(args, 2); ok {
		opts, err := optionsArg(args[1])
		if err != nil {
			return nil, err
		}
		return NormalizeRead(fd, opts, callback)
	} else if callback, ok = callbackArg(args, 5); ok {
		p, err := positionalArgs(args[1:5])
		if err != nil {
			return nil, err
		}
		return NormalizeRead(fd, p, callback)
	}
	return nil, &ArgumentTypeError{Name: "callback", Want: "a function", Got: lastArg(args)}
}

// NormalizeReadSyncValues resolves JavaScript style arguments of readSync:
// (fd, buffer, offset, length, position) or (fd, buffer, options).
func NormalizeReadSyncValues(args []interface{}) (*Request, error) {
	fd, err := fdArg(args)
	if err != nil {
		return nil, err
	}

	if len(args) > 2 && isOptionsRecord(args[2]) {
		buffer, err := bufferArg(arg(args, 1))
		if err != nil {
			return nil, err
		}
		opts, err := optionsArg(args[2])
		if err != nil {
			return nil, err
		}
		return NormalizeReadSync(fd, BufferOptions{Buffer: buffer, Options: opts})
	}

	rest := make([]interface{}, 4)
	copy(rest, args[1:])
	p, err := positionalArgs(rest)
	if err != nil {
		return nil, err
	}
	return NormalizeReadSync(fd, p)
}

func arg(args []interface{}, i int) interface{} {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func lastArg(args []interface{}) interface{} {
	if len(args) < 2 {
		return nil
	}
	return args[len(args)-1]
}

func fdArg(args []interface{}) (int32, error) {
	v := arg(args, 0)
	fd, ok := toInt64(v)
	if !ok {
		return 0, &ArgumentTypeError{Name: "fd", Want: "an integer", Got: v}
	}
	if fd < math.MinInt32 || fd > math.MaxInt32 {
		return 0, &ArgumentValueError{Name: "fd", Reason: "is out of range"}
	}
	return int32(fd), nil
}

func callbackArg(args []interface{}, i int) (Callback, bool) {
	switch cb := arg(args, i).(type) {
	case Callback:
		return cb, cb != nil
	case func(error, int, []byte):
		return cb, cb != nil
	}
	return nil, false
}

func isOptionsRecord(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, Options, *Options:
		return true
	}
	return false
}

// optionsArg converts an options record. nil is all defaults.
func optionsArg(v interface{}) (Options, error) {
	switch o := v.(type) {
	case nil:
		return Options{}, nil
	case Options:
		return o, nil
	case *Options:
		if o == nil {
			return Options{}, nil
		}
		return *o, nil
	case map[string]interface{}:
		var opts Options
		var err error
		if opts.Buffer, err = optionalBufferArg(o["buffer"]); err != nil {
			return opts, err
		}
		if opts.Offset, err = intArg("offset", o["offset"], 0); err != nil {
			return opts, err
		}
		if l, ok := o["length"]; ok && l != nil {
			length, err := intArg("length", l, 0)
			if err != nil {
				return opts, err
			}
			opts.Length = &length
		}
		if opts.Position, err = positionArg(o["position"]); err != nil {
			return opts, err
		}
		return opts, nil
	}
	return Options{}, &ArgumentTypeError{Name: "options", Want: "an object", Got: v}
}

// positionalArgs converts [buffer, offset, length, position]. Missing
// offset, length and position take their defaults.
func positionalArgs(args []interface{}) (p Positional, err error) {
	if p.Buffer, err = bufferArg(args[0]); err != nil {
		return
	}
	if p.Offset, err = intArg("offset", args[1], 0); err != nil {
		return
	}
	if p.Length, err = intArg("length", args[2], len(p.Buffer)); err != nil {
		return
	}
	p.Position, err = positionArg(args[3])
	return
}

func bufferArg(v interface{}) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}
	return nil, &ArgumentTypeError{Name: "buffer", Want: "a []byte", Got: v}
}

func optionalBufferArg(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return bufferArg(v)
}

func intArg(name string, v interface{}, defaultValue int) (int, error) {
	if v == nil {
		return defaultValue, nil
	}
	if i, ok := toInt64(v); ok && i >= math.MinInt && i <= math.MaxInt {
		return int(i), nil
	}
	return 0, &ArgumentTypeError{Name: name, Want: "an integer", Got: v}
}

func positionArg(v interface{}) (Position, error) {
	switch p := v.(type) {
	case nil:
		return Unset, nil
	case Position:
		return p, nil
	}
	if i, ok := toInt64(v); ok {
		return At(i), nil
	}
	return Unset, &ArgumentTypeError{Name: "position", Want: "an integer or nil", Got: v}
}

// toInt64 accepts any Go integer, or a float64 holding an integral value as
// a JavaScript number would.
func toInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int:
		return int64(i), true
	case int8:
		return int64(i), true
	case int16:
		return int64(i), true
	case int32:
		return int64(i), true
	case int64:
		return i, true
	case uint:
		return int64(i), uint64(i) <= math.MaxInt64
	case uint8:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint64:
		return int64(i), i <= math.MaxInt64
	case float64:
		if i != math.Trunc(i) || math.IsInf(i, 0) || i < math.MinInt64 || i >= math.MaxInt64 {
			return 0, false
		}
		return int64(i), true
	}
	return 0, false
}
