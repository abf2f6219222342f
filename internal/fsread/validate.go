package fsread

// Validate rejects a request before its descriptor is touched.
//
// An empty buffer is an ArgumentValueError. A negative offset, a negative
// length, or a range past the end of the buffer panics with a
// *PreconditionError, as those are caller bugs rather than runtime
// conditions.
func Validate(req *Request) error {
	bufLen := len(req.Buffer)
	if bufLen == 0 {
		return &ArgumentValueError{Name: "buffer", Reason: "is empty and cannot be written"}
	}
	if req.Offset < 0 {
		panic(&PreconditionError{Message: "offset out of range", BufferLength: bufLen, Offset: req.Offset, Length: req.Length})
	}
	if req.Length < 0 || req.Length > bufLen-req.Offset {
		panic(&PreconditionError{Message: "offset + length out of range", BufferLength: bufLen, Offset: req.Offset, Length: req.Length})
	}
	return nil
}
