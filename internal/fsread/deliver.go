package fsread

// deliverCallback invokes the callback of req with an error-first result.
//
// On failure the callback receives only the error: n is zero and the
// buffer is nil, as a JavaScript callback called with a single argument sees
// undefined for the rest.
func deliverCallback(req *Request, n int, err error) {
	if err != nil {
		req.Callback(err, 0, nil)
		return
	}
	req.Callback(nil, n, req.View())
}

// deliverSync returns the result of readSync.
func deliverSync(n int, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return n, nil
}
