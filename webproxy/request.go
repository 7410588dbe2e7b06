package webproxy

// Request describes an HTTP call in a framework-neutral way.
//
// Method and URI are required. URI is a resource path without a query string; query or form
// parameters go in Params.
type Request struct {
	Method  string
	URI     string
	Params  Values
	Headers Values
}

// NewRequest creates a Request with the given method and URI.
func NewRequest(method, uri string) *Request {
	return &Request{Method: method, URI: uri}
}

// WithParam adds values for a parameter and returns the same Request.
func (r *Request) WithParam(name string, values ...string) *Request {
	r.Params.Add(name, values...)
	return r
}

// WithHeader adds values for a header and returns the same Request.
func (r *Request) WithHeader(name string, values ...string) *Request {
	r.Headers.Add(name, values...)
	return r
}

// Validate checks that the Request can be executed and returns its normalized Method. Any error
// is a *RequestError.
func (r Request) Validate() (Method, error) {
	if r.Method == "" {
		return "", &RequestError{Field: "method", Err: ErrMissingMethod}
	}
	if r.URI == "" {
		return "", &RequestError{Field: "uri", Err: ErrMissingURI}
	}
	m, err := ParseMethod(r.Method)
	if err != nil {
		return "", &RequestError{Field: "method", Value: r.Method, Err: err}
	}
	return m, nil
}
