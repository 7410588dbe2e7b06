package webproxy

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Response is a read-only view of a completed HTTP call.
type Response interface {
	// Status returns the HTTP status code.
	Status() int

	// Header returns the value of the named header, or an undefined OptionalString if the
	// response did not set it. Name matching and the handling of multiple values are up to the
	// backing system.
	Header(name string) ldvalue.OptionalString

	// Body returns the response body as text. It may fail even though the request itself
	// succeeded, for instance if the content cannot be decoded.
	Body() (string, error)
}

// Proxy executes Requests against some backing system.
type Proxy interface {
	// Execute carries out the request and returns what the backing system produced.
	//
	// It returns a *RequestError without contacting the backing system if the request has no
	// method or URI, or an unsupported method. Any other error comes from the backing system
	// and is returned as is.
	Execute(req Request) (Response, error)
}
