package harness

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/debug"
)

// Harness executes requests against a handler in process.
type Harness struct {
	handler http.Handler
}

// New creates a Harness for the given handler.
func New(handler http.Handler) *Harness {
	return &Harness{handler: handler}
}

// Perform builds the request described by b, runs the handler synchronously, and returns what it
// did.
//
// A panic in the handler is returned as a *HandlerPanicError. A response is only returned if the
// handler completed normally.
func (h *Harness) Perform(b *RequestBuilder) (*Result, error) {
	if b.session != nil && b.session.IsInvalidated() {
		return nil, ErrSessionInvalidated
	}
	req, err := b.build(context.Background())
	if err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	if err := h.serve(rec, req); err != nil {
		return nil, err
	}
	if b.session != nil {
		b.session.markAccessed()
	}

	return newResult(req, rec, b.session), nil
}

func (h *Harness) serve(w http.ResponseWriter, req *http.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{
				Method: req.Method,
				URI:    req.RequestURI,
				Value:  r,
				Stack:  debug.Stack(),
			}
		}
	}()
	h.handler.ServeHTTP(w, req)
	return nil
}
