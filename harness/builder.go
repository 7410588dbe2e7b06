package harness

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	defaultHost     = "localhost"
	defaultRemote   = "127.0.0.1:0"
)

// RequestBuilder accumulates the description of a single request. Create one with Get, Post,
// Put, Patch, Delete, or Options.
type RequestBuilder struct {
	method      string
	uri         string
	params      url.Values
	headers     http.Header
	session     *Session
	contentType string
	body        []byte
}

func newBuilder(method, uri string) *RequestBuilder {
	return &RequestBuilder{
		method:  method,
		uri:     uri,
		params:  make(url.Values),
		headers: make(http.Header),
	}
}

func Get(uri string) *RequestBuilder     { return newBuilder(http.MethodGet, uri) }
func Post(uri string) *RequestBuilder    { return newBuilder(http.MethodPost, uri) }
func Put(uri string) *RequestBuilder     { return newBuilder(http.MethodPut, uri) }
func Patch(uri string) *RequestBuilder   { return newBuilder(http.MethodPatch, uri) }
func Delete(uri string) *RequestBuilder  { return newBuilder(http.MethodDelete, uri) }
func Options(uri string) *RequestBuilder { return newBuilder(http.MethodOptions, uri) }

// Param appends values for a request parameter.
func (b *RequestBuilder) Param(name string, values ...string) *RequestBuilder {
	for _, v := range values {
		b.params.Add(name, v)
	}
	return b
}

// Header appends values for a request header. Names are canonicalized as by http.Header.
func (b *RequestBuilder) Header(name string, values ...string) *RequestBuilder {
	for _, v := range values {
		b.headers.Add(name, v)
	}
	return b
}

// Session attaches a session to the request. Passing nil removes any previous one.
func (b *RequestBuilder) Session(s *Session) *RequestBuilder {
	b.session = s
	return b
}

// Body sets raw request content. When a body is present, parameters always go in the query
// string.
func (b *RequestBuilder) Body(contentType string, content []byte) *RequestBuilder {
	b.contentType = contentType
	b.body = content
	return b
}

func (b *RequestBuilder) Method() string { return b.method }

func (b *RequestBuilder) URI() string { return b.uri }

// Params returns a copy of the parameters attached so far.
func (b *RequestBuilder) Params() url.Values {
	ret := make(url.Values, len(b.params))
	for k, v := range b.params {
		ret[k] = append([]string(nil), v...)
	}
	return ret
}

// Headers returns a copy of the headers attached so far.
func (b *RequestBuilder) Headers() http.Header {
	return b.headers.Clone()
}

// SessionHandle returns the attached session, or nil.
func (b *RequestBuilder) SessionHandle() *Session {
	return b.session
}

// Parameters of POST, PUT, and PATCH requests without explicit content are sent as a form, unless
// the caller already chose a Content-Type.
func (b *RequestBuilder) sendsParamsAsForm() bool {
	if len(b.params) == 0 || b.body != nil || b.headers.Get("Content-Type") != "" {
		return false
	}
	switch b.method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func (b *RequestBuilder) build(ctx context.Context) (*http.Request, error) {
	target := b.uri
	body := b.body
	contentType := b.contentType

	if b.sendsParamsAsForm() {
		body = []byte(b.params.Encode())
		contentType = formContentType
	} else if len(b.params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + b.params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, b.method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot build %s request for %q: %w", b.method, b.uri, err)
	}
	if req.URL.Host == "" {
		req.Host = defaultHost
	}
	req.RequestURI = req.URL.RequestURI()
	req.RemoteAddr = defaultRemote
	req.Header = b.headers.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if b.session != nil {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: b.session.ID()})
		req = req.WithContext(context.WithValue(req.Context(), sessionContextKey{}, b.session))
	}
	return req, nil
}
