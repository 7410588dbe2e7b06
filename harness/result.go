package harness

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

const defaultCharset = "utf-8"

// Result is the outcome of one Perform call.
type Result struct {
	request  *http.Request
	response *http.Response
	body     []byte
	session  *Session
}

func newResult(req *http.Request, rec *httptest.ResponseRecorder, session *Session) *Result {
	return &Result{
		request:  req,
		response: rec.Result(),
		body:     append([]byte(nil), rec.Body.Bytes()...),
		session:  session,
	}
}

// Request returns the request that was passed to the handler.
func (r *Result) Request() *http.Request {
	return r.request
}

func (r *Result) Status() int {
	return r.response.StatusCode
}

// Header returns the first value of the named response header. The name is matched
// case-insensitively.
func (r *Result) Header(name string) (string, bool) {
	values := r.response.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (r *Result) HeaderValues(name string) []string {
	return append([]string(nil), r.response.Header.Values(name)...)
}

func (r *Result) Headers() http.Header {
	return r.response.Header.Clone()
}

// Bytes returns the raw response content.
func (r *Result) Bytes() []byte {
	return append([]byte(nil), r.body...)
}

// Session returns the session that was attached to the request, or nil.
func (r *Result) Session() *Session {
	return r.session
}

// Charset returns the character set declared by the response Content-Type, or "utf-8" if there
// is none.
func (r *Result) Charset() string {
	ct := r.response.Header.Get("Content-Type")
	if ct == "" {
		return defaultCharset
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil || params["charset"] == "" {
		return defaultCharset
	}
	return strings.ToLower(params["charset"])
}

// ContentAsString decodes the response content as text in its declared character set.
func (r *Result) ContentAsString() (string, error) {
	charset := r.Charset()
	if charset == "utf-8" || charset == "utf8" {
		if !utf8.Valid(r.body) {
			return "", &ContentDecodingError{Charset: charset}
		}
		return string(r.body), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", &ContentDecodingError{Charset: charset, Err: err}
	}
	decoded, err := enc.NewDecoder().Bytes(r.body)
	if err != nil {
		return "", &ContentDecodingError{Charset: charset, Err: err}
	}
	return string(decoded), nil
}
