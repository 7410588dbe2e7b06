package harnessproxy

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/launchdarkly/webproxy-adapter/harness"
	"github.com/launchdarkly/webproxy-adapter/logging"
	"github.com/launchdarkly/webproxy-adapter/webproxy"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func recordingProxy() (*Proxy, <-chan httphelpers.HTTPRequestInfo) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	return New(harness.New(handler)), requestsCh
}

func requireOneRequest(t *testing.T, requestsCh <-chan httphelpers.HTTPRequestInfo) httphelpers.HTTPRequestInfo {
	require.Len(t, requestsCh, 1)
	return <-requestsCh
}

func TestSupportedMethodsDispatchToMatchingBuilder(t *testing.T) {
	for _, m := range []webproxy.Method{
		webproxy.MethodGet,
		webproxy.MethodPost,
		webproxy.MethodPut,
		webproxy.MethodPatch,
		webproxy.MethodDelete,
		webproxy.MethodOptions,
	} {
		t.Run(string(m), func(t *testing.T) {
			p, requestsCh := recordingProxy()
			_, err := p.Execute(*webproxy.NewRequest(string(m), "/items"))
			require.NoError(t, err)

			info := requireOneRequest(t, requestsCh)
			assert.Equal(t, string(m), info.Request.Method)
			assert.Equal(t, "/items", info.Request.URL.Path)
		})
	}
}

func TestMethodIsCaseInsensitive(t *testing.T) {
	p, requestsCh := recordingProxy()
	_, err := p.Execute(*webproxy.NewRequest("pAtCh", "/items/1"))
	require.NoError(t, err)
	assert.Equal(t, "PATCH", requireOneRequest(t, requestsCh).Request.Method)
}

func TestHeadIsPerformedAsGet(t *testing.T) {
	body := []byte("full body")
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(200, nil, body))
	p := New(harness.New(handler))

	resp, err := p.Execute(*webproxy.NewRequest("HEAD", "/items/42"))
	require.NoError(t, err)

	assert.Equal(t, "GET", requireOneRequest(t, requestsCh).Request.Method)
	b, err := resp.Body()
	require.NoError(t, err)
	assert.Equal(t, "full body", b)
}

func TestUnsupportedMethodFailsBeforeHarness(t *testing.T) {
	for _, method := range []string{"TRACE", "connect", "REPORT", "get "} {
		t.Run(method, func(t *testing.T) {
			p, requestsCh := recordingProxy()
			resp, err := p.Execute(*webproxy.NewRequest(method, "/items"))

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, errors.Is(err, webproxy.ErrUnsupportedMethod))
			var unsupported *webproxy.UnsupportedMethodError
			require.True(t, errors.As(err, &unsupported))
			assert.Contains(t, err.Error(), unsupported.Method)
			assert.Len(t, requestsCh, 0)
		})
	}
}

func TestMissingMethodOrURIFailsBeforeHarness(t *testing.T) {
	p, requestsCh := recordingProxy()

	_, err := p.Execute(webproxy.Request{URI: "/items"})
	assert.True(t, errors.Is(err, webproxy.ErrMissingMethod))

	_, err = p.Execute(webproxy.Request{Method: "GET"})
	assert.True(t, errors.Is(err, webproxy.ErrMissingURI))

	var reqErr *webproxy.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "uri", reqErr.Field)

	assert.Len(t, requestsCh, 0)
}

func TestParamValuesArePassedInOrder(t *testing.T) {
	var form map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.Form
	})
	p := New(harness.New(handler))

	req := webproxy.NewRequest("GET", "/search").
		WithParam("tag", "a", "b", "c").
		WithParam("q", "widget")
	_, err := p.Execute(*req)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, form["tag"])
	assert.Equal(t, []string{"widget"}, form["q"])
	assert.Len(t, form, 2)
}

func TestParamValuesInFormBody(t *testing.T) {
	p, requestsCh := recordingProxy()
	_, err := p.Execute(*webproxy.NewRequest("POST", "/items").WithParam("name", "x", "y"))
	require.NoError(t, err)

	info := requireOneRequest(t, requestsCh)
	assert.Equal(t, "name=x&name=y", string(info.Body))
}

func TestParamWithNoValuesAttachesNothing(t *testing.T) {
	p, requestsCh := recordingProxy()
	_, err := p.Execute(*webproxy.NewRequest("GET", "/items").WithParam("empty"))
	require.NoError(t, err)

	info := requireOneRequest(t, requestsCh)
	assert.Empty(t, info.Request.URL.RawQuery)
}

func TestHeaderValuesArePassedInOrder(t *testing.T) {
	p, requestsCh := recordingProxy()
	req := webproxy.NewRequest("GET", "/items").
		WithHeader("Accept", "application/json", "text/plain").
		WithHeader("X-Trace", "abc")
	_, err := p.Execute(*req)
	require.NoError(t, err)

	info := requireOneRequest(t, requestsCh)
	assert.Equal(t, []string{"application/json", "text/plain"}, info.Request.Header.Values("Accept"))
	assert.Equal(t, []string{"abc"}, info.Request.Header.Values("X-Trace"))
}

func TestExecuteDoesNotModifyRequest(t *testing.T) {
	p, _ := recordingProxy()
	req := webproxy.NewRequest("get", "/items").WithParam("a", "1", "2").WithHeader("H", "v")
	paramsBefore := req.Params.Clone()
	headersBefore := req.Headers.Clone()

	_, err := p.Execute(*req)
	require.NoError(t, err)

	assert.Equal(t, "get", req.Method)
	assert.Equal(t, "/items", req.URI)
	assert.Equal(t, paramsBefore, req.Params)
	assert.Equal(t, headersBefore, req.Headers)
}

func TestNoSessionWhenNoneAttached(t *testing.T) {
	var hasSession bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSession = harness.SessionFrom(r)
	})
	p := New(harness.New(handler))

	_, err := p.Execute(*webproxy.NewRequest("GET", "/"))
	require.NoError(t, err)
	assert.False(t, hasSession)
	assert.Nil(t, p.Config().Session)
}

func TestAttachedSessionReachesHarnessOnEveryRequest(t *testing.T) {
	var seen []*harness.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := harness.SessionFrom(r)
		seen = append(seen, s)
	})
	first := harness.NewSession()
	p := New(harness.New(handler))
	assert.Same(t, p, p.WithSession(first))

	for i := 0; i < 3; i++ {
		_, err := p.Execute(*webproxy.NewRequest("GET", "/"))
		require.NoError(t, err)
	}

	second := harness.NewSession()
	p.WithSession(second)
	_, err := p.Execute(*webproxy.NewRequest("POST", "/"))
	require.NoError(t, err)

	p.WithSession(nil)
	_, err = p.Execute(*webproxy.NewRequest("GET", "/"))
	require.NoError(t, err)

	require.Len(t, seen, 5)
	for i := 0; i < 3; i++ {
		assert.Same(t, first, seen[i])
	}
	assert.Same(t, second, seen[3])
	assert.Nil(t, seen[4])
}

func TestHarnessFailureIsReturnedUnchanged(t *testing.T) {
	cause := errors.New("handler exploded")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(cause)
	})
	p := New(harness.New(handler))

	resp, err := p.Execute(*webproxy.NewRequest("DELETE", "/items/1"))
	require.Error(t, err)
	assert.Nil(t, resp)

	var panicErr *harness.HandlerPanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, cause, panicErr.Value)
	assert.True(t, errors.Is(err, cause))
}

func TestInvalidatedSessionErrorIsReturnedUnchanged(t *testing.T) {
	s := harness.NewSession()
	s.Invalidate()
	p, requestsCh := recordingProxy()
	p.WithSession(s)

	_, err := p.Execute(*webproxy.NewRequest("GET", "/"))
	assert.Equal(t, harness.ErrSessionInvalidated, err)
	assert.Len(t, requestsCh, 0)
}

func TestVerboseOutputDoesNotChangeResponse(t *testing.T) {
	headers := http.Header{"Content-Type": {"application/json"}, "X-Id": {"42"}}
	handler := httphelpers.HandlerWithResponse(202, headers, []byte(`{"ok":true}`))
	req := *webproxy.NewRequest("PUT", "/items/42").WithParam("name", "widget")

	quiet := New(harness.New(handler))
	var out bytes.Buffer
	verbose := New(harness.New(handler)).WithOutput(&out)
	assert.Same(t, verbose, verbose.DoPrint())
	assert.True(t, verbose.Config().Verbose)

	quietResp, err := quiet.Execute(req)
	require.NoError(t, err)
	verboseResp, err := verbose.Execute(req)
	require.NoError(t, err)

	assert.Equal(t, quietResp.Status(), verboseResp.Status())
	assert.Equal(t, quietResp.Header("X-Id"), verboseResp.Header("X-Id"))
	quietBody, _ := quietResp.Body()
	verboseBody, _ := verboseResp.Body()
	assert.Equal(t, quietBody, verboseBody)

	assert.Contains(t, out.String(), "HTTP Method = PUT")
	assert.Contains(t, out.String(), "Status = 202 Accepted")
}

func TestQuietProxyPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	p := New(harness.New(httphelpers.HandlerWithStatus(200))).WithOutput(&out)
	_, err := p.Execute(*webproxy.NewRequest("GET", "/"))
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestNewWithConfig(t *testing.T) {
	var out bytes.Buffer
	s := harness.NewSession()
	debug := &logging.CapturingLogger{}
	p := NewWithConfig(harness.New(httphelpers.HandlerWithStatus(204)), Config{
		Session:     s,
		Verbose:     true,
		Output:      &out,
		DebugLogger: debug,
	})

	resp, err := p.Execute(*webproxy.NewRequest("options", "/items"))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.Status())
	assert.Contains(t, out.String(), "Session = "+s.ID())

	output := debug.Output()
	require.Len(t, output, 1)
	assert.Equal(t, "Executing OPTIONS /items", output[0].Message)
}

func TestDebugLoggerIsNotUsedForFailures(t *testing.T) {
	debug := &logging.CapturingLogger{}
	p, _ := recordingProxy()
	p.WithDebugLogger(debug)

	_, err := p.Execute(*webproxy.NewRequest("TRACE", "/"))
	require.Error(t, err)
	assert.Empty(t, debug.Output())
}

func TestProxyImplementsWebProxy(t *testing.T) {
	var _ webproxy.Proxy = New(harness.New(httphelpers.HandlerWithStatus(200)))
}
