// Package harnessproxy implements webproxy.Proxy on top of the in-process harness.
package harnessproxy

import (
	"io"
	"os"

	"github.com/launchdarkly/webproxy-adapter/harness"
	"github.com/launchdarkly/webproxy-adapter/logging"
	"github.com/launchdarkly/webproxy-adapter/webproxy"
)

// Config holds the settings that apply to every request executed through a Proxy.
type Config struct {
	// Session, if not nil, is attached to every request.
	Session *harness.Session

	// Verbose causes each request and its result to be printed to Output.
	Verbose bool

	// Output is where verbose diagnostics go. Defaults to os.Stdout.
	Output io.Writer

	// DebugLogger receives a line for each request executed. Defaults to logging.NullLogger().
	DebugLogger logging.Logger
}

// Proxy executes webproxy Requests against a harness.Harness.
//
// Its configuration methods modify the Proxy in place and are not safe to call concurrently with
// each other or with Execute.
type Proxy struct {
	harness *harness.Harness
	config  Config
}

// builders maps each supported method to the harness request builder for it. The harness has no
// HEAD builder, so HEAD requests are performed as GET; handlers under test will see a GET and any
// body they write is returned.
var builders = map[webproxy.Method]func(uri string) *harness.RequestBuilder{
	webproxy.MethodGet:     harness.Get,
	webproxy.MethodPost:    harness.Post,
	webproxy.MethodPut:     harness.Put,
	webproxy.MethodPatch:   harness.Patch,
	webproxy.MethodDelete:  harness.Delete,
	webproxy.MethodOptions: harness.Options,
	webproxy.MethodHead:    harness.Get,
}

// New creates a Proxy with no session and verbose output disabled.
func New(h *harness.Harness) *Proxy {
	return NewWithConfig(h, Config{})
}

func NewWithConfig(h *harness.Harness, config Config) *Proxy {
	return &Proxy{harness: h, config: config}
}

// WithSession attaches a session to all subsequent requests. Nil means no session.
func (p *Proxy) WithSession(s *harness.Session) *Proxy {
	p.config.Session = s
	return p
}

// DoPrint enables printing of request execution details, to os.Stdout unless WithOutput was used.
func (p *Proxy) DoPrint() *Proxy {
	p.config.Verbose = true
	return p
}

func (p *Proxy) WithOutput(w io.Writer) *Proxy {
	p.config.Output = w
	return p
}

func (p *Proxy) WithDebugLogger(l logging.Logger) *Proxy {
	p.config.DebugLogger = l
	return p
}

// Config returns the current configuration.
func (p *Proxy) Config() Config {
	return p.config
}

// Execute implements webproxy.Proxy.
func (p *Proxy) Execute(req webproxy.Request) (webproxy.Response, error) {
	builder, err := p.buildRequest(req)
	if err != nil {
		return nil, err
	}

	p.debugLogger().Printf("Executing %s %s", builder.Method(), builder.URI())
	result, err := p.harness.Perform(builder)
	if err != nil {
		return nil, err
	}
	if p.config.Verbose {
		harness.Print(p.output(), result)
	}
	return newResultResponse(result), nil
}

func (p *Proxy) buildRequest(req webproxy.Request) (*harness.RequestBuilder, error) {
	method, err := req.Validate()
	if err != nil {
		return nil, err
	}
	newBuilder, ok := builders[method]
	if !ok {
		return nil, &webproxy.RequestError{
			Field: "method",
			Value: req.Method,
			Err:   &webproxy.UnsupportedMethodError{Method: string(method)},
		}
	}
	builder := newBuilder(req.URI)

	for _, name := range req.Params.Names() {
		builder.Param(name, req.Params.Get(name)...)
	}
	for _, name := range req.Headers.Names() {
		builder.Header(name, req.Headers.Get(name)...)
	}
	if p.config.Session != nil {
		builder.Session(p.config.Session)
	}
	return builder, nil
}

func (p *Proxy) output() io.Writer {
	if p.config.Output == nil {
		return os.Stdout
	}
	return p.config.Output
}

func (p *Proxy) debugLogger() logging.Logger {
	if p.config.DebugLogger == nil {
		return logging.NullLogger()
	}
	return p.config.DebugLogger
}
