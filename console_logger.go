package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/launchdarkly/webproxy-adapter/logging"
	"github.com/launchdarkly/webproxy-adapter/webproxy"
)

// reportedHeaders are the response headers shown for each request, when present.
var reportedHeaders = []string{"Content-Type", "Location", "Allow"}

type ConsoleRequestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleRequestLogger) RequestStarted(name string) {
	fmt.Fprintf(c.Out, "[%s]\n", name)
}

func (c *ConsoleRequestLogger) RequestError(name string, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleRequestLogger) RequestFinished(name string, resp webproxy.Response, debugOutput logging.CapturedOutput) {
	failed := resp == nil
	if failed {
		fmt.Fprintf(c.Out, "  FAILED: %s\n", name)
	} else {
		fmt.Fprintf(c.Out, "  status: %d %s\n", resp.Status(), http.StatusText(resp.Status()))
		for _, h := range reportedHeaders {
			if v := resp.Header(h); v.IsDefined() {
				fmt.Fprintf(c.Out, "  %s: %s\n", h, v.StringValue())
			}
		}
		if body, err := resp.Body(); err != nil {
			fmt.Fprintf(c.Out, "  body: <%s>\n", err)
		} else if body != "" {
			fmt.Fprintf(c.Out, "  body: %s\n", strings.TrimSpace(body))
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleRequestLogger) RequestSkipped(name string, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  SKIPPED: %s\n", name)
	} else {
		fmt.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", name, reason)
	}
}
