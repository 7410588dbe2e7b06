package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/launchdarkly/webproxy-adapter/demoapp"
	"github.com/launchdarkly/webproxy-adapter/harness"
	"github.com/launchdarkly/webproxy-adapter/harnessproxy"
	"github.com/launchdarkly/webproxy-adapter/logging"
	"github.com/launchdarkly/webproxy-adapter/script"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 1
	}
	if params.noColor {
		color.NoColor = true
	}

	entries, err := script.Load(params.scriptPath)
	if err != nil {
		fmt.Fprintf(errOut, "Cannot load script: %s\n", err)
		return 1
	}

	if desc := params.filters.Describe(); desc != "" {
		fmt.Fprintln(out, "Some requests will be skipped based on the filter criteria for this run:")
		fmt.Fprintf(out, "  %s\n\n", desc)
	}

	proxy := harnessproxy.New(harness.New(demoapp.New())).WithOutput(out)
	if params.verbose {
		proxy.DoPrint()
	}
	if params.session {
		proxy.WithSession(harness.NewSession())
	}

	requestLogger := ConsoleRequestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	failures := 0
	for _, entry := range entries {
		requestLogger.RequestStarted(entry.Name)
		if !params.filters.AsFilter(entry.Name) {
			requestLogger.RequestSkipped(entry.Name, "excluded by filter parameters")
			continue
		}
		var debugLogger logging.CapturingLogger
		proxy.WithDebugLogger(&debugLogger)

		resp, err := proxy.Execute(entry.Request)
		if err != nil {
			failures++
			requestLogger.RequestError(entry.Name, err)
		}
		requestLogger.RequestFinished(entry.Name, resp, debugLogger.Output())
	}

	fmt.Fprintln(out)
	if failures > 0 {
		fmt.Fprintf(out, "%d of %d requests failed\n", failures, len(entries))
		return 1
	}
	fmt.Fprintf(out, "All requests executed (%d in script)\n", len(entries))
	return 0
}
