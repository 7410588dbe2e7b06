package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/launchdarkly/webproxy-adapter/script"
)

type commandParams struct {
	scriptPath string
	filters    script.RegexFilters
	verbose    bool
	session    bool
	debug      bool
	debugAll   bool
	noColor    bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.scriptPath, "script", "", "TOML file describing the requests to execute")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select requests to execute")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select requests not to execute")
	fs.BoolVar(&c.verbose, "verbose", false, "print request execution details")
	fs.BoolVar(&c.session, "session", false, "attach one session to every request")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed requests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all requests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.scriptPath == "" {
		fmt.Fprintln(errOut, "-script is required")
		fs.Usage()
		return false
	}
	return true
}
