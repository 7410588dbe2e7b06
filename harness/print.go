package harness

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
)

var titleColor = color.New(color.FgCyan, color.Bold)

// Print writes a human-readable description of an executed request and its result.
func Print(w io.Writer, r *Result) {
	req := r.Request()

	titleColor.Fprintln(w, "HarnessRequest:")
	printField(w, "HTTP Method", req.Method)
	printField(w, "Request URI", req.URL.Path)
	printField(w, "Parameters", formatValues(requestParams(req)))
	printField(w, "Headers", formatValues(req.Header))
	if s := r.Session(); s != nil {
		printField(w, "Session", s.ID())
	} else {
		printField(w, "Session", "none")
	}
	printField(w, "Curl", curlCommand(req).String())

	fmt.Fprintln(w)
	titleColor.Fprintln(w, "HarnessResponse:")
	printField(w, "Status", fmt.Sprintf("%d %s", r.Status(), http.StatusText(r.Status())))
	printField(w, "Headers", formatValues(r.response.Header))
	if body, err := r.ContentAsString(); err == nil {
		printField(w, "Body", body)
	} else {
		printField(w, "Body", fmt.Sprintf("<%d bytes, %s>", len(r.body), err))
	}
	fmt.Fprintln(w)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%17s = %s\n", label, value)
}

func requestParams(req *http.Request) map[string][]string {
	params := make(map[string][]string)
	for k, v := range req.URL.Query() {
		params[k] = append(params[k], v...)
	}
	if req.Header.Get("Content-Type") == formContentType && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			data, _ := io.ReadAll(body)
			if form, err := url.ParseQuery(string(data)); err == nil {
				for k, v := range form {
					params[k] = append(params[k], v...)
				}
			}
		}
	}
	return params
}

func formatValues(values map[string][]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:[%s]", name, strings.Join(values[name], ", ")))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand describes an equivalent request against a real server on the default host.
func curlCommand(req *http.Request) commandBuilder {
	var cmd commandBuilder
	cmd.add("curl", "-X", req.Method)
	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range req.Header[name] {
			cmd.add("-H", name+": "+v)
		}
	}
	if req.GetBody != nil && req.ContentLength > 0 {
		if body, err := req.GetBody(); err == nil {
			data, _ := io.ReadAll(body)
			cmd.add("--data-binary", string(data))
		}
	}
	cmd.add("http://" + req.Host + req.URL.RequestURI())
	return cmd
}
