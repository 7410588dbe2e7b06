// Package script reads request scripts for the command-line runner.
//
// A script is a TOML file containing any number of request tables:
//
//	[[request]]
//	name = "create an item"
//	method = "POST"
//	uri = "/items"
//	params = { name = ["widget"] }
//	headers = { Accept = ["application/json"] }
package script

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/launchdarkly/webproxy-adapter/webproxy"
)

// Entry is one named request from a script.
type Entry struct {
	Name    string
	Request webproxy.Request
}

type scriptFile struct {
	Requests []requestDef `toml:"request"`
}

type requestDef struct {
	Name    string              `toml:"name"`
	Method  string              `toml:"method"`
	URI     string              `toml:"uri"`
	Params  map[string][]string `toml:"params"`
	Headers map[string][]string `toml:"headers"`
}

// Load reads and parses a script file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a script. Requests without a name are named after their position. Validity of
// methods and URIs is not checked here; that is left to the proxy, so that scripts can exercise
// invalid requests too.
func Parse(data []byte) ([]Entry, error) {
	var f scriptFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed script: %w", err)
	}

	entries := make([]Entry, 0, len(f.Requests))
	seen := make(map[string]bool)
	for i, def := range f.Requests {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("request %d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate request name %q", name)
		}
		seen[name] = true
		entries = append(entries, Entry{
			Name: name,
			Request: webproxy.Request{
				Method:  def.Method,
				URI:     def.URI,
				Params:  webproxy.ValuesFromMap(def.Params),
				Headers: webproxy.ValuesFromMap(def.Headers),
			},
		})
	}
	return entries, nil
}
