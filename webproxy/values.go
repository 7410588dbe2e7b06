package webproxy

import "sort"

// Values maps a parameter or header name to an ordered list of values.
//
// There is exactly one entry per name. The order of values for a name is preserved; the order of
// the names themselves is not meaningful. The zero value is an empty, usable Values.
type Values struct {
	m map[string][]string
}

// Add appends values to the entry for name, creating it if necessary. Calling Add with no values
// still creates an entry with an empty value list.
func (v *Values) Add(name string, values ...string) {
	if v.m == nil {
		v.m = make(map[string][]string)
	}
	v.m[name] = append(v.m[name], values...)
	if v.m[name] == nil {
		v.m[name] = []string{}
	}
}

// Set replaces the entry for name.
func (v *Values) Set(name string, values ...string) {
	if v.m == nil {
		v.m = make(map[string][]string)
	}
	v.m[name] = append([]string{}, values...)
}

// Get returns a copy of the values for name, or nil if there is no such entry.
func (v Values) Get(name string) []string {
	values, ok := v.m[name]
	if !ok {
		return nil
	}
	return append([]string{}, values...)
}

func (v Values) Has(name string) bool {
	_, ok := v.m[name]
	return ok
}

// Delete removes the entry for name.
func (v *Values) Delete(name string) {
	delete(v.m, name)
}

// Names returns every name in sorted order.
func (v Values) Names() []string {
	names := make([]string, 0, len(v.m))
	for name := range v.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v Values) Len() int {
	return len(v.m)
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	var ret Values
	for name, values := range v.m {
		ret.Set(name, values...)
	}
	return ret
}

// ValuesFromMap builds a Values from a plain map, such as one decoded from a file.
func ValuesFromMap(m map[string][]string) Values {
	var ret Values
	for name, values := range m {
		ret.Set(name, values...)
	}
	return ret
}
