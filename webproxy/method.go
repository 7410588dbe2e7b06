package webproxy

import "strings"

// Method is one of the HTTP verbs that a Proxy is required to support.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
)

// AllMethods lists every supported Method.
var AllMethods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodOptions,
	MethodHead,
}

// ParseMethod converts a method string, in any letter case, to a Method.
//
// An empty string returns ErrMissingMethod. Any other string that is not a supported verb returns
// an *UnsupportedMethodError.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return "", ErrMissingMethod
	}
	m := Method(strings.ToUpper(s))
	for _, known := range AllMethods {
		if m == known {
			return m, nil
		}
	}
	return "", &UnsupportedMethodError{Method: string(m)}
}

func (m Method) String() string {
	return string(m)
}
