package webproxy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethodIsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"get", "Get", "GET", "gEt"} {
		m, err := ParseMethod(input)
		require.NoError(t, err, input)
		assert.Equal(t, MethodGet, m, input)
	}
}

func TestParseMethodAcceptsAllSupportedVerbs(t *testing.T) {
	for _, m := range AllMethods {
		parsed, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestParseMethodRejectsUnknownVerb(t *testing.T) {
	_, err := ParseMethod("trace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))

	var unsupported *UnsupportedMethodError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "TRACE", unsupported.Method)
	assert.Contains(t, err.Error(), `"TRACE"`)
}

func TestParseMethodRejectsEmptyString(t *testing.T) {
	_, err := ParseMethod("")
	assert.Equal(t, ErrMissingMethod, err)
}
