package harnessproxy

import (
	"github.com/launchdarkly/webproxy-adapter/harness"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// resultResponse adapts a harness.Result to webproxy.Response.
type resultResponse struct {
	result *harness.Result
}

func newResultResponse(result *harness.Result) *resultResponse {
	return &resultResponse{result: result}
}

func (r *resultResponse) Status() int {
	return r.result.Status()
}

func (r *resultResponse) Header(name string) ldvalue.OptionalString {
	if v, ok := r.result.Header(name); ok {
		return ldvalue.NewOptionalString(v)
	}
	return ldvalue.OptionalString{}
}

func (r *resultResponse) Body() (string, error) {
	return r.result.ContentAsString()
}
