package netsuite

import (
	"context"
	"net/http"
	"time"
)

// RestletOptions customizes a RESTlet invocation.
type RestletOptions struct {
	// Method defaults to GET.
	Method string
	// Params are appended to the query string next to script and deploy.
	Params  map[string]string
	Body    any
	Headers map[string]string
	Timeout time.Duration
}

// CallRestlet invokes a deployed RESTlet script on the account's RESTlet
// hosting domain. URL construction aside, the call goes through the same
// signed, retried transport as every other request.
func (c *Client) CallRestlet(ctx context.Context, scriptID, deployID string, opts *RestletOptions) (*Response, error) {
	if opts == nil {
		opts = &RestletOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	return c.Request(ctx, c.restletURL(scriptID, deployID, opts.Params), &RequestOptions{
		Method:  method,
		Headers: opts.Headers,
		Body:    opts.Body,
		Timeout: opts.Timeout,
	})
}
