package netsuite

import "context"

// chain composes the middleware around the terminal handler. Middleware run
// in registration order on the way in and, by nesting, in reverse order on
// the way out. A middleware that returns without calling next short-circuits
// everything after it; a middleware error propagates uncaught to the caller.
func chain(mw []Middleware, terminal Handler) Handler {
	if len(mw) == 0 {
		return terminal
	}

	h := terminal
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := h
		h = func(ctx context.Context, req *RequestContext) (*ResponseContext, error) {
			return m.Handle(ctx, req, next)
		}
	}
	return h
}
