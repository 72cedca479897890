package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is canceled on process shutdown so long-lived streams end
// before http.Server.Shutdown gives up on them.
var serverBaseCtx = context.Background()

// SetBaseContext installs the shutdown context. nil resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// streamContext derives from the request context and is also canceled when
// the server base context ends. stop must be called when the handler returns.
func streamContext(r *http.Request) (ctx context.Context, stop func()) {
	return withShutdown(r.Context(), serverBaseCtx)
}

func withShutdown(parent, shutdown context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	unhook := context.AfterFunc(shutdown, func() { cancel(context.Cause(shutdown)) })
	return ctx, func() {
		unhook()
		cancel(context.Canceled)
	}
}
