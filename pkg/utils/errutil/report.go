package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Report sends err to Sentry when a client has been initialized. It does
// not log; callers decide the log level.
func Report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			for k, v := range ge.Values() {
				scope.SetTag(k, fmt.Sprint(v))
			}
		}
		hub.CaptureException(err)
	})
}

// Handle logs err at error level and reports it
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}
	ctxlog.From(ctx).Error(msg, "error", err)
	Report(ctx, err)
}
