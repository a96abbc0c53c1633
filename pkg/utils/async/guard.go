package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
)

// Guard executes fn synchronously and converts a panic into an error, so a
// misbehaving collaborator cannot unwind past the caller.
func Guard(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerr.New("panic recovered",
				goerr.V("recover", r),
				goerr.V("stack", string(debug.Stack())),
			)
		}
	}()

	return fn(ctx)
}
