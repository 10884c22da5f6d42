package controller

import (
	"context"
	"net/http"
	"polyglot/pkg/pipeline"
	"polyglot/pkg/serrors"
	"time"
)

type cancelKey struct{}

// Timeout returns a stage bounding the rest of the request by d. Later
// stages observe the deadline through the request context and report
// TimedOut once it has passed.
func Timeout(d time.Duration) pipeline.Stage {
	return pipeline.Stage{
		Name: "timeout",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			ctx, cancel := context.WithTimeout(ex.Context(), d)
			ex.SetContext(context.WithValue(ctx, cancelKey{}, cancel))

			return pipeline.Continue, nil
		},
		Finish: func(ex *pipeline.Exchange) {
			if cancel, ok := ex.Context().Value(cancelKey{}).(context.CancelFunc); ok {
				cancel()
			}
		},
	}
}

// TimedOut converts a done request context into a 503 error; it returns nil while ctx is live.
func TimedOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return serrors.Wrap(serrors.ErrTimeout, err, "request timed out").WithStatus(http.StatusServiceUnavailable)
	}

	return nil
}
