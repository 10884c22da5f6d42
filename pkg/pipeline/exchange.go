package pipeline

import (
	"context"
	"net/http"
	"time"
)

// Exchange carries one request through the pipeline. It is created when the
// request enters and discarded once the response has been sent.
type Exchange struct {
	// Request is the inbound request. Stages may replace it to attach context values.
	Request *http.Request
	// Body is the decoded request body; never nil.
	Body Body
	// Header is merged into the response headers whatever response is written.
	Header http.Header
	// Start is the time the request entered the pipeline.
	Start time.Time
	// Route is the matched route pattern, empty when no route matched.
	Route string
	// RequestID correlates log lines of a single request.
	RequestID string
	// Response is the response chosen by a stage or by the error normalizer.
	Response *Response
	// Err is the failure handled by the error normalizer, if any.
	Err error

	w   *statusRecorder
	now func() time.Time
}

type exchangeKey struct{}

func newExchange(w *statusRecorder, r *http.Request, now func() time.Time) *Exchange {
	ex := &Exchange{
		Body:   Body{},
		Header: make(http.Header),
		Start:  now(),
		w:      w,
		now:    now,
	}
	ex.Request = r.WithContext(context.WithValue(r.Context(), exchangeKey{}, ex))

	return ex
}

// FromContext returns the Exchange of the request owning ctx, or nil.
func FromContext(ctx context.Context) *Exchange {
	ex, _ := ctx.Value(exchangeKey{}).(*Exchange)

	return ex
}

// Context returns the request context.
func (ex *Exchange) Context() context.Context {
	return ex.Request.Context()
}

// SetContext replaces the request context.
func (ex *Exchange) SetContext(ctx context.Context) {
	ex.Request = ex.Request.WithContext(ctx)
}

// Reply sets the response and stops the pipeline.
func (ex *Exchange) Reply(resp *Response) (Result, error) {
	ex.Response = resp

	return Respond, nil
}

// Status is the status code actually written to the client. Before the
// response is written it reports 200.
func (ex *Exchange) Status() int {
	return ex.w.status
}

// BytesWritten is the size of the response body written so far.
func (ex *Exchange) BytesWritten() int64 {
	return ex.w.written
}

// Elapsed is the time spent since the request entered the pipeline.
func (ex *Exchange) Elapsed() time.Duration {
	return ex.now().Sub(ex.Start)
}
