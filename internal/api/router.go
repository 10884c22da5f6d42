package api

import (
	"context"
	"net/http"
	"polyglot/pkg/controller"
	"polyglot/pkg/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
)

// HandlerFunc produces the response for one route.
type HandlerFunc func(ex *pipeline.Exchange) (*pipeline.Response, error)

// Route binds a method and path pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Summary string
	Handler HandlerFunc
}

// Dispatcher matches requests against a fixed route table using a chi tree.
// A known path requested with another method counts as unmatched.
type Dispatcher struct {
	mux    *chi.Mux
	routes []Route
}

type outcome struct {
	matched bool
	resp    *pipeline.Response
	err     error
}

type outcomeKey struct{}

// NewDispatcher builds a Dispatcher for routes.
func NewDispatcher(routes ...Route) *Dispatcher {
	mux := chi.NewMux()
	unmatched := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	mux.NotFound(unmatched)
	mux.MethodNotAllowed(unmatched)

	for _, rt := range routes {
		mux.Method(rt.Method, rt.Pattern, adapt(rt.Handler))
	}

	return &Dispatcher{mux: mux, routes: routes}
}

// Routes returns the route table in registration order.
func (d *Dispatcher) Routes() []Route {
	out := make([]Route, len(d.routes))
	copy(out, d.routes)

	return out
}

// Stage returns the pipeline stage running the matched handler. Unmatched
// requests continue to the next stage.
func (d *Dispatcher) Stage() pipeline.Stage {
	return pipeline.Stage{Name: "dispatch", Enter: d.dispatch}
}

func (d *Dispatcher) dispatch(ex *pipeline.Exchange) (pipeline.Result, error) {
	if err := controller.TimedOut(ex.Context()); err != nil {
		return pipeline.Continue, err
	}

	rctx := chi.NewRouteContext()
	out := &outcome{}

	ctx := context.WithValue(ex.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, outcomeKey{}, out)
	d.mux.ServeHTTP(nopWriter{}, ex.Request.WithContext(ctx))

	if !out.matched {
		return pipeline.Continue, nil
	}
	ex.Route = rctx.RoutePattern()
	if err := controller.TimedOut(ex.Context()); err != nil {
		return pipeline.Continue, err
	}

	switch {
	case out.err != nil:
		return pipeline.Continue, out.err
	case out.resp == nil:
		return pipeline.Continue, errors.Errorf("route %s %s returned no response", ex.Request.Method, ex.Route)
	default:
		return ex.Reply(out.resp)
	}
}

func adapt(h HandlerFunc) http.HandlerFunc {
	return func(_ http.ResponseWriter, r *http.Request) {
		out, _ := r.Context().Value(outcomeKey{}).(*outcome)
		ex := pipeline.FromContext(r.Context())
		if out == nil || ex == nil {
			return
		}

		out.matched = true
		out.resp, out.err = h(ex)
	}
}

// nopWriter absorbs writes from the chi tree; responses travel through outcome.
type nopWriter struct{}

func (nopWriter) Header() http.Header         { return http.Header{} }
func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
func (nopWriter) WriteHeader(int)             {}
