// Package api assembles the request pipeline, the route table, metrics and
// docs into the HTTP server of the Polyglot Starter API.
package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"polyglot/internal/api/handler"
	"polyglot/internal/config"
	"polyglot/pkg/controller"
	"polyglot/pkg/logger"
	"polyglot/pkg/metrics"
	"polyglot/pkg/pipeline"
	"time"

	"github.com/go-faster/errors"
	"github.com/swaggest/swgui/v5emb"
	"go.uber.org/zap"
)

// v1Spec contains the embedded OpenAPI specification of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the defaults of net/http.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":3000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout, when positive, bounds body decoding and dispatch; late requests get 503.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxBodyBytes is the largest request body the body decoder accepts.
	MaxBodyBytes int64
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// PprofEnabled exposes the pprof handlers.
	PprofEnabled bool
	// DocsEnabled exposes the OpenAPI document and Swagger UI.
	DocsEnabled bool
	// ExposeStack attaches error detail to error responses.
	ExposeStack bool
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		PprofEnabled:      cfg.HTTP.PprofEnabled,
		DocsEnabled:       cfg.HTTP.DocsEnabled,
		ExposeStack:       !cfg.IsProduction(),
	}
}

type Deps struct {
	handler.Deps
}

// API is the http.Handler serving every route through the request pipeline.
type API struct {
	pipeline   *pipeline.Pipeline
	dispatcher *Dispatcher
	exporter   *metrics.Exporter
}

// New wires the metrics exporter, the route table and the pipeline stages:
// access log, metrics, CORS, the optional request timeout, body decoding,
// dispatch and the not-found fallback.
func New(deps Deps, opts Options) (*API, error) {
	exp, err := metrics.NewExporter()
	if err != nil {
		return nil, errors.Wrap(err, "could not create metrics exporter")
	}
	httpMetrics, err := metrics.NewHTTPMetrics(exp.MeterProvider())
	if err != nil {
		return nil, errors.Wrap(err, "could not create http metrics")
	}

	h := handler.New(deps.Deps)
	dispatcher := NewDispatcher(routes(h, exp, opts)...)

	pipelineOpts := pipeline.Options{ExposeStack: opts.ExposeStack}
	if deps.Clock != nil {
		pipelineOpts.Now = deps.Clock.Now
	}

	stages := []pipeline.Stage{
		controller.AccessLog(),
		controller.Metrics(httpMetrics),
		controller.CORS(),
	}
	if opts.RequestTimeout > 0 {
		stages = append(stages, controller.Timeout(opts.RequestTimeout))
	}
	stages = append(stages,
		controller.DecodeBody(opts.MaxBodyBytes),
		dispatcher.Stage(),
		pipeline.NotFound(),
	)

	return &API{
		pipeline:   pipeline.New(pipelineOpts, stages...),
		dispatcher: dispatcher,
		exporter:   exp,
	}, nil
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.pipeline.ServeHTTP(w, r)
}

// Routes returns the route table.
func (a *API) Routes() []Route {
	return a.dispatcher.Routes()
}

// Stages lists the pipeline stages in execution order.
func (a *API) Stages() []string {
	return a.pipeline.StageNames()
}

// Shutdown flushes and stops the metrics exporter.
func (a *API) Shutdown(ctx context.Context) error {
	return a.exporter.Shutdown(ctx)
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// The metrics exporter is stopped when the server shuts down.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	a, err := New(deps, opts)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              opts.Addr,
		Handler:           a,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          logger.StdLogger(ctx, slog.LevelWarn),
	}
	server.RegisterOnShutdown(func() {
		if err := a.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "could not stop metrics exporter", zap.Error(err))
		}
	})

	return server, nil
}

func routes(h *handler.Handler, exp *metrics.Exporter, opts Options) []Route {
	table := []Route{
		{Method: http.MethodGet, Pattern: "/health", Summary: "Liveness and uptime", Handler: h.Health},
		{Method: http.MethodGet, Pattern: "/", Summary: "Welcome text", Handler: h.Root},
		{Method: http.MethodGet, Pattern: "/api/status", Summary: "Service status", Handler: h.Status},
		{Method: http.MethodGet, Pattern: "/api/data", Summary: "Sample data", Handler: h.Data},
		{Method: http.MethodGet, Pattern: "/api/languages", Summary: "Supported languages", Handler: h.Languages},
		{Method: http.MethodPost, Pattern: "/api/echo", Summary: "Echo request body", Handler: h.Echo},
		{Method: http.MethodPost, Pattern: "/api/translate", Summary: "Mock translation", Handler: h.Translate},
		{Method: http.MethodGet, Pattern: "/error", Summary: "Intentional failure", Handler: h.Error},
	}

	if opts.MetricsPath != "" {
		table = append(table, Route{
			Method:  http.MethodGet,
			Pattern: opts.MetricsPath,
			Summary: "Prometheus metrics",
			Handler: delegate(exp.Handler()),
		})
	}

	if opts.DocsEnabled {
		table = append(table,
			Route{
				Method:  http.MethodGet,
				Pattern: "/specs/v1.yaml",
				Summary: "OpenAPI document",
				Handler: func(*pipeline.Exchange) (*pipeline.Response, error) {
					resp := pipeline.Text(http.StatusOK, string(v1Spec))
					resp.ContentType = "application/yaml"

					return resp, nil
				},
			},
			Route{
				Method:  http.MethodGet,
				Pattern: "/docs/*",
				Summary: "Swagger UI",
				Handler: delegate(v5emb.New("Polyglot Starter API", "/specs/v1.yaml", "/docs/")),
			},
		)
	}

	if opts.PprofEnabled {
		table = append(table, Route{
			Method:  http.MethodGet,
			Pattern: controller.PprofPrefix + "*",
			Summary: "pprof profiles",
			Handler: delegate(controller.PprofMux()),
		})
	}

	return table
}

func delegate(h http.Handler) HandlerFunc {
	return func(*pipeline.Exchange) (*pipeline.Response, error) {
		return pipeline.Delegate(h), nil
	}
}
