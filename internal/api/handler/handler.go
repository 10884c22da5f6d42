// Package handler implements the route handlers of the API. Every handler
// reads the pipeline Exchange and returns the response to send or an error
// for the pipeline error normalizer.
package handler

import (
	"net/http"
	"polyglot/pkg/clock"
	"polyglot/pkg/pipeline"
	"time"

	"github.com/go-faster/errors"
)

// Version is reported by the status endpoint.
const Version = "1.0.0"

// Welcome is the plain text body served at the root path.
const Welcome = "Hello World from Polyglot Starter API!"

// IntentionalError is the message of the failure raised by the error endpoint.
const IntentionalError = "Intentional error for testing"

// Deps holds the dependencies shared by all handlers.
type Deps struct {
	// Clock provides timestamps and uptime.
	Clock clock.Clock
	// StartedAt is the process start time.
	StartedAt time.Time
	// Environment is reported by the status endpoint.
	Environment string
	// Version overrides the reported version when set.
	Version string
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Version == "" {
		deps.Version = Version
	}

	return &Handler{deps: deps}
}

func (h *Handler) now() time.Time {
	return h.deps.Clock.Now()
}

func (h *Handler) uptime() time.Duration {
	return clock.Uptime(h.deps.StartedAt, h.now())
}

// Root serves the welcome text.
func (h *Handler) Root(*pipeline.Exchange) (*pipeline.Response, error) {
	return pipeline.Text(http.StatusOK, Welcome), nil
}

// Health reports liveness and uptime in fractional seconds.
func (h *Handler) Health(*pipeline.Exchange) (*pipeline.Response, error) {
	return pipeline.JSON(http.StatusOK, healthPayload{
		Status: "ok",
		Uptime: h.uptime().Seconds(),
	}), nil
}

// Status reports service metadata with uptime in whole seconds.
func (h *Handler) Status(*pipeline.Exchange) (*pipeline.Response, error) {
	now := h.now()

	return pipeline.JSON(http.StatusOK, statusPayload{
		Status:      "operational",
		Timestamp:   now,
		Uptime:      int64(clock.Uptime(h.deps.StartedAt, now) / time.Second),
		Version:     h.deps.Version,
		Environment: h.deps.Environment,
	}), nil
}

// Error always fails.
func (h *Handler) Error(*pipeline.Exchange) (*pipeline.Response, error) {
	return nil, errors.New(IntentionalError)
}
