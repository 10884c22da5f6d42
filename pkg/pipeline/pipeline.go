package pipeline

import (
	"net/http"
	"polyglot/pkg/logger"
	"polyglot/pkg/serrors"
	"time"

	"go.uber.org/zap"
)

// Result tells the driver loop whether to run the next stage.
type Result int

const (
	// Continue hands the request to the next stage.
	Continue Result = iota
	// Respond stops the loop; the stage has set Exchange.Response.
	Respond
)

// Stage is one ordered step of request processing.
type Stage struct {
	// Name identifies the stage in logs.
	Name string
	// Enter runs when the request reaches the stage.
	Enter func(ex *Exchange) (Result, error)
	// Finish, if set, runs after the response has been written.
	Finish func(ex *Exchange)
}

// Options configure the driver.
type Options struct {
	// ExposeStack attaches error detail to JSON error bodies. It must be off in production.
	ExposeStack bool
	// Now is the time source for request timing. Defaults to time.Now.
	Now func() time.Time
}

// Pipeline is an http.Handler running a fixed list of stages.
type Pipeline struct {
	stages []Stage
	opts   Options
}

// New builds a Pipeline running stages in the given order.
func New(opts Options, stages ...Stage) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Pipeline{stages: stages, opts: opts}
}

// StageNames lists the configured stages in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name)
	}

	return names
}

// ServeHTTP implements http.Handler.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	ex := newExchange(rec, r, p.opts.Now)

	entered := p.run(ex)
	p.write(ex)

	for i := entered - 1; i >= 0; i-- {
		if p.stages[i].Finish != nil {
			p.finish(ex, p.stages[i])
		}
	}
}

// run executes stages until one responds or fails and returns how many were entered.
func (p *Pipeline) run(ex *Exchange) int {
	for i, s := range p.stages {
		res, err := p.enter(ex, s)
		if err != nil {
			ex.Response = p.normalize(ex, err)

			return i + 1
		}
		if res == Respond {
			if ex.Response == nil {
				ex.Response = p.normalize(ex, serrors.With(serrors.ErrInternal, "stage %q responded without a response", s.Name))
			}

			return i + 1
		}
	}

	ex.Response = p.normalize(ex, serrors.With(serrors.ErrInternal, "no stage produced a response"))

	return len(p.stages)
}

func (p *Pipeline) enter(ex *Exchange, s Stage) (res Result, err error) {
	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler { //nolint: errorlint
				panic(v)
			}
			err = newPanicError(s.Name, v)
		}
	}()

	return s.Enter(ex)
}

func (p *Pipeline) finish(ex *Exchange, s Stage) {
	defer func() {
		if v := recover(); v != nil {
			logger.Error(ex.Context(), "finish hook panicked",
				zap.String("stage", s.Name), zap.Any("panic", v))
		}
	}()

	s.Finish(ex)
}

func (p *Pipeline) write(ex *Exchange) {
	h := ex.w.Header()
	for k, v := range ex.Header {
		h[k] = v
	}

	defer func() {
		if v := recover(); v != nil {
			if v == http.ErrAbortHandler { //nolint: errorlint
				panic(v)
			}
			logger.Error(ex.Context(), "response writer panicked", zap.Any("panic", v))
			if !ex.w.wroteHeader {
				ex.w.WriteHeader(http.StatusInternalServerError)
			}
		}
	}()

	if err := ex.Response.writeTo(ex.w, ex.Request); err != nil {
		logger.Warn(ex.Context(), "could not write response", zap.Error(err))
	}
}
