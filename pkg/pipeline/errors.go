package pipeline

import (
	"fmt"
	"net/http"
	"polyglot/pkg/logger"
	"polyglot/pkg/serrors"
	"runtime/debug"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// ErrorBody is the uniform JSON shape of every failed request.
type ErrorBody struct {
	Message string
	// Stack is only rendered when set.
	Stack string
}

// Encode implements Encoder.
func (b ErrorBody) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("error")
	e.Str(b.Message)
	if b.Stack != "" {
		e.FieldStart("stack")
		e.Str(b.Stack)
	}
	e.ObjEnd()
}

// PanicError is a panic recovered from a stage.
type PanicError struct {
	Stage string
	Value any
	Stack []byte
}

func newPanicError(stage string, v any) *PanicError {
	return &PanicError{Stage: stage, Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}

	return fmt.Sprint(e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)

	return err
}

// Format implements fmt.Formatter; "%+v" includes the goroutine stack.
func (e *PanicError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *PanicError) FormatError(p errors.Printer) error {
	p.Printf("panic in stage %s: %s", e.Stage, e.Error())
	if p.Detail() {
		p.Printf("%s", e.Stack)
	}

	return nil
}

// normalize is the terminal error handler: it logs err with full detail and
// renders the uniform JSON error response.
func (p *Pipeline) normalize(ex *Exchange, err error) *Response {
	ex.Err = err

	status := serrors.StatusCode(err)
	detail := serrors.Detail(err)

	fields := []zap.Field{
		zap.Int("status_code", status),
		zap.String("error", err.Error()),
		zap.String("stack", detail),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(ex.Context(), "request failed", fields...)
	} else {
		logger.Warn(ex.Context(), "request rejected", fields...)
	}

	body := ErrorBody{Message: err.Error()}
	if body.Message == "" {
		body.Message = http.StatusText(http.StatusInternalServerError)
	}
	if p.opts.ExposeStack {
		body.Stack = detail
	}

	return JSON(status, body)
}
