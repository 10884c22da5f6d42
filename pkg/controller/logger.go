package controller

import (
	"context"
	"net"
	"net/http"
	"polyglot/pkg/logger"
	"polyglot/pkg/pipeline"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetClientIP attempts to determine the originating client IP address for the
// given request by checking X-Forwarded-For and X-Real-IP headers before
// falling back to the connection's remote address.
func GetClientIP(r *http.Request) string {
	// check X-Forwarded-For first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// may contain multiple IPs: "client, proxy1, proxy2"
		ips := strings.Split(xff, ",")

		return strings.TrimSpace(ips[0]) // the first is original client
	}

	// then check X-Real-IP
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	// fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

// CtxKey is a string-based type used for storing values in request contexts.
// It avoids collisions with other packages' context keys.
type CtxKey string

const (
	// RequestIDKey is the context key under which the current request ID is stored.
	RequestIDKey CtxKey = "RequestID"

	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-Id"
)

// RequestID returns the request ID stored in ctx, or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)

	return id
}

// AccessLog returns a stage that injects a request-scoped logger and request
// ID into the context and, once the response has been written, emits one
// structured access log line carrying the final status code.
func AccessLog() pipeline.Stage {
	return pipeline.Stage{
		Name: "access_log",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			ctx := ex.Context()

			// set request ID
			requestID := ex.Request.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			ex.RequestID = requestID
			ex.Header.Set(RequestIDHeader, requestID)
			ctx = context.WithValue(ctx, RequestIDKey, requestID)

			// set logger
			ctx = logger.WithFields(ctx, zap.String("request_id", requestID))
			ex.SetContext(ctx)

			return pipeline.Continue, nil
		},
		Finish: func(ex *pipeline.Exchange) {
			r := ex.Request
			logger.Info(ex.Context(), "Access log",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status_code", ex.Status()),
				zap.Float64("duration_ms", float64(ex.Elapsed().Microseconds())/1000),
				zap.Int64("bytes", ex.BytesWritten()),
				zap.String("client_ip", GetClientIP(r)),
				zap.String("user_agent", r.UserAgent()),
				zap.String("referer", r.Referer()),
			)
		},
	}
}
