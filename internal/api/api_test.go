package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"polyglot/internal/api"
	"polyglot/internal/api/handler"
	"polyglot/internal/config"
	"polyglot/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newAPI(t *testing.T, mutate ...func(*api.Options)) *api.API {
	t.Helper()

	opts := api.Options{
		MetricsPath: "/metrics",
		DocsEnabled: true,
		ExposeStack: true,
	}
	for _, m := range mutate {
		m(&opts)
	}

	a, err := api.New(api.Deps{Deps: handler.Deps{
		StartedAt:   time.Now(),
		Environment: "test",
	}}, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	return a
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func TestAPI_StageOrder(t *testing.T) {
	require.Equal(t,
		[]string{"access_log", "metrics", "cors", "decode_body", "dispatch", "not_found"},
		newAPI(t).Stages())
}

func TestAPI_Health(t *testing.T) {
	rec := do(t, newAPI(t), http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	require.Equal(t, "ok", out["status"])
	uptime, ok := out["uptime"].(float64)
	require.True(t, ok, "uptime must be numeric")
	require.GreaterOrEqual(t, uptime, float64(0))
}

func TestAPI_Root(t *testing.T) {
	rec := do(t, newAPI(t), http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Hello World from Polyglot Starter API!", rec.Body.String())
}

func TestAPI_NotFound(t *testing.T) {
	a := newAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/random/123"},
		{http.MethodGet, "/api/unknown"},
		{http.MethodPost, "/health"},
		{http.MethodGet, "/api/echo"},
		{http.MethodGet, "/debug/pprof/"},
	} {
		rec := do(t, a, tc.method, tc.path, "", "")
		require.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		require.Equal(t, map[string]any{"error": "Not Found", "path": tc.path}, decode(t, rec))
	}
}

func TestAPI_Translate(t *testing.T) {
	a := newAPI(t)

	rec := do(t, a, http.MethodPost, "/api/translate", "application/json", `{"text":"Hello","from":"en","to":"pl"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	require.Equal(t, "Cześć", out["translation"])
	require.Equal(t, "Hello", out["original"])
	require.Equal(t, "en", out["from"])
	require.Equal(t, "pl", out["to"])
	require.NotEmpty(t, out["timestamp"])

	rec = do(t, a, http.MethodPost, "/api/translate", "application/x-www-form-urlencoded", "text=Hello&from=en&to=pl")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Cześć", decode(t, rec)["translation"])

	for _, body := range []string{
		`{"text":"Hello"}`,
		`{"text":"Hello","from":"en"}`,
		`{"text":123,"from":"en","to":"pl"}`,
		`{}`,
		``,
	} {
		rec = do(t, a, http.MethodPost, "/api/translate", "application/json", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, []any{"text", "from", "to"}, decode(t, rec)["required"])
	}
}

func TestAPI_Echo(t *testing.T) {
	a := newAPI(t)

	rec := do(t, a, http.MethodPost, "/api/echo", "application/json", `{"a":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{"a": float64(1)}, decode(t, rec)["received"])

	rec = do(t, a, http.MethodPost, "/api/echo", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]any{}, decode(t, rec)["received"])

	rec = do(t, a, http.MethodPost, "/api/echo", "application/json", `{"a":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_BodyLimit(t *testing.T) {
	a := newAPI(t, func(o *api.Options) { o.MaxBodyBytes = 16 })

	rec := do(t, a, http.MethodPost, "/api/echo", "application/json", `{"a":"`+strings.Repeat("x", 64)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, decode(t, rec), "error")
}

func TestAPI_Error(t *testing.T) {
	rec := do(t, newAPI(t), http.MethodGet, "/error", "", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := decode(t, rec)
	require.Contains(t, out["error"], "Intentional error")
	require.Contains(t, out, "stack")
}

func TestAPI_ErrorHidesStackInProduction(t *testing.T) {
	a := newAPI(t, func(o *api.Options) { o.ExposeStack = false })

	out := decode(t, do(t, a, http.MethodGet, "/error", "", ""))
	require.Contains(t, out["error"], "Intentional error")
	require.NotContains(t, out, "stack")
}

func TestAPI_CORSOnEveryResponse(t *testing.T) {
	a := newAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/error"},
		{http.MethodPost, "/api/translate"},
		{http.MethodOptions, "/api/translate"},
	} {
		rec := do(t, a, tc.method, tc.path, "", "")
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), "%s %s", tc.method, tc.path)
		require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	}
}

func TestAPI_Preflight(t *testing.T) {
	a := newAPI(t)

	for _, path := range []string{"/api/echo", "/error", "/unknown"} {
		rec := do(t, a, http.MethodOptions, path, "application/json", `{"a":`)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Empty(t, rec.Body.String(), path)
		require.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type,Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestAPI_DataIsStable(t *testing.T) {
	a := newAPI(t)

	first := decode(t, do(t, a, http.MethodGet, "/api/data", "", ""))
	second := decode(t, do(t, a, http.MethodGet, "/api/data", "", ""))

	require.Len(t, first["items"], 3)
	require.Equal(t, first["items"], second["items"])
}

func TestAPI_StatusAndLanguages(t *testing.T) {
	a := newAPI(t)

	status := decode(t, do(t, a, http.MethodGet, "/api/status", "", ""))
	require.Equal(t, "operational", status["status"])
	require.Equal(t, "1.0.0", status["version"])
	require.Equal(t, "test", status["environment"])

	langs := decode(t, do(t, a, http.MethodGet, "/api/languages", "", ""))
	require.EqualValues(t, 8, langs["count"])
}

func TestAPI_Metrics(t *testing.T) {
	a := newAPI(t)

	do(t, a, http.MethodGet, "/api/data", "", "")
	do(t, a, http.MethodGet, "/missing", "", "")

	rec := do(t, a, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "http_server_requests")
	require.Contains(t, body, `"/api/data"`)
	require.Contains(t, body, `"unmatched"`)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_Docs(t *testing.T) {
	a := newAPI(t)

	rec := do(t, a, http.MethodGet, "/specs/v1.yaml", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "/api/translate")

	rec = do(t, a, http.MethodGet, "/docs/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	disabled := newAPI(t, func(o *api.Options) { o.DocsEnabled = false })
	require.Equal(t, http.StatusNotFound, do(t, disabled, http.MethodGet, "/specs/v1.yaml", "", "").Code)
}

func TestAPI_Pprof(t *testing.T) {
	a := newAPI(t, func(o *api.Options) { o.PprofEnabled = true })

	rec := do(t, a, http.MethodGet, "/debug/pprof/cmdline", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Routes(t *testing.T) {
	routes := newAPI(t).Routes()

	patterns := make([]string, 0, len(routes))
	for _, r := range routes {
		patterns = append(patterns, r.Method+" "+r.Pattern)
	}
	require.Subset(t, patterns, []string{
		"GET /health", "GET /", "GET /api/status", "GET /api/data", "GET /api/languages",
		"POST /api/echo", "POST /api/translate", "GET /error", "GET /metrics",
	})
}

func TestNewServer(t *testing.T) {
	cfg := &config.Config{Environment: config.ProductionEnvironment}
	cfg.HTTP.Port = 3000
	cfg.HTTP.RequestTimeout = time.Second
	cfg.HTTP.MetricsPath = "/metrics"

	opts := api.NewOptions(cfg)
	require.Equal(t, ":3000", opts.Addr)
	require.False(t, opts.ExposeStack)

	srv, err := api.NewServer(context.Background(), api.Deps{}, opts)
	require.NoError(t, err)
	require.Equal(t, ":3000", srv.Addr)
	require.NotNil(t, srv.ErrorLog)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestAPI_HeadIsNotRouted(t *testing.T) {
	rec := do(t, newAPI(t), http.MethodHead, "/health", "", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPI_RequestTimeout(t *testing.T) {
	a := newAPI(t, func(o *api.Options) { o.RequestTimeout = 50 * time.Millisecond })
	require.Equal(t,
		[]string{"access_log", "metrics", "cors", "timeout", "decode_body", "dispatch", "not_found"},
		a.Stages())

	require.Equal(t, http.StatusOK, do(t, a, http.MethodGet, "/health", "", "").Code)

	core, logs := observer.New(zapcore.InfoLevel)
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	req := httptest.NewRequest(http.MethodPost, "/api/echo", pr)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(logger.WithLogger(req.Context(), zap.New(core)))
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Contains(t, decode(t, rec)["error"], "request timed out")

	access := logs.FilterMessage("Access log").All()
	require.Len(t, access, 1)
	require.EqualValues(t, http.StatusServiceUnavailable, access[0].ContextMap()["status_code"])
}
