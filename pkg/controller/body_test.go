package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"polyglot/pkg/controller"
	"polyglot/pkg/pipeline"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// echoBody responds with the decoded body.
func echoBody() pipeline.Stage {
	return pipeline.Stage{
		Name: "echo",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			return ex.Reply(pipeline.JSON(http.StatusOK, ex.Body))
		},
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		limit       int64
		wantStatus  int
		wantBody    string
	}{
		{name: "json object", contentType: "application/json", body: `{"a":1}`, wantStatus: http.StatusOK, wantBody: `{"a":1}`},
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `{"a":"b"}`, wantStatus: http.StatusOK, wantBody: `{"a":"b"}`},
		{name: "vendor json", contentType: "application/vnd.api+json", body: `{"a":true}`, wantStatus: http.StatusOK, wantBody: `{"a":true}`},
		{name: "empty json", contentType: "application/json", body: ``, wantStatus: http.StatusOK, wantBody: `{}`},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: `text=Hello&from=en&to=pl`, wantStatus: http.StatusOK, wantBody: `{"from":"en","text":"Hello","to":"pl"}`},
		{name: "unknown content type", contentType: "text/plain", body: `hello`, wantStatus: http.StatusOK, wantBody: `{}`},
		{name: "no content type", body: `{"a":1}`, wantStatus: http.StatusOK, wantBody: `{}`},
		{name: "malformed json", contentType: "application/json", body: `{"a":`, wantStatus: http.StatusBadRequest},
		{name: "json array", contentType: "application/json", body: `[1]`, wantStatus: http.StatusBadRequest},
		{name: "too large", contentType: "application/json", body: `{"a":"0123456789"}`, limit: 8, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "bad form", contentType: "application/x-www-form-urlencoded", body: `a=%zz`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			rec := httptest.NewRecorder()
			pipeline.New(pipeline.Options{}, controller.DecodeBody(tt.limit), echoBody()).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rec.Body.String())

				return
			}

			var out map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
			require.Contains(t, out, "error")
		})
	}
}

func TestDecodeBody_NoBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/echo", nil)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	pipeline.New(pipeline.Options{}, controller.DecodeBody(0), echoBody()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{}`, rec.Body.String())
}
