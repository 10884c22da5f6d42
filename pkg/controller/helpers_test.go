package controller_test

import (
	"net/http"
	"net/http/httptest"
	"polyglot/pkg/pipeline"
)

// terminal responds with status and records that it ran.
func terminal(called *bool, status int) pipeline.Stage {
	return pipeline.Stage{
		Name: "terminal",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			*called = true

			return ex.Reply(pipeline.Empty(status))
		},
	}
}

func serve(req *http.Request, stages ...pipeline.Stage) *http.Response {
	rec := httptest.NewRecorder()
	pipeline.New(pipeline.Options{}, stages...).ServeHTTP(rec, req)

	return rec.Result()
}
