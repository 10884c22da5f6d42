package controller

import (
	"net/http"
	"polyglot/pkg/pipeline"
)

// CORS header values sent on every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	AllowHeaders = "Content-Type,Authorization"
)

// CORS returns a stage that sets permissive CORS headers on every response and
// short-circuits OPTIONS preflight requests with 200 and an empty body.
func CORS() pipeline.Stage {
	return pipeline.Stage{
		Name: "cors",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			ex.Header.Set("Access-Control-Allow-Origin", AllowOrigin)
			ex.Header.Set("Access-Control-Allow-Methods", AllowMethods)
			ex.Header.Set("Access-Control-Allow-Headers", AllowHeaders)

			// handle preflight requests quickly
			if ex.Request.Method == http.MethodOptions {
				return ex.Reply(pipeline.Empty(http.StatusOK))
			}

			return pipeline.Continue, nil
		},
	}
}
