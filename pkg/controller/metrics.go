package controller

import (
	"polyglot/pkg/metrics"
	"polyglot/pkg/pipeline"
)

// UnmatchedRoute labels requests no route matched.
const UnmatchedRoute = "unmatched"

// Metrics returns a stage recording request count and latency once the response is written.
func Metrics(m *metrics.HTTPMetrics) pipeline.Stage {
	return pipeline.Stage{
		Name: "metrics",
		Enter: func(*pipeline.Exchange) (pipeline.Result, error) {
			return pipeline.Continue, nil
		},
		Finish: func(ex *pipeline.Exchange) {
			route := ex.Route
			if route == "" {
				route = UnmatchedRoute
			}
			m.Record(ex.Context(), ex.Request.Method, route, ex.Status(), ex.Elapsed())
		},
	}
}
