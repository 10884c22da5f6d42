package handler

import (
	"net/http"
	"polyglot/pkg/domain"
	"polyglot/pkg/pipeline"
)

// Data serves the sample item set.
func (h *Handler) Data(*pipeline.Exchange) (*pipeline.Response, error) {
	return pipeline.JSON(http.StatusOK, dataPayload{
		Message:   "Data retrieved successfully",
		Items:     domain.Items(),
		Timestamp: h.now(),
	}), nil
}

// Languages serves the supported languages.
func (h *Handler) Languages(*pipeline.Exchange) (*pipeline.Response, error) {
	return pipeline.JSON(http.StatusOK, languagesPayload{Languages: domain.Languages()}), nil
}

// Echo returns the decoded request body.
func (h *Handler) Echo(ex *pipeline.Exchange) (*pipeline.Response, error) {
	return pipeline.JSON(http.StatusOK, echoPayload{
		Received:  ex.Body,
		Timestamp: h.now(),
	}), nil
}
