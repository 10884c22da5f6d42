package handler

import (
	"net/http"
	"polyglot/pkg/domain"
	"polyglot/pkg/logger"
	"polyglot/pkg/pipeline"

	"go.uber.org/zap"
)

// TranslateFields lists the body fields the translate endpoint requires.
var TranslateFields = []string{"text", "from", "to"} //nolint: gochecknoglobals

// Translate looks the text up in the mock translation table. A missing or
// empty text, from or to field is answered with 400 and the required list.
func (h *Handler) Translate(ex *pipeline.Exchange) (*pipeline.Response, error) {
	values := make(map[string]string, len(TranslateFields))
	for _, field := range TranslateFields {
		v, ok := ex.Body.Str(field)
		if !ok || v == "" {
			return pipeline.JSON(http.StatusBadRequest, missingFieldsPayload{
				Message:  "Missing required fields",
				Required: TranslateFields,
			}), nil
		}
		values[field] = v
	}

	text, from, to := values["text"], values["from"], values["to"]
	translation, found := domain.Translate(from, to, text)
	if !found {
		logger.Debug(ex.Context(), "no translation entry",
			zap.String("from", from), zap.String("to", to))
	}

	return pipeline.JSON(http.StatusOK, translationPayload{
		Original:    text,
		Translation: translation,
		From:        from,
		To:          to,
		Timestamp:   h.now(),
	}), nil
}
