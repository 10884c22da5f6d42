package controller

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"polyglot/pkg/pipeline"
	"polyglot/pkg/serrors"
	"strings"
)

// DefaultBodyLimit is the largest request body accepted when no limit is configured.
const DefaultBodyLimit = 100 << 10

// DecodeBody returns a stage that decodes JSON and URL-encoded form bodies
// into Exchange.Body. Other content types and empty bodies leave it empty.
// Bodies larger than limit bytes are rejected with 413.
func DecodeBody(limit int64) pipeline.Stage {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return pipeline.Stage{
		Name: "decode_body",
		Enter: func(ex *pipeline.Exchange) (pipeline.Result, error) {
			r := ex.Request
			if r.Body == nil || r.Body == http.NoBody {
				return pipeline.Continue, nil
			}

			mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			isJSON := mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
			isForm := mediaType == "application/x-www-form-urlencoded"
			if !isJSON && !isForm {
				return pipeline.Continue, nil
			}

			data, err := readBody(ex.Context(), r.Body, limit+1)
			if err != nil {
				return pipeline.Continue, err
			}
			if int64(len(data)) > limit {
				return pipeline.Continue, serrors.With(serrors.ErrPayloadTooLarge, "request entity too large")
			}

			if isForm {
				values, err := url.ParseQuery(string(data))
				if err != nil {
					return pipeline.Continue, serrors.Wrap(serrors.ErrBadRequest, err, "invalid form body")
				}
				ex.Body = pipeline.FromValues(values)

				return pipeline.Continue, nil
			}

			body, err := pipeline.ParseJSON(data)
			if err != nil {
				return pipeline.Continue, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
			}
			ex.Body = body

			return pipeline.Continue, nil
		},
	}
}

type readResult struct {
	data []byte
	err  error
}

// readBody reads at most n bytes from body. With a deadline on ctx it gives
// up once the deadline passes.
func readBody(ctx context.Context, body io.Reader, n int64) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		data, err := io.ReadAll(io.LimitReader(body, n))
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
		}

		return data, nil
	}

	// the reader goroutine ends when the server closes the body
	ch := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(body, n))
		ch <- readResult{data: data, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, res.err, "could not read request body")
		}

		return res.data, nil
	case <-ctx.Done():
		return nil, TimedOut(ctx)
	}
}
