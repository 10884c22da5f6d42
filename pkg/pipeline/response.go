package pipeline

import (
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
)

// Encoder is implemented by JSON response payloads.
type Encoder interface {
	Encode(e *jx.Encoder)
}

// Response is the single response produced for a request.
type Response struct {
	// Status is the HTTP status code; ignored for delegated responses.
	Status int
	// ContentType overrides the default content type of the body.
	ContentType string

	json    Encoder
	text    string
	handler http.Handler
}

// JSON responds with a JSON encoded body.
func JSON(status int, body Encoder) *Response {
	return &Response{Status: status, json: body}
}

// Text responds with a plain text body.
func Text(status int, text string) *Response {
	return &Response{Status: status, text: text}
}

// Empty responds with a status code and no body.
func Empty(status int) *Response {
	return &Response{Status: status}
}

// Delegate hands the response over to h, which writes status, headers and body itself.
func Delegate(h http.Handler) *Response {
	return &Response{handler: h}
}

// IsDelegated reports whether the response is written by a foreign handler.
func (resp *Response) IsDelegated() bool {
	return resp.handler != nil
}

// Encode renders the JSON body, or nil when the response has none.
func (resp *Response) Encode() []byte {
	if resp.json == nil {
		return nil
	}
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	resp.json.Encode(e)

	return append([]byte(nil), e.Bytes()...)
}

func (resp *Response) writeTo(w http.ResponseWriter, r *http.Request) error {
	if resp.handler != nil {
		resp.handler.ServeHTTP(w, r)

		return nil
	}

	var (
		body        []byte
		contentType string
	)
	switch {
	case resp.json != nil:
		body = resp.Encode()
		contentType = "application/json; charset=utf-8"
	case resp.text != "":
		body = []byte(resp.text)
		contentType = "text/plain; charset=utf-8"
	}
	if resp.ContentType != "" {
		contentType = resp.ContentType
	}

	h := w.Header()
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(body) == 0 || r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(body)

	return err //nolint: wrapcheck
}
