package pipeline

import (
	"net/http"

	"github.com/go-faster/jx"
)

// NotFoundBody is rendered for requests no route matched.
type NotFoundBody struct {
	Path string
}

// Encode implements Encoder.
func (b NotFoundBody) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("error")
	e.Str("Not Found")
	e.FieldStart("path")
	e.Str(b.Path)
	e.ObjEnd()
}

// NotFound is the fallback stage: it always responds 404 with the original request path.
func NotFound() Stage {
	return Stage{
		Name: "not_found",
		Enter: func(ex *Exchange) (Result, error) {
			return ex.Reply(JSON(http.StatusNotFound, NotFoundBody{Path: ex.Request.URL.Path}))
		},
	}
}
