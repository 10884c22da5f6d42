package handler

import (
	"polyglot/pkg/clock"
	"polyglot/pkg/domain"
	"polyglot/pkg/pipeline"
	"time"

	"github.com/go-faster/jx"
)

type healthPayload struct {
	Status string
	Uptime float64
}

func (p healthPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("status")
	e.Str(p.Status)
	e.FieldStart("uptime")
	e.Float64(p.Uptime)
	e.ObjEnd()
}

type statusPayload struct {
	Status      string
	Timestamp   time.Time
	Uptime      int64
	Version     string
	Environment string
}

func (p statusPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("status")
	e.Str(p.Status)
	e.FieldStart("timestamp")
	e.Str(clock.Format(p.Timestamp))
	e.FieldStart("uptime")
	e.Int64(p.Uptime)
	e.FieldStart("version")
	e.Str(p.Version)
	e.FieldStart("environment")
	e.Str(p.Environment)
	e.ObjEnd()
}

type dataPayload struct {
	Message   string
	Items     []domain.Item
	Timestamp time.Time
}

func (p dataPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("message")
	e.Str(p.Message)
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range p.Items {
		e.ObjStart()
		e.FieldStart("id")
		e.Int(item.ID)
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("category")
		e.Str(item.Category)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("meta")
	e.ObjStart()
	e.FieldStart("count")
	e.Int(len(p.Items))
	e.FieldStart("timestamp")
	e.Str(clock.Format(p.Timestamp))
	e.ObjEnd()
	e.ObjEnd()
}

type languagesPayload struct {
	Languages []domain.Language
}

func (p languagesPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("languages")
	e.ArrStart()
	for _, l := range p.Languages {
		e.ObjStart()
		e.FieldStart("code")
		e.Str(l.Code)
		e.FieldStart("name")
		e.Str(l.Name)
		e.FieldStart("nativeName")
		e.Str(l.NativeName)
		e.FieldStart("speakers")
		e.Int(l.Speakers)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("count")
	e.Int(len(p.Languages))
	e.ObjEnd()
}

type echoPayload struct {
	Received  pipeline.Body
	Timestamp time.Time
}

func (p echoPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("received")
	p.Received.Encode(e)
	e.FieldStart("timestamp")
	e.Str(clock.Format(p.Timestamp))
	e.ObjEnd()
}

type missingFieldsPayload struct {
	Message  string
	Required []string
}

func (p missingFieldsPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("error")
	e.Str(p.Message)
	e.FieldStart("required")
	e.ArrStart()
	for _, field := range p.Required {
		e.Str(field)
	}
	e.ArrEnd()
	e.ObjEnd()
}

type translationPayload struct {
	Original    string
	Translation string
	From        string
	To          string
	Timestamp   time.Time
}

func (p translationPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("original")
	e.Str(p.Original)
	e.FieldStart("translation")
	e.Str(p.Translation)
	e.FieldStart("from")
	e.Str(p.From)
	e.FieldStart("to")
	e.Str(p.To)
	e.FieldStart("timestamp")
	e.Str(clock.Format(p.Timestamp))
	e.ObjEnd()
}
