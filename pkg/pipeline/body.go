package pipeline

import (
	"bytes"
	"net/url"
	"sort"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Body is a decoded request body: a mapping from field name to raw JSON value.
type Body map[string]jx.Raw

// ErrNotObject is returned when a JSON body is valid but not an object.
var ErrNotObject = errors.New("body is not a JSON object")

// ParseJSON decodes a JSON object. Blank input yields an empty Body; duplicate
// keys keep the last value.
func ParseJSON(data []byte) (Body, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Body{}, nil
	}
	if err := jx.DecodeBytes(data).Validate(); err != nil {
		return nil, errors.Wrap(err, "validate")
	}

	d := jx.DecodeBytes(data)
	if d.Next() != jx.Object {
		return nil, ErrNotObject
	}

	body := Body{}
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		raw, err := d.Raw()
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		body[string(key)] = append(jx.Raw(nil), bytes.TrimSpace(raw)...)

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode object")
	}

	return body, nil
}

// FromValues converts form values: a single value becomes a JSON string and
// repeated keys become an array of strings.
func FromValues(values url.Values) Body {
	body := make(Body, len(values))
	for k, vs := range values {
		var e jx.Encoder
		if len(vs) == 1 {
			e.Str(vs[0])
		} else {
			e.ArrStart()
			for _, v := range vs {
				e.Str(v)
			}
			e.ArrEnd()
		}
		body[k] = jx.Raw(e.Bytes())
	}

	return body
}

// Str returns the string stored under key. Missing keys and non-string values report false.
func (b Body) Str(key string) (string, bool) {
	raw, ok := b[key]
	if !ok || raw.Type() != jx.String {
		return "", false
	}
	s, err := jx.DecodeBytes(raw).Str()
	if err != nil {
		return "", false
	}

	return s, true
}

// Keys returns the field names in lexical order.
func (b Body) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Encode writes the body as a JSON object with keys in lexical order.
func (b Body) Encode(e *jx.Encoder) {
	e.ObjStart()
	for _, k := range b.Keys() {
		e.FieldStart(k)
		e.Raw(b[k])
	}
	e.ObjEnd()
}
