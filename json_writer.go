package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they
// were appended in. The first marshaling error sticks and is returned by
// MarshalJSON. Its zero value is an empty object.
type jsonObjectWriter struct {
	fields bytes.Buffer
	err    error
}

// Append adds key with value marshaled by encoding/json.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return w
	}
	if w.fields.Len() > 0 {
		w.fields.WriteByte(',')
	}
	name, _ := json.Marshal(key)
	w.fields.Write(name)
	w.fields.WriteByte(':')
	w.fields.Write(raw)
	return w
}

// Optional is Append, skipped when value is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.fields.Len()+2)
	out = append(out, '{')
	out = append(out, w.fields.Bytes()...)
	return append(out, '}'), nil
}
