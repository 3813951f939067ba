package jsonv

import (
	"bytes"

	"github.com/goccy/go-json"
)

var _ json.Marshaler = (*Value)(nil)

// MarshalJSON encodes v compactly. Object members come out sorted by key,
// which is the display order; numbers keep their JSON.stringify form.
func (v *Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindObject:
		members := make(map[string]*Value, v.Len())
		for _, m := range v.Members() {
			members[m.Key] = m.Value
		}
		return encode(members)
	case KindArray:
		items := v.Items()
		if items == nil {
			items = []*Value{}
		}
		return encode(items)
	case KindNumber:
		return json.RawMessage(v.Literal()), nil
	default:
		return []byte(v.Literal()), nil
	}
}

func encode(x any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
