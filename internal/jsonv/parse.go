package jsonv

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// ErrSyntax is returned when the input is not a single valid JSON value
var ErrSyntax = errors.New("invalid JSON")

// frame is one open container on the parse stack
type frame struct {
	value   *Value
	seen    map[string]int
	key     string
	haveKey bool
}

// Parse decodes raw JSON text into a Value. Object member order is kept as
// written. Nesting is handled with an explicit stack, so arbitrarily deep
// documents do not grow the goroutine stack. Numbers beyond the float64
// range are accepted and become infinite.
func Parse(raw []byte) (*Value, error) {
	// goccy's Valid and Compact run strconv.ParseFloat on every number and
	// reject 1e400; the standard scanner checks grammar only.
	if !stdjson.Valid(raw) {
		return nil, ErrSyntax
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var (
		root  *Value
		stack []*frame
	)

	attach := func(v *Value) {
		if len(stack) == 0 {
			root = v
			return
		}
		top := stack[len(stack)-1]
		if top.value.kind == KindObject {
			top.value.setMember(top.seen, top.key, v)
			top.haveKey = false
			return
		}
		top.value.items = append(top.value.items, v)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		if root != nil && len(stack) == 0 {
			return nil, fmt.Errorf("%w: data after top-level value", ErrSyntax)
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				v := &Value{kind: KindObject}
				attach(v)
				stack = append(stack, &frame{value: v, seen: make(map[string]int)})
			case '[':
				v := &Value{kind: KindArray}
				attach(v)
				stack = append(stack, &frame{value: v})
			case '}', ']':
				if len(stack) == 0 {
					return nil, ErrSyntax
				}
				stack = stack[:len(stack)-1]
			}
		case string:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.value.kind == KindObject && !top.haveKey {
					top.key = t
					top.haveKey = true
					continue
				}
			}
			attach(String(t))
		case json.Number:
			v, err := Number(t.String())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
			}
			attach(v)
		case bool:
			attach(Bool(t))
		case nil:
			attach(Null())
		default:
			return nil, fmt.Errorf("%w: unexpected token %T", ErrSyntax, tok)
		}
	}

	if root == nil || len(stack) != 0 {
		return nil, ErrSyntax
	}
	return root, nil
}
