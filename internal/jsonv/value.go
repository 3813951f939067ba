// Package jsonv holds the parsed JSON value model used by the tree builder,
// together with the value classifier and canonical escaping helpers.
package jsonv

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime kind of a JSON value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsCollection reports whether the kind is an object or an array
func (k Kind) IsCollection() bool {
	return k == KindObject || k == KindArray
}

// Member is a single object property in insertion order
type Member struct {
	Key   string
	Value *Value
}

// Value is an immutable JSON value. The zero value is null.
type Value struct {
	kind    Kind
	text    string // string content, or canonical number text
	number  float64
	boolean bool
	members []Member
	items   []*Value
}

// Null returns a null value
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a boolean value
func Bool(b bool) *Value { return &Value{kind: KindBool, boolean: b} }

// String returns a string value
func String(s string) *Value { return &Value{kind: KindString, text: s} }

// Float returns a number value with canonical text
func Float(f float64) *Value {
	return &Value{kind: KindNumber, number: f, text: FormatNumber(f)}
}

// Number parses a JSON number literal into a value. Literals outside the
// float64 range become infinite or zero, as in JSON.parse.
func Number(literal string) (*Value, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	return Float(f), nil
}

// Array returns an array value holding items in order
func Array(items ...*Value) *Value {
	return &Value{kind: KindArray, items: items}
}

// Object returns an object value holding members in order.
// A repeated key keeps its first position and takes the last value.
func Object(members ...Member) *Value {
	v := &Value{kind: KindObject}
	seen := make(map[string]int, len(members))
	for _, m := range members {
		v.setMember(seen, m.Key, m.Value)
	}
	return v
}

func (v *Value) setMember(seen map[string]int, key string, val *Value) {
	if i, ok := seen[key]; ok {
		v.members[i].Value = val
		return
	}
	seen[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Kind returns the value's kind
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Str returns the string content of a string value
func (v *Value) Str() string {
	if v.Kind() != KindString {
		return ""
	}
	return v.text
}

// Float64 returns the numeric value of a number
func (v *Value) Float64() float64 {
	if v.Kind() != KindNumber {
		return 0
	}
	return v.number
}

// Boolean returns the value of a boolean
func (v *Value) Boolean() bool {
	return v.Kind() == KindBool && v.boolean
}

// Len returns the child count of a collection, or 0 for primitives
func (v *Value) Len() int {
	switch v.Kind() {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Members returns object members in insertion order
func (v *Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}
	out := make([]Member, len(v.members))
	copy(out, v.members)
	return out
}

// Get returns the member value for key
func (v *Value) Get(key string) (*Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Items returns array elements in order
func (v *Value) Items() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	out := make([]*Value, len(v.items))
	copy(out, v.items)
	return out
}

// Item returns the element at index i
func (v *Value) Item(i int) (*Value, bool) {
	if v.Kind() != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Literal returns the canonical JSON text of a primitive: escaped and quoted
// strings, canonical numbers, true/false and null. Collections return "".
func (v *Value) Literal() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNumber:
		return v.text
	case KindString:
		return Quote(v.text)
	default:
		return ""
	}
}

// FormatNumber renders f the way JSON.stringify does
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
