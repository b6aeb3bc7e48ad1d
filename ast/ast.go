// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

// Package ast defines a document tree for JSON values, a builder that
// constructs trees from a jtext.Reader, and a replay function that writes
// trees through a jtext.Writer.
package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jtextio/jtext"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON renders the value as compact JSON text.
	JSON() string
}

// An Object is a collection of key-value members.
type Object struct {
	Members []*Member
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Set sets the value of the member of o with the given key, adding a new
// member at the end if no member has that key. The member keeps its original
// position when it already exists.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	o.Members = append(o.Members, &Member{Key: key, Value: v})
}

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o.Members[0].JSON())
	for _, m := range o.Members[1:] {
		sb.WriteByte(',')
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o *Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o.Members)) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// JSON satisfies the Value interface.
func (m *Member) JSON() string {
	k := jtext.Quote(m.Key)
	v := m.Value.JSON()
	buf := make([]byte, len(k)+len(v)+1)
	n := copy(buf, k)
	buf[n] = ':'
	copy(buf[n+1:], v)
	return string(buf)
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Array is a sequence of values.
type Array []Value

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a[0].JSON())
	for _, v := range a[1:] {
		sb.WriteByte(',')
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Number is a numeric value. It retains the lexical form the number had in
// its source document, so that values outside the range of float64 are not
// silently corrupted by conversion.
type Number struct {
	text string
}

// NewNumber constructs a Number from its lexical text. The text is not
// validated; writing an invalid number through a Writer will fail there.
func NewNumber(text string) Number { return Number{text: text} }

// Int constructs a Number from an int64.
func Int(z int64) Number { return Number{text: strconv.FormatInt(z, 10)} }

// Float constructs a Number from a float64.
func Float(f float64) Number {
	return Number{text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Text returns the lexical text of n.
func (n Number) Text() string { return n.text }

// Int64 converts n to an int64, or reports a *jtext.NumericError if the
// value cannot be exactly represented.
func (n Number) Int64() (int64, error) { return jtext.Int64(n.text) }

// Float64 converts n to a float64.
func (n Number) Float64() (float64, error) { return jtext.Float64(n.text) }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.text }

func (n Number) String() string { return n.text }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// A String is a string value.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jtext.Quote(string(s)) }

// Null represents the JSON null constant.
type Null struct{}

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// ToValue converts a string, bool, nil, integer, float, []any,
// map[string]any, or Value into a Value. Map keys are emitted in sorted
// order. It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := &Object{Members: make([]*Member, len(keys))}
		for i, key := range keys {
			out.Members[i] = &Member{Key: key, Value: ToValue(t[key])}
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}
