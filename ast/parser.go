// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package ast

import (
	"errors"
	"io"

	"github.com/jtextio/jtext"
)

// ErrExtraInput is reported by ParseSingle when the input contains data
// after the first value.
var ErrExtraInput = errors.New("extra input after value")

// Parse parses and returns the next JSON value from r. An input containing
// no value yields Null; use ParseOne to distinguish a missing value from an
// explicit null. Values are built on an explicit work stack, so the depth of
// the input is limited only by available memory.
func Parse(r *jtext.Reader) (Value, error) {
	v, err := ParseOne(r)
	if err == io.EOF {
		return Null{}, nil
	}
	return v, err
}

// ParseOne parses and returns the next JSON value from r. If no value
// remains, ParseOne returns io.EOF. Input remaining after the value is left
// unread, so repeated calls consume a lenient multi-value stream one value
// at a time.
func ParseOne(r *jtext.Reader) (Value, error) {
	// Each frame is a container under construction. A key read for an object
	// frame is held in the frame until its value arrives.
	type frame struct {
		arr Array
		obj *Object
		key string
	}
	var stack []*frame

	for {
		kind, err := r.Peek()
		if err != nil {
			return nil, err
		}

		var v Value
		switch kind {
		case jtext.BeginArray:
			if err := r.BeginArray(); err != nil {
				return nil, err
			}
			stack = append(stack, &frame{})
			continue

		case jtext.BeginObject:
			if err := r.BeginObject(); err != nil {
				return nil, err
			}
			stack = append(stack, &frame{obj: new(Object)})
			continue

		case jtext.Name:
			key, err := r.NextName()
			if err != nil {
				return nil, err
			}
			top := stack[len(stack)-1]
			top.key = key
			continue

		case jtext.EndArray:
			if err := r.EndArray(); err != nil {
				return nil, err
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.arr == nil {
				v = Array{}
			} else {
				v = top.arr
			}

		case jtext.EndObject:
			if err := r.EndObject(); err != nil {
				return nil, err
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v = top.obj

		case jtext.String:
			s, err := r.NextString()
			if err != nil {
				return nil, err
			}
			v = String(s)

		case jtext.Number:
			text, err := r.NextNumber()
			if err != nil {
				return nil, err
			}
			v = NewNumber(text)

		case jtext.Bool:
			b, err := r.NextBool()
			if err != nil {
				return nil, err
			}
			v = Bool(b)

		case jtext.Null:
			if err := r.NextNull(); err != nil {
				return nil, err
			}
			v = Null{}

		default: // EndDocument
			return nil, io.EOF
		}

		if len(stack) == 0 {
			return v, nil
		}
		top := stack[len(stack)-1]
		if top.obj != nil {
			// Duplicate keys keep the position of the first occurrence and
			// the value of the last.
			top.obj.Set(top.key, v)
		} else {
			top.arr = append(top.arr, v)
		}
	}
}

// ParseSingle parses exactly one JSON value from r using the strict grammar,
// and reports ErrExtraInput if anything besides whitespace follows it. If r
// is empty, ParseSingle returns io.EOF.
func ParseSingle(r io.Reader) (Value, error) {
	rd := jtext.NewReader(r)
	v, err := ParseOne(rd)
	if err != nil {
		return nil, err
	}
	if kind, err := rd.Peek(); err != nil {
		return v, errors.Join(ErrExtraInput, err)
	} else if kind != jtext.EndDocument {
		return v, ErrExtraInput
	}
	return v, nil
}
