// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/jtextio/jtext"
)

// Write replays v through w and flushes w. Containers are walked on an
// explicit work stack, so the depth of the value is limited only by
// available memory. Settings on w (indentation, mode, HTML-safe escaping)
// apply to the output as usual.
func Write(v Value, w *jtext.Writer) error {
	if v == nil {
		return errors.New("nil value")
	}

	// Each frame is a container whose first next elements are already
	// written.
	type frame struct {
		arr  Array
		obj  *Object
		next int
	}
	var stack []*frame
	cur := v

	for {
		switch t := cur.(type) {
		case Null:
			if err := w.Null(); err != nil {
				return err
			}
		case Bool:
			if err := w.Bool(bool(t)); err != nil {
				return err
			}
		case String:
			if err := w.String(string(t)); err != nil {
				return err
			}
		case Number:
			if err := w.Number(t.Text()); err != nil {
				return err
			}
		case Array:
			if err := w.BeginArray(); err != nil {
				return err
			}
			stack = append(stack, &frame{arr: t})
		case *Object:
			if t == nil {
				return errors.New("nil object")
			}
			if err := w.BeginObject(); err != nil {
				return err
			}
			stack = append(stack, &frame{obj: t})
		default:
			return fmt.Errorf("invalid value %T", cur)
		}

		cur = nil
		for cur == nil {
			if len(stack) == 0 {
				return w.Flush()
			}
			top := stack[len(stack)-1]
			if top.obj != nil {
				if top.next < len(top.obj.Members) {
					m := top.obj.Members[top.next]
					top.next++
					if m == nil {
						return errors.New("nil member")
					} else if m.Value == nil {
						return fmt.Errorf("nil value for member %q", m.Key)
					}
					if err := w.Name(m.Key); err != nil {
						return err
					}
					cur = m.Value
				} else if err := w.EndObject(); err != nil {
					return err
				} else {
					stack = stack[:len(stack)-1]
				}
			} else {
				if top.next < len(top.arr) {
					cur = top.arr[top.next]
					top.next++
					if cur == nil {
						return fmt.Errorf("nil value at index %d", top.next-1)
					}
				} else if err := w.EndArray(); err != nil {
					return err
				} else {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}
}
