// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

// Package jpath implements a minimal JSONPath expression parser covering the
// subset of the notation emitted by the jtext Reader's Path method, and an
// evaluator that applies a parsed expression to a document tree.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jtextio/jtext/ast"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" "'" QTEXT "'" "]"
  step = "[" INDEX "]"
  name = WORD

  WORD = RE `\w+`
 QTEXT = RE `([^']|\\')*`
 INDEX = RE `-?\d+`
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps []Step
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse parses s as a JSONPath expression, and panics if the parse
// fails. It is intended for expressions fixed at compile time.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic("jpath: " + err.Error())
	}
	return e
}

func (e Expr) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, s := range e {
		switch s.Op {
		case Member:
			sb.WriteByte('.')
			sb.WriteString(s.Arg)
		case QName:
			fmt.Fprintf(&sb, "['%s']", s.Arg)
		case Index:
			fmt.Fprintf(&sb, "[%s]", s.Arg)
		}
	}
	return sb.String()
}

// Apply evaluates e against v and returns the value it designates. A name
// step resolves against the named member of an object; an index step
// resolves against an element of an array, counting from the end when
// negative. Apply fails when a step does not resolve.
func (e Expr) Apply(v ast.Value) (ast.Value, error) {
	cur := v
	for _, s := range e {
		switch s.Op {
		case Member, QName:
			obj, ok := cur.(*ast.Object)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %T with %q", cur, s.Arg)
			}
			m := obj.Find(s.Arg)
			if m == nil {
				return nil, fmt.Errorf("key %q not found", s.Arg)
			}
			cur = m.Value

		case Index:
			arr, ok := cur.(ast.Array)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %T with [%s]", cur, s.Arg)
			}
			i, err := strconv.Atoi(s.Arg)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q", s.Arg)
			}
			if i < 0 {
				i += len(arr)
			}
			if i < 0 || i >= len(arr) {
				return nil, fmt.Errorf("array index %s out of bounds (n=%d)", s.Arg, len(arr))
			}
			cur = arr[i]

		default:
			return nil, fmt.Errorf("invalid step %v", s.Op)
		}
	}
	return cur, nil
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		m := wordRE.FindStringSubmatch(t)
		if m == nil {
			return Step{}, s, errors.New("invalid .name")
		}
		return Step{Op: Member, Arg: m[1]}, t[len(m[0]):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var out Step
		if m := quoteRE.FindStringSubmatch(t); m != nil {
			out = Step{Op: QName, Arg: m[1]}
			t = t[len(m[0]):]
		} else if m := indexRE.FindStringSubmatch(t); m != nil {
			out = Step{Op: Index, Arg: m[1]}
			t = t[len(m[0]):]
		} else {
			return Step{}, s, errors.New("invalid bracket step")
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return Step{}, t, errors.New("missing close bracket")
		}
		return out, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup (.)
	Index             // array index lookup
	QName             // quoted name lookup
)

var opText = map[Op]string{
	Invalid: "invalid",
	Member:  ".",
	Index:   "index",
	QName:   "qname",
}

func (o Op) String() string {
	if s, ok := opText[o]; ok {
		return s
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op  Op
	Arg string
}
