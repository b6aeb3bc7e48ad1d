// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jtextio/jtext"
)

func TestWriter(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *jtext.Writer) error
		want  string
	}{
		{"Null", func(w *jtext.Writer) error { return w.Null() }, "null"},
		{"True", func(w *jtext.Writer) error { return w.Bool(true) }, "true"},
		{"False", func(w *jtext.Writer) error { return w.Bool(false) }, "false"},
		{"Int", func(w *jtext.Writer) error { return w.Int(-217) }, "-217"},
		{"Float", func(w *jtext.Writer) error { return w.Float(3.25) }, "3.25"},
		{"Number", func(w *jtext.Writer) error { return w.Number("1.0e-5") }, "1.0e-5"},
		{"String", func(w *jtext.Writer) error { return w.String("a \t b") }, `"a \t b"`},

		{"EmptyArray", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.EndArray())
		}, "[]"},
		{"EmptyObject", func(w *jtext.Writer) error {
			return errs(w.BeginObject(), w.EndObject())
		}, "{}"},
		{"Array", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.Int(1), w.String("two"), w.Bool(true), w.Null(), w.EndArray())
		}, `[1,"two",true,null]`},
		{"Object", func(w *jtext.Writer) error {
			return errs(
				w.BeginObject(),
				w.Name("a"), w.Int(1),
				w.Name("b"), w.BeginArray(), w.Int(2), w.Int(3), w.EndArray(),
				w.Name("c"), w.BeginObject(), w.EndObject(),
				w.EndObject(),
			)
		}, `{"a":1,"b":[2,3],"c":{}}`},
		{"NestedArrays", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.BeginArray(), w.EndArray(), w.BeginArray(), w.EndArray(), w.EndArray())
		}, "[[],[]]"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var sb strings.Builder
			w := jtext.NewWriter(&sb)
			if err := test.build(w); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if got := sb.String(); got != test.want {
				t.Errorf("Output: got %#q, want %#q", got, test.want)
			}
		})
	}
}

// errs returns the first non-nil error of its arguments.
func errs(es ...error) error {
	for _, err := range es {
		if err != nil {
			return err
		}
	}
	return nil
}

func TestWriter_indent(t *testing.T) {
	var sb strings.Builder
	w := jtext.NewWriter(&sb)
	w.SetIndent("  ")

	err := errs(
		w.BeginObject(),
		w.Name("a"), w.BeginArray(), w.Int(1), w.Int(2), w.EndArray(),
		w.Name("b"), w.Bool(true),
		w.Name("c"), w.BeginObject(), w.EndObject(),
		w.EndObject(),
		w.Close(),
	)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	const want = `{
  "a": [
    1,
    2
  ],
  "b": true,
  "c": {}
}`
	if got := sb.String(); got != want {
		t.Errorf("Output:\n%s\nWant:\n%s", got, want)
	}
}

func TestWriter_htmlSafe(t *testing.T) {
	var sb strings.Builder
	w := jtext.NewWriter(&sb)
	w.SetHTMLSafe(true)

	if err := errs(w.String("<a href='x'>&</a>"), w.Flush()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	const want = `"\u003ca href\u003d\u0027x\u0027\u003e\u0026\u003c/a\u003e"`
	if got := sb.String(); got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestWriter_sequenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *jtext.Writer) error
	}{
		{"DoubleName", func(w *jtext.Writer) error {
			return errs(w.BeginObject(), w.Name("a"), w.Name("b"))
		}},
		{"NameOutsideObject", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.Name("a"))
		}},
		{"NameAtTopLevel", func(w *jtext.Writer) error {
			return w.Name("a")
		}},
		{"ValueWithoutName", func(w *jtext.Writer) error {
			return errs(w.BeginObject(), w.Int(1))
		}},
		{"DanglingName", func(w *jtext.Writer) error {
			return errs(w.BeginObject(), w.Name("a"), w.EndObject())
		}},
		{"MismatchedClose", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.EndObject())
		}},
		{"CloseWithoutOpen", func(w *jtext.Writer) error {
			return w.EndArray()
		}},
		{"SecondTopLevelValue", func(w *jtext.Writer) error {
			return errs(w.Int(1), w.Int(2))
		}},
		{"CloseEmpty", func(w *jtext.Writer) error {
			return w.Close()
		}},
		{"CloseIncomplete", func(w *jtext.Writer) error {
			return errs(w.BeginArray(), w.Close())
		}},
		{"WriteAfterClose", func(w *jtext.Writer) error {
			return errs(w.Int(1), w.Close(), w.Int(2))
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := jtext.NewWriter(&strings.Builder{})
			err := test.build(w)
			var qerr *jtext.SequenceError
			if !errors.As(err, &qerr) {
				t.Errorf("Write: got %v, want *SequenceError", err)
			}
		})
	}
}

func TestWriter_nonFinite(t *testing.T) {
	var nerr *jtext.NumericError

	w := jtext.NewWriter(&strings.Builder{})
	if err := w.Float(math.NaN()); !errors.As(err, &nerr) {
		t.Errorf("Float(NaN): got %v, want *NumericError", err)
	}
	if err := w.Float(math.Inf(1)); !errors.As(err, &nerr) {
		t.Errorf("Float(+Inf): got %v, want *NumericError", err)
	}
	if err := w.Number("NaN"); !errors.As(err, &nerr) {
		t.Errorf("Number(NaN): got %v, want *NumericError", err)
	}

	var sb strings.Builder
	w = jtext.NewWriter(&sb)
	w.SetMode(jtext.Lenient)
	err := errs(
		w.BeginArray(),
		w.Float(math.NaN()), w.Float(math.Inf(1)), w.Float(math.Inf(-1)),
		w.Number("Infinity"),
		w.EndArray(),
		w.Close(),
	)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	const want = "[NaN,Infinity,-Infinity,Infinity]"
	if got := sb.String(); got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestWriter_numberText(t *testing.T) {
	good := []string{"0", "-0", "12", "-12", "0.5", "1.25e3", "1E-2", "9007199254740993", "1e+10"}
	for _, text := range good {
		var sb strings.Builder
		w := jtext.NewWriter(&sb)
		if err := errs(w.Number(text), w.Close()); err != nil {
			t.Errorf("Number(%q) failed: %v", text, err)
		} else if got := sb.String(); got != text {
			t.Errorf("Number(%q): got %#q", text, got)
		}
	}

	bad := []string{"", "-", "01", "1.", ".5", "1e", "1e+", "--1", "0x10", "1.2.3", "+1", "abc"}
	for _, text := range bad {
		w := jtext.NewWriter(&strings.Builder{})
		var nerr *jtext.NumericError
		if err := w.Number(text); !errors.As(err, &nerr) {
			t.Errorf("Number(%q): got %v, want *NumericError", text, err)
		}
	}
}

func TestWriter_lenientTopLevel(t *testing.T) {
	var sb strings.Builder
	w := jtext.NewWriter(&sb)
	w.SetMode(jtext.Lenient)
	if err := errs(w.Int(1), w.Int(2), w.Bool(true), w.Close()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	const want = "1\n2\ntrue"
	if got := sb.String(); got != want {
		t.Errorf("Output: got %#q, want %#q", got, want)
	}
}

func TestWriter_roundTrip(t *testing.T) {
	// Tokens read from a document and replayed through a Writer reproduce
	// the document, modulo whitespace.
	const input = `{"a":[2,true,false,null,"b",{"c":"d"},[3]],"e":1.5e-8}`

	r := newReader(input, jtext.Strict)
	var sb strings.Builder
	w := jtext.NewWriter(&sb)

	for {
		kind, err := r.Peek()
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		switch kind {
		case jtext.BeginArray:
			err = errs(r.BeginArray(), w.BeginArray())
		case jtext.EndArray:
			err = errs(r.EndArray(), w.EndArray())
		case jtext.BeginObject:
			err = errs(r.BeginObject(), w.BeginObject())
		case jtext.EndObject:
			err = errs(r.EndObject(), w.EndObject())
		case jtext.Name:
			var name string
			if name, err = r.NextName(); err == nil {
				err = w.Name(name)
			}
		case jtext.String:
			var s string
			if s, err = r.NextString(); err == nil {
				err = w.String(s)
			}
		case jtext.Number:
			var text string
			if text, err = r.NextNumber(); err == nil {
				err = w.Number(text)
			}
		case jtext.Bool:
			var b bool
			if b, err = r.NextBool(); err == nil {
				err = w.Bool(b)
			}
		case jtext.Null:
			if err = r.NextNull(); err == nil {
				err = w.Null()
			}
		case jtext.EndDocument:
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if got := sb.String(); got != input {
				t.Fatalf("Round trip: got %#q, want %#q", got, input)
			}
			return
		}
		if err != nil {
			t.Fatalf("Copy failed: %v", err)
		}
	}
}
