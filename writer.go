// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jtextio/jtext/internal/escape"

	"go4.org/mem"
)

// A Writer emits a stream of JSON elements to an output sink. Calls mirror
// the consuming methods of a Reader; the Writer validates their order
// against its own scope stack and fails with a [*SequenceError] on misuse.
// Output is buffered: call Flush or Close to ensure it reaches the sink.
//
// A Writer is bound to a single output stream, maintains unsynchronized
// internal state, and must not be shared between goroutines. It never closes
// the underlying sink.
type Writer struct {
	w        *bufio.Writer
	mode     Mode
	htmlSafe bool

	indent    string
	separator string // the name separator: ":" compact, ": " indented

	stack        []scope
	deferredName string
	hasName      bool
}

// NewWriter constructs a Writer that emits compact strict-mode JSON to w.
func NewWriter(w io.Writer) *Writer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Writer{
		w:         bw,
		separator: ":",
		stack:     []scope{scopeEmptyDocument},
	}
}

// SetIndent configures pretty-printing. A non-empty indent string makes the
// Writer begin each element on its own line, indented by one copy of the
// string per nesting level. The empty string restores compact output.
func (w *Writer) SetIndent(indent string) {
	w.indent = indent
	if indent == "" {
		w.separator = ":"
	} else {
		w.separator = ": "
	}
}

// SetMode configures the grammar the Writer emits. The default is Strict.
// In Lenient mode the Writer permits non-finite number literals and more
// than one top-level value.
func (w *Writer) SetMode(m Mode) { w.mode = m }

// SetHTMLSafe configures the Writer to escape the characters <, >, &, = and
// ' in strings, making the output safe to embed in HTML.
func (w *Writer) SetHTMLSafe(ok bool) { w.htmlSafe = ok }

// BeginArray opens a new array.
func (w *Writer) BeginArray() error { return w.open(scopeEmptyArray, '[') }

// EndArray closes the current array.
func (w *Writer) EndArray() error { return w.close(scopeEmptyArray, scopeNonemptyArray, ']') }

// BeginObject opens a new object.
func (w *Writer) BeginObject() error { return w.open(scopeEmptyObject, '{') }

// EndObject closes the current object.
func (w *Writer) EndObject() error { return w.close(scopeEmptyObject, scopeNonemptyObject, '}') }

// Name writes the name of the next object member. A value must follow
// before another name or the end of the object.
func (w *Writer) Name(name string) error {
	if w.hasName {
		return &SequenceError{Op: "Name", Message: "already wrote a name, expecting a value"}
	}
	switch w.top() {
	case scopeEmptyObject, scopeNonemptyObject:
		w.deferredName = name
		w.hasName = true
		return nil
	case scopeClosed:
		return &SequenceError{Op: "Name", Message: "writer is closed"}
	}
	return &SequenceError{Op: "Name", Message: "no object is open"}
}

// String writes a string value.
func (w *Writer) String(s string) error {
	if err := w.beforeValue("String"); err != nil {
		return err
	}
	return w.quoted(s)
}

// Bool writes a boolean value.
func (w *Writer) Bool(b bool) error {
	if err := w.beforeValue("Bool"); err != nil {
		return err
	}
	if b {
		_, err := w.w.WriteString("true")
		return err
	}
	_, err := w.w.WriteString("false")
	return err
}

// Null writes a null value.
func (w *Writer) Null() error {
	if err := w.beforeValue("Null"); err != nil {
		return err
	}
	_, err := w.w.WriteString("null")
	return err
}

// Int writes an integer value.
func (w *Writer) Int(v int64) error {
	if err := w.beforeValue("Int"); err != nil {
		return err
	}
	_, err := w.w.WriteString(strconv.FormatInt(v, 10))
	return err
}

// Float writes a floating-point value. In Strict mode a non-finite value
// fails with a [*NumericError], since strict JSON has no spelling for it; in
// Lenient mode it is written as NaN, Infinity or -Infinity.
func (w *Writer) Float(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if w.mode != Lenient {
			return &NumericError{
				Text: strconv.FormatFloat(v, 'g', -1, 64),
				Kind: "strict JSON number",
			}
		}
		if err := w.beforeValue("Float"); err != nil {
			return err
		}
		_, err := w.w.WriteString(nonFiniteLiteral(v))
		return err
	}
	if err := w.beforeValue("Float"); err != nil {
		return err
	}
	_, err := w.w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	return err
}

func nonFiniteLiteral(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return "NaN"
}

// Number writes a number from its lexical text, preserving it exactly. The
// text must satisfy the JSON number grammar; in Lenient mode the literals
// NaN, Infinity and -Infinity are also permitted. Anything else fails with a
// [*NumericError].
func (w *Writer) Number(text string) error {
	switch text {
	case "NaN", "Infinity", "-Infinity":
		if w.mode != Lenient {
			return &NumericError{Text: text, Kind: "strict JSON number"}
		}
	default:
		if !isValidNumber(text) {
			return &NumericError{Text: text, Kind: "JSON number literal"}
		}
	}
	if err := w.beforeValue("Number"); err != nil {
		return err
	}
	_, err := w.w.WriteString(text)
	return err
}

// Flush writes any buffered output to the underlying sink.
func (w *Writer) Flush() error { return w.w.Flush() }

// Close flushes the Writer and marks it unusable. A document with unclosed
// arrays or objects, or no value at all, fails with a [*SequenceError]. The
// underlying sink is not closed.
func (w *Writer) Close() error {
	if len(w.stack) != 1 || w.stack[0] != scopeNonemptyDocument || w.hasName {
		return &SequenceError{Op: "Close", Message: "incomplete document"}
	}
	w.stack[0] = scopeClosed
	return w.w.Flush()
}

func (w *Writer) top() scope { return w.stack[len(w.stack)-1] }

func (w *Writer) open(empty scope, bracket byte) error {
	op := "BeginObject"
	if empty == scopeEmptyArray {
		op = "BeginArray"
	}
	if err := w.beforeValue(op); err != nil {
		return err
	}
	w.stack = append(w.stack, empty)
	return w.w.WriteByte(bracket)
}

func (w *Writer) close(empty, nonempty scope, bracket byte) error {
	op := "EndObject"
	if empty == scopeEmptyArray {
		op = "EndArray"
	}
	top := w.top()
	if top != empty && top != nonempty {
		return &SequenceError{Op: op, Message: "no matching open bracket"}
	}
	if w.hasName {
		return &SequenceError{Op: op, Message: "dangling name: " + w.deferredName}
	}
	w.stack = w.stack[:len(w.stack)-1]
	if top == nonempty {
		if err := w.newline(); err != nil {
			return err
		}
	}
	return w.w.WriteByte(bracket)
}

// beforeValue emits whatever separator the scope stack says is due before a
// value: a deferred member name, a comma, a newline with indentation, or
// nothing. It rejects values that no open scope can accept.
func (w *Writer) beforeValue(op string) error {
	if w.hasName {
		if err := w.beforeName(); err != nil {
			return err
		}
		w.hasName = false
		if err := w.quoted(w.deferredName); err != nil {
			return err
		}
		if _, err := w.w.WriteString(w.separator); err != nil {
			return err
		}
		w.stack[len(w.stack)-1] = scopeNonemptyObject
		return nil
	}

	switch w.top() {
	case scopeNonemptyDocument:
		if w.mode != Lenient {
			return &SequenceError{Op: op, Message: "a strict document holds one top-level value"}
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	case scopeEmptyDocument:
		w.stack[len(w.stack)-1] = scopeNonemptyDocument
	case scopeEmptyArray:
		w.stack[len(w.stack)-1] = scopeNonemptyArray
		return w.newline()
	case scopeNonemptyArray:
		if err := w.w.WriteByte(','); err != nil {
			return err
		}
		return w.newline()
	case scopeClosed:
		return &SequenceError{Op: op, Message: "writer is closed"}
	default:
		return &SequenceError{Op: op, Message: "value written inside an object without a name"}
	}
	return nil
}

// beforeName emits the separator due before a member name. The top of the
// stack is known to be an object scope: Name checked it.
func (w *Writer) beforeName() error {
	if w.top() == scopeNonemptyObject {
		if err := w.w.WriteByte(','); err != nil {
			return err
		}
	}
	return w.newline()
}

func (w *Writer) newline() error {
	if w.indent == "" {
		return nil
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	for i := 0; i < len(w.stack)-1; i++ {
		if _, err := w.w.WriteString(w.indent); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) quoted(s string) error {
	if err := w.w.WriteByte('"'); err != nil {
		return err
	}
	if _, err := w.w.Write(escape.Quote(mem.S(s), w.htmlSafe)); err != nil {
		return err
	}
	return w.w.WriteByte('"')
}

// isValidNumber reports whether text satisfies the JSON number grammar.
func isValidNumber(text string) bool {
	s := strings.TrimPrefix(text, "-")
	if s == "" {
		return false
	}

	// Integer part: a lone zero, or digits with no leading zero.
	if s[0] == '0' {
		s = s[1:]
	} else {
		rest := strings.TrimLeft(s, "0123456789")
		if rest == s { // no digit consumed
			return false
		}
		s = rest
	}

	if rest, ok := strings.CutPrefix(s, "."); ok {
		s = strings.TrimLeft(rest, "0123456789")
		if s == rest {
			return false
		}
	}
	if len(s) > 0 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
			s = s[1:]
		}
		rest := strings.TrimLeft(s, "0123456789")
		if rest == s {
			return false
		}
		s = rest
	}
	return s == ""
}
