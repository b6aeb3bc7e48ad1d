// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jtextio/jtext/internal/escape"

	"go4.org/mem"
)

// A Reader reads a stream of JSON elements from an input source. Call Peek to
// discover the kind of the next element without consuming it, and the NextX
// and Begin/End methods to consume elements. Consuming methods fail with a
// [*TypeError] if the next element has a different kind.
//
// A Reader is bound to a single input stream, maintains unsynchronized
// internal state, and must not be shared between goroutines. It never closes
// the underlying source.
type Reader struct {
	r    io.Reader
	mode Mode

	// The input buffer. Valid bytes occupy buf[pos:limit]; fill discards the
	// consumed prefix and reads more. Routines that cache pos in a local
	// variable must write the local back to pos before any call that may
	// refill the buffer, and reload pos and limit afterward, because a refill
	// moves the buffer contents.
	buf   []byte
	pos   int
	limit int
	eof   bool // the underlying source is exhausted

	base       int // count of bytes discarded before buf[0]
	lineNumber int // count of newlines consumed before buf[pos]
	lineStart  int // buffer index at which the current line begins

	peeked     peeked
	peekNumLen int    // length of a peeked number, valid when peeked == pNumber
	scratch    []byte // reusable accumulator for token text

	// The scope stack and its parallel path bookkeeping. The stacks always
	// have equal length; the top frame records whether a separator is due
	// before the next element.
	stack       []scope
	pathNames   []string
	pathIndices []int

	pool stringPool
}

// NewReader constructs a Reader that consumes input from r in Strict mode.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:           r,
		buf:         make([]byte, 1024),
		stack:       []scope{scopeEmptyDocument},
		pathNames:   []string{""},
		pathIndices: []int{0},
	}
}

// SetMode configures the grammar the Reader accepts. The default is Strict.
// Changing the mode mid-parse affects only elements not yet consumed.
func (r *Reader) SetMode(m Mode) { r.mode = m }

// peeked identifies the classified-but-unconsumed element at the front of
// the input. It carries more detail than a Kind: the same Kind may need
// different consumption logic depending on how the element is spelled.
type peeked int8

const (
	pNone peeked = iota
	pBeginObject
	pEndObject
	pBeginArray
	pEndArray
	pTrue
	pFalse
	pNull
	pDoubleQuoted
	pSingleQuoted
	pUnquoted
	pDoubleQuotedName
	pSingleQuotedName
	pUnquotedName
	pNumber
	pEOF
)

func (p peeked) kind() Kind {
	switch p {
	case pBeginObject:
		return BeginObject
	case pEndObject:
		return EndObject
	case pBeginArray:
		return BeginArray
	case pEndArray:
		return EndArray
	case pDoubleQuotedName, pSingleQuotedName, pUnquotedName:
		return Name
	case pDoubleQuoted, pSingleQuoted, pUnquoted:
		return String
	case pNumber:
		return Number
	case pTrue, pFalse:
		return Bool
	case pNull:
		return Null
	case pEOF:
		return EndDocument
	}
	return Invalid
}

// Peek reports the kind of the next element without consuming it. Peek is
// idempotent: repeated calls without an intervening consume return the same
// result. A legitimate end of input is reported as EndDocument, never as an
// error; an input that ends where a token is required yields a
// [*SyntaxError] wrapping [ErrUnexpectedEOF].
func (r *Reader) Peek() (Kind, error) {
	p, err := r.peek()
	if err != nil {
		return Invalid, err
	}
	return p.kind(), nil
}

func (r *Reader) peek() (peeked, error) {
	if r.peeked == pNone {
		p, err := r.doPeek()
		if err != nil {
			return pNone, err
		}
		r.peeked = p
	}
	return r.peeked, nil
}

// doPeek classifies the next element of the input, consuming any separator
// that the top scope frame says is due first.
func (r *Reader) doPeek() (peeked, error) {
	top := r.stack[len(r.stack)-1]
	switch top {
	case scopeEmptyArray:
		r.stack[len(r.stack)-1] = scopeNonemptyArray

	case scopeNonemptyArray:
		c, err := r.nextNonWhitespace(true)
		if err != nil {
			return 0, err
		}
		switch c {
		case ']':
			return pEndArray, nil
		case ';':
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
		case ',':
		default:
			return 0, r.syntaxErrorf(nil, "unterminated array")
		}

	case scopeEmptyObject, scopeNonemptyObject:
		r.stack[len(r.stack)-1] = scopeDanglingName
		if top == scopeNonemptyObject {
			// A separator is due before the next member.
			c, err := r.nextNonWhitespace(true)
			if err != nil {
				return 0, err
			}
			switch c {
			case '}':
				return pEndObject, nil
			case ';':
				if err := r.checkLenient(); err != nil {
					return 0, err
				}
			case ',':
			default:
				return 0, r.syntaxErrorf(nil, "unterminated object")
			}
		}
		c, err := r.nextNonWhitespace(true)
		if err != nil {
			return 0, err
		}
		switch c {
		case '"':
			return pDoubleQuotedName, nil
		case '\'':
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			return pSingleQuotedName, nil
		case '}':
			if top != scopeNonemptyObject {
				return pEndObject, nil
			}
			return 0, r.syntaxErrorf(nil, "expected a member name")
		default:
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			r.pos-- // unread, the name starts here
			if isDelimiter(c) {
				return 0, r.syntaxErrorf(nil, "expected a member name")
			}
			return pUnquotedName, nil
		}

	case scopeDanglingName:
		r.stack[len(r.stack)-1] = scopeNonemptyObject
		c, err := r.nextNonWhitespace(true)
		if err != nil {
			return 0, err
		}
		switch c {
		case ':':
		case '=':
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			// Accept "=>" as a name separator.
			if r.pos == r.limit {
				if _, err := r.fill(1); err != nil {
					return 0, err
				}
			}
			if r.pos < r.limit && r.buf[r.pos] == '>' {
				r.pos++
			}
		default:
			return 0, r.syntaxErrorf(nil, "expected ':' after a member name")
		}

	case scopeEmptyDocument:
		if r.mode == Lenient {
			if err := r.consumeNonExecutePrefix(); err != nil {
				return 0, err
			}
		}
		r.stack[len(r.stack)-1] = scopeNonemptyDocument

	case scopeNonemptyDocument:
		if _, err := r.nextNonWhitespace(false); err == io.EOF {
			return pEOF, nil
		} else if err != nil {
			return 0, err
		}
		// Multiple top-level values are a lenient extension.
		if err := r.checkLenient(); err != nil {
			return 0, err
		}
		r.pos--

	case scopeClosed:
		return 0, &SequenceError{Op: "Peek", Message: "reader is closed"}
	}

	// An element is expected here.
	c, err := r.nextNonWhitespace(false)
	if err == io.EOF {
		if len(r.stack) == 1 {
			return pEOF, nil // legitimate end of document
		}
		return 0, r.syntaxErrorf(ErrUnexpectedEOF, "unexpected end of input")
	} else if err != nil {
		return 0, err
	}
	switch c {
	case ']':
		if top == scopeEmptyArray {
			return pEndArray, nil
		}
		fallthrough
	case ';', ',':
		// A missing value before a separator reads as null in lenient mode.
		if top == scopeEmptyArray || top == scopeNonemptyArray {
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			r.pos--
			return pNull, nil
		}
		return 0, r.syntaxErrorf(nil, "unexpected %q", c)
	case '\'':
		if err := r.checkLenient(); err != nil {
			return 0, err
		}
		return pSingleQuoted, nil
	case '"':
		return pDoubleQuoted, nil
	case '[':
		return pBeginArray, nil
	case '{':
		return pBeginObject, nil
	default:
		r.pos-- // unread, the literal starts here
	}

	if p, err := r.peekKeyword(); err != nil || p != pNone {
		return p, err
	}
	if p, err := r.peekNumber(); err != nil || p != pNone {
		return p, err
	}
	if isDelimiter(r.buf[r.pos]) {
		return 0, r.syntaxErrorf(nil, "expected a value")
	}
	if err := r.checkLenient(); err != nil {
		return 0, err
	}
	return pUnquoted, nil
}

// peekKeyword classifies true, false, and null. In Lenient mode the keywords
// are matched without regard to case. It reports pNone, with no input
// consumed, when the input is not a keyword.
func (r *Reader) peekKeyword() (peeked, error) {
	var keyword string
	var result peeked
	switch c := r.buf[r.pos]; c {
	case 't', 'T':
		keyword, result = "true", pTrue
	case 'f', 'F':
		keyword, result = "false", pFalse
	case 'n', 'N':
		keyword, result = "null", pNull
	default:
		return pNone, nil
	}

	n := len(keyword)
	if r.pos+n > r.limit {
		if ok, err := r.fill(n); err != nil {
			return 0, err
		} else if !ok {
			return pNone, nil
		}
	}
	got := mem.B(r.buf[r.pos : r.pos+n])
	if !got.Equal(mem.S(keyword)) {
		if r.mode != Lenient {
			return pNone, nil
		}
		for i := 0; i < n; i++ {
			if r.buf[r.pos+i]|0x20 != keyword[i] {
				return pNone, nil
			}
		}
	}

	// The keyword must be self-delimiting: reject prefixes of longer
	// literals such as "nullx".
	if r.pos+n < r.limit {
		if !isDelimiter(r.buf[r.pos+n]) {
			return pNone, nil
		}
	} else if ok, err := r.fill(n + 1); err != nil {
		return 0, err
	} else if ok && !isDelimiter(r.buf[r.pos+n]) {
		return pNone, nil
	}

	r.pos += n
	return result, nil
}

// States of the number scanner, ordered by position within a number.
type numberState int8

const (
	numNone numberState = iota
	numSign
	numDigit
	numDot
	numFracDigit
	numExpE
	numExpSign
	numExpDigit
)

// peekNumber validates the digit/sign/dot/exponent grammar of a number and
// records its length, deferring conversion to the consumer. It reports
// pNone, with no input consumed, when the input is not a well-formed number.
func (r *Reader) peekNumber() (peeked, error) {
	// pos and limit are cached in locals for speed; see the field comment on
	// buf for the write-back rule observed at each refill.
	p, l := r.pos, r.limit
	last := numNone
	intDigits := 0
	firstZero := false

	i := 0
scan:
	for ; ; i++ {
		if p+i == l {
			r.pos = p
			ok, err := r.fill(i + 1)
			if err != nil {
				return 0, err
			}
			p, l = r.pos, r.limit
			if !ok {
				break // the input ends here; the number may too
			}
		}
		switch c := r.buf[p+i]; {
		case c == '-':
			switch last {
			case numNone:
				last = numSign
			case numExpE:
				last = numExpSign
			default:
				return pNone, nil
			}
		case c == '+':
			if last != numExpE {
				return pNone, nil
			}
			last = numExpSign
		case c == 'e' || c == 'E':
			if last != numDigit && last != numFracDigit {
				return pNone, nil
			}
			last = numExpE
		case c == '.':
			if last != numDigit {
				return pNone, nil
			}
			last = numDot
		case c >= '0' && c <= '9':
			switch last {
			case numNone, numSign:
				last = numDigit
				intDigits = 1
				firstZero = c == '0'
			case numDigit:
				if firstZero {
					return pNone, nil // a redundant leading zero
				}
				intDigits++
			case numDot, numFracDigit:
				last = numFracDigit
			case numExpE, numExpSign, numExpDigit:
				last = numExpDigit
			}
		default:
			if !isDelimiter(c) {
				return pNone, nil // e.g. "123abc"
			}
			break scan
		}
	}

	switch last {
	case numDigit, numFracDigit, numExpDigit:
		r.peekNumLen = i
		return pNumber, nil
	}
	return pNone, nil
}

// isDelimiter reports whether c terminates an unquoted literal. The set
// includes the lenient-mode separators so that lenient and strict mode agree
// on where literals end.
func isDelimiter(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ':', ',',
		' ', '\t', '\f', '\r', '\n',
		'/', '\\', ';', '#', '=':
		return true
	}
	return false
}

// More reports whether the current array or object (or document) has another
// element to consume.
func (r *Reader) More() (bool, error) {
	p, err := r.peek()
	if err != nil {
		return false, err
	}
	return p != pEndArray && p != pEndObject && p != pEOF, nil
}

// BeginArray consumes the opening bracket of the next array and enters it.
func (r *Reader) BeginArray() error {
	p, err := r.peek()
	if err != nil {
		return err
	}
	if p != pBeginArray {
		return r.typeError(BeginArray, p)
	}
	r.push(scopeEmptyArray)
	r.peeked = pNone
	return nil
}

// EndArray consumes the closing bracket of the current array and leaves it.
func (r *Reader) EndArray() error {
	p, err := r.peek()
	if err != nil {
		return err
	}
	if p != pEndArray {
		return r.typeError(EndArray, p)
	}
	r.pop()
	r.pathIndices[len(r.stack)-1]++
	r.peeked = pNone
	return nil
}

// BeginObject consumes the opening brace of the next object and enters it.
func (r *Reader) BeginObject() error {
	p, err := r.peek()
	if err != nil {
		return err
	}
	if p != pBeginObject {
		return r.typeError(BeginObject, p)
	}
	r.push(scopeEmptyObject)
	r.peeked = pNone
	return nil
}

// EndObject consumes the closing brace of the current object and leaves it.
func (r *Reader) EndObject() error {
	p, err := r.peek()
	if err != nil {
		return err
	}
	if p != pEndObject {
		return r.typeError(EndObject, p)
	}
	r.pop()
	r.pathIndices[len(r.stack)-1]++
	r.peeked = pNone
	return nil
}

// NextName consumes the next object member name and returns its decoded
// text.
func (r *Reader) NextName() (string, error) {
	p, err := r.peek()
	if err != nil {
		return "", err
	}
	var name string
	switch p {
	case pDoubleQuotedName:
		name, err = r.nextQuoted('"')
	case pSingleQuotedName:
		name, err = r.nextQuoted('\'')
	case pUnquotedName:
		name, err = r.nextUnquoted()
	default:
		return "", r.typeError(Name, p)
	}
	if err != nil {
		return "", err
	}
	r.peeked = pNone
	r.pathNames[len(r.stack)-1] = name
	return name, nil
}

// NextString consumes the next string value and returns its decoded text.
// For interoperability with lenient documents a number may also be read as a
// string, returning its lexical text.
func (r *Reader) NextString() (string, error) {
	p, err := r.peek()
	if err != nil {
		return "", err
	}
	var s string
	switch p {
	case pDoubleQuoted:
		s, err = r.nextQuoted('"')
	case pSingleQuoted:
		s, err = r.nextQuoted('\'')
	case pUnquoted:
		s, err = r.nextUnquoted()
	case pNumber:
		s = string(r.buf[r.pos : r.pos+r.peekNumLen])
		r.pos += r.peekNumLen
	default:
		return "", r.typeError(String, p)
	}
	if err != nil {
		return "", err
	}
	r.peeked = pNone
	r.pathIndices[len(r.stack)-1]++
	return s, nil
}

// NextBool consumes the next boolean value.
func (r *Reader) NextBool() (bool, error) {
	p, err := r.peek()
	if err != nil {
		return false, err
	}
	switch p {
	case pTrue, pFalse:
		r.peeked = pNone
		r.pathIndices[len(r.stack)-1]++
		return p == pTrue, nil
	}
	return false, r.typeError(Bool, p)
}

// NextNull consumes the next null value.
func (r *Reader) NextNull() error {
	p, err := r.peek()
	if err != nil {
		return err
	}
	if p != pNull {
		return r.typeError(Null, p)
	}
	r.peeked = pNone
	r.pathIndices[len(r.stack)-1]++
	return nil
}

// NextNumber consumes the next number value and returns its lexical text
// unconverted; the text is guaranteed to satisfy the number grammar.
func (r *Reader) NextNumber() (string, error) {
	p, err := r.peek()
	if err != nil {
		return "", err
	}
	if p != pNumber {
		return "", r.typeError(Number, p)
	}
	text := r.pool.get(r.buf[r.pos : r.pos+r.peekNumLen])
	r.pos += r.peekNumLen
	r.peeked = pNone
	r.pathIndices[len(r.stack)-1]++
	return text, nil
}

// NextInt consumes the next number value as an int64. A number whose value
// does not fit exactly fails with a [*NumericError]; in Lenient mode a
// string spelling a number is also accepted.
func (r *Reader) NextInt() (int64, error) {
	text, err := r.nextScalarText(Number)
	if err != nil {
		return 0, err
	}
	return Int64(text)
}

// NextFloat consumes the next number value as a float64. In Strict mode a
// non-finite result fails with a [*NumericError]; in Lenient mode a string
// spelling a number (including NaN, Infinity and -Infinity) is also
// accepted.
func (r *Reader) NextFloat() (float64, error) {
	text, err := r.nextScalarText(Number)
	if err != nil {
		return 0, err
	}
	f, err := Float64(text)
	if err != nil {
		return 0, err
	}
	if r.mode != Lenient && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return 0, &NumericError{Text: text, Kind: "strict JSON number"}
	}
	return f, nil
}

// nextScalarText consumes the next scalar and returns its text for numeric
// conversion. Strings are only convertible in Lenient mode.
func (r *Reader) nextScalarText(want Kind) (string, error) {
	p, err := r.peek()
	if err != nil {
		return "", err
	}
	var text string
	switch p {
	case pNumber:
		text = string(r.buf[r.pos : r.pos+r.peekNumLen])
		r.pos += r.peekNumLen
	case pDoubleQuoted, pSingleQuoted, pUnquoted:
		if r.mode != Lenient {
			return "", r.typeError(want, p)
		}
		quote := byte('"')
		if p == pSingleQuoted {
			quote = '\''
		}
		if p == pUnquoted {
			text, err = r.nextUnquoted()
		} else {
			text, err = r.nextQuoted(quote)
		}
		if err != nil {
			return "", err
		}
	default:
		return "", r.typeError(want, p)
	}
	r.peeked = pNone
	r.pathIndices[len(r.stack)-1]++
	return text, nil
}

// SkipValue discards the next value of any shape, or the next member name.
// The work is proportional to the size of the skipped value; no recursion is
// involved beyond the live scope stack.
func (r *Reader) SkipValue() error {
	count := 0
	for {
		p, err := r.peek()
		if err != nil {
			return err
		}
		switch p {
		case pBeginArray:
			r.push(scopeEmptyArray)
			count++
		case pBeginObject:
			r.push(scopeEmptyObject)
			count++
		case pEndArray, pEndObject:
			if count == 0 {
				return &SequenceError{Op: "SkipValue", Message: "no value to skip"}
			}
			r.pop()
			count--
		case pEOF:
			return &SequenceError{Op: "SkipValue", Message: "no value to skip"}
		case pDoubleQuoted, pDoubleQuotedName:
			err = r.skipQuoted('"')
		case pSingleQuoted, pSingleQuotedName:
			err = r.skipQuoted('\'')
		case pUnquoted, pUnquotedName:
			err = r.skipUnquoted()
		case pNumber:
			r.pos += r.peekNumLen
		default:
			// true, false and null were consumed during the peek.
		}
		if err != nil {
			return err
		}
		r.peeked = pNone
		if count == 0 {
			r.pathIndices[len(r.stack)-1]++
			return nil
		}
	}
}

// Path renders the position of the Reader within the document as a
// JSONPath-like expression, for example "$.items[2].name". It may be called
// at any time, including mid-parse, and reflects only live state.
func (r *Reader) Path() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for i, s := range r.stack {
		switch s {
		case scopeEmptyArray, scopeNonemptyArray:
			fmt.Fprintf(&sb, "[%d]", r.pathIndices[i])
		case scopeEmptyObject, scopeDanglingName, scopeNonemptyObject:
			sb.WriteByte('.')
			sb.WriteString(r.pathNames[i])
		}
	}
	return sb.String()
}

// Location reports the line and column of the next unconsumed input.
func (r *Reader) Location() LineCol {
	return LineCol{Line: r.lineNumber + 1, Column: r.pos - r.lineStart}
}

// Offset reports the byte offset of the next unconsumed input.
func (r *Reader) Offset() int { return r.base + r.pos }

// Close marks the Reader unusable. It does not close the underlying source.
func (r *Reader) Close() error {
	r.peeked = pNone
	r.stack = r.stack[:1]
	r.pathNames = r.pathNames[:1]
	r.pathIndices = r.pathIndices[:1]
	r.stack[0] = scopeClosed
	return nil
}

func (r *Reader) push(s scope) {
	r.stack = append(r.stack, s)
	r.pathNames = append(r.pathNames, "")
	r.pathIndices = append(r.pathIndices, 0)
}

func (r *Reader) pop() {
	n := len(r.stack) - 1
	r.stack = r.stack[:n]
	r.pathNames = r.pathNames[:n]
	r.pathIndices = r.pathIndices[:n]
}

func (r *Reader) typeError(want Kind, got peeked) error {
	return &TypeError{Want: want, Got: got.kind(), Path: r.Path()}
}

func (r *Reader) checkLenient() error {
	if r.mode != Lenient {
		return r.syntaxErrorf(nil, "not valid strict JSON (set Lenient mode to accept)")
	}
	return nil
}

func (r *Reader) syntaxErrorf(err error, msg string, args ...any) error {
	return &SyntaxError{
		Location: r.Location(),
		Offset:   r.base + r.pos,
		Path:     r.Path(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// fill discards the consumed prefix of the buffer and reads from the source
// until at least min bytes are buffered, growing the buffer if a single
// token needs more room than it has. It reports false if the source is
// exhausted first. fill moves the buffer contents: see the field comment on
// buf for the rule callers must observe.
func (r *Reader) fill(min int) (bool, error) {
	r.base += r.pos
	r.lineStart -= r.pos
	n := copy(r.buf, r.buf[r.pos:r.limit])
	r.limit = n
	r.pos = 0

	if min > len(r.buf) {
		grown := make([]byte, max(2*len(r.buf), min))
		copy(grown, r.buf[:r.limit])
		r.buf = grown
	}
	for r.limit < min {
		if r.eof {
			return false, nil
		}
		n, err := r.r.Read(r.buf[r.limit:])
		r.limit += n
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, err
		}
	}
	return true, nil
}

// nextNonWhitespace consumes whitespace, and comments when the mode allows
// them, and returns the next significant byte. This is the hot path,
// executed before every token: the common case of no comment and no buffer
// boundary stays inside the inner loop.
func (r *Reader) nextNonWhitespace(throwOnEOF bool) (byte, error) {
	p, l := r.pos, r.limit
	for {
		if p == l {
			r.pos = p
			ok, err := r.fill(1)
			if err != nil {
				return 0, err
			}
			if !ok {
				break
			}
			p, l = r.pos, r.limit
		}
		c := r.buf[p]
		p++
		switch c {
		case '\n':
			r.lineNumber++
			r.lineStart = p
			continue
		case ' ', '\r', '\t':
			continue
		case '/':
			r.pos = p
			if p == l {
				r.pos-- // keep the '/' buffered across the refill
				ok, err := r.fill(2)
				r.pos++
				if err != nil {
					return 0, err
				}
				if !ok {
					return c, nil // a lone '/' at the end of input
				}
			}
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			switch r.buf[r.pos] {
			case '*':
				r.pos++
				ok, err := r.skipTo("*/")
				if err != nil {
					return 0, err
				}
				if !ok {
					return 0, r.syntaxErrorf(ErrUnexpectedEOF, "unterminated comment")
				}
				r.pos += 2
				p, l = r.pos, r.limit
				continue
			case '/':
				r.pos++
				if err := r.skipToEndOfLine(); err != nil {
					return 0, err
				}
				p, l = r.pos, r.limit
				continue
			default:
				return c, nil
			}
		case '#':
			r.pos = p
			if err := r.checkLenient(); err != nil {
				return 0, err
			}
			if err := r.skipToEndOfLine(); err != nil {
				return 0, err
			}
			p, l = r.pos, r.limit
			continue
		default:
			r.pos = p
			return c, nil
		}
	}
	if throwOnEOF {
		return 0, r.syntaxErrorf(ErrUnexpectedEOF, "unexpected end of input")
	}
	return 0, io.EOF
}

// skipToEndOfLine consumes input through the next newline. Reaching the end
// of input also ends the line.
func (r *Reader) skipToEndOfLine() error {
	for {
		if r.pos == r.limit {
			ok, err := r.fill(1)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		c := r.buf[r.pos]
		r.pos++
		switch c {
		case '\n':
			r.lineNumber++
			r.lineStart = r.pos
			return nil
		case '\r':
			return nil
		}
	}
}

// skipTo consumes input up to the first occurrence of target, leaving the
// position at its first byte. It reports false if the input ends first; the
// target may arrive split across a buffer boundary.
func (r *Reader) skipTo(target string) (bool, error) {
	n := len(target)
	for {
		if r.pos+n > r.limit {
			ok, err := r.fill(n)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		if c := r.buf[r.pos]; c == '\n' {
			r.lineNumber++
			r.lineStart = r.pos + 1
		} else if c == target[0] && string(r.buf[r.pos:r.pos+n]) == target {
			return true, nil
		}
		r.pos++
	}
}

// consumeNonExecutePrefix discards the ")]}'\n" guard that some services
// prepend to JSON responses to defeat cross-site script inclusion.
func (r *Reader) consumeNonExecutePrefix() error {
	if _, err := r.nextNonWhitespace(false); err == io.EOF {
		return nil // an empty document has no prefix
	} else if err != nil {
		return err
	}
	r.pos--

	const prefix = ")]}'\n"
	if r.pos+len(prefix) > r.limit {
		if ok, err := r.fill(len(prefix)); err != nil {
			return err
		} else if !ok {
			return nil
		}
	}
	if string(r.buf[r.pos:r.pos+len(prefix)]) != prefix {
		return nil
	}
	r.pos += len(prefix)
	r.lineNumber++
	r.lineStart = r.pos
	return nil
}

// nextQuoted consumes a string whose opening quote has already been
// consumed, and returns its decoded text.
func (r *Reader) nextQuoted(quote byte) (string, error) {
	raw, err := r.scanQuoted(quote)
	if err != nil {
		return "", err
	}
	dec, err := escape.Unquote(mem.B(raw))
	if err != nil {
		return "", r.syntaxErrorf(err, "invalid string: %v", err)
	}
	return r.pool.get(dec), nil
}

// scanQuoted accumulates the raw, undecoded contents of a quoted string
// into the scratch buffer, validating escape sequences as it goes, and
// consumes the closing quote. The returned slice is valid until the next
// token is scanned.
func (r *Reader) scanQuoted(quote byte) ([]byte, error) {
	out := r.scratch[:0]
	for {
		p, l := r.pos, r.limit
		start := p
		for p < l {
			c := r.buf[p]
			p++
			switch {
			case c == quote:
				out = append(out, r.buf[start:p-1]...)
				r.pos = p
				r.scratch = out
				return out, nil
			case c == '\\':
				out = append(out, r.buf[start:p-1]...)
				r.pos = p
				var err error
				out, err = r.scanEscape(out)
				if err != nil {
					r.scratch = out
					return nil, err
				}
				p, l = r.pos, r.limit
				start = p
			case c == '\n':
				if r.mode != Lenient {
					r.pos = p
					return nil, r.syntaxErrorf(nil, "unescaped newline in string")
				}
				r.lineNumber++
				r.lineStart = p
			case c < 0x20:
				if r.mode != Lenient {
					r.pos = p
					return nil, r.syntaxErrorf(nil, "unescaped control character %q in string", c)
				}
			}
		}
		out = append(out, r.buf[start:p]...)
		r.pos = p
		ok, err := r.fill(1)
		if err != nil {
			r.scratch = out
			return nil, err
		}
		if !ok {
			r.scratch = out
			return nil, r.syntaxErrorf(ErrUnexpectedEOF, "unterminated string")
		}
	}
}

// scanEscape validates the escape sequence following a consumed backslash
// and appends its raw text to out. Lenient-only escapes that the decoder
// does not understand are appended in decoded form.
func (r *Reader) scanEscape(out []byte) ([]byte, error) {
	if r.pos == r.limit {
		ok, err := r.fill(1)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, r.syntaxErrorf(ErrUnexpectedEOF, "unterminated escape sequence")
		}
	}
	c := r.buf[r.pos]
	r.pos++
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return append(out, '\\', c), nil
	case 'u':
		if r.pos+4 > r.limit {
			if ok, err := r.fill(4); err != nil {
				return out, err
			} else if !ok {
				return out, r.syntaxErrorf(ErrUnexpectedEOF, "unterminated Unicode escape")
			}
		}
		for i := 0; i < 4; i++ {
			if !isHexDigit(r.buf[r.pos+i]) {
				return out, r.syntaxErrorf(nil, "invalid Unicode escape \\u%s", r.buf[r.pos:r.pos+4])
			}
		}
		out = append(out, '\\', 'u')
		out = append(out, r.buf[r.pos:r.pos+4]...)
		r.pos += 4
		return out, nil
	case '\'':
		if err := r.checkLenient(); err != nil {
			return out, err
		}
		return append(out, '\\', '\''), nil
	case '\n':
		if err := r.checkLenient(); err != nil {
			return out, err
		}
		r.lineNumber++
		r.lineStart = r.pos
		return append(out, '\n'), nil
	default:
		return out, r.syntaxErrorf(nil, "invalid escape \\%c", c)
	}
}

// nextUnquoted consumes an unquoted literal and returns its text. Unquoted
// literals occur only in Lenient mode.
func (r *Reader) nextUnquoted() (string, error) {
	out := r.scratch[:0]
	i := 0
	for {
		for r.pos+i < r.limit {
			if isDelimiter(r.buf[r.pos+i]) {
				out = append(out, r.buf[r.pos:r.pos+i]...)
				r.pos += i
				r.scratch = out
				return r.pool.get(out), nil
			}
			i++
		}
		out = append(out, r.buf[r.pos:r.pos+i]...)
		r.pos += i
		i = 0
		ok, err := r.fill(1)
		if err != nil {
			r.scratch = out
			return "", err
		}
		if !ok {
			r.scratch = out
			return r.pool.get(out), nil
		}
	}
}

// skipQuoted discards a string whose opening quote has already been
// consumed, still validating its escape sequences.
func (r *Reader) skipQuoted(quote byte) error {
	for {
		p, l := r.pos, r.limit
		for p < l {
			c := r.buf[p]
			p++
			switch c {
			case quote:
				r.pos = p
				return nil
			case '\\':
				r.pos = p
				if _, err := r.scanEscape(r.scratch[:0]); err != nil {
					return err
				}
				p, l = r.pos, r.limit
			case '\n':
				r.lineNumber++
				r.lineStart = p
			}
		}
		r.pos = p
		ok, err := r.fill(1)
		if err != nil {
			return err
		}
		if !ok {
			return r.syntaxErrorf(ErrUnexpectedEOF, "unterminated string")
		}
	}
}

// skipUnquoted discards an unquoted literal.
func (r *Reader) skipUnquoted() error {
	for {
		for r.pos < r.limit {
			if isDelimiter(r.buf[r.pos]) {
				return nil
			}
			r.pos++
		}
		ok, err := r.fill(1)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
