// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// htmlEsc marks the ASCII characters that must be escaped for the output to
// be safe inside an HTML <script> context.
var htmlEsc = [utf8.RuneSelf]bool{'<': true, '>': true, '&': true, '=': true, '\'': true}

// Quote encodes a string to escape characters for inclusion in a JSON
// string. If htmlSafe is true, the characters <, >, &, = and ' are also
// escaped so the result can be embedded in HTML without further quoting.
func Quote(src mem.RO, htmlSafe bool) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putHex := func(r rune) {
		putByte('\\', 'u',
			hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
	}

	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putHex(r)
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else if htmlSafe && htmlEsc[r] {
				putHex(r)
			} else {
				putByte(byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '\ufffd', '\u2028', '\u2029':
			// The replacement rune and the line and paragraph separators are
			// legal in JSON text but hostile to JavaScript consumers, so they
			// are always written escaped.
			putHex(r)
		default:
			var rbuf [6]byte
			n := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:n]...)
		}

		src = src.SliceFrom(n)
	}
	return buf
}
