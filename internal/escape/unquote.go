// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string.
// The input must have the enclosing quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Surrogate
// pairs written as consecutive \uXXXX escapes are combined. Invalid escapes
// are replaced by the Unicode replacement rune. Unquote reports an error
// for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		src = src.SliceFrom(n)

		switch r {
		case '"', '\'', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := readHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest

			// A high surrogate may be followed by a second escape encoding
			// the low half of the pair.
			if utf16.IsSurrogate(v) && src.Len() >= 6 &&
				src.At(0) == '\\' && src.At(1) == 'u' {
				w, rest, err := readHex4(src.SliceFrom(2))
				if err != nil {
					return nil, err
				}
				if c := utf16.DecodeRune(v, w); c != utf8.RuneError {
					putRune(c)
					src = rest
					break
				}
				// Not a valid pair; fall through and encode v alone, which
				// yields a replacement rune below.
			}
			putRune(v) // a lone surrogate encodes as utf8.RuneError
		default:
			putRune(utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// readHex4 decodes exactly four hex digits from the front of data. Invalid
// digits yield the replacement rune rather than an error; too few digits are
// an error.
func readHex4(data mem.RO) (rune, mem.RO, error) {
	if data.Len() < 4 {
		return 0, data, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return utf8.RuneError, data.SliceFrom(4), nil
		}
	}
	return v, data.SliceFrom(4), nil
}
