// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

import (
	"errors"

	"github.com/jtextio/jtext/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	enc := escape.Quote(mem.S(src), false)
	out := make([]byte, 0, len(enc)+2)
	out = append(out, '"')
	out = append(out, enc...)
	out = append(out, '"')
	return string(out)
}

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.B(src[1 : len(src)-1]))
}
