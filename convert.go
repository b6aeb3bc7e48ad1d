// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

import (
	"errors"
	"strconv"
)

// Int64 converts the lexical text of a JSON number to an int64. The text is
// converted exactly: values with a fractional or exponent part are accepted
// only when they denote a whole number that int64 can represent. A value
// that cannot be represented fails with a [*NumericError].
func Int64(text string) (int64, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, &NumericError{Text: text, Kind: "int64", err: err}
	}

	// Not plain digits; it may still be an integral value spelled with a
	// fraction or exponent, e.g. 2.0 or 1e3.
	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil {
		return 0, &NumericError{Text: text, Kind: "int64", err: ferr}
	}
	v = int64(f)
	if float64(v) != f {
		return 0, &NumericError{Text: text, Kind: "int64", err: err}
	}
	return v, nil
}

// Float64 converts the lexical text of a JSON number to a float64, rounding
// to the nearest representable value. A value outside the range of float64
// fails with a [*NumericError].
func Float64(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &NumericError{Text: text, Kind: "float64", err: err}
	}
	return f, nil
}
