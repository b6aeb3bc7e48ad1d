// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

// Kind is the type of a lexical element in a JSON document.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid element
	BeginObject             // open brace "{"
	EndObject               // close brace "}"
	BeginArray              // open bracket "["
	EndArray                // close bracket "]"
	Name                    // object member name
	String                  // string value
	Number                  // number value
	Bool                    // constant: true or false
	Null                    // constant: null
	EndDocument             // end of input
)

var kindStr = [...]string{
	Invalid:     "invalid",
	BeginObject: "begin object",
	EndObject:   "end object",
	BeginArray:  "begin array",
	EndArray:    "end array",
	Name:        "name",
	String:      "string",
	Number:      "number",
	Bool:        "boolean",
	Null:        "null",
	EndDocument: "end of document",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Mode selects the grammar accepted by a Reader or emitted by a Writer.
type Mode byte

const (
	// Strict accepts exactly the grammar of RFC 8259.
	Strict Mode = iota

	// Lenient accepts a superset of RFC 8259: single-quoted and unquoted
	// strings and names, block ("/* */") and line ("//", "#") comments,
	// semicolons for commas, "=" or "=>" for the name separator, multiple
	// top-level values, the literals NaN, Infinity and -Infinity, and the
	// non-execute prefix ")]}'\n". A Writer in Lenient mode may emit
	// non-finite number literals and multiple top-level values.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// A scope records the state of one open nesting level. Readers and writers
// each keep a stack of scopes mirroring the arrays and objects currently
// open; the top frame determines which separators are legal next.
type scope byte

const (
	scopeEmptyDocument    scope = iota // no top-level value read yet
	scopeNonemptyDocument              // a top-level value has been read
	scopeEmptyArray                    // inside [ with no element yet
	scopeNonemptyArray                 // inside [ after at least one element
	scopeEmptyObject                   // inside { with no member yet
	scopeDanglingName                  // a member name has been read, value pending
	scopeNonemptyObject                // inside { after at least one member
	scopeClosed                        // the instance has been closed
)
