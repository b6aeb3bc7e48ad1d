// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jpath_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jtextio/jtext"
	"github.com/jtextio/jtext/ast"
	"github.com/jtextio/jtext/jpath"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  jpath.Expr
	}{
		{"$", nil},
		{"$.a", jpath.Expr{{Op: jpath.Member, Arg: "a"}}},
		{"$.a.b", jpath.Expr{{Op: jpath.Member, Arg: "a"}, {Op: jpath.Member, Arg: "b"}}},
		{"$[0]", jpath.Expr{{Op: jpath.Index, Arg: "0"}}},
		{"$[-2]", jpath.Expr{{Op: jpath.Index, Arg: "-2"}}},
		{"$.a[5].c", jpath.Expr{
			{Op: jpath.Member, Arg: "a"}, {Op: jpath.Index, Arg: "5"}, {Op: jpath.Member, Arg: "c"},
		}},
		{"$['b c']", jpath.Expr{{Op: jpath.QName, Arg: "b c"}}},
		{"$['x'][3]", jpath.Expr{{Op: jpath.QName, Arg: "x"}, {Op: jpath.Index, Arg: "3"}}},
	}
	for _, test := range tests {
		got, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse(%q): (-want, +got)\n%s", test.input, diff)
		}
		if gs := got.String(); gs != test.input {
			t.Errorf("String: got %q, want %q", gs, test.input)
		}
	}
}

func TestParse_errors(t *testing.T) {
	tests := []string{
		"",        // missing root
		".a",      // missing root
		"$.",      // missing name
		"$.a..b",  // empty step
		"$[",      // missing close
		"$[0",     // missing close
		"$[a b]",  // not a name or index
		"$['x'",   // missing close
		"$.a[1]x", // trailing junk
	}
	for _, input := range tests {
		if got, err := jpath.Parse(input); err == nil {
			t.Errorf("Parse(%q): got %v, want error", input, got)
		}
	}
}

func TestApply(t *testing.T) {
	r := jtext.NewReader(strings.NewReader(
		`{"a": [2, true, false, null, "b", {"c": "d"}, [3]], "b c": 5}`))
	root, err := ast.Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		path string
		want string
		fail bool
	}{
		{"$", `{"a":[2,true,false,null,"b",{"c":"d"},[3]],"b c":5}`, false},
		{"$.a[0]", "2", false},
		{"$.a[5]", `{"c":"d"}`, false},
		{"$.a[5].c", `"d"`, false},
		{"$.a[6][0]", "3", false},
		{"$.a[-1]", "[3]", false},
		{"$.a[-7]", "2", false},
		{"$['b c']", "5", false},

		{"$.nonesuch", "", true},
		{"$.a[7]", "", true},
		{"$.a[-8]", "", true},
		{"$.a.b", "", true},   // index into array with a name
		{"$[0]", "", true},    // name lookup on an object with an index
		{"$.a[5][0]", "", true},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.path)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", test.path, err)
			continue
		}
		got, err := e.Apply(root)
		if test.fail {
			if err == nil {
				t.Errorf("Apply(%q): got %v, want error", test.path, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Apply(%q) failed: %v", test.path, err)
		} else if gs := got.JSON(); gs != test.want {
			t.Errorf("Apply(%q): got %#q, want %#q", test.path, gs, test.want)
		}
	}
}

func TestReaderPathRoundTrip(t *testing.T) {
	// The expressions the Reader reports as error locations parse and
	// resolve against the document tree.
	const input = `{"a": [2, true, {"c": "d"}]}`

	r := jtext.NewReader(strings.NewReader(input))
	if err := r.BeginObject(); err != nil {
		t.Fatalf("BeginObject failed: %v", err)
	}
	if _, err := r.NextName(); err != nil {
		t.Fatalf("NextName failed: %v", err)
	}
	if err := r.BeginArray(); err != nil {
		t.Fatalf("BeginArray failed: %v", err)
	}
	if _, err := r.NextNumber(); err != nil {
		t.Fatalf("NextNumber failed: %v", err)
	}

	e := jpath.MustParse(r.Path()) // "$.a[1]"
	root := mustParseTree(t, input)
	got, err := e.Apply(root)
	if err != nil {
		t.Fatalf("Apply(%q) failed: %v", r.Path(), err)
	}
	if gs := got.JSON(); gs != "true" {
		t.Errorf("Apply(%q): got %#q, want true", r.Path(), gs)
	}
}

func mustParseTree(t *testing.T, input string) ast.Value {
	t.Helper()
	v, err := ast.Parse(jtext.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return v
}

func TestMustParse_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	jpath.MustParse("not a path")
}
