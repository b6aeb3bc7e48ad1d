// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

// Package jtext implements a streaming codec for JSON text: a pull-based
// reader that tokenizes an input stream, and a writer that emits well-formed
// JSON from a mirrored sequence of calls.
//
// # Reading
//
// The Reader type consumes JSON elements from an io.Reader. Call Peek to
// learn the kind of the next element without consuming it, and the matching
// consuming method to advance:
//
//	r := jtext.NewReader(input)
//	if err := r.BeginArray(); err != nil {
//	   log.Fatalf("Read failed: %v", err)
//	}
//	for {
//	   more, err := r.More()
//	   if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   } else if !more {
//	      break
//	   }
//	   s, err := r.NextString()
//	   ...
//	}
//	if err := r.EndArray(); err != nil { ... }
//
// A consuming method called when the next element has a different kind fails
// with a *TypeError. Malformed input fails with a *SyntaxError carrying the
// line, column, byte offset and document path of the problem; the path of
// the current position is also available at any time from the Path method.
//
// By default the Reader accepts exactly the grammar of RFC 8259. Calling
// SetMode(Lenient) enables a superset commonly found in hand-written and
// machine-prefixed JSON; see the Mode constants for the full list of
// extensions.
//
// Numbers are validated during scanning but not converted: NextNumber
// returns the raw lexical text, and NextInt and NextFloat convert on demand,
// failing with a *NumericError only when the value does not fit the
// requested type. A 64-bit integer therefore round-trips exactly even
// though the token stream carries no type tag.
//
// # Writing
//
// The Writer type is the inverse: its BeginArray/EndArray,
// BeginObject/EndObject, Name and value methods mirror the Reader's
// consuming methods, and it validates their order with the same scope-stack
// discipline, failing with a *SequenceError on misuse:
//
//	w := jtext.NewWriter(output)
//	w.BeginObject()
//	w.Name("id")
//	w.Int(42)
//	w.EndObject()
//	if err := w.Close(); err != nil { ... }
//
// SetIndent enables pretty-printed output, and SetHTMLSafe makes string
// output safe for embedding in HTML.
//
// # Document trees
//
// The ast subpackage builds an in-memory value tree from a Reader and
// replays a tree through a Writer. Both directions run iteratively on an
// explicit work stack, so document depth is bounded by memory rather than
// by the goroutine stack.
//
// Readers and writers are single-stream, synchronous and not safe for
// concurrent use; independent instances share no state and may be used
// freely from different goroutines.
package jtext
