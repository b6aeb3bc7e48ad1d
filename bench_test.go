package jtext_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jtextio/jtext"
)

// benchInput synthesizes a document of nested records, heavy on strings and
// numbers the way API payloads tend to be.
func benchInput(records int) []byte {
	var buf bytes.Buffer
	w := jtext.NewWriter(&buf)
	check := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	check(w.BeginArray())
	for i := 0; i < records; i++ {
		check(w.BeginObject())
		check(w.Name("id"))
		check(w.Int(int64(i)))
		check(w.Name("name"))
		check(w.String(fmt.Sprintf("record %d   with \"escapes\"\n", i)))
		check(w.Name("score"))
		check(w.Float(float64(i) * 0.37))
		check(w.Name("active"))
		check(w.Bool(i%3 == 0))
		check(w.Name("tags"))
		check(w.BeginArray())
		for j := 0; j < 5; j++ {
			check(w.String(strings.Repeat("t", j+1)))
		}
		check(w.EndArray())
		check(w.Name("parent"))
		check(w.Null())
		check(w.EndObject())
	}
	check(w.EndArray())
	check(w.Close())
	return buf.Bytes()
}

func BenchmarkReader(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Reader", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := jtext.NewReader(bytes.NewReader(input))
			for {
				kind, err := r.Peek()
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				if kind == jtext.EndDocument {
					break
				}

				// The standard library Decoder converts tokens to values.
				// For a fair comparison, do the same here.
				switch kind {
				case jtext.BeginArray:
					err = r.BeginArray()
				case jtext.EndArray:
					err = r.EndArray()
				case jtext.BeginObject:
					err = r.BeginObject()
				case jtext.EndObject:
					err = r.EndObject()
				case jtext.Name:
					_, err = r.NextName()
				case jtext.String:
					_, err = r.NextString()
				case jtext.Number:
					_, err = r.NextFloat()
				case jtext.Bool:
					_, err = r.NextBool()
				case jtext.Null:
					err = r.NextNull()
				}
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Skip", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r := jtext.NewReader(bytes.NewReader(input))
			if err := r.SkipValue(); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
