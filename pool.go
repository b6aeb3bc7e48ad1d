// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

// A stringPool is a bounded cache of previously decoded short strings,
// indexed by a hash of their bytes. Entries are silently overwritten on
// collision, so the pool never grows and a miss only costs the copy that
// would have happened anyway. Each Reader owns its own pool; pools are
// never shared between instances.
type stringPool struct {
	table [512]string
}

const poolMaxLen = 24 // longest string worth caching

// get returns a string equal to text, reusing a cached copy when one with
// the same contents is resident.
func (p *stringPool) get(text []byte) string {
	if len(text) == 0 {
		return ""
	}
	if len(text) > poolMaxLen {
		return string(text)
	}

	// FNV-1a, folded to the table size.
	h := uint32(2166136261)
	for _, b := range text {
		h = (h ^ uint32(b)) * 16777619
	}
	i := (h ^ h>>16) % uint32(len(p.table))

	if s := p.table[i]; s == string(text) {
		return s
	}
	s := string(text)
	p.table[i] = s
	return s
}
