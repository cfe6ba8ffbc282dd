package hufftree

import (
	"github.com/chronos-tachyon/assert"
	"golang.org/x/exp/slices"
)

// tableEntry is one symbol of a canonical code: its bit length and the
// integer codeword assigned to it, most significant bit first.
type tableEntry struct {
	symbol Symbol
	size   byte
	code   uint32
}

// buildTable expands b into one entry per symbol with a non-zero bit length,
// sorted by (size, symbol), and assigns canonical codewords in that order.
//
// Malformed input is not reported.  Ranges whose end precedes their start
// contribute nothing, symbols below 0 are skipped, and overlapping codes are
// left for the caller to reject with Bootstrap.Validate.
func buildTable(b Bootstrap) []tableEntry {
	var entries []tableEntry
	for i := 0; i+1 < len(b); i++ {
		start, finish, size := b[i].Start, b[i+1].Start, b[i].Size
		if size == 0 {
			continue
		}
		assert.Assertf(size <= MaxBitsPerCode, "bit length %d for symbol %d > MaxBitsPerCode %d", size, start, MaxBitsPerCode)
		if start < 0 {
			start = 0
		}
		for symbol := start; symbol < finish; symbol++ {
			entries = append(entries, tableEntry{symbol: symbol, size: size})
		}
	}
	if len(entries) == 0 {
		return nil
	}

	// The canonical rule breaks ties by symbol value, never by input order.
	slices.SortFunc(entries, func(a, b tableEntry) bool {
		if a.size != b.size {
			return a.size < b.size
		}
		return a.symbol < b.symbol
	})

	lastSize := entries[0].size
	nextCode := uint32(0)
	for i := range entries {
		e := &entries[i]
		if e.size > lastSize {
			nextCode <<= (e.size - lastSize)
			lastSize = e.size
		}
		e.code = nextCode
		nextCode++
	}
	return entries
}
