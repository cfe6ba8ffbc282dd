package hufftree

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// SizesFromFrequencies computes a bit length for each Symbol of an alphabet
// of numSymbols symbols, given the frequency (i.e. number of occurrences) of
// each one.  Symbols beyond the end of frequencies, and symbols with a
// frequency of 0, get a bit length of 0.  No code is longer than maxSize.
//
// The result can be passed to NewTreeFromSizes, or transmitted to another
// party so it can build the same Tree on the receiving end.
//
func SizesFromFrequencies(numSymbols int, frequencies []uint32, maxSize byte) []byte {
	assert.Assertf(numSymbols <= int(MaxSymbol), "numSymbols %d > MaxSymbol %d", numSymbols, int(MaxSymbol))
	assert.Assertf(numSymbols >= len(frequencies), "numSymbols %d < len(frequencies) %d", numSymbols, len(frequencies))
	assert.Assertf(maxSize >= 1 && maxSize <= MaxBitsPerCode, "maxSize %d not in 1 .. %d", maxSize, MaxBitsPerCode)

	freqs := make([]uint32, len(frequencies))
	copy(freqs, frequencies)

	var used int
	for _, freq := range freqs {
		if freq != 0 {
			used++
		}
	}
	assert.Assertf(used <= 1<<maxSize, "%d symbols do not fit in codes of at most %d bits", used, maxSize)

	// Halving the frequencies flattens the tree.  Every non-zero frequency
	// eventually reaches 1, which yields a balanced tree.
	for {
		sizes, longest := sizeTree(numSymbols, freqs)
		if longest <= int(maxSize) {
			return sizes
		}
		for i, freq := range freqs {
			if freq != 0 {
				freqs[i] = freq>>1 + freq&1
			}
		}
	}
}

// sizeTree builds an ordinary (not necessarily canonical) Huffman tree for
// the non-zero frequencies, and returns each symbol's depth in that tree.
// The canonical code has the same bit lengths.
func sizeTree(numSymbols int, freqs []uint32) ([]byte, int) {
	sizes := make([]byte, numSymbols)
	nodes := make([]symbolAndFreq, 0, len(freqs))
	for symbol := Symbol(0); symbol < Symbol(len(freqs)); symbol++ {
		if freq := freqs[symbol]; freq != 0 {
			nodes = append(nodes, symbolAndFreq{symbol, freq})
		}
	}

	switch len(nodes) {
	case 0:
		return sizes, 0
	case 1, 2:
		for _, n := range nodes {
			sizes[n.symbol] = 1
		}
		return sizes, 1
	}

	h := freqHeap{nodes}
	heap.Init(&h)

	// Synthetic symbols are negative: math.MinInt32 is the 0'th, and the
	// rest count up towards 0.

	type syntheticSymbol struct {
		left  Symbol
		right Symbol
	}

	synthetic := make([]syntheticSymbol, 0, len(nodes)-1)
	next := Symbol(math.MinInt32)

	for h.Len() > 1 {
		a := heap.Pop(&h).(symbolAndFreq)
		b := heap.Pop(&h).(symbolAndFreq)

		// saturating addition
		sum := a.freq + b.freq
		if sum < a.freq {
			sum = math.MaxUint32
		}

		synthetic = append(synthetic, syntheticSymbol{a.symbol, b.symbol})
		heap.Push(&h, symbolAndFreq{next, sum})
		next++
	}
	root := heap.Pop(&h).(symbolAndFreq)

	type stackItem struct {
		symbol Symbol
		depth  int
	}

	var longest int
	stack := []stackItem{{root.symbol, 0}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.symbol >= 0 {
			size := top.depth
			if size > math.MaxUint8 {
				size = math.MaxUint8
			}
			sizes[top.symbol] = byte(size)
			if longest < top.depth {
				longest = top.depth
			}
			continue
		}

		s := synthetic[int64(top.symbol)-math.MinInt32]
		stack = append(stack, stackItem{s.right, top.depth + 1}, stackItem{s.left, top.depth + 1})
	}
	return sizes, longest
}

// type symbolAndFreq + type freqHeap {{{

type symbolAndFreq struct {
	symbol Symbol
	freq   uint32
}

type freqHeap struct {
	list []symbolAndFreq
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

// Less breaks frequency ties in favor of natural symbols, then lower symbols.
func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return uint32(a.symbol) < uint32(b.symbol)
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(symbolAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
