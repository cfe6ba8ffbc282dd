package hufftree

import (
	"golang.org/x/exp/slices"
)

type nodeKind uint8

const (
	nodeEmpty nodeKind = iota
	nodeSymbol
	nodeInternal
)

// node is one slot of the implicit tree.  An internal node lists every
// symbol below it; internal nodes exist only in coding mode, where they
// replace the empty slots.
type node struct {
	kind    nodeKind
	symbol  Symbol
	symbols []Symbol
}

// Tree is a canonical Huffman code stored as an implicit binary tree: slot 0
// is the root, and the children of slot i are 2i+1 (bit 0) and 2i+2 (bit 1).
// The tree has 2^(MaxSize+1) slots, so every valid path stays in bounds and
// any longer path runs off the end.
//
// A Tree is immutable once initialized and may be shared by concurrent
// readers.  The zero Tree is an empty, decode-only tree.
type Tree struct {
	nodes      []node
	bootstrap  Bootstrap
	numSymbols int
	minSize    byte
	maxSize    byte
	coding     bool
}

// NewTree returns a Tree built from b.  See Init.
func NewTree(b Bootstrap, coding bool) *Tree {
	t := new(Tree)
	t.Init(b, coding)
	return t
}

// NewTreeFromSizes returns a Tree built from one bit length per symbol.  See
// InitFromSizes.
func NewTreeFromSizes(sizes []byte, coding bool) *Tree {
	t := new(Tree)
	t.InitFromSizes(sizes, coding)
	return t
}

// Init initializes this Tree from a bootstrap, assigning codes per the
// algorithm in RFC 1951 Section 3.2.2.  Symbols with a bit length of 0 are
// omitted from the code.
//
// If coding is true, the tree also supports Code and Encode.
//
// Init does not check that b is a valid code; see Bootstrap.Validate.  An
// empty table yields a tree on which every Decode fails.
//
func (t *Tree) Init(b Bootstrap, coding bool) {
	entries := buildTable(b)

	*t = Tree{
		bootstrap:  slices.Clone(b),
		numSymbols: len(entries),
		coding:     coding,
	}

	leafCount := 1
	if len(entries) != 0 {
		t.minSize = entries[0].size
		t.maxSize = entries[len(entries)-1].size
		leafCount = 1 << (t.maxSize + 1)
	}
	t.nodes = make([]node, leafCount)

	for _, e := range entries {
		hc := MakeReversedCode(e.size, e.code)
		index := 0
		for i := byte(0); i < hc.Size; i++ {
			index = childIndex(index, hc.Bit(i))
		}
		t.nodes[index] = node{kind: nodeSymbol, symbol: e.symbol}
	}

	if coding {
		t.aggregate()
	}
}

// InitFromSizes initializes this Tree from one bit length per symbol, symbol
// 0 first.
func (t *Tree) InitFromSizes(sizes []byte, coding bool) {
	t.Init(BootstrapFromSizes(sizes), coding)
}

// aggregate replaces every empty slot with an internal node holding the
// symbols of both children.  Children have higher indices than their parent,
// so a single back-to-front pass sees every child before its parent.
func (t *Tree) aggregate() {
	for index := len(t.nodes) - 1; index >= 0; index-- {
		if t.nodes[index].kind != nodeEmpty {
			continue
		}
		var symbols []Symbol
		symbols = t.appendSymbols(symbols, childIndex(index, 0))
		symbols = t.appendSymbols(symbols, childIndex(index, 1))
		t.nodes[index] = node{kind: nodeInternal, symbols: symbols}
	}
}

func (t *Tree) appendSymbols(out []Symbol, index int) []Symbol {
	if index >= len(t.nodes) {
		return out
	}
	n := &t.nodes[index]
	switch n.kind {
	case nodeSymbol:
		out = append(out, n.symbol)
	case nodeInternal:
		out = append(out, n.symbols...)
	}
	return out
}

// Decode reads bits from src until they form a complete code, and returns
// its symbol.  If the bits run off the end of the tree, Decode returns
// InvalidSymbol; the stream is corrupt and the caller should stop decoding
// the current block.
func (t *Tree) Decode(src BitSource) Symbol {
	index := 0
	for {
		index = childIndex(index, src.ReadBit())
		if index >= len(t.nodes) {
			return InvalidSymbol
		}
		if n := &t.nodes[index]; n.kind == nodeSymbol {
			return n.symbol
		}
	}
}

// Lookup decodes the leading bits of hc.  It returns the symbol and the
// number of bits it used.
//
// If the bits are not a valid code, symbol == InvalidSymbol and size is the
// position of the offending bit.  If hc is only a prefix of one or more
// codes, symbol == InvalidSymbol and size == hc.Size.
//
func (t *Tree) Lookup(hc Code) (symbol Symbol, size byte) {
	index := 0
	for i := byte(0); i < hc.Size; i++ {
		index = childIndex(index, hc.Bit(i))
		if index >= len(t.nodes) {
			return InvalidSymbol, i + 1
		}
		if n := &t.nodes[index]; n.kind == nodeSymbol {
			return n.symbol, i + 1
		}
	}
	return InvalidSymbol, hc.Size
}

// Code returns the bits of the code for symbol, as 0/1 values in wire order.
// It returns nil if symbol has no code, or if the Tree was not initialized
// in coding mode.
func (t *Tree) Code(symbol Symbol) []byte {
	if !t.coding || symbol < 0 || len(t.nodes) == 0 {
		return nil
	}

	var bits []byte
	index := 0
	for {
		if n := &t.nodes[index]; n.kind == nodeSymbol {
			if n.symbol == symbol {
				return bits
			}
			return nil
		}

		left := childIndex(index, 0)
		if t.holds(left, symbol) {
			index = left
			bits = append(bits, 0)
			continue
		}

		right := childIndex(index, 1)
		if t.holds(right, symbol) {
			index = right
			bits = append(bits, 1)
			continue
		}

		return nil
	}
}

// Encode is like Code, but packs the bits into a Code.  The result has Size
// 0 if Code would return nil.
func (t *Tree) Encode(symbol Symbol) Code {
	return CodeFromBits(t.Code(symbol))
}

func (t *Tree) holds(index int, symbol Symbol) bool {
	if index >= len(t.nodes) {
		return false
	}
	n := &t.nodes[index]
	switch n.kind {
	case nodeSymbol:
		return n.symbol == symbol
	case nodeInternal:
		return slices.Contains(n.symbols, symbol)
	default:
		return false
	}
}

// MinSize is the bit length of the shortest code.
func (t *Tree) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Tree) MaxSize() byte {
	return t.maxSize
}

// NumSymbols is the number of symbols that have a code.
func (t *Tree) NumSymbols() int {
	return t.numSymbols
}

// LeafCount is the number of slots in the tree.
func (t *Tree) LeafCount() int {
	return len(t.nodes)
}

// Coding reports whether Code and Encode are enabled.
func (t *Tree) Coding() bool {
	return t.coding
}

// Bootstrap returns a copy of the bootstrap this Tree was built from.
func (t *Tree) Bootstrap() Bootstrap {
	return slices.Clone(t.bootstrap)
}

func childIndex(index int, bit uint) int {
	if bit == 0 {
		return 2*index + 1
	}
	return 2*index + 2
}
