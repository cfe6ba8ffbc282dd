package hufftree

import (
	"math"
)

// Symbol is a value in a Huffman code's alphabet.  Negative symbols are not
// valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by Tree.Decode and Tree.Lookup when the bits read
// do not form a code in the tree.
const InvalidSymbol = Symbol(-1)

// MaxBitsPerCode is the longest code length a Tree accepts.  DEFLATE uses at
// most 15 bits and bzip2 at most 20.
const MaxBitsPerCode = 20
