package hufftree

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Range assigns the bit length Size to every symbol from Start up to, but not
// including, the Start of the next Range in a Bootstrap.  A Size of 0 means
// the symbols have no code.
type Range struct {
	Start Symbol
	Size  byte
}

// MarshalJSON encodes r as the pair [Start, Size].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{int64(r.Start), int64(r.Size)})
}

// UnmarshalJSON decodes r from the pair [Start, Size].  A negative Size is
// accepted as a terminator and stored as 0.
func (r *Range) UnmarshalJSON(raw []byte) error {
	var pair []int64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return errors.Wrap(err, "bootstrap range")
	}
	if len(pair) != 2 {
		return errors.Errorf("bootstrap range: expected [start, size], got %d values", len(pair))
	}
	start, size := pair[0], pair[1]
	if start < 0 || start > int64(MaxSymbol) {
		return errors.Errorf("bootstrap range: start %d out of range", start)
	}
	if size < 0 {
		size = 0
	}
	if size > 0xff {
		return errors.Errorf("bootstrap range: size %d out of range", size)
	}
	*r = Range{Start: Symbol(start), Size: byte(size)}
	return nil
}

// Bootstrap is the run-length form of a canonical Huffman code: consecutive
// Ranges define the bit length of every symbol in the alphabet.  The Size of
// the last Range is never used; it only marks where the alphabet ends.
type Bootstrap []Range

// BootstrapFromSizes converts one bit length per symbol into a Bootstrap with
// one single-symbol Range per index, plus a terminator.
func BootstrapFromSizes(sizes []byte) Bootstrap {
	b := make(Bootstrap, 0, len(sizes)+1)
	for i, size := range sizes {
		b = append(b, Range{Start: Symbol(i), Size: size})
	}
	b = append(b, Range{Start: Symbol(len(sizes))})
	return b
}

// Sizes returns the bit length of every symbol from 0 up to the end of the
// alphabet.
func (b Bootstrap) Sizes() []byte {
	if len(b) == 0 {
		return nil
	}
	end := b[len(b)-1].Start
	if end < 0 {
		return nil
	}
	out := make([]byte, end)
	for i := 0; i+1 < len(b); i++ {
		for symbol := b[i].Start; symbol < b[i+1].Start && symbol < end; symbol++ {
			if symbol >= 0 {
				out[symbol] = b[i].Size
			}
		}
	}
	return out
}

// Errors reported by Bootstrap.Validate.
var (
	ErrEmptyTable     = errors.New("Huffman table has no symbols")
	ErrRangeOrder     = errors.New("bootstrap ranges out of order")
	ErrNegativeSymbol = errors.New("bootstrap range starts below symbol 0")
	ErrSizeTooLarge   = errors.New("bit length too large")
	ErrOversubscribed = errors.New("Huffman table is oversubscribed")
	ErrIncomplete     = errors.New("Huffman table is incomplete")
)

// Validate checks that b describes a complete, prefix-free canonical code.
// A single symbol with a bit length of 1 is permitted, as there is no way to
// construct a non-degenerate code for it.
//
// Tree construction does not call Validate; input collaborators that accept
// tables from untrusted streams should call it first.
//
func (b Bootstrap) Validate() error {
	var counts [MaxBitsPerCode + 1]int64
	var numSymbols int64
	var maxSize byte
	for i, r := range b {
		if r.Start < 0 {
			return errors.Wrapf(ErrNegativeSymbol, "range %d starts at %d", i, r.Start)
		}
	}
	for i := 0; i+1 < len(b); i++ {
		r, next := b[i], b[i+1]
		if next.Start < r.Start {
			return errors.Wrapf(ErrRangeOrder, "range %d starts at %d, range %d at %d", i, r.Start, i+1, next.Start)
		}
		if r.Size == 0 || next.Start == r.Start {
			continue
		}
		if r.Size > MaxBitsPerCode {
			return errors.Wrapf(ErrSizeTooLarge, "got %d, max %d", r.Size, MaxBitsPerCode)
		}
		n := int64(next.Start - r.Start)
		counts[r.Size] += n
		numSymbols += n
		if maxSize < r.Size {
			maxSize = r.Size
		}
	}

	if numSymbols == 0 {
		return ErrEmptyTable
	}

	left := int64(1)
	for size := byte(1); size <= maxSize; size++ {
		left = (left << 1) - counts[size]
		if left < 0 {
			return errors.Wrapf(ErrOversubscribed, "%d codes of length %d", counts[size], size)
		}
	}

	if left != 0 && !(numSymbols == 1 && maxSize == 1) {
		return errors.Wrapf(ErrIncomplete, "%d unused codes of length %d", left, maxSize)
	}
	return nil
}

// String returns a compact representation such as "[0:2 2:0 4:3]".
func (b Bootstrap) String() string {
	buf := make([]byte, 0, 8*len(b))
	buf = append(buf, '[')
	for i, r := range b {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, fmt.Sprintf("%d:%d", r.Start, r.Size)...)
	}
	buf = append(buf, ']')
	return string(buf)
}

var _ fmt.Stringer = Bootstrap(nil)
