package hufftree

import (
	"fmt"
	mathbits "math/bits"
	"strconv"
)

// Code represents a sequence of bits, in the order they appear on the wire.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The least significant bit
	// of Bits is the first bit.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// MakeReversedCode constructs a Code from a canonical Huffman codeword, whose
// most significant bit is the first bit on the wire.
func MakeReversedCode(size byte, bits uint32) Code {
	return MakeCode(size, reverseBits(size, bits))
}

// CodeFromBits packs a sequence of 0/1 values, first bit first.
func CodeFromBits(bits []byte) Code {
	var hc Code
	for _, bit := range bits {
		hc = hc.Append(uint(bit))
	}
	return hc
}

// Append returns hc with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	hc.Bits |= uint32(bit&1) << hc.Size
	hc.Size++
	return hc
}

// Bit returns the i'th bit of hc.
func (hc Code) Bit(i byte) uint {
	return uint(hc.Bits>>i) & 1
}

// Slice returns the bits of hc as a sequence of 0/1 values, first bit first.
func (hc Code) Slice() []byte {
	if hc.Size == 0 {
		return nil
	}
	out := make([]byte, hc.Size)
	for i := byte(0); i < hc.Size; i++ {
		out[i] = byte(hc.Bit(i))
	}
	return out
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	return MakeReversedCode(hc.Size, hc.Bits)
}

// String returns the bits in wire order, quoted.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	buf := make([]byte, hc.Size)
	for i := byte(0); i < hc.Size; i++ {
		buf[i] = '0' + byte(hc.Bit(i))
	}
	return strconv.Quote(string(buf))
}

var _ fmt.Stringer = Code{}

func reverseBits(size byte, bits uint32) uint32 {
	if size == 0 {
		return 0
	}
	return mathbits.Reverse32(bits) >> (32 - size)
}
