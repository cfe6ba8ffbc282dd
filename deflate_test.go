package hufftree

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"
)

// codeLengthOrder is the order in which a dynamic DEFLATE header lists the
// bit lengths of the code length alphabet.
var codeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

const endOfBlock = Symbol(256)

// inflateLiterals decodes a DEFLATE stream that contains no back-references,
// such as the output of a Huffman-only compressor.
func inflateLiterals(t *testing.T, data []byte) []byte {
	t.Helper()

	fixed := NewTree(fixedLiteralBootstrap, false)
	br := NewBitReader(bytes.NewReader(data))
	var out []byte
	for {
		final := br.ReadBit()
		btype := br.ReadBits(2)
		require.NoError(t, br.Err())

		var lit *Tree
		switch btype {
		case 0:
			br.AlignToByte()
			n := uint16(br.ReadByteAligned()) | uint16(br.ReadByteAligned())<<8
			nn := uint16(br.ReadByteAligned()) | uint16(br.ReadByteAligned())<<8
			require.Equal(t, n, ^nn, "stored block length check")
			for i := uint16(0); i < n; i++ {
				out = append(out, br.ReadByteAligned())
			}
		case 1:
			lit = fixed
		case 2:
			lit = readDynamicHeader(t, br)
		default:
			t.Fatalf("reserved block type %d", btype)
		}

		for lit != nil {
			symbol := lit.Decode(br)
			require.NoError(t, br.Err())
			require.NotEqual(t, InvalidSymbol, symbol, "invalid code at bit %d", br.BitsRead())
			if symbol == endOfBlock {
				break
			}
			require.Less(t, int(symbol), int(endOfBlock), "unexpected back-reference at bit %d", br.BitsRead())
			out = append(out, byte(symbol))
		}
		require.NoError(t, br.Err())

		if final == 1 {
			return out
		}
	}
}

func readDynamicHeader(t *testing.T, br *BitReader) *Tree {
	t.Helper()

	hlit := int(br.ReadBits(5)) + 257
	hdist := int(br.ReadBits(5)) + 1
	hclen := int(br.ReadBits(4)) + 4

	var clSizes [19]byte
	for i := 0; i < hclen; i++ {
		clSizes[codeLengthOrder[i]] = byte(br.ReadBits(3))
	}
	clTree := NewTreeFromSizes(clSizes[:], false)

	sizes := make([]byte, hlit+hdist)
	for i := 0; i < len(sizes); {
		symbol := clTree.Decode(br)
		require.NotEqual(t, InvalidSymbol, symbol, "invalid code length code")

		var repeat int
		var value byte
		switch {
		case symbol < 16:
			sizes[i] = byte(symbol)
			i++
			continue
		case symbol == 16:
			require.Greater(t, i, 0, "repeat with no previous length")
			repeat, value = 3+int(br.ReadBits(2)), sizes[i-1]
		case symbol == 17:
			repeat = 3 + int(br.ReadBits(3))
		default:
			repeat = 11 + int(br.ReadBits(7))
		}
		require.LessOrEqual(t, i+repeat, len(sizes), "code lengths overflow")
		for ; repeat > 0; repeat-- {
			sizes[i] = value
			i++
		}
	}
	require.NoError(t, br.Err())

	litSizes := sizes[:hlit]
	require.NotZero(t, litSizes[endOfBlock], "no end-of-block code")
	require.NoError(t, BootstrapFromSizes(litSizes).Validate())
	return NewTreeFromSizes(litSizes, false)
}

func TestInflate_HuffmanOnly(t *testing.T) {
	inputs := map[string][]byte{
		"text":   []byte(strings.Repeat("The quick brown fox jumps over the lazy dog.  Pack my box with five dozen liquor jugs!\n", 200)),
		"skewed": bytes.Repeat([]byte("aaaaaaaaaaaaaaabbbbbbbcccd"), 500),
		"short":  []byte("hi"),
	}
	for name, input := range inputs {
		input := input
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			fw, err := flate.NewWriter(&buf, flate.HuffmanOnly)
			require.NoError(t, err)
			_, err = fw.Write(input)
			require.NoError(t, err)
			require.NoError(t, fw.Close())

			require.Equal(t, input, inflateLiterals(t, buf.Bytes()))
		})
	}
}

func TestDeflate_FixedBlock(t *testing.T) {
	input := []byte("canonical Huffman codes, written by hand\x00\xff")
	tree := NewTree(fixedLiteralBootstrap, true)

	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	bw.WriteBit(1)
	bw.WriteBits(1, 2)
	for _, b := range input {
		bw.WriteCode(tree.Encode(Symbol(b)))
	}
	bw.WriteCode(tree.Encode(endOfBlock))
	require.NoError(t, bw.Close())

	fr := flate.NewReader(bytes.NewReader(buf.Bytes()))
	actual, err := io.ReadAll(fr)
	require.NoError(t, err)
	require.NoError(t, fr.Close())
	require.Equal(t, input, actual)

	require.Equal(t, input, inflateLiterals(t, buf.Bytes()))
}
