package hufftree

import (
	"bytes"
	"testing"
)

func TestReverseBits(t *testing.T) {
	type testRow struct {
		size   byte
		bits   uint32
		expect uint32
	}

	testData := [...]testRow{
		{size: 0, bits: 0x0, expect: 0x0},
		{size: 1, bits: 0x1, expect: 0x1},
		{size: 3, bits: 0x6, expect: 0x3},
		{size: 4, bits: 0xe, expect: 0x7},
		{size: 7, bits: 0x01, expect: 0x40},
		{size: 9, bits: 0x190, expect: 0x013},
	}
	for _, row := range testData {
		actual := reverseBits(row.size, row.bits)
		if actual != row.expect {
			t.Errorf("reverseBits(%d, %#x): expected %#x, got %#x", row.size, row.bits, row.expect, actual)
		}
	}
}

func TestCode_String(t *testing.T) {
	type testRow struct {
		hc     Code
		expect string
	}

	testData := [...]testRow{
		{hc: Code{}, expect: `""`},
		{hc: MakeCode(1, 0x0), expect: `"0"`},
		{hc: MakeCode(3, 0x1), expect: `"100"`},
		{hc: MakeReversedCode(4, 0xe), expect: `"1110"`},
		{hc: MakeReversedCode(8, 0x30), expect: `"00110000"`},
	}
	for _, row := range testData {
		actual := row.hc.String()
		if actual != row.expect {
			t.Errorf("Code{%d, %#x}: expected %s, got %s", row.hc.Size, row.hc.Bits, row.expect, actual)
		}
	}
}

func TestCode_Bits(t *testing.T) {
	bits := []byte{1, 0, 1, 1}
	hc := CodeFromBits(bits)
	if expect := MakeCode(4, 0xd); hc != expect {
		t.Errorf("CodeFromBits: expected %#v, got %#v", expect, hc)
	}
	if actual := hc.Slice(); !bytes.Equal(bits, actual) {
		t.Errorf("Slice: expected %v, got %v", bits, actual)
	}
	if actual := hc.Reversed(); actual != MakeCode(4, 0xb) {
		t.Errorf("Reversed: expected %s, got %s", `"1101"`, actual)
	}
	if actual := (Code{}).Slice(); actual != nil {
		t.Errorf("Slice of empty code: expected nil, got %v", actual)
	}
}
