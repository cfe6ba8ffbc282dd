package hufftree

import (
	"bufio"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// BitSource is the bit stream a Tree decodes from.  ReadBit returns the next
// bit, 0 or 1, and advances by one position.  Within each byte, bits are
// delivered least significant bit first, as in DEFLATE.
type BitSource interface {
	ReadBit() uint
}

// BitReader is a BitSource backed by an io.Reader.
//
// Read errors are sticky: once one occurs, every further ReadBit returns 0
// and Err reports the failure.  Running out of input is reported as
// io.ErrUnexpectedEOF.
type BitReader struct {
	r     io.ByteReader
	err   error
	cur   byte
	nbits byte
	count int64
}

// NewBitReader returns a BitReader reading from r.
func NewBitReader(r io.Reader) *BitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &BitReader{r: br}
}

// ReadBit implements BitSource.
func (br *BitReader) ReadBit() uint {
	if br.nbits == 0 {
		if !br.fill() {
			return 0
		}
	}
	bit := uint(br.cur & 1)
	br.cur >>= 1
	br.nbits--
	br.count++
	return bit
}

// ReadBits reads n bits, first bit in the least significant position.
func (br *BitReader) ReadBits(n byte) uint32 {
	assert.Assertf(n <= 32, "ReadBits: n %d > 32", n)
	var v uint32
	for i := byte(0); i < n; i++ {
		v |= uint32(br.ReadBit()) << i
	}
	return v
}

// AlignToByte discards the remaining bits of the current byte.
func (br *BitReader) AlignToByte() {
	br.count += int64(br.nbits)
	br.cur = 0
	br.nbits = 0
}

// ReadByteAligned reads one whole byte.  The reader must be byte aligned.
func (br *BitReader) ReadByteAligned() byte {
	assert.Assertf(br.nbits == 0, "ReadByteAligned: %d bits pending", br.nbits)
	if !br.fill() {
		return 0
	}
	b := br.cur
	br.cur = 0
	br.nbits = 0
	br.count += 8
	return b
}

// BitsRead returns the number of bits consumed so far.
func (br *BitReader) BitsRead() int64 {
	return br.count
}

// Err returns the first error encountered, if any.
func (br *BitReader) Err() error {
	return br.err
}

func (br *BitReader) fill() bool {
	if br.err != nil {
		return false
	}
	b, err := br.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		br.err = errors.Wrapf(err, "reading bit %d", br.count)
		return false
	}
	br.cur = b
	br.nbits = 8
	return true
}

var _ BitSource = (*BitReader)(nil)

// BitWriter packs bits least significant bit first and writes whole bytes to
// an io.Writer.  Write errors are sticky and reported by Close or Err.  The
// final partial byte is zero-padded on the high side.
type BitWriter struct {
	w     io.Writer
	err   error
	bits  uint64
	nbits byte
}

// NewBitWriter returns a BitWriter writing to w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBits writes the low n bits of b, least significant bit first.
func (bw *BitWriter) WriteBits(b uint32, n byte) {
	assert.Assertf(n <= 32, "WriteBits: n %d > 32", n)
	if bw.err != nil {
		return
	}
	if n < 32 {
		b &= (uint32(1) << n) - 1
	}
	bw.bits |= uint64(b) << bw.nbits
	bw.nbits += n
	if bw.nbits >= 32 {
		var buf [4]byte
		buf[0] = byte(bw.bits)
		buf[1] = byte(bw.bits >> 8)
		buf[2] = byte(bw.bits >> 16)
		buf[3] = byte(bw.bits >> 24)
		bw.bits >>= 32
		bw.nbits -= 32
		bw.write(buf[:])
	}
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit uint) {
	bw.WriteBits(uint32(bit&1), 1)
}

// WriteCode writes the bits of hc in wire order.
func (bw *BitWriter) WriteCode(hc Code) {
	bw.WriteBits(hc.Bits, hc.Size)
}

// Flush writes any buffered bits, padding the last byte with zeros.
func (bw *BitWriter) Flush() error {
	var buf [8]byte
	var i int
	for bw.nbits > 0 {
		buf[i] = byte(bw.bits)
		i++
		bw.bits >>= 8
		if bw.nbits > 8 {
			bw.nbits -= 8
		} else {
			bw.nbits = 0
		}
	}
	bw.write(buf[:i])
	return bw.err
}

// Close flushes the writer.  It does not close the underlying io.Writer.
func (bw *BitWriter) Close() error {
	return bw.Flush()
}

// Err returns the first error encountered, if any.
func (bw *BitWriter) Err() error {
	return bw.err
}

func (bw *BitWriter) write(buf []byte) {
	if bw.err != nil || len(buf) == 0 {
		return
	}
	if _, err := bw.w.Write(buf); err != nil {
		bw.err = errors.Wrap(err, "writing bits")
	}
}

// CodeSource is a BitSource that replays the bits of a Code, then zeros.
type CodeSource struct {
	hc  Code
	pos byte
}

// NewCodeSource returns a BitSource over the bits of hc.
func NewCodeSource(hc Code) *CodeSource {
	return &CodeSource{hc: hc}
}

// ReadBit implements BitSource.
func (cs *CodeSource) ReadBit() uint {
	if cs.pos >= cs.hc.Size {
		if cs.pos < 0xff {
			cs.pos++
		}
		return 0
	}
	bit := cs.hc.Bit(cs.pos)
	cs.pos++
	return bit
}

// Consumed returns the number of bits read so far.
func (cs *CodeSource) Consumed() byte {
	return cs.pos
}

var _ BitSource = (*CodeSource)(nil)
