package bitstream

import (
	"bytes"
	"fmt"
	"strings"
)

// ToBinary renders b as an 8-character zero-padded binary string.
func ToBinary(b byte) string {
	return fmt.Sprintf("%08b", b)
}

// TextToBits renders every byte of s with ToBinary and concatenates them.
func TextToBits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 8)
	for i := 0; i < len(s); i++ {
		sb.WriteString(ToBinary(s[i]))
	}
	return sb.String()
}

// Reader hands out the bits of a byte slice in MSB-first order.
type Reader struct {
	data []byte
	pos  int // next bit index
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total number of bits in the underlying data.
func (r *Reader) Len() int {
	return len(r.data) * 8
}

// Remaining returns the number of bits not yet consumed.
func (r *Reader) Remaining() int {
	return r.Len() - r.pos
}

// Next consumes up to width bits and returns them right-aligned in value,
// together with the number of bits actually read. Fewer than width bits
// are returned only at the end of the stream. width must be in 1..8.
func (r *Reader) Next(width int) (value uint8, n int) {
	n = width
	if rem := r.Remaining(); n > rem {
		n = rem
	}
	for i := 0; i < n; i++ {
		byteIdx, bitIdx := r.pos/8, 7-r.pos%8
		bit := (r.data[byteIdx] >> bitIdx) & 1
		value = value<<1 | bit
		r.pos++
	}
	return value, n
}

// Assembler accumulates MSB-first chunks of bits into whole bytes.
type Assembler struct {
	acc     uint16 // pending bits, right-aligned
	pending int
	out     []byte
}

// Push appends the low width bits of value. Each time eight bits are
// pending a byte is emitted. width must be in 1..8.
func (a *Assembler) Push(value uint8, width int) {
	mask := uint16(1)<<width - 1
	a.acc = a.acc<<width | uint16(value)&mask
	a.pending += width
	if a.pending >= 8 {
		shift := a.pending - 8
		a.out = append(a.out, byte(a.acc>>shift))
		a.pending = shift
		a.acc &= uint16(1)<<shift - 1
	}
}

// Pending returns how many bits of the next byte have been collected.
func (a *Assembler) Pending() int {
	return a.pending
}

// Bytes returns the completed bytes. The slice aliases internal state.
func (a *Assembler) Bytes() []byte {
	return a.out
}

// HasSuffix reports whether the completed bytes end with suffix.
func (a *Assembler) HasSuffix(suffix []byte) bool {
	return bytes.HasSuffix(a.out, suffix)
}

// Snapshot captures the assembler state so a speculative Push can be
// undone with Restore.
type Snapshot struct {
	acc     uint16
	pending int
	length  int
}

// Snapshot records the current state.
func (a *Assembler) Snapshot() Snapshot {
	return Snapshot{acc: a.acc, pending: a.pending, length: len(a.out)}
}

// Restore rewinds the assembler to s. Bytes emitted after s was taken
// are discarded.
func (a *Assembler) Restore(s Snapshot) {
	a.acc = s.acc
	a.pending = s.pending
	a.out = a.out[:s.length]
}
