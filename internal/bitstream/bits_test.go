package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinary(t *testing.T) {
	assert.Equal(t, "01000000", ToBinary(64))
	assert.Equal(t, "00000000", ToBinary(0))
	assert.Equal(t, "11111111", ToBinary(255))
}

func TestTextToBits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hi", "0100100001101001"},
		{"30", "0011001100110000"},
		{"@#", "0100000000100011"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TextToBits(tt.input))
		})
	}
}

// TestReader_Next slices "hi" (0x68 0x69) into 6-bit chunks; the last
// chunk is short because 16 is not a multiple of 6.
func TestReader_Next(t *testing.T) {
	r := NewReader([]byte("hi"))
	assert.Equal(t, 16, r.Len())

	want := []struct {
		value uint8
		n     int
	}{
		{0b011010, 6},
		{0b000110, 6},
		{0b1001, 4},
	}
	for i, w := range want {
		v, n := r.Next(6)
		assert.Equal(t, w.value, v, "chunk %d value", i)
		assert.Equal(t, w.n, n, "chunk %d width", i)
	}
	assert.Equal(t, 0, r.Remaining())

	v, n := r.Next(6)
	assert.Equal(t, uint8(0), v)
	assert.Equal(t, 0, n)
}

// TestReaderAssembler_RoundTrip pushes every chunk width through the
// assembler and expects the original bytes back.
func TestReaderAssembler_RoundTrip(t *testing.T) {
	payload := []byte("Hello, 世界 #")
	for width := 1; width <= 8; width++ {
		r := NewReader(payload)
		var a Assembler
		for r.Remaining() > 0 {
			v, n := r.Next(width)
			a.Push(v, n)
		}
		require.Equal(t, 0, a.Pending(), "width %d", width)
		assert.Equal(t, payload, a.Bytes(), "width %d", width)
	}
}

func TestAssembler_PushMasksHighBits(t *testing.T) {
	var a Assembler
	// Only the low 4 bits of 0xF6 (0b0110) should be used.
	a.Push(0xF6, 4)
	a.Push(0x08, 4)
	assert.Equal(t, []byte{0x68}, a.Bytes())
}

func TestAssembler_SnapshotRestore(t *testing.T) {
	var a Assembler
	a.Push(0b0110, 4)
	snap := a.Snapshot()

	a.Push(0b1000, 4)
	require.Equal(t, []byte{0x68}, a.Bytes())
	assert.True(t, a.HasSuffix([]byte("h")))

	a.Restore(snap)
	assert.Empty(t, a.Bytes())
	assert.Equal(t, 4, a.Pending())

	a.Push(0b1001, 4)
	assert.Equal(t, []byte("i"), a.Bytes())
}
