package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBitDepth_IsValid checks the inclusive 1..8 range.
func TestBitDepth_IsValid(t *testing.T) {
	for d := MinBitDepth; d <= MaxBitDepth; d++ {
		assert.True(t, d.IsValid(), "depth %d should be valid", d)
	}
	assert.False(t, BitDepth(0).IsValid())
	assert.False(t, BitDepth(9).IsValid())
	assert.False(t, BitDepth(-1).IsValid())
}

// TestBitDepth_Validate verifies the error message names the range.
func TestBitDepth_Validate(t *testing.T) {
	require.NoError(t, BitDepth(4).Validate())

	err := BitDepth(0).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 8")
}

// TestOutputFormat_IsValid checks that only defined formats pass validation.
func TestOutputFormat_IsValid(t *testing.T) {
	assert.True(t, OutputText.IsValid())
	assert.True(t, OutputJSON.IsValid())
	assert.True(t, OutputYAML.IsValid())
	assert.False(t, OutputFormat("xml").IsValid())
	assert.False(t, OutputFormat("").IsValid())
}

// TestParseOutputFormat verifies string-to-format conversion.
func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		hasError bool
	}{
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", OutputYAML, false},
		{"JSON", OutputJSON, false}, // case insensitive
		{"yml", OutputYAML, false},  // alias
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseOutputFormat(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

// TestNewCapacity verifies the capacity arithmetic, including the
// delimiter reservation and the clamp at zero for tiny images.
func TestNewCapacity(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		depth     BitDepth
		bits      int
		bytes     int
		maxSecret int
	}{
		{"2x3 at depth 6", 2, 3, 6, 108, 13, 8},
		{"5x4 at depth 1", 5, 4, 1, 60, 7, 2},
		{"1x1 at depth 1 clamps to zero", 1, 1, 1, 3, 0, 0},
		{"10x10 at depth 8", 10, 10, 8, 2400, 300, 295},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapacity(tt.w, tt.h, tt.depth)
			assert.Equal(t, tt.w*tt.h*3, c.Channels)
			assert.Equal(t, tt.bits, c.Bits)
			assert.Equal(t, tt.bytes, c.Bytes)
			assert.Equal(t, tt.maxSecret, c.MaxSecretBytes)
			assert.Equal(t, tt.depth, c.BitDepth)
		})
	}
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitSecretTooLarge, "the secret is too large to be encoded")
		assert.Equal(t, ExitSecretTooLarge, err.Code)
		assert.Equal(t, "the secret is too large to be encoded", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("no such file or directory")
		err := WrapCLIError(ExitInputNotFound, "an error occurred opening the image", inner)
		assert.Equal(t, ExitInputNotFound, err.Code)
		assert.Contains(t, err.Error(), "no such file or directory")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("no such file or directory")
		err := WrapCLIError(ExitInputNotFound, "an error occurred opening the image", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
