package position_test

import (
	"math"
	"testing"

	"bennypowers.dev/tickify/internal/position"
	"github.com/stretchr/testify/assert"
)

func TestUTF16ToByteOffset(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"ascii start", `let s = "a";`, 0, 0},
		{"ascii middle", `let s = "a";`, 8, 8},
		{"negative column", "abc", -3, 0},
		{"past end clamps", "abc", 10, 3},
		{"two byte rune", "é'${x}'", 1, 2},
		{"three byte rune", "日本'${x}'", 2, 6},
		{"surrogate pair", "😀'${x}'", 2, 4},
		{"inside surrogate pair clamps to rune start", "😀'${x}'", 1, 0},
		{"invalid utf8 counts one unit", "\xff'a'", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.UTF16ToByteOffset(tt.line, tt.col))
		})
	}
}

func TestByteOffsetToUTF16(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		offset int
		want   int
	}{
		{"ascii", "abc", 2, 2},
		{"zero", "abc", 0, 0},
		{"past end clamps", "abc", 9, 3},
		{"two byte rune", "é'", 2, 1},
		{"surrogate pair", "😀'", 4, 2},
		{"inside rune counts to rune start", "😀'", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.ByteOffsetToUTF16(tt.line, tt.offset))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	line := "const 😀 = 'héllo ${日本}';"
	for offset := 0; offset <= len(line); offset++ {
		col := position.ByteOffsetToUTF16(line, offset)
		back := position.UTF16ToByteOffset(line, col)
		assert.LessOrEqual(t, back, offset)
	}
	assert.Equal(t, len(line), position.UTF16ToByteOffset(line, position.StringLengthUTF16(line)))
}

func TestToUInteger(t *testing.T) {
	assert.Equal(t, uint32(0), position.ToUInteger(-1))
	assert.Equal(t, uint32(42), position.ToUInteger(42))
	assert.Equal(t, uint32(math.MaxUint32), position.ToUInteger(math.MaxUint32+10))
}
