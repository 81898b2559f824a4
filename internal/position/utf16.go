// Package position converts between LSP columns (UTF-16 code units) and byte
// offsets into Go strings.
package position

import (
	"math"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 column on line to a byte offset.
// A column pointing into the middle of a surrogate pair clamps to the start of
// that rune; a column past the end clamps to len(line).
func UTF16ToByteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}

	units := 0
	offset := 0
	for offset < len(line) && units < col {
		r, size := utf8.DecodeRuneInString(line[offset:])
		width := 1
		if r != utf8.RuneError || size != 1 {
			width = utf16.RuneLen(r)
		}
		if units+width > col {
			break
		}
		units += width
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset on line to a UTF-16 column.
// Offsets inside a multi-byte rune count up to the start of that rune.
func ByteOffsetToUTF16(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}

	units := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(line[i:])
		if i+size > offset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		i += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

// ToUInteger clamps n into the LSP uinteger range
func ToUInteger(n int) uint32 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(n) //nolint:gosec // G115: clamped above
}
