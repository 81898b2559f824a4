package literal_test

import (
	"strings"
	"testing"

	"bennypowers.dev/tickify/internal/literal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   literal.Span
		found  bool
	}{
		{
			name:   "double quoted literal",
			line:   `let s = "hello";`,
			cursor: 11,
			want:   literal.Span{Start: 8, End: 14},
			found:  true,
		},
		{
			name:   "single quoted literal",
			line:   `let s = 'hello';`,
			cursor: 11,
			want:   literal.Span{Start: 8, End: 14},
			found:  true,
		},
		{
			name:   "cursor on opening quote",
			line:   `f("a")`,
			cursor: 2,
			want:   literal.Span{Start: 2, End: 4},
			found:  true,
		},
		{
			name:   "cursor on closing quote",
			line:   `f("a")`,
			cursor: 4,
			want:   literal.Span{Start: 2, End: 4},
			found:  true,
		},
		{
			name:   "cursor outside any literal",
			line:   `let s = "hello";`,
			cursor: 2,
			found:  false,
		},
		{
			name:   "cursor between adjacent literals",
			line:   `"a" + "b"`,
			cursor: 4,
			found:  false,
		},
		{
			name:   "first of adjacent literals",
			line:   `"a" + "b"`,
			cursor: 1,
			want:   literal.Span{Start: 0, End: 2},
			found:  true,
		},
		{
			name:   "second of adjacent literals",
			line:   `"a" + "b"`,
			cursor: 7,
			want:   literal.Span{Start: 6, End: 8},
			found:  true,
		},
		{
			name:   "escaped delimiter inside literal",
			line:   `x = "a\"b";`,
			cursor: 7,
			want:   literal.Span{Start: 4, End: 9},
			found:  true,
		},
		{
			name:   "other quote style is content",
			line:   `x = "it's";`,
			cursor: 8,
			want:   literal.Span{Start: 4, End: 9},
			found:  true,
		},
		{
			name:   "escaped backslash before closing quote",
			line:   `x = "a\\" + 'b'`,
			cursor: 13,
			want:   literal.Span{Start: 12, End: 14},
			found:  true,
		},
		{
			name:   "escaped quote outside a literal does not open one",
			line:   `x = \"a" + 'b'`,
			cursor: 12,
			want:   literal.Span{Start: 7, End: 13},
			found:  true,
		},
		{
			name:   "unterminated literal runs to end of line",
			line:   `let s = "hello ${`,
			cursor: 16,
			want:   literal.Span{Start: 8, End: 16},
			found:  true,
		},
		{
			name:   "unterminated literal after cursor",
			line:   `a + "hello`,
			cursor: 1,
			found:  false,
		},
		{
			name:   "empty line",
			line:   ``,
			cursor: 0,
			found:  false,
		},
		{
			name:   "negative cursor",
			line:   `"a"`,
			cursor: -1,
			found:  false,
		},
		{
			name:   "cursor beyond line",
			line:   `"a"`,
			cursor: 10,
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, found := literal.Locate(tt.line, tt.cursor)
			require.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, span)
			}
		})
	}
}

// TestLocateEscapedDelimiterEveryOffset checks that every offset inside a
// literal with an escaped delimiter reports the full outer span
func TestLocateEscapedDelimiterEveryOffset(t *testing.T) {
	line := `"a\"b"`
	want := literal.Span{Start: 0, End: 5}

	for cursor := 0; cursor < len(line); cursor++ {
		span, found := literal.Locate(line, cursor)
		require.True(t, found, "cursor %d", cursor)
		assert.Equal(t, want, span, "cursor %d", cursor)
		assert.Equal(t, line, span.Text(line))
	}
}

func TestLocateQuoteStyleIndependence(t *testing.T) {
	lines := []string{
		`const a = "x ${y} z", b = "w";`,
		`const a = "it's", b = "w";`,
		`f("a\"b", "c")`,
	}

	for _, double := range lines {
		single := swapQuotes(double)
		for cursor := 0; cursor <= len(double); cursor++ {
			dSpan, dFound := literal.Locate(double, cursor)
			sSpan, sFound := literal.Locate(single, cursor)
			assert.Equal(t, dFound, sFound, "%q cursor %d", double, cursor)
			assert.Equal(t, dSpan, sSpan, "%q cursor %d", double, cursor)
		}
	}
}

func TestSpan(t *testing.T) {
	line := `x = "abc";`
	span := literal.Span{Start: 4, End: 8}

	assert.Equal(t, 5, span.Len())
	assert.Equal(t, `"abc"`, span.Text(line))
	assert.True(t, span.Contains(4))
	assert.True(t, span.Contains(8))
	assert.False(t, span.Contains(3))
	assert.False(t, span.Contains(9))
}

// swapQuotes exchanges single and double quotes
func swapQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"':
			return '\''
		case '\'':
			return '"'
		}
		return r
	}, s)
}
