// Package literal finds quoted string literals on a single line of source text
// and rewrites the ones carrying a ${...} placeholder into template literals.
//
// All offsets are byte offsets into the line. Callers that speak UTF-16
// columns (LSP) convert with the position package before and after.
package literal

// Span is the location of a quoted literal on a line, including its quotes.
// Both Start and End are inclusive byte offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Contains reports whether offset lies within the span (inclusive on both ends)
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset <= s.End
}

// Text returns the slice of line covered by the span
func (s Span) Text(line string) string {
	return line[s.Start : s.End+1]
}

// IsQuote reports whether b opens or closes a single- or double-quoted literal
func IsQuote(b byte) bool {
	return b == '"' || b == '\''
}

// Locate finds the quoted literal on line that contains cursor.
//
// Literals are found in one left-to-right pass. An escaped quote never opens
// or closes a literal, and a quote of the other style inside a literal is
// ordinary content. When the line ends inside a literal that opened at or
// before cursor, the span runs to the last byte of the line, which covers
// literals the user is still typing.
func Locate(line string, cursor int) (Span, bool) {
	if cursor < 0 || cursor > len(line) {
		return Span{}, false
	}

	var (
		inString bool
		quote    byte
		start    int
		escaped  bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if !IsQuote(c) {
			continue
		}

		switch {
		case !inString:
			inString = true
			quote = c
			start = i
		case c == quote:
			span := Span{Start: start, End: i}
			if span.Contains(cursor) {
				return span, true
			}
			inString = false
		}
	}

	if inString && cursor >= start {
		return Span{Start: start, End: len(line) - 1}, true
	}

	return Span{}, false
}
