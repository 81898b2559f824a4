package literal

// Backtick delimits a template literal
const Backtick = '`'

// Result describes a literal that should become a template literal.
// Start and Length locate the original literal (quotes included) in the
// scanned text; Text is its replacement.
type Result struct {
	Text   string
	Start  int
	Length int
}

// End returns the offset one past the last byte of the original literal
func (r Result) End() int {
	return r.Start + r.Length
}

// Convert scans text for the first quoted literal containing a ${...}
// placeholder and returns its template-literal form.
//
// Every quote in text is tried as an opening delimiter, left to right, so on a
// line holding several literals the closing quote of one can be taken as the
// opening quote of a bogus literal spanning the gap to the next. Use Locate
// with ConvertLiteral when the literal at a specific offset is wanted.
func Convert(text string) (Result, bool) {
	for i := 0; i < len(text); i++ {
		if !IsQuote(text[i]) {
			continue
		}
		if end, ok := matchLiteral(text, i); ok {
			return newResult(text, i, end), true
		}
	}
	return Result{}, false
}

// ConvertLiteral converts text when it is exactly one quoted literal holding a
// ${...} placeholder: the quote at offset 0 must close at the final byte.
func ConvertLiteral(text string) (Result, bool) {
	if len(text) < 2 || !IsQuote(text[0]) {
		return Result{}, false
	}
	end, ok := matchLiteral(text, 0)
	if !ok || end != len(text)-1 {
		return Result{}, false
	}
	return newResult(text, 0, end), true
}

// HasPlaceholder reports whether text is a single quoted literal that would
// change meaning as a template literal
func HasPlaceholder(text string) bool {
	_, ok := ConvertLiteral(text)
	return ok
}

func newResult(text string, start, end int) Result {
	interior := text[start+1 : end]
	converted := make([]byte, 0, len(interior)+2)
	converted = append(converted, Backtick)
	converted = append(converted, interior...)
	converted = append(converted, Backtick)
	return Result{
		Text:   string(converted),
		Start:  start,
		Length: end - start + 1,
	}
}

// matchLiteral reports the offset of the closing quote of the literal opened
// at start, provided the literal holds at least one placeholder.
func matchLiteral(text string, start int) (int, bool) {
	quote := text[start]
	found := false

	for i := start + 1; i < len(text); i++ {
		switch c := text[i]; {
		case c == '\\':
			// escape pair; a trailing backslash leaves the literal unclosed
			i++
		case c == quote:
			return i, found
		case c == '$' && i+1 < len(text) && text[i+1] == '{':
			if end, ok := placeholderEnd(text, i+1); ok {
				found = true
				i = end
			}
		}
	}

	return 0, false
}

// placeholderEnd returns the offset of the brace that balances the one at
// open. Nesting depth is unbounded; the placeholder body is otherwise opaque.
func placeholderEnd(text string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
