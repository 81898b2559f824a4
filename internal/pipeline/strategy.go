package pipeline

import (
	"fmt"

	"bennypowers.dev/tickify/internal/literal"
)

// Strategy selects how the literal to convert is found on the edited line
type Strategy string

const (
	// StrategyBounded locates the literal around the cursor first and only
	// classifies that literal. With several literals on a line it always
	// picks the one being edited.
	StrategyBounded Strategy = "bounded"

	// StrategyLine classifies the raw line and converts the first literal
	// holding a placeholder, wherever the cursor is. Cheaper, but the closing
	// quote of one literal can pair with the opening quote of the next.
	StrategyLine Strategy = "line"
)

// DefaultStrategy is used when configuration does not name one
const DefaultStrategy = StrategyBounded

// ParseStrategy validates a strategy name. The empty string selects the default.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "":
		return DefaultStrategy, nil
	case StrategyBounded, StrategyLine:
		return Strategy(name), nil
	}
	return DefaultStrategy, fmt.Errorf("unknown strategy %q (want %q or %q)", name, StrategyBounded, StrategyLine)
}

// Plan finds the literal to convert on line for a cursor at byte offset
// cursor. It returns the conversion, or a skip reason.
func (s Strategy) Plan(line string, cursor int) (literal.Result, string) {
	if s == StrategyLine {
		result, ok := literal.Convert(line)
		if !ok {
			return literal.Result{}, SkipNoPlaceholder
		}
		return result, ""
	}

	span, ok := literal.Locate(line, cursor)
	if !ok {
		return literal.Result{}, SkipNoLiteral
	}
	result, ok := literal.ConvertLiteral(span.Text(line))
	if !ok {
		return literal.Result{}, SkipNoPlaceholder
	}
	result.Start += span.Start
	return result, ""
}
