package socratic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// MagicNumberRule flags numeric literals outside a fixed allow-list.
type MagicNumberRule struct {
	Catalog *Catalog
}

var allowedNumbers = []float64{0, 1, -1, 2}

func (MagicNumberRule) Name() string { return "no-magic-numbers" }

func (r MagicNumberRule) Detect(root syntax.Node, _ []byte) []Question {
	var questions []Question
	syntax.Walk(root, func(n syntax.Node) {
		lit, ok := n.(*syntax.Literal)
		if !ok || !lit.IsNumeric() || isAllowedNumber(lit.Value) {
			return
		}
		questions = append(questions, Question{
			ID:       questionID("magic-number", lit),
			Severity: SeverityInfo,
			Rule:     r.Name(),
			Message:  fmt.Sprintf(r.Catalog.magicNumber, formatNumber(lit)),
			Location: locationOf(lit),
		})
	})
	return questions
}

func isAllowedNumber(v float64) bool {
	for _, allowed := range allowedNumbers {
		if v == allowed {
			return true
		}
	}
	return false
}

// formatNumber prints a literal's value the way JavaScript stringifies
// numbers, falling back to the source text when it has no value.
func formatNumber(lit *syntax.Literal) string {
	v := lit.Value
	switch {
	case math.IsNaN(v):
		return lit.Raw
	case math.IsInf(v, 0):
		return "Infinity"
	case math.Abs(v) >= 1e21 || (v != 0 && math.Abs(v) < 1e-6):
		s := strconv.FormatFloat(v, 'g', -1, 64)
		return strings.NewReplacer("e+0", "e+", "e-0", "e-").Replace(s)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
