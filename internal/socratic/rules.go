package socratic

import (
	"fmt"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// Rule detects one code pattern. Detect is given the whole tree and must
// neither mutate it nor depend on other rules.
type Rule interface {
	Name() string
	Detect(root syntax.Node, source []byte) []Question
}

// RuleOptions configures the built-in rules.
type RuleOptions struct {
	Catalog           *Catalog
	CheckHandledAsync bool
}

// DefaultRules returns the built-in rules in registration order.
func DefaultRules(opts RuleOptions) []Rule {
	cat := opts.Catalog
	if cat == nil {
		cat = CatalogFor(defaultLocale)
	}
	return []Rule{
		UnhandledAsyncRule{Catalog: cat, CheckHandled: opts.CheckHandledAsync},
		ErrorSwallowingRule{Catalog: cat},
		SideEffectRule{Catalog: cat},
		MagicNumberRule{Catalog: cat},
	}
}

// ApplyRules runs rules in order and concatenates their questions.
func ApplyRules(root syntax.Node, source []byte, rules []Rule) []Question {
	questions := make([]Question, 0)
	for _, rule := range rules {
		questions = append(questions, rule.Detect(root, source)...)
	}
	return questions
}

// questionID derives an id from a rule key and the node's line. Two
// findings of the same rule on one line share an id.
func questionID(key string, n syntax.Node) string {
	return fmt.Sprintf("%s-%d", key, n.Pos().Line)
}
