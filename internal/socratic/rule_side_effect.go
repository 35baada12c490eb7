package socratic

import (
	"fmt"
	"strings"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// SideEffectRule flags function declarations named get* whose body
// contains a call or an assignment anywhere, nested closures included.
type SideEffectRule struct {
	Catalog *Catalog
}

func (SideEffectRule) Name() string { return "no-side-effects" }

func (r SideEffectRule) Detect(root syntax.Node, _ []byte) []Question {
	var questions []Question
	syntax.Walk(root, func(n syntax.Node) {
		fn, ok := n.(*syntax.FunctionDeclaration)
		if !ok || !strings.HasPrefix(fn.Name, "get") {
			return
		}
		if !hasSideEffect(fn.Body) {
			return
		}
		questions = append(questions, Question{
			ID:       questionID("side-effect", fn),
			Severity: SeverityInfo,
			Rule:     r.Name(),
			Message:  fmt.Sprintf(r.Catalog.sideEffect, fn.Name),
			Location: locationOf(fn),
		})
	})
	return questions
}

func hasSideEffect(body syntax.Node) bool {
	found := false
	syntax.WalkFunc(body, func(n syntax.Node) bool {
		switch n.Kind() {
		case syntax.KindCall, syntax.KindAssignment:
			found = true
		}
		return !found
	})
	return found
}
