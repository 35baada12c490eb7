package socratic

import "github.com/Someblueman/codesocratic/internal/syntax"

// UnhandledAsyncRule asks what happens when a fetch call fails.
//
// By default every fetch call is reported. With CheckHandled set, calls
// inside the protected block of a try with a non-empty catch, or chained
// into .catch(...) or a two-argument .then(...), are skipped.
type UnhandledAsyncRule struct {
	Catalog      *Catalog
	CheckHandled bool
}

func (UnhandledAsyncRule) Name() string { return "no-unhandled-async" }

func (r UnhandledAsyncRule) Detect(root syntax.Node, _ []byte) []Question {
	var (
		questions []Question
		ancestry  *syntax.Ancestry
	)
	if r.CheckHandled {
		ancestry = syntax.NewAncestry(root)
	}

	syntax.Walk(root, func(n syntax.Node) {
		call, ok := n.(*syntax.Call)
		if !ok || !isIdentifier(call.Callee, "fetch") {
			return
		}
		if r.CheckHandled && isHandledAsync(call, ancestry) {
			return
		}
		questions = append(questions, Question{
			ID:       questionID("unhandled-async", call),
			Severity: SeverityDanger,
			Rule:     r.Name(),
			Message:  r.Catalog.unhandledAsync,
			Location: locationOf(call),
		})
	})
	return questions
}

func isIdentifier(n syntax.Node, name string) bool {
	id, ok := n.(*syntax.Identifier)
	return ok && id.Name == name
}

func isHandledAsync(call *syntax.Call, ancestry *syntax.Ancestry) bool {
	return hasCatchChain(call, ancestry) || insideGuardedTry(call, ancestry)
}

// hasCatchChain follows promise method chains upward from call.
func hasCatchChain(call *syntax.Call, ancestry *syntax.Ancestry) bool {
	var cur syntax.Node = call
	for {
		parent := ancestry.Parent(cur)
		for parent != nil && parent.Kind() == "parenthesized_expression" {
			cur = parent
			parent = ancestry.Parent(cur)
		}
		member, ok := parent.(*syntax.Member)
		if !ok || member.Object != cur {
			return false
		}
		chained, ok := ancestry.Parent(member).(*syntax.Call)
		if !ok || chained.Callee != syntax.Node(member) {
			return false
		}
		switch member.Property {
		case "catch":
			return true
		case "then":
			if len(chained.Arguments) >= 2 {
				return true
			}
		case "finally":
		default:
			return false
		}
		cur = chained
	}
}

// insideGuardedTry reports whether the nearest try protecting n, within
// the same function, has a catch body with statements.
func insideGuardedTry(n syntax.Node, ancestry *syntax.Ancestry) bool {
	cur := n
	for parent := ancestry.Parent(cur); parent != nil; cur, parent = parent, ancestry.Parent(parent) {
		if syntax.IsFunctionBoundary(parent) {
			return false
		}
		try, ok := parent.(*syntax.Try)
		if !ok || try.Body == nil || syntax.Node(try.Body) != cur {
			continue
		}
		if try.Handler == nil {
			continue
		}
		body, ok := try.Handler.Body.(*syntax.Block)
		return ok && len(body.Statements()) > 0
	}
	return false
}
