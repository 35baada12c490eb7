package socratic

import "github.com/Someblueman/codesocratic/internal/syntax"

// ErrorSwallowingRule flags catch clauses whose block has no statements.
// Comments inside the block do not count as handling.
type ErrorSwallowingRule struct {
	Catalog *Catalog
}

func (ErrorSwallowingRule) Name() string { return "no-error-swallowing" }

func (r ErrorSwallowingRule) Detect(root syntax.Node, _ []byte) []Question {
	var questions []Question
	syntax.Walk(root, func(n syntax.Node) {
		clause, ok := n.(*syntax.CatchClause)
		if !ok {
			return
		}
		body, ok := clause.Body.(*syntax.Block)
		if !ok || len(body.Statements()) != 0 {
			return
		}
		questions = append(questions, Question{
			ID:       questionID("error-swallow", clause),
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  r.Catalog.errorSwallow,
			Location: locationOf(clause),
		})
	})
	return questions
}
