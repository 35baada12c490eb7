package socratic

import (
	"fmt"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// ruleSet builds the rules for one analysis; tests replace it.
var ruleSet = DefaultRules

// Analyze parses source and asks the built-in rules about it. It never
// panics and never fails: parse errors and rule panics produce a degraded
// result with an explanatory summary and no questions.
func Analyze(source string, opts Options) AnalysisResult {
	return analyzeBytes([]byte(source), opts)
}

func analyzeBytes(source []byte, opts Options) (result AnalysisResult) {
	tone := opts.Tone
	if tone == "" {
		tone = ToneFriendly
	}
	cat := CatalogFor(opts.Locale)
	log := opts.logger()

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			log.Error("rule evaluation panicked", "error", err)
			result = degraded(cat, err)
		}
	}()

	lang := opts.Language
	if lang == "" {
		lang = syntax.LanguageTSX
	}
	root, err := syntax.Parse(lang, source)
	if err != nil {
		log.Warn("parse failed", "language", lang, "error", err)
		return degraded(cat, err)
	}

	rules := ruleSet(RuleOptions{
		Catalog:           cat,
		CheckHandledAsync: opts.CheckHandledAsync,
	})
	questions := ApplyRules(root, source, rules)
	log.Debug("rules applied", "language", lang, "rules", len(rules), "questions", len(questions))

	return Format(questions, tone, cat)
}

func degraded(cat *Catalog, err error) AnalysisResult {
	return AnalysisResult{
		Summary:   cat.Failure(err),
		Questions: []Question{},
		Failure:   err,
	}
}
