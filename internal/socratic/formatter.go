package socratic

// Format builds the result for questions. Questions are passed through
// unchanged; only the summary depends on tone.
func Format(questions []Question, tone Tone, cat *Catalog) AnalysisResult {
	if cat == nil {
		cat = CatalogFor(defaultLocale)
	}
	if questions == nil {
		questions = []Question{}
	}
	return AnalysisResult{
		Summary:   cat.Summary(tone, len(questions)),
		Questions: questions,
	}
}
