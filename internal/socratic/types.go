// Package socratic runs reviewer-style detector rules over a syntax tree
// and turns their findings into questions about the code.
package socratic

import (
	"log/slog"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// Severity ranks how urgent a question is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Tone selects the wording of the summary. It never changes which
// questions are produced.
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneFriendly Tone = "friendly"
	ToneRoasting Tone = "roasting"
)

// Location is a 1-based line and a 0-based column.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Question is one clarifying observation about a code location.
type Question struct {
	ID       string    `json:"id"`
	Severity Severity  `json:"severity"`
	Rule     string    `json:"rule"`
	Message  string    `json:"message"`
	Location *Location `json:"location,omitempty"`
}

// AnalysisResult is the outcome of analyzing one source text.
type AnalysisResult struct {
	Summary   string     `json:"summary"`
	Questions []Question `json:"questions"`

	// Failure is set when the result was degraded because the source
	// could not be analyzed. It is not serialized.
	Failure error `json:"-"`
}

// Failed reports whether the result is a degraded one.
func (r AnalysisResult) Failed() bool { return r.Failure != nil }

// Options configures an analysis.
type Options struct {
	Tone     Tone
	Language syntax.Language // Default: inferred from the file name, else TSX
	Locale   string          // BCP 47 tag; Default: "id"

	// CheckHandledAsync skips fetch calls guarded by try/catch or
	// .catch(). Off by default: every fetch call is reported.
	CheckHandledAsync bool
	Logger            *slog.Logger
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Tone:   ToneFriendly,
		Locale: defaultLocale,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func locationOf(n syntax.Node) *Location {
	pos := n.Pos()
	return &Location{Line: pos.Line, Column: pos.Column}
}
