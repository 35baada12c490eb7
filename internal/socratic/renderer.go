package socratic

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

// ErrUnknownFormat is returned by RendererFor for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes analysis results in one output format.
type Renderer interface {
	Name() string
	Render(w io.Writer, results []FileResult) error
}

// RendererFor returns the renderer registered under name. colorize only
// affects formats that support color.
func RendererFor(name string, colorize bool) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONRenderer{}, nil
	case "text":
		return TextRenderer{Color: colorize}, nil
	case "markdown", "md":
		return MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// JSONRenderer prints pretty JSON without HTML escaping. A single result
// is printed bare; several results become an array of
// {path, summary, questions}.
type JSONRenderer struct{}

type fileResultJSON struct {
	Path      string     `json:"path"`
	Summary   string     `json:"summary"`
	Questions []Question `json:"questions"`
}

func (JSONRenderer) Name() string { return "json" }

func (JSONRenderer) Render(w io.Writer, results []FileResult) error {
	var v any
	if len(results) == 1 {
		v = results[0].Result
	} else {
		out := make([]fileResultJSON, 0, len(results))
		for _, res := range results {
			out = append(out, fileResultJSON{
				Path:      res.Path,
				Summary:   res.Result.Summary,
				Questions: nonNilQuestions(res.Result.Questions),
			})
		}
		v = out
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func nonNilQuestions(q []Question) []Question {
	if q == nil {
		return []Question{}
	}
	return q
}

// TextRenderer prints a compact human-readable report.
type TextRenderer struct {
	Color bool
}

func (TextRenderer) Name() string { return "text" }

func (r TextRenderer) Render(w io.Writer, results []FileResult) error {
	styles := map[Severity]*color.Color{
		SeverityDanger:  color.New(color.FgRed, color.Bold),
		SeverityWarning: color.New(color.FgYellow, color.Bold),
		SeverityInfo:    color.New(color.FgCyan),
	}
	pathStyle := color.New(color.Bold)
	for _, c := range append([]*color.Color{pathStyle}, styles[SeverityDanger], styles[SeverityWarning], styles[SeverityInfo]) {
		if r.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		if res.Path != "" {
			sb.WriteString(pathStyle.Sprint(res.Path))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "  %s\n", res.Result.Summary)
		for _, q := range res.Result.Questions {
			style, ok := styles[q.Severity]
			if !ok {
				style = styles[SeverityInfo]
			}
			fmt.Fprintf(&sb, "  %s %s %s  %s\n",
				formatLocation(q.Location),
				style.Sprintf("%-7s", q.Severity),
				q.Rule,
				q.Message,
			)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

func formatLocation(loc *Location) string {
	if loc == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", loc.Line, loc.Column)
}

const markdownTemplate = `# Code questions
{{range .}}
## {{if .Path}}` + "`{{.Path}}`" + `{{else}}(input){{end}}

{{.Result.Summary}}
{{if .Result.Questions}}
| Location | Severity | Rule | Question |
|----------|----------|------|----------|
{{- range .Result.Questions}}
| {{location .Location}} | {{.Severity}} | {{.Rule}} | {{escape .Message}} |
{{- end}}
{{end}}
{{- end}}`

// MarkdownRenderer renders a markdown report with one table per file.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Name() string { return "markdown" }

func (MarkdownRenderer) Render(w io.Writer, results []FileResult) error {
	funcMap := template.FuncMap{
		"location": formatLocation,
		"escape":   escapeTableCell,
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	if err := tmpl.Execute(w, results); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	return nil
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
