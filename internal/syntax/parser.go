package syntax

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language selects the grammar used to parse a file.
type Language string

const (
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
	LanguageRust       Language = "rust"
)

// ErrUnsupportedLanguage is returned for languages without a grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var (
	rustSyntaxLanguage       = sitter.NewLanguage(tree_sitter_rust.Language())
	typeScriptSyntaxLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	typeScriptTSXLanguage    = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// ParseError reports source text the grammar could not parse.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Parse builds a syntax tree for source. Input containing syntax errors
// is rejected with a *ParseError. Parse is safe for concurrent use; each
// call owns its tree-sitter parser.
func Parse(lang Language, source []byte) (*Program, error) {
	grammar, d, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	parser, err := newParserForLanguage(grammar)
	if err != nil {
		return nil, fmt.Errorf("set %s grammar: %w", lang, err)
	}
	defer parser.Close()

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Message: "parser produced no tree"}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Message: "parser produced no root node"}
	}
	if root.HasError() {
		return nil, firstSyntaxError(root, source)
	}

	l := &lowerer{source: source, dialect: d}
	prog, ok := l.lower(root).(*Program)
	if l.err != nil {
		return nil, l.err
	}
	if !ok {
		return nil, fmt.Errorf("unexpected root node %q", root.Kind())
	}
	return prog, nil
}

func grammarFor(lang Language) (*sitter.Language, *dialect, error) {
	switch lang {
	case LanguageTypeScript:
		return typeScriptSyntaxLanguage, typeScriptDialect, nil
	case LanguageTSX, "":
		return typeScriptTSXLanguage, typeScriptDialect, nil
	case LanguageRust:
		return rustSyntaxLanguage, rustDialect, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
}

func newParserForLanguage(language *sitter.Language) (*sitter.Parser, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, err
	}
	return parser, nil
}

func firstSyntaxError(root *sitter.Node, source []byte) *ParseError {
	var found *ParseError
	walkTreePreOrder(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		switch {
		case n.IsMissing():
			pos := position(n, source)
			found = &ParseError{Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf("missing %q", n.Kind())}
		case n.IsError():
			pos := position(n, source)
			found = &ParseError{Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf("unexpected %q", snippet(n.Utf8Text(source)))}
		}
		return found == nil && n.HasError()
	})
	if found == nil {
		pos := position(root, source)
		found = &ParseError{Line: pos.Line, Column: pos.Column, Message: "syntax error"}
	}
	return found
}

// walkTreePreOrder visits tree-sitter nodes, including anonymous tokens,
// descending only while visit returns true.
func walkTreePreOrder(root *sitter.Node, visit func(*sitter.Node) bool) {
	if root == nil || visit == nil {
		return
	}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(node) {
			continue
		}

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			child := node.Child(uint(i))
			if child != nil {
				stack = append(stack, child)
			}
		}
	}
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const maxSnippet = 20
	if utf8.RuneCountInString(text) > maxSnippet {
		runes := []rune(text)
		text = string(runes[:maxSnippet]) + "..."
	}
	return text
}

// position converts a tree-sitter start point into a 1-based line and a
// UTF-16 column.
func position(n *sitter.Node, source []byte) Position {
	point := n.StartPosition()
	start := n.StartByte()
	if point.Column > start || start > uint(len(source)) {
		return Position{Line: int(point.Row) + 1, Column: int(point.Column)}
	}
	return Position{Line: int(point.Row) + 1, Column: utf16Len(source[start-point.Column : start])}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
