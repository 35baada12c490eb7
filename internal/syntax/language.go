package syntax

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// LanguageSpec describes source file matching rules for a language.
type LanguageSpec struct {
	Language     Language
	FileSuffixes []string
}

var builtinLanguageSpecs = map[Language]LanguageSpec{
	LanguageTypeScript: {
		Language:     LanguageTypeScript,
		FileSuffixes: []string{".ts", ".mts", ".cts"},
	},
	LanguageTSX: {
		Language:     LanguageTSX,
		FileSuffixes: []string{".tsx", ".js", ".jsx", ".mjs", ".cjs"},
	},
	LanguageRust: {
		Language:     LanguageRust,
		FileSuffixes: []string{".rs"},
	},
}

// LanguageSpecs returns the built-in specs sorted by language.
func LanguageSpecs() []LanguageSpec {
	specs := make([]LanguageSpec, 0, len(builtinLanguageSpecs))
	for _, spec := range builtinLanguageSpecs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Language < specs[j].Language
	})
	return specs
}

// LanguageForPath infers the grammar for a file from its suffix.
func LanguageForPath(path string) (Language, bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, spec := range LanguageSpecs() {
		for _, suffix := range spec.FileSuffixes {
			if strings.HasSuffix(name, suffix) {
				return spec.Language, true
			}
		}
	}
	return "", false
}

// ParseLanguage resolves a user supplied language name.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ts", "typescript":
		return LanguageTypeScript, nil
	case "tsx", "js", "jsx", "javascript":
		return LanguageTSX, nil
	case "rs", "rust":
		return LanguageRust, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
	}
}
