package socratic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// FileRecord describes a source file selected for analysis.
type FileRecord struct {
	Path     string
	Language syntax.Language
}

// FileIndex is a deterministic list of files to analyze.
type FileIndex struct {
	Files []FileRecord
}

// BuildFileIndex expands the given paths. Files are kept as given, in
// order, whatever their suffix; directories are walked for supported
// source files, which are appended sorted by path.
func BuildFileIndex(ctx context.Context, roots []string) (*FileIndex, error) {
	idx := &FileIndex{}
	seen := make(map[string]struct{})
	add := func(path string, lang syntax.Language) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		idx.Files = append(idx.Files, FileRecord{Path: path, Language: lang})
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			lang, _ := syntax.LanguageForPath(root)
			add(root, lang)
			continue
		}

		found, err := walkSourceDir(ctx, root)
		if err != nil {
			return nil, err
		}
		for _, rec := range found {
			add(rec.Path, rec.Language)
		}
	}
	return idx, nil
}

func walkSourceDir(ctx context.Context, root string) ([]FileRecord, error) {
	var found []FileRecord
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != root && isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isDeclarationFile(d.Name()) {
			return nil
		}
		lang, ok := syntax.LanguageForPath(path)
		if !ok {
			return nil
		}
		found = append(found, FileRecord{Path: path, Language: lang})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Path < found[j].Path
	})
	return found, nil
}

func isExcludedDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "dist", "build", "vendor", "target", "coverage":
		return true
	}
	return false
}

func isDeclarationFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".d.ts") || strings.HasSuffix(lower, ".d.mts") || strings.HasSuffix(lower, ".d.cts")
}
