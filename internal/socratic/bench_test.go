package socratic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

type benchmarkFixtureKind string

const (
	benchmarkFixtureTypeScript benchmarkFixtureKind = "typescript"
	benchmarkFixtureRust       benchmarkFixtureKind = "rust"
)

func BenchmarkAnalyzeTypeScript(b *testing.B) {
	benchmarkAnalyze(b, benchmarkFixtureTypeScript, 200)
}

func BenchmarkAnalyzeRust(b *testing.B) {
	benchmarkAnalyze(b, benchmarkFixtureRust, 200)
}

func BenchmarkAnalyzeFilesTypeScript(b *testing.B) {
	benchmarkAnalyzeFiles(b, benchmarkFixtureTypeScript, 64, 40)
}

func BenchmarkAnalyzeFilesRust(b *testing.B) {
	benchmarkAnalyzeFiles(b, benchmarkFixtureRust, 64, 40)
}

func benchmarkAnalyze(b *testing.B, kind benchmarkFixtureKind, funcs int) {
	src, lang := benchmarkSource(kind, funcs)
	opts := DefaultOptions()
	opts.Language = lang

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := Analyze(src, opts); res.Failed() {
			b.Fatalf("analysis failed: %s", res.Summary)
		}
	}
}

func benchmarkAnalyzeFiles(b *testing.B, kind benchmarkFixtureKind, files, funcsPerFile int) {
	dir := b.TempDir()
	for i := 0; i < files; i++ {
		src, _ := benchmarkSource(kind, funcsPerFile)
		name := filepath.Join(dir, fmt.Sprintf("file_%03d%s", i, benchmarkSuffix(kind)))
		if err := os.WriteFile(name, []byte(src), 0644); err != nil {
			b.Fatalf("write fixture: %v", err)
		}
	}

	ctx := context.Background()
	idx, err := BuildFileIndex(ctx, []string{dir})
	if err != nil {
		b.Fatalf("index fixture: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := AnalyzeFiles(ctx, idx, DefaultOptions(), 0); err != nil {
			b.Fatalf("analyze files: %v", err)
		}
	}
}

func benchmarkSuffix(kind benchmarkFixtureKind) string {
	if kind == benchmarkFixtureRust {
		return ".rs"
	}
	return ".ts"
}

func benchmarkSource(kind benchmarkFixtureKind, funcs int) (string, syntax.Language) {
	var sb strings.Builder
	for i := 0; i < funcs; i++ {
		switch kind {
		case benchmarkFixtureRust:
			fmt.Fprintf(&sb, "fn get_value_%d(x: u32) -> u32 {\n    record(x);\n    x * %d\n}\n\n", i, i+3)
		default:
			fmt.Fprintf(&sb, "async function getValue%d(id: string): Promise<number> {\n", i)
			sb.WriteString("  try {\n    const res = await fetch(`/items/${id}`);\n    return res.status * 60;\n  } catch (e) {}\n}\n\n")
		}
	}
	if kind == benchmarkFixtureRust {
		return sb.String(), syntax.LanguageRust
	}
	return sb.String(), syntax.LanguageTypeScript
}
