package socratic

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// FileResult pairs an analyzed path with its result.
type FileResult struct {
	Path   string
	Result AnalysisResult
}

// AnalyzeFile reads and analyzes one file. When opts.Language is empty
// the grammar is inferred from the file name. Only I/O errors are
// returned; analysis failures are reported in the result.
func AnalyzeFile(path string, opts Options) (FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	if opts.Language == "" {
		if lang, ok := syntax.LanguageForPath(path); ok {
			opts.Language = lang
		}
	}
	return FileResult{Path: path, Result: analyzeBytes(content, opts)}, nil
}

// AnalyzeFiles analyzes the indexed files independently with at most
// jobs workers (GOMAXPROCS when jobs <= 0). Results keep index order. The
// first I/O error or context cancellation stops the batch. A language set
// in opts overrides the one recorded in the index.
func AnalyzeFiles(ctx context.Context, idx *FileIndex, opts Options, jobs int) ([]FileResult, error) {
	if idx == nil || len(idx.Files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log := opts.logger()

	results := make([]FileResult, len(idx.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(idx.Files)))

	for i, rec := range idx.Files {
		fileOpts := opts
		if fileOpts.Language == "" {
			fileOpts.Language = rec.Language
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			res, err := AnalyzeFile(rec.Path, fileOpts)
			if err != nil {
				return err
			}
			log.Debug("analyzed file",
				"path", rec.Path,
				"questions", len(res.Result.Questions),
				"failed", res.Result.Failed(),
				"elapsed", time.Since(start),
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
