package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lpforge/lpforge/internal/document"
	"github.com/lpforge/lpforge/internal/progress"
	"github.com/lpforge/lpforge/internal/render"
)

// Result describes the outcome of one document in a batch export.
type Result struct {
	Source  string
	Archive string
	Err     error
}

// FindDocuments returns the document files under root matching any of
// the include globs and none of the exclude globs, sorted by path.
func FindDocuments(root string, includes, excludes []string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, includes) || matchesAny(rel, excludes) {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return out, nil
}

// matchesAny checks relPath against glob patterns with ** support.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
	}
	return false
}

// Batch exports every matched document file to <stem>.zip in outDir.
// A document that fails to load or package is recorded in its Result
// and the batch carries on; mass production should not stop on one bad
// page.
func Batch(paths []string, outDir string, renderer *render.Renderer, reporter progress.Reporter) []Result {
	results := make([]Result, 0, len(paths))

	reporter.Start(len(paths))
	defer reporter.Finish()

	for i, path := range paths {
		reporter.Update(i+1, filepath.Base(path))

		res := Result{Source: path}
		doc, err := document.LoadFile(path)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		data, err := Package(doc, renderer)
		if err != nil {
			res.Err = fmt.Errorf("packaging %s: %w", path, err)
			results = append(results, res)
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		archive := filepath.Join(outDir, stem+".zip")
		if err := os.WriteFile(archive, data, 0o644); err != nil {
			res.Err = fmt.Errorf("writing %s: %w", archive, err)
			results = append(results, res)
			continue
		}

		res.Archive = archive
		results = append(results, res)
	}

	return results
}
