// Package filesearch builds the list of files Open mode searches through,
// honouring the workspace .gitignore and user exclusions.
package filesearch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// maxIndexedFiles bounds the index on very large trees.
const maxIndexedFiles = 100_000

// Indexer walks a workspace root.
type Indexer struct {
	root   string
	ignore *IgnoreMatcher
}

// NewIndexer returns an indexer for root. Exclusions use gitignore syntax and
// apply in addition to root/.gitignore.
func NewIndexer(root string, exclusions []string) *Indexer {
	matcher, err := LoadIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// Non-fatal: an unreadable .gitignore just filters nothing
		matcher = &IgnoreMatcher{}
	}
	matcher.AddPatterns(exclusions...)
	return &Indexer{root: root, ignore: matcher}
}

// Index returns every non-ignored file below the root as a slash-separated
// path relative to it, sorted.
func (ix *Indexer) Index(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(ix.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == ix.root {
				return walkErr
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == ix.root {
			return nil
		}
		rel, err := filepath.Rel(ix.root, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" || ix.ignore.Matches(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if ix.ignore.Matches(rel, false) {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		if len(paths) >= maxIndexedFiles {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return nil, fmt.Errorf("index %s: %w", ix.root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
