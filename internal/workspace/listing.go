// Package workspace produces the project file listing consumed by context
// selection, honoring .gitignore and invalidating its cache on filesystem
// changes.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Kind distinguishes files from directories in a listing.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// FileListingEntry is one row of the project file tree.
type FileListingEntry struct {
	RelativePath string
	AbsolutePath string
	Kind         Kind
}

// ignoreMatcher wraps go-git's gitignore matcher. A nil matcher never ignores.
type ignoreMatcher struct {
	matcher gitignore.Matcher
}

// loadIgnore reads <root>/.gitignore. A missing file yields a matcher that
// never ignores; a read failure is surfaced.
func loadIgnore(root string) (*ignoreMatcher, error) {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return &ignoreMatcher{}, nil
		}
		return nil, err
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &ignoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

func (m *ignoreMatcher) shouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(splitPath(relativePath), isDir)
}

// splitPath splits a slash path into the segment form the matcher expects.
func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// buildListing walks the tree under root in lexical order, skipping .git and
// anything .gitignore excludes. The root itself is not listed.
func buildListing(root string) ([]FileListingEntry, error) {
	ignore, err := loadIgnore(root)
	if err != nil {
		return nil, err
	}

	var entries []FileListingEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entries that vanish mid-walk are not an error.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || ignore.shouldIgnore(rel, true) {
				return filepath.SkipDir
			}
			entries = append(entries, FileListingEntry{
				RelativePath: rel,
				AbsolutePath: filepath.ToSlash(path),
				Kind:         KindDirectory,
			})
			return nil
		}

		if ignore.shouldIgnore(rel, false) {
			return nil
		}
		entries = append(entries, FileListingEntry{
			RelativePath: rel,
			AbsolutePath: filepath.ToSlash(path),
			Kind:         KindFile,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
