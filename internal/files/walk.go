// Package files provides the directory walk and per-file handlers behind the
// list and hash commands.
package files

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/utkarsh5026/consume/pool"
)

// Matcher selects regular files by extension, case-insensitively.
type Matcher struct {
	exts map[string]struct{}
}

// NewMatcher builds a matcher for exts, given with or without a leading dot.
func NewMatcher(exts []string) Matcher {
	m := Matcher{exts: make(map[string]struct{}, len(exts))}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" {
			m.exts[ext] = struct{}{}
		}
	}
	return m
}

// Match reports whether path has one of the allowed extensions.
func (m Matcher) Match(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	_, ok := m.exts[strings.ToLower(ext[1:])]
	return ok
}

// Walk yields every matching regular file under roots, lazily, in lexical
// order per root. Unreadable entries are logged and skipped. Stopping the
// iteration stops the walk.
func Walk(roots []string, m Matcher, log zerolog.Logger) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range roots {
			stopped := false
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
					if d != nil && d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if !d.Type().IsRegular() || !m.Match(path) {
					return nil
				}
				if !yield(path) {
					stopped = true
					return filepath.SkipAll
				}
				return nil
			})
			if err != nil {
				log.Warn().Err(err).Str("root", root).Msg("walk failed")
			}
			if stopped {
				return
			}
		}
	}
}

// Source wraps Walk as an executor source. The number of files is unknown
// until the walk ends, so runs over it show a spinner.
func Source(roots []string, m Matcher, log zerolog.Logger) pool.Source[string] {
	return pool.FromSeq(Walk(roots, m, log))
}
