// Package sandbox confines all dataset access to a single data root
// directory. Every caller-supplied path is canonicalized (traversal segments
// and symlinks resolved) before the containment check, so neither ".."
// sequences nor symlink indirection can reach outside the root.
package sandbox

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// Root is the canonical data root directory. It is established once at
// startup and never mutated afterwards; all resolved dataset paths are
// descendants of it.
type Root struct {
	path string
}

// New canonicalizes dir and returns it as a data root. The directory must
// exist so that symlinks in its own path are resolved up front.
func New(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving data root %q: %w", dir, err)
	}
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NotFoundf("data root does not exist: %s", dir)
		}
		return nil, fmt.Errorf("canonicalizing data root %q: %w", dir, err)
	}
	info, err := os.Stat(canon)
	if err != nil {
		return nil, fmt.Errorf("stat data root %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, core.NotFoundf("data root is not a directory: %s", dir)
	}
	return &Root{path: canon}, nil
}

// Path returns the canonical absolute data root path.
func (r *Root) Path() string {
	return r.path
}

// Dataset is a resolved dataset reference: the canonical absolute path and
// the caller-visible path relative to the data root.
type Dataset struct {
	Path string
	Rel  string
}

// Resolve turns a caller-supplied path into a Dataset guaranteed to live
// inside the data root. Relative paths are interpreted against the root.
// It fails with a security violation when the canonical path is not a strict
// descendant of the root (the root itself is never a valid dataset), and
// with not-found when the path does not name a regular file.
func (r *Root) Resolve(raw string) (Dataset, error) {
	p := raw
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.path, p)
	}
	p = filepath.Clean(p)

	// Lexical containment first: a traversal escape is rejected as a
	// security violation even when the target does not exist.
	if !r.contains(p) {
		return Dataset{}, core.SecurityViolationf("path escapes the data root: %s", raw)
	}

	canon, err := filepath.EvalSymlinks(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Dataset{}, core.NotFoundf("file not found: %s", raw)
		}
		return Dataset{}, fmt.Errorf("canonicalizing %q: %w", raw, err)
	}

	// Containment again on the canonical path: a symlink inside the root may
	// still point outside it.
	if !r.contains(canon) {
		return Dataset{}, core.SecurityViolationf("path escapes the data root: %s", raw)
	}

	info, err := os.Stat(canon)
	if err != nil {
		return Dataset{}, core.NotFoundf("file not found: %s", raw)
	}
	if !info.Mode().IsRegular() {
		return Dataset{}, core.NotFoundf("not a regular file: %s", raw)
	}

	rel, err := filepath.Rel(r.path, canon)
	if err != nil {
		return Dataset{}, fmt.Errorf("relativizing %q: %w", canon, err)
	}
	return Dataset{Path: canon, Rel: filepath.ToSlash(rel)}, nil
}

// contains reports whether p is a strict descendant of the root.
func (r *Root) contains(p string) bool {
	rel, err := filepath.Rel(r.path, p)
	if err != nil {
		return false
	}
	if rel == "." {
		// The root itself: a directory is never a valid dataset path.
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// List enumerates the CSV files under the data root and returns their
// root-relative paths, sorted lexicographically.
func (r *Root) List() ([]string, error) {
	datasets := []string{}
	err := filepath.WalkDir(r.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries drop out of the listing instead of
			// failing it.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			return nil
		}
		rel, err := filepath.Rel(r.path, path)
		if err != nil {
			return err
		}
		datasets = append(datasets, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	sort.Strings(datasets)
	return datasets, nil
}
