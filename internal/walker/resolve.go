package walker

import (
	"os"
	"path/filepath"
)

// resolve walks the remaining segments against root. Literal segments extend
// root. A wildcard in the final position is matched with a single listing.
// A wildcard followed by more segments fans out: every matching directory
// becomes a new root for the rest of the segments, so literals after a
// wildcard are resolved under each candidate separately.
func (w *Walker) resolve(root string, rest []string, opts Options, yield func(Entry) bool) bool {
	for len(rest) > 0 && !HasWildcard(rest[0]) {
		root = filepath.Join(root, rest[0])
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return w.direct(root, opts, yield)
	}

	m := newMatcher(rest[0])
	if len(rest) == 1 {
		return w.list(root, m, opts, yield)
	}

	fanOut := Options{
		IncludeHidden:    opts.IncludeHidden,
		TraverseSymlinks: opts.TraverseSymlinks,
		Type:             TypeDirectories,
	}
	// Candidates only feed the next segment and never carry stat records.
	plain := *w
	plain.stat = nil
	for dir := range plain.listChildren(root, m, fanOut) {
		if !w.resolve(dir.Path, rest[1:], opts, yield) {
			return false
		}
	}
	return true
}

// direct lists a path that contains no wildcard. A directory yields its
// children; any other existing entry yields itself, subject to the filters.
// The path itself is always followed, even when it is a symlink and links
// are not traversed below it.
func (w *Walker) direct(path string, opts Options, yield func(Entry) bool) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !isNotFound(err) {
			w.report(path, err)
		}
		return true
	}

	if info.IsDir() {
		return w.list(path, matchAll, opts, yield)
	}

	self := opts
	self.Recurse = false
	return w.list(filepath.Dir(path), newMatcher(filepath.Base(path)), self, yield)
}
