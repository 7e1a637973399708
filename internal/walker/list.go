package walker

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
)

// child is one eligible entry of a directory level together with the info
// used for cycle detection.
type child struct {
	entry Entry
	info  fs.FileInfo
}

// listChildren returns the children of dir whose names match m, all nested
// children when opts.Recurse is set. With TypeAll every directory is yielded
// before any file. This is the only place the walker reads directories.
func (w *Walker) listChildren(dir string, m matcher, opts Options) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		w.list(dir, m, opts, yield)
	}
}

// level is one directory read, split into sorted directories and files.
type level struct {
	dirs, files []child
}

// levels carries what the directory pass read over to the file pass of a
// TypeAll listing, so each directory is read, and each failure reported,
// exactly once. A nil levels reads afresh.
type levels map[string]level

// list pushes entries into yield and reports whether the consumer wants more.
func (w *Walker) list(dir string, m matcher, opts Options, yield func(Entry) bool) bool {
	var chain []fs.FileInfo
	if opts.Recurse && opts.TraverseSymlinks {
		if info, err := os.Stat(dir); err == nil {
			chain = append(chain, info)
		}
	}

	switch opts.Type {
	case TypeDirectories:
		return w.walkDirs(dir, m, opts, chain, nil, yield)
	case TypeFiles:
		return w.walkFiles(dir, m, opts, chain, nil, yield)
	case TypeAll:
		seen := levels{}
		if !w.walkDirs(dir, m, opts, chain, seen, yield) {
			return false
		}
		return w.walkFiles(dir, m, opts, chain, seen, yield)
	default:
		panic(ErrInvalidConfiguration.Error() + ": entry type " + opts.Type.String())
	}
}

// walkDirs yields matching directories in pre-order, one sorted level at a
// time. Levels are recorded in seen when it is non-nil.
func (w *Walker) walkDirs(dir string, m matcher, opts Options, chain []fs.FileInfo, seen levels, yield func(Entry) bool) bool {
	lv := w.readLevel(dir, opts)
	if seen != nil {
		seen[dir] = lv
	}
	for _, c := range lv.dirs {
		if m.match(c.entry.Name) && !yield(w.withStat(c.entry)) {
			return false
		}
		if opts.Recurse && canDescend(c, chain) {
			if !w.walkDirs(c.entry.Path, m, opts, append(chain, c.info), seen, yield) {
				return false
			}
		}
	}
	return true
}

// walkFiles yields the matching files of a level, then those of each
// subdirectory in the same order walkDirs visits them. Levels found in seen
// are consumed instead of read again.
func (w *Walker) walkFiles(dir string, m matcher, opts Options, chain []fs.FileInfo, seen levels, yield func(Entry) bool) bool {
	lv, ok := seen[dir]
	if ok {
		delete(seen, dir)
	} else {
		lv = w.readLevel(dir, opts)
	}
	for _, c := range lv.files {
		if m.match(c.entry.Name) && !yield(w.withStat(c.entry)) {
			return false
		}
	}
	if !opts.Recurse {
		return true
	}
	for _, c := range lv.dirs {
		if !canDescend(c, chain) {
			continue
		}
		if !w.walkFiles(c.entry.Path, m, opts, append(chain, c.info), seen, yield) {
			return false
		}
	}
	return true
}

// withStat attaches the platform record to an entry about to be yielded.
func (w *Walker) withStat(e Entry) Entry {
	if w.stat != nil {
		if st, err := w.stat.Lstat(e.Path); err == nil {
			e.Stat = st
		}
	}
	return e
}

// canDescend refuses to re-enter a directory already on the descent chain,
// which only a followed symlink can cause.
func canDescend(c child, chain []fs.FileInfo) bool {
	if !c.entry.Symlink {
		return true
	}
	for _, anc := range chain {
		if os.SameFile(anc, c.info) {
			return false
		}
	}
	return true
}

// readLevel reads dir once and splits its eligible entries into sorted
// directories and files. Hidden and symlink policies are applied here so
// they hold at every depth.
func (w *Walker) readLevel(dir string, opts Options) level {
	des, err := os.ReadDir(dir)
	if err != nil {
		if !isNotFound(err) {
			w.report(dir, err)
		}
		return level{}
	}

	var lv level

	for _, de := range des {
		c, ok := w.makeChild(dir, de, opts)
		if !ok {
			continue
		}
		if c.entry.IsDir() {
			lv.dirs = append(lv.dirs, c)
		} else {
			lv.files = append(lv.files, c)
		}
	}

	byName := func(a, b child) int { return strings.Compare(a.entry.Name, b.entry.Name) }
	slices.SortFunc(lv.dirs, byName)
	slices.SortFunc(lv.files, byName)
	return lv
}

func (w *Walker) makeChild(dir string, de fs.DirEntry, opts Options) (child, bool) {
	name := de.Name()
	path := filepath.Join(dir, name)
	symlink := de.Type()&fs.ModeSymlink != 0

	if symlink && !opts.TraverseSymlinks {
		return child{}, false
	}
	if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
		return child{}, false
	}

	var (
		info fs.FileInfo
		err  error
	)
	if symlink {
		info, err = os.Stat(path)
	} else {
		info, err = de.Info()
	}
	if err != nil {
		// Entries removed between the read and the stat are not errors.
		if !errors.Is(err, fs.ErrNotExist) || symlink {
			w.report(path, err)
		}
		return child{}, false
	}

	hidden := isHidden(name, info)
	if hidden && !opts.IncludeHidden {
		return child{}, false
	}

	e := Entry{
		Name:    name,
		Path:    path,
		Parent:  dir,
		Kind:    KindFile,
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		Hidden:  hidden,
		Symlink: symlink,
	}
	if info.IsDir() {
		e.Kind = KindDirectory
	} else {
		e.Size = info.Size()
	}
	return child{entry: e, info: info}, true
}

// isNotFound treats a missing path, or a path component that is a file, as
// an empty match.
func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
