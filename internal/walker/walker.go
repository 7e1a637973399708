// Package walker enumerates file-system entries for a path that may contain
// `*` and `?` wildcards in any of its segments. Results are produced lazily as
// an iter.Seq and in a deterministic order: directories before files, and
// byte-wise ascending names within each kind.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrInvalidConfiguration reports an Options value outside the recognized set.
	ErrInvalidConfiguration = errors.New("invalid enumeration configuration")
	// ErrPathSyntax reports a path string that cannot be split into segments.
	ErrPathSyntax = errors.New("invalid path")
)

// Kind is the kind of a file-system entry.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// MarshalText renders the kind as "file" or "directory".
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// EntryType restricts the kinds of entries an enumeration yields.
type EntryType int

const (
	TypeAll EntryType = iota
	TypeFiles
	TypeDirectories
)

func (t EntryType) String() string {
	switch t {
	case TypeAll:
		return "all"
	case TypeFiles:
		return "files"
	case TypeDirectories:
		return "directories"
	default:
		return fmt.Sprintf("EntryType(%d)", int(t))
	}
}

// ParseEntryType converts "all", "files" or "directories" to an EntryType.
// An empty string means TypeAll.
func ParseEntryType(s string) (EntryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TypeAll, nil
	case "file", "files":
		return TypeFiles, nil
	case "dir", "dirs", "directory", "directories":
		return TypeDirectories, nil
	}
	return TypeAll, fmt.Errorf("%w: unknown entry type %q", ErrInvalidConfiguration, s)
}

// Options controls a single enumeration.
type Options struct {
	// Recurse descends into every nested subdirectory at the point where the
	// final segment is matched.
	Recurse bool
	// IncludeHidden keeps dot-prefixed (and, on Windows, hidden or system)
	// entries.
	IncludeHidden bool
	// TraverseSymlinks keeps symbolic links and follows those that point at
	// directories. When false, links are neither returned nor descended into.
	TraverseSymlinks bool
	// Type restricts the kinds of entries returned at every level.
	Type EntryType
}

// Validate reports whether every field holds a recognized value.
func (o Options) Validate() error {
	switch o.Type {
	case TypeAll, TypeFiles, TypeDirectories:
		return nil
	}
	return fmt.Errorf("%w: unknown entry type %d", ErrInvalidConfiguration, int(o.Type))
}

// Entry is a snapshot of one file or directory taken while enumerating.
type Entry struct {
	Name    string
	Path    string // Absolute path.
	Parent  string // Absolute path of the containing directory.
	Kind    Kind
	Size    int64 // Zero for directories.
	Mode    fs.FileMode
	ModTime time.Time
	Hidden  bool
	Symlink bool
	Stat    *UnixStat // Set only when a StatProvider is configured.
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// ErrorHandler receives non-fatal errors hit while reading a directory or
// resolving a link. The affected branch contributes no entries.
type ErrorHandler func(path string, err error)

// Walker enumerates entries. A Walker is immutable once built and may be
// shared by concurrent enumerations.
type Walker struct {
	stat    StatProvider
	onError ErrorHandler
}

// Option configures a Walker.
type Option func(*Walker)

// WithStatProvider attaches platform metadata to every entry. A nil provider
// disables the lookup.
func WithStatProvider(p StatProvider) Option {
	return func(w *Walker) {
		w.stat = p
	}
}

// WithErrorHandler installs the callback for per-directory access errors.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(w *Walker) {
		w.onError = fn
	}
}

// New returns a Walker configured with opts.
func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Enumerate returns the entries matching path. A path without `*` or `?` is
// listed directly: a directory yields its children, any other existing entry
// yields itself. A path with wildcards is resolved segment by segment.
//
// Configuration and path syntax errors are returned before any I/O happens.
// Missing paths produce an empty sequence. Stopping the range early stops
// all further directory reads.
func (w *Walker) Enumerate(path string, opts Options) (iter.Seq[Entry], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkPath(path); err != nil {
		return nil, err
	}
	// Relative and absolute paths are both cleaned lexically, so a `..`
	// following a wildcard removes that segment before resolution.
	if filepath.IsAbs(path) {
		path = filepath.Clean(path)
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrPathSyntax, path, err)
		}
		path = abs
	}

	if !HasWildcard(path) {
		return func(yield func(Entry) bool) {
			w.direct(path, opts, yield)
		}, nil
	}

	p := ParsePattern(path)
	return func(yield func(Entry) bool) {
		w.resolve(p.Root(), p.Segments, opts, yield)
	}, nil
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Entry]) []Entry {
	var out []Entry
	for e := range seq {
		out = append(out, e)
	}
	return out
}

func (w *Walker) report(path string, err error) {
	if w.onError != nil {
		w.onError(path, err)
	}
}
