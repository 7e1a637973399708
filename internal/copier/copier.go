// Package copier copies the entries matched by a source path into a
// destination directory, recreating their layout relative to the source.
package copier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/treeutil/internal/logger"
	"github.com/ziadkadry99/treeutil/internal/progress"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// ErrDestinationInsideSource is returned for a recursive copy whose
// destination lies within the tree being copied.
var ErrDestinationInsideSource = errors.New("destination is inside the source tree")

// Options describes one copy run. Source and Destination must be absolute.
type Options struct {
	Source      string
	Destination string
	Enum        walker.Options
	Overwrite   bool
	// Confirm, when set, is asked before replacing an existing file that
	// Overwrite would otherwise leave alone.
	Confirm func(dest string) bool
}

// Result counts what a copy run did.
type Result struct {
	Directories int   `json:"directories" yaml:"directories"`
	Files       int   `json:"files" yaml:"files"`
	Bytes       int64 `json:"bytes" yaml:"bytes"`
	Skipped     int   `json:"skipped" yaml:"skipped"`
	Failed      int   `json:"failed" yaml:"failed"`
}

// Copier copies trees enumerated by a walker.
type Copier struct {
	walker   *walker.Walker
	log      *logger.Logger
	progress progress.Reporter
}

// New creates a Copier.
func New(w *walker.Walker, log *logger.Logger, rep progress.Reporter) *Copier {
	if rep == nil {
		rep = progress.Nop{}
	}
	return &Copier{walker: w, log: log, progress: rep}
}

// Copy streams the source enumeration and acts on each entry as it arrives.
// Failures on single entries are logged as warnings and counted; only setup
// errors and cancellation abort the run.
func (c *Copier) Copy(ctx context.Context, opts Options) (*Result, error) {
	base, err := baseDir(opts.Source)
	if err != nil {
		return nil, err
	}
	if opts.Enum.Recurse && within(opts.Destination, base) {
		return nil, fmt.Errorf("%w: %s is under %s", ErrDestinationInsideSource, opts.Destination, base)
	}

	seq, err := c.walker.Enumerate(opts.Source, opts.Enum)
	if err != nil {
		return nil, err
	}

	c.log.Debugf("Copying from '%s' to '%s'", opts.Source, opts.Destination)
	if _, err := os.Stat(opts.Destination); os.IsNotExist(err) {
		c.log.Debugf("Creating directory '%s'", opts.Destination)
	}
	if err := os.MkdirAll(opts.Destination, 0755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", opts.Destination, err)
	}

	res := &Result{}
	c.progress.Start(progress.Unknown, "Copying")
	defer c.progress.Finish()

	seen := 0
	currentFolder := ""
	for e := range seq {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		seen++

		rel, err := filepath.Rel(base, e.Path)
		if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			c.log.Warnf("Skipping '%s'", e.Path)
			res.Skipped++
			continue
		}
		dest := filepath.Join(opts.Destination, rel)

		folder := e.Parent
		if e.IsDir() {
			folder = e.Path
		}
		if folder != currentFolder {
			currentFolder = folder
			c.progress.Update(seen, fmt.Sprintf("Directory '%s'", currentFolder))
		}

		if e.IsDir() {
			c.copyDir(dest, res)
			continue
		}
		c.copyFile(e, dest, opts, res)
	}

	return res, nil
}

func (c *Copier) copyDir(dest string, res *Result) {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return
	}
	c.log.Debugf("Creating directory '%s'", dest)
	if err := os.MkdirAll(dest, 0755); err != nil {
		c.log.Warnf("Failed to create directory '%s': %v", dest, err)
		res.Failed++
		return
	}
	res.Directories++
}

func (c *Copier) copyFile(e walker.Entry, dest string, opts Options, res *Result) {
	if _, err := os.Lstat(dest); err == nil && !opts.Overwrite {
		if opts.Confirm == nil || !opts.Confirm(dest) {
			c.log.Warnf("File '%s' already exists. Use --overwrite to overwrite.", dest)
			res.Skipped++
			return
		}
	}

	c.log.Debugf("Copying file '%s' to '%s'", e.Path, dest)
	n, err := copyContents(e.Path, dest, e.Mode.Perm())
	if err != nil {
		c.log.Warnf("Failed to copy '%s': %v", e.Path, err)
		res.Failed++
		return
	}
	res.Files++
	res.Bytes += n
}

// copyContents writes src to dest, creating missing parent directories.
func copyContents(src, dest string, perm fs.FileMode) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// baseDir is the directory entry paths are made relative to: the literal
// part of a wildcard source, a directory source itself, or a file source's
// parent.
func baseDir(source string) (string, error) {
	if walker.HasWildcard(source) {
		return walker.ParsePattern(source).LiteralRoot(), nil
	}
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return source, nil
		}
		return "", fmt.Errorf("accessing source %s: %w", source, err)
	}
	if info.IsDir() {
		return source, nil
	}
	return filepath.Dir(source), nil
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
