// Package usage aggregates disk usage for a directory and each of its
// immediate subdirectories.
package usage

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/treeutil/internal/progress"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// Info is the usage of one directory.
type Info struct {
	Path        string `json:"path" yaml:"path"`
	Size        int64  `json:"size" yaml:"size"`
	Files       int64  `json:"files" yaml:"files"`
	Directories int64  `json:"directories" yaml:"directories"`
}

// Options controls which entries are counted. Hidden entries are counted
// unless ExcludeHidden is set.
type Options struct {
	ExcludeHidden    bool
	TraverseSymlinks bool
}

// Calculator computes usage with a walker.
type Calculator struct {
	walker   *walker.Walker
	progress progress.Reporter
}

// NewCalculator creates a Calculator.
func NewCalculator(w *walker.Walker, rep progress.Reporter) *Calculator {
	if rep == nil {
		rep = progress.Nop{}
	}
	return &Calculator{walker: w, progress: rep}
}

// Calculate emits a row for root itself, labelled ".", holding the size and
// count of its immediate files and the count of its immediate directories.
// It then emits one row per immediate subdirectory with recursive totals.
// Rows are emitted as soon as they are complete.
func (c *Calculator) Calculate(ctx context.Context, root string, opts Options, emit func(Info) error) error {
	level := walker.Options{
		IncludeHidden:    !opts.ExcludeHidden,
		TraverseSymlinks: opts.TraverseSymlinks,
	}

	level.Type = walker.TypeDirectories
	dirSeq, err := c.walker.Enumerate(root, level)
	if err != nil {
		return err
	}
	dirs := walker.Collect(dirSeq)

	level.Type = walker.TypeFiles
	fileSeq, err := c.walker.Enumerate(root, level)
	if err != nil {
		return err
	}
	top := Info{Path: ".", Directories: int64(len(dirs))}
	for f := range fileSeq {
		top.Size += f.Size
		top.Files++
	}
	if err := emit(top); err != nil {
		return err
	}

	deep := level
	deep.Type = walker.TypeAll
	deep.Recurse = true

	c.progress.Start(len(dirs), "Calculating")
	defer c.progress.Finish()

	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.progress.Update(i, fmt.Sprintf("Directory '%s'", dir.Name))

		info, err := c.tally(dir.Path, deep)
		if err != nil {
			return err
		}
		if err := emit(info); err != nil {
			return err
		}
	}
	c.progress.Update(len(dirs), "")
	return nil
}

// tally sums everything beneath dir.
func (c *Calculator) tally(dir string, opts walker.Options) (Info, error) {
	seq, err := c.walker.Enumerate(dir, opts)
	if err != nil {
		return Info{}, err
	}
	info := Info{Path: dir}
	for e := range seq {
		if e.IsDir() {
			info.Directories++
			continue
		}
		info.Size += e.Size
		info.Files++
	}
	return info, nil
}
