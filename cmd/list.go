package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/walker"
)

var (
	listEnum   enumFlags
	listStat   bool
	listOutput string
)

var listCmd = &cobra.Command{
	Use:     "list [path]",
	Aliases: []string{"ls"},
	Short:   "List the entries matched by a path",
	Long: `Lists the entries matched by a path. Any segment of the path may contain
* and ? wildcards; without wildcards a directory lists its children and a file
lists itself. The path defaults to the current directory.

Examples:
  treeutil list
  treeutil list -r src
  treeutil list 'services/*/logs/*.log' -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listEnum.register(listCmd)
	listCmd.Flags().BoolVar(&listStat, "stat", false, "attach the lstat record of every entry")
	registerOutputFlag(listCmd, &listOutput)
	rootCmd.AddCommand(listCmd)
}

func formatEntry(r walker.Record) string {
	size := "-"
	if r.Kind != walker.KindDirectory.String() {
		size = humanize.IBytes(uint64(r.Size))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %10s  %s  %s", r.Mode, size, r.ModTime.Format("2006-01-02 15:04"), r.Path)
	if r.Stat != nil {
		fmt.Fprintf(&sb, "  inode=%d links=%d uid=%d gid=%d", r.Stat.Inode, r.Stat.Links, r.Stat.UID, r.Stat.GID)
	}
	return sb.String()
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, listOutput, e.cfg)
	if err != nil {
		return err
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path, err := walker.NormalizePath(target, e.cwd)
	if err != nil {
		return err
	}

	opts := listEnum.options(cmd, e.cfg)
	e.log.Debugf("Listing '%s' (recurse=%v, hidden=%v, symlinks=%v, type=%s)",
		path, opts.Recurse, opts.IncludeHidden, opts.TraverseSymlinks, opts.Type)

	seq, err := e.newWalker(listStat).Enumerate(path, opts)
	if err != nil {
		return err
	}

	out := newRecordWriter(cmd.OutOrStdout(), format, formatEntry)
	for entry := range seq {
		if err := out.Write(entry.Record()); err != nil {
			return err
		}
	}
	return out.Close()
}
