package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/progress"
	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

var (
	usageExcludeHidden    bool
	usageTraverseSymlinks bool
	usageOutput           string
)

var usageCmd = &cobra.Command{
	Use:     "usage [path]",
	Aliases: []string{"du"},
	Short:   "Summarize disk usage per subdirectory",
	Long: `Prints a row for the files directly inside path, labelled ".", followed by
one row per subdirectory with the total size, file count and directory count
of everything beneath it. Hidden entries are counted unless --exclude-hidden
is given. The path defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUsage,
}

func init() {
	usageCmd.Flags().BoolVar(&usageExcludeHidden, "exclude-hidden", false, "do not count hidden entries")
	usageCmd.Flags().BoolVarP(&usageTraverseSymlinks, "traverse-symlinks", "L", false, "follow symbolic links")
	registerOutputFlag(usageCmd, &usageOutput)
	rootCmd.AddCommand(usageCmd)
}

func formatUsage(i usage.Info) string {
	return fmt.Sprintf("%10s %8d files %6d dirs  %s",
		humanize.IBytes(uint64(i.Size)), i.Files, i.Directories, i.Path)
}

func runUsage(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, usageOutput, e.cfg)
	if err != nil {
		return err
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	root, err := walker.NormalizePath(target, e.cwd)
	if err != nil {
		return err
	}

	opts := usage.Options{
		ExcludeHidden:    usageExcludeHidden,
		TraverseSymlinks: usageTraverseSymlinks,
	}
	e.log.Debugf("Calculating usage of '%s'", root)

	calc := usage.NewCalculator(e.newWalker(false), progress.NewReporter(e.progressEnabled()))
	out := newRecordWriter(cmd.OutOrStdout(), format, formatUsage)
	if err := calc.Calculate(cmd.Context(), root, opts, out.Write); err != nil {
		return err
	}
	return out.Close()
}
