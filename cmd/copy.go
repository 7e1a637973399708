package cmd

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/copier"
	"github.com/ziadkadry99/treeutil/internal/progress"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

var (
	copyEnum      enumFlags
	copyOverwrite bool
	copyConfirm   bool
	copyOutput    string
)

var copyCmd = &cobra.Command{
	Use:     "copy SOURCE DESTINATION",
	Aliases: []string{"cp"},
	Short:   "Copy the entries matched by a path into a directory",
	Long: `Copies the entries matched by SOURCE into DESTINATION, recreating their
layout relative to SOURCE. SOURCE may contain wildcards, in which case the
layout is kept relative to its last literal directory. Existing files are left
alone unless --overwrite is given; --confirm asks for each of them instead.

Examples:
  treeutil copy -r src backup/src
  treeutil copy 'services/*/logs/*.log' /tmp/logs`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	copyEnum.register(copyCmd)
	copyCmd.Flags().BoolVar(&copyOverwrite, "overwrite", false, "replace existing files")
	copyCmd.Flags().BoolVar(&copyConfirm, "confirm", false, "ask before replacing each existing file")
	registerOutputFlag(copyCmd, &copyOutput)
	copyCmd.MarkFlagsMutuallyExclusive("overwrite", "confirm")
	rootCmd.AddCommand(copyCmd)
}

func confirmOverwrite(dest string) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Overwrite '%s'", dest),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func formatCopyResult(r *copier.Result) string {
	return fmt.Sprintf("Copied %d files (%s), created %d directories, skipped %d, failed %d",
		r.Files, humanize.IBytes(uint64(r.Bytes)), r.Directories, r.Skipped, r.Failed)
}

func runCopy(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, copyOutput, e.cfg)
	if err != nil {
		return err
	}

	src, err := walker.NormalizePath(args[0], e.cwd)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	dst, err := walker.NormalizePath(args[1], e.cwd)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if walker.HasWildcard(dst) {
		return errors.New("destination must not contain wildcards")
	}

	opts := copier.Options{
		Source:      src,
		Destination: dst,
		Enum:        copyEnum.options(cmd, e.cfg),
		Overwrite:   e.cfg.Overwrite,
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite = copyOverwrite
	}

	// Prompts and a redrawing progress bar share the terminal badly.
	showProgress := e.progressEnabled()
	if copyConfirm {
		opts.Confirm = confirmOverwrite
		showProgress = false
	}

	c := copier.New(e.newWalker(false), e.log, progress.NewReporter(showProgress))
	res, err := c.Copy(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if err := writeDocument(cmd.OutOrStdout(), format, res, formatCopyResult); err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d entries could not be copied", res.Failed)
	}
	return nil
}
