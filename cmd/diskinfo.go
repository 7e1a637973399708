package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/diskinfo"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

var (
	diskAll    bool
	diskOutput string
)

var diskinfoCmd = &cobra.Command{
	Use:     "diskinfo [path...]",
	Aliases: []string{"df"},
	Short:   "Show capacity and free space of file systems",
	Long: `Shows total, used and available space of the file systems holding the given
paths, or of every mounted file system when no path is given. Pseudo file
systems with no capacity are hidden unless --all is set.`,
	RunE: runDiskinfo,
}

func init() {
	diskinfoCmd.Flags().BoolVar(&diskAll, "all", false, "include pseudo file systems")
	registerOutputFlag(diskinfoCmd, &diskOutput)
	rootCmd.AddCommand(diskinfoCmd)
}

func formatDiskInfo(i diskinfo.Info) string {
	used := 0.0
	if i.Total > 0 {
		used = float64(i.Used()) / float64(i.Total) * 100
	}
	return fmt.Sprintf("%-24s %10s %10s %10s %5.1f%%  %s",
		i.MountPoint,
		humanize.IBytes(i.Total),
		humanize.IBytes(i.Used()),
		humanize.IBytes(i.Available),
		used,
		i.FSType)
}

func runDiskinfo(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, diskOutput, e.cfg)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, a := range args {
		p, err := walker.NormalizePath(a, e.cwd)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}

	infos, err := diskinfo.Collect(paths, diskAll)
	if err != nil {
		return err
	}

	out := newRecordWriter(cmd.OutOrStdout(), format, formatDiskInfo)
	for _, info := range infos {
		if err := out.Write(info); err != nil {
			return err
		}
	}
	return out.Close()
}
