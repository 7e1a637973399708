package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/config"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// enumFlags are the enumeration switches shared by list and copy.
type enumFlags struct {
	recurse          bool
	includeHidden    bool
	traverseSymlinks bool
	files            bool
	directories      bool
}

func (f *enumFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.recurse, "recurse", "r", false, "descend into subdirectories")
	cmd.Flags().BoolVarP(&f.includeHidden, "include-hidden", "a", false, "include hidden entries")
	cmd.Flags().BoolVarP(&f.traverseSymlinks, "traverse-symlinks", "L", false, "follow symbolic links")
	cmd.Flags().BoolVarP(&f.files, "files", "f", false, "only files")
	cmd.Flags().BoolVarP(&f.directories, "directories", "d", false, "only directories")
	cmd.MarkFlagsMutuallyExclusive("files", "directories")
}

// options merges the flags over the configured defaults. A flag only wins
// when it was given on the command line.
func (f *enumFlags) options(cmd *cobra.Command, cfg *config.Config) walker.Options {
	opts := walker.Options{
		Recurse:          cfg.Recurse,
		IncludeHidden:    cfg.IncludeHidden,
		TraverseSymlinks: cfg.TraverseSymlinks,
	}
	flags := cmd.Flags()
	if flags.Changed("recurse") {
		opts.Recurse = f.recurse
	}
	if flags.Changed("include-hidden") {
		opts.IncludeHidden = f.includeHidden
	}
	if flags.Changed("traverse-symlinks") {
		opts.TraverseSymlinks = f.traverseSymlinks
	}
	switch {
	case f.files:
		opts.Type = walker.TypeFiles
	case f.directories:
		opts.Type = walker.TypeDirectories
	}
	return opts
}

// outputFormat returns --output when given, the configured format otherwise.
func outputFormat(cmd *cobra.Command, flag string, cfg *config.Config) (config.OutputFormat, error) {
	if cmd.Flags().Changed("output") {
		return config.ParseOutput(flag)
	}
	return cfg.Output, nil
}

func registerOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", string(config.OutputText), "output format: text, json or yaml")
}
