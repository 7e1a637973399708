package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/treeutil/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize treeutil configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that asks for your default enumeration, copy and output settings and writes them to .treeutil.yml (or the file given by --config).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
