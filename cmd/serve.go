package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/treeutil/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio exposing the
list_directory, disk_usage and disk_info tools. Relative paths passed to the
tools resolve against the directory the server was started in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(cmd.ErrOrStderr(), "treeutil MCP server started on stdio (base=%s)\n", e.cwd)

		srv := mcpserver.NewServer(e.newWalker(false), e.cwd)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
