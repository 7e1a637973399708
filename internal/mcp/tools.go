package mcp

import "github.com/mark3labs/mcp-go/mcp"

// defaultListLimit caps list_directory output when no limit is given.
const defaultListLimit = 500

// listDirectoryTool defines the list_directory MCP tool.
var listDirectoryTool = mcp.NewTool("list_directory",
	mcp.WithDescription("List files and directories. The path may contain * and ? wildcards in any segment, e.g. services/*/logs/*.log. Directories are listed before files, each sorted by name."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path or wildcard pattern; relative paths are resolved against the server's working directory"),
	),
	mcp.WithBoolean("recurse",
		mcp.Description("Descend into all nested subdirectories (default false)"),
	),
	mcp.WithBoolean("include_hidden",
		mcp.Description("Include hidden entries (default false)"),
	),
	mcp.WithBoolean("traverse_symlinks",
		mcp.Description("Include and follow symbolic links (default false)"),
	),
	mcp.WithString("type",
		mcp.Description("Restrict results to one entry kind"),
		mcp.Enum("all", "files", "directories"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 500)"),
	),
)

// diskUsageTool defines the disk_usage MCP tool.
var diskUsageTool = mcp.NewTool("disk_usage",
	mcp.WithDescription("Summarize the size and entry counts of a directory and each of its immediate subdirectories."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Directory to measure"),
	),
	mcp.WithBoolean("exclude_hidden",
		mcp.Description("Leave hidden entries out of the totals (default false)"),
	),
)

// diskInfoTool defines the disk_info MCP tool.
var diskInfoTool = mcp.NewTool("disk_info",
	mcp.WithDescription("Report total, free and available space of mounted file systems."),
	mcp.WithString("path",
		mcp.Description("Report only the file system holding this path"),
	),
)
