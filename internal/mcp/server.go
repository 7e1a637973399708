package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes directory listing and usage tools.
type Server struct {
	walker  *walker.Walker
	usage   *usage.Calculator
	baseDir string
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. Relative paths in tool calls are
// resolved against baseDir.
func NewServer(w *walker.Walker, baseDir string) *Server {
	s := &Server{
		walker:  w,
		usage:   usage.NewCalculator(w, nil),
		baseDir: baseDir,
	}

	s.mcp = server.NewMCPServer(
		"treeutil",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDirectoryTool, s.handleListDirectory)
	s.mcp.AddTool(diskUsageTool, s.handleDiskUsage)
	s.mcp.AddTool(diskInfoTool, s.handleDiskInfo)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
