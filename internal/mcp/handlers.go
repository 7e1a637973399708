package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/treeutil/internal/diskinfo"
	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// handleListDirectory enumerates a path or wildcard pattern.
func (s *Server) handleListDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	entryType, err := walker.ParseEntryType(request.GetString("type", "all"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := request.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	abs, err := walker.NormalizePath(path, s.baseDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	seq, err := s.walker.Enumerate(abs, walker.Options{
		Recurse:          request.GetBool("recurse", false),
		IncludeHidden:    request.GetBool("include_hidden", false),
		TraverseSymlinks: request.GetBool("traverse_symlinks", false),
		Type:             entryType,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	var sb strings.Builder
	count := 0
	truncated := false
	for e := range seq {
		if ctx.Err() != nil {
			break
		}
		if count == limit {
			truncated = true
			break
		}
		count++
		if e.IsDir() {
			sb.WriteString(fmt.Sprintf("dir   %10s  %s\n", "-", e.Path))
		} else {
			sb.WriteString(fmt.Sprintf("file  %10s  %s\n", humanize.IBytes(uint64(e.Size)), e.Path))
		}
	}

	if count == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No entries match %s.", abs)), nil
	}

	header := fmt.Sprintf("%d entr%s for %s:\n", count, plural(count, "y", "ies"), abs)
	if truncated {
		header = fmt.Sprintf("First %d entries for %s (limit reached):\n", count, abs)
	}
	return mcp.NewToolResultText(header + sb.String()), nil
}

// handleDiskUsage reports usage for a directory and its subdirectories.
func (s *Server) handleDiskUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	abs, err := walker.NormalizePath(path, s.baseDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Disk usage for %s:\n", abs))
	err = s.usage.Calculate(ctx, abs, usage.Options{
		ExcludeHidden: request.GetBool("exclude_hidden", false),
	}, func(info usage.Info) error {
		sb.WriteString(fmt.Sprintf("%10s  %6d files  %6d dirs  %s\n",
			humanize.IBytes(uint64(info.Size)), info.Files, info.Directories, info.Path))
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("usage failed: %v", err)), nil
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleDiskInfo reports file system capacity.
func (s *Server) handleDiskInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var paths []string
	if p := request.GetString("path", ""); p != "" {
		abs, err := walker.NormalizePath(p, s.baseDir)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		paths = append(paths, abs)
	}

	infos, err := diskinfo.Collect(paths, false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("disk info failed: %v", err)), nil
	}
	if len(infos) == 0 {
		return mcp.NewToolResultText("No file systems found."), nil
	}

	var sb strings.Builder
	for _, info := range infos {
		sb.WriteString(fmt.Sprintf("%s: %s total, %s used, %s available\n",
			info.MountPoint,
			humanize.IBytes(info.Total),
			humanize.IBytes(info.Used()),
			humanize.IBytes(info.Available)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
