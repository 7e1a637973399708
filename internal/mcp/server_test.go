package mcp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/treeutil/internal/walker"
)

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range []string{
		"svc/api/logs/a.log",
		"svc/web/logs/b.log",
		"svc/web/.env",
		"readme.md",
	} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("content"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_directory", listDirectoryTool, "list_directory"},
		{"disk_usage", diskUsageTool, "disk_usage"},
		{"disk_info", diskInfoTool, "disk_info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	w := walker.New()
	srv := NewServer(w, "/tmp/base")

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.walker != w {
		t.Error("walker not set correctly")
	}
	if srv.usage == nil {
		t.Error("usage calculator not initialized")
	}
	if srv.baseDir != "/tmp/base" {
		t.Errorf("baseDir = %q, want %q", srv.baseDir, "/tmp/base")
	}
}

func TestHandleListDirectory(t *testing.T) {
	root := setupTree(t)
	srv := NewServer(walker.New(), root)
	ctx := context.Background()

	t.Run("wildcard pattern", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"path": "svc/*/logs/*.log",
		}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.Contains(text, "2 entries") {
			t.Errorf("expected 2 entries, got:\n%s", text)
		}
		api := strings.Index(text, filepath.Join("api", "logs", "a.log"))
		web := strings.Index(text, filepath.Join("web", "logs", "b.log"))
		if api < 0 || web < 0 || api > web {
			t.Errorf("expected api before web, got:\n%s", text)
		}
	})

	t.Run("hidden excluded by default", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"path":    "svc/web",
			"recurse": true,
		}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(extractText(result), ".env") {
			t.Error("hidden file listed without include_hidden")
		}

		req.Params.Arguments = map[string]any{
			"path":           "svc/web",
			"include_hidden": true,
		}
		result, _ = srv.handleListDirectory(ctx, req)
		if !strings.Contains(extractText(result), ".env") {
			t.Error("hidden file missing with include_hidden")
		}
	})

	t.Run("type and limit", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"path":    ".",
			"recurse": true,
			"type":    "files",
			"limit":   1,
		}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := extractText(result)
		if !strings.Contains(text, "limit reached") {
			t.Errorf("expected truncation notice, got:\n%s", text)
		}
		if strings.Contains(text, "dir ") {
			t.Errorf("directories listed with type=files:\n%s", text)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"path": "nonexistent/*",
		}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("an empty match should not be an error")
		}
		if !strings.Contains(extractText(result), "No entries") {
			t.Errorf("unexpected text: %s", extractText(result))
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"path": ".",
			"type": "sockets",
		}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown type")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleListDirectory(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing path")
		}
	})
}

func TestHandleDiskUsage(t *testing.T) {
	root := setupTree(t)
	srv := NewServer(walker.New(), root)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"path": "svc",
	}

	result, err := srv.handleDiskUsage(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	text := extractText(result)
	for _, want := range []string{"Disk usage for", filepath.Join(root, "svc", "api"), filepath.Join(root, "svc", "web")} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}

	req.Params.Arguments = map[string]any{}
	result, _ = srv.handleDiskUsage(ctx, req)
	if !result.IsError {
		t.Error("expected error for missing path")
	}
}

func TestHandleDiskInfo(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("disk info is only implemented on linux")
	}
	root := t.TempDir()
	srv := NewServer(walker.New(), root)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"path": ".",
	}

	result, err := srv.handleDiskInfo(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if !strings.Contains(extractText(result), root) {
		t.Errorf("expected mount point %s in %q", root, extractText(result))
	}
}
