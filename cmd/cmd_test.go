package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/treeutil/internal/config"
	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// resetFlags restores every flag of c and its subcommands to its default so
// that one test's flags do not leak into the next.
func resetFlags(c *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	}
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer resetFlags(rootCmd)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// chdirTree creates a small tree in a temp dir and makes it the working directory.
func chdirTree(t *testing.T) string {
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
	t.Chdir(root)
	return root
}

func TestListCommand_RecursiveJSON(t *testing.T) {
	chdirTree(t)

	out, _, err := execute(t, "list", "-r", "-o", "json", "--no-progress")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	var records []walker.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(records) != 8 {
		t.Fatalf("expected 8 entries, got %d:\n%s", len(records), out)
	}
	seenFile := false
	for _, r := range records {
		if r.Name == ".env" {
			t.Error("hidden entry listed by default")
		}
		if r.Kind == "file" {
			seenFile = true
		} else if seenFile {
			t.Errorf("directory %s listed after a file", r.Path)
		}
	}
}

func TestListCommand_Wildcard(t *testing.T) {
	root := chdirTree(t)

	out, _, err := execute(t, "list", "svc/*/logs/*.log")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got:\n%s", out)
	}
	if !strings.HasSuffix(lines[0], filepath.Join(root, "svc", "api", "logs", "a.log")) {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], filepath.Join(root, "svc", "web", "logs", "b.log")) {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestListCommand_ConfigDefaultsAndOverride(t *testing.T) {
	root := chdirTree(t)
	if err := os.WriteFile(filepath.Join(root, config.DefaultConfigFile), []byte("include_hidden: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "list", "svc/web")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, ".env") {
		t.Errorf("config include_hidden not applied:\n%s", out)
	}

	out, _, err = execute(t, "list", "--include-hidden=false", "svc/web")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.Contains(out, ".env") {
		t.Errorf("flag did not override config:\n%s", out)
	}
}

func TestListCommand_EmptyMatchYAML(t *testing.T) {
	chdirTree(t)

	out, _, err := execute(t, "list", "-o", "yaml", "nothing/*")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected empty yaml list, got %q", out)
	}
}

func TestListCommand_FilesAndDirectoriesExclusive(t *testing.T) {
	chdirTree(t)

	if _, _, err := execute(t, "list", "-f", "-d"); err == nil {
		t.Error("expected error for --files with --directories")
	}
}

func TestCopyCommand(t *testing.T) {
	root := chdirTree(t)

	out, _, err := execute(t, "copy", "-r", "--no-progress", "svc", "backup")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if !strings.Contains(out, "Copied 2 files") {
		t.Errorf("unexpected summary %q", out)
	}
	data, err := os.ReadFile(filepath.Join(root, "backup", "web", "logs", "b.log"))
	if err != nil || string(data) != "content" {
		t.Errorf("b.log not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "backup", "web", ".env")); !os.IsNotExist(err) {
		t.Error("hidden file copied without --include-hidden")
	}

	_, stderr, err := execute(t, "copy", "-r", "--no-progress", "svc", "backup")
	if err != nil {
		t.Fatalf("second copy failed: %v", err)
	}
	if !strings.Contains(stderr, "already exists") {
		t.Errorf("expected overwrite warning, got %q", stderr)
	}
}

func TestCopyCommand_WildcardDestination(t *testing.T) {
	chdirTree(t)

	if _, _, err := execute(t, "copy", "svc", "out/*"); err == nil {
		t.Error("expected error for wildcard destination")
	}
}

func TestUsageCommand(t *testing.T) {
	chdirTree(t)

	out, _, err := execute(t, "usage", "--no-progress", "-o", "yaml", "svc")
	if err != nil {
		t.Fatalf("usage failed: %v", err)
	}
	var rows []usage.Info
	if err := yaml.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, out)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(rows), out)
	}
	if rows[0].Path != "." || rows[0].Directories != 2 || rows[0].Files != 0 {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	// svc/web holds logs/, logs/b.log and the hidden .env.
	web := rows[2]
	if filepath.Base(web.Path) != "web" || web.Files != 2 || web.Directories != 1 {
		t.Errorf("unexpected web row %+v", web)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "treeutil "+Version+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEnumFlagsOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Recurse = true
	cfg.TraverseSymlinks = true

	tests := []struct {
		name string
		args []string
		want walker.Options
	}{
		{"config only", nil, walker.Options{Recurse: true, TraverseSymlinks: true}},
		{"flag overrides config", []string{"--recurse=false"}, walker.Options{TraverseSymlinks: true}},
		{"hidden and files", []string{"-a", "-f"}, walker.Options{Recurse: true, IncludeHidden: true, TraverseSymlinks: true, Type: walker.TypeFiles}},
		{"directories", []string{"-d"}, walker.Options{Recurse: true, TraverseSymlinks: true, Type: walker.TypeDirectories}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f enumFlags
			c := &cobra.Command{Use: "test"}
			f.register(c)
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := f.options(c, cfg); got != tt.want {
				t.Errorf("options = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecordWriter(t *testing.T) {
	text := func(s string) string { return "> " + s }

	tests := []struct {
		format config.OutputFormat
		values []string
		want   string
	}{
		{config.OutputText, []string{"a", "b"}, "> a\n> b\n"},
		{config.OutputJSON, nil, "[]\n"},
		{config.OutputJSON, []string{"a", "b"}, "[\n  \"a\",\n  \"b\"\n]\n"},
		{config.OutputYAML, nil, "[]\n"},
		{config.OutputYAML, []string{"a", "b"}, "- a\n- b\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		rw := newRecordWriter(&buf, tt.format, text)
		for _, v := range tt.values {
			if err := rw.Write(v); err != nil {
				t.Fatal(err)
			}
		}
		if err := rw.Close(); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.want {
			t.Errorf("%s %v: got %q, want %q", tt.format, tt.values, buf.String(), tt.want)
		}
	}
}
