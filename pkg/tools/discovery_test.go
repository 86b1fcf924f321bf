package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tandem-agent/tandem/pkg/ops"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{"main.go", "util.go", "README.md", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("package main\nfunc main() {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "helper.go"), []byte("package sub\n"), 0644); err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestLsTool(t *testing.T) {
	dir := setupTree(t)
	tool := NewLsTool("", &ops.RealFileOps{})

	t.Run("lists entries with indicators", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{"path": dir})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if !strings.Contains(result.ForLLM, "[file] main.go") {
			t.Errorf("missing file indicator: %s", result.ForLLM)
		}
		if !strings.Contains(result.ForLLM, "[dir]  sub") {
			t.Errorf("missing dir indicator: %s", result.ForLLM)
		}
	})

	t.Run("hides dotfiles by default", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{"path": dir})
		if strings.Contains(result.ForLLM, ".hidden") {
			t.Error("dotfile should be hidden")
		}
		all := tool.Execute(context.Background(), map[string]string{"path": dir, "all": "true"})
		if !strings.Contains(all.ForLLM, ".hidden") {
			t.Error("dotfile should appear with all=true")
		}
	})

	t.Run("reports found files for the context manager", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{"path": dir})
		found := strings.Join(result.Files, " ")
		if !strings.Contains(found, "main.go") {
			t.Errorf("Files should include main.go: %v", result.Files)
		}
		for _, f := range result.Files {
			if strings.HasSuffix(f, "sub") {
				t.Errorf("directories should not be in Files: %v", result.Files)
			}
		}
	})

	t.Run("not a directory", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{"path": filepath.Join(dir, "main.go")})
		if !result.IsError {
			t.Error("expected error for non-directory")
		}
	})
}

func TestGlobTool(t *testing.T) {
	dir := setupTree(t)
	tool := NewGlobTool("", &ops.RealFileOps{})

	t.Run("matches recursively", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "*.go",
			"path":    dir,
		})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if len(result.Files) != 3 {
			t.Errorf("expected 3 .go files, got %v", result.Files)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "*.rs",
			"path":    dir,
		})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if len(result.Files) != 0 {
			t.Errorf("expected no matches, got %v", result.Files)
		}
	})

	t.Run("missing pattern", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{"path": dir})
		if !result.IsError {
			t.Error("expected error for missing pattern")
		}
	})
}

func TestGrepTool(t *testing.T) {
	dir := setupTree(t)
	tool := NewGrepTool("", &ops.RealFileOps{})

	t.Run("finds matches with line numbers", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "func main",
			"path":    dir,
			"include": "*.go",
		})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if !strings.Contains(result.ForLLM, "main.go:2:") {
			t.Errorf("expected match with line number, got: %s", result.ForLLM)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "nonexistent_symbol_xyz",
			"path":    dir,
		})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if !strings.Contains(result.ForLLM, "No matches") {
			t.Errorf("expected no-matches message, got: %s", result.ForLLM)
		}
	})

	t.Run("invalid regex", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "(unclosed",
			"path":    dir,
		})
		if !result.IsError {
			t.Error("expected error for invalid regex")
		}
	})

	t.Run("single file search", func(t *testing.T) {
		result := tool.Execute(context.Background(), map[string]string{
			"pattern": "package",
			"path":    filepath.Join(dir, "main.go"),
		})
		if result.IsError {
			t.Fatalf("unexpected error: %s", result.ForLLM)
		}
		if !strings.Contains(result.ForLLM, "1 matches") {
			t.Errorf("expected 1 match, got: %s", result.ForLLM)
		}
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewReadTool("", &ops.RealFileOps{}))
	reg.Register(NewLsTool("", &ops.RealFileOps{}))

	t.Run("get registered tool", func(t *testing.T) {
		tool, ok := reg.Get("Read")
		if !ok || tool.Name() != "Read" {
			t.Error("expected to find Read tool")
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		if _, ok := reg.Get("Teleport"); ok {
			t.Error("expected unknown tool to be absent")
		}
	})

	t.Run("sorted list", func(t *testing.T) {
		names := reg.List()
		if len(names) != 2 || names[0] != "Ls" || names[1] != "Read" {
			t.Errorf("unexpected names: %v", names)
		}
	})

	t.Run("describe includes usage", func(t *testing.T) {
		desc := reg.Describe()
		if !strings.Contains(desc, "file_path=") {
			t.Errorf("describe should show usage: %s", desc)
		}
	})
}
