package tools

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// skipDirs are directories never descended into during discovery.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
}

// GlobTool finds files matching a glob pattern. It is a discovery
// tool: its result carries the file paths it found.
type GlobTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewGlobTool creates a new GlobTool. Searches are restricted to
// allowedDir when non-empty.
func NewGlobTool(allowedDir string, fileOps ops.FileOps) *GlobTool {
	return &GlobTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *GlobTool) Name() string {
	return "Glob"
}

func (t *GlobTool) Description() string {
	return "Find files whose base name matches a glob pattern (e.g. *.go), searching recursively."
}

func (t *GlobTool) Usage() string {
	return `pattern="..." path="..."`
}

func (t *GlobTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	pattern := args["pattern"]
	if pattern == "" {
		return types.ErrorResult("pattern is required")
	}
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return types.ErrorResult(fmt.Sprintf("invalid glob pattern: %v", err))
	}

	searchPath := args["path"]
	if searchPath == "" {
		searchPath = "."
	}
	resolvedPath, err := util.ValidatePath(searchPath, t.allowedDir)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	var matches []string
	truncated := false
	walkErr := t.fileOps.WalkDir(resolvedPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		ok, _ := filepath.Match(pattern, d.Name())
		if !ok {
			return nil
		}
		matches = append(matches, util.RelativizePath(path, resolvedPath))
		if len(matches) >= types.GlobMaxResults {
			truncated = true
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return types.ErrorResult(fmt.Sprintf("glob failed: %v", walkErr))
	}

	if len(matches) == 0 {
		return types.NewToolResult(fmt.Sprintf("No files matching %q under %s", pattern, searchPath))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d files matching %q:\n%s", len(matches), pattern, strings.Join(matches, "\n"))
	if truncated {
		fmt.Fprintf(&b, "\n... (truncated at %d results)", types.GlobMaxResults)
	}
	return types.FileListResult(b.String(), matches)
}
