package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// WriteTool writes content to a file.
type WriteTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewWriteTool creates a new WriteTool. Paths are restricted to
// allowedDir when non-empty.
func NewWriteTool(allowedDir string, fileOps ops.FileOps) *WriteTool {
	return &WriteTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *WriteTool) Name() string {
	return "Write"
}

func (t *WriteTool) Description() string {
	return "Write content to a file. Creates directories if needed. Overwrites existing files."
}

func (t *WriteTool) Usage() string {
	return `file_path="..." content="..."`
}

func (t *WriteTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	path := args["file_path"]
	if path == "" {
		return types.ErrorResult("file_path is required")
	}
	content, ok := args["content"]
	if !ok {
		return types.ErrorResult("content is required")
	}

	resolvedPath, err := util.ValidatePath(path, t.allowedDir)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	// Create parent directories if needed
	dir := filepath.Dir(resolvedPath)
	if err := t.fileOps.MkdirAll(dir, 0755); err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to create directory: %v", err))
	}

	// Preserve permissions if file already exists, otherwise use 0644
	perm := os.FileMode(0644)
	if info, err := t.fileOps.Stat(resolvedPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := t.fileOps.WriteFile(resolvedPath, []byte(content), perm); err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to write file: %v", err))
	}

	return types.NewToolResult(fmt.Sprintf("File written: %s (%d bytes)", path, len(content)))
}
