package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// ReadTool reads file contents with line numbers.
type ReadTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewReadTool creates a new ReadTool. Paths are restricted to
// allowedDir when non-empty.
func NewReadTool(allowedDir string, fileOps ops.FileOps) *ReadTool {
	return &ReadTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *ReadTool) Name() string {
	return "Read"
}

func (t *ReadTool) Description() string {
	return "Read the contents of a file with line numbers. Use offset and limit for large files."
}

func (t *ReadTool) Usage() string {
	return `file_path="..." offset="..." limit="..."`
}

func (t *ReadTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	path := args["file_path"]
	if path == "" {
		return types.ErrorResult("file_path is required")
	}

	resolvedPath, err := util.ValidatePath(path, t.allowedDir)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	info, err := t.fileOps.Stat(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrorResult(fmt.Sprintf("file not found: %s", path))
		}
		return types.ErrorResult(fmt.Sprintf("failed to stat file: %v", err))
	}

	if info.IsDir() {
		return types.ErrorResult(fmt.Sprintf("path is a directory: %s", path))
	}
	if info.Size() > types.MaxReadFileSize {
		return types.ErrorResult(fmt.Sprintf("file too large (%d bytes, limit %d)", info.Size(), types.MaxReadFileSize))
	}
	if util.IsBinaryExtension(resolvedPath) {
		return types.ErrorResult(fmt.Sprintf("refusing to read binary file: %s", path))
	}

	content, err := t.fileOps.ReadFile(resolvedPath)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to read file: %v", err))
	}

	offset := util.ParseInt(args, "offset", 1)
	limit := util.ParseInt(args, "limit", 0)

	return types.NewToolResult(util.FormatWithLineNumbers(string(content), offset, limit))
}
