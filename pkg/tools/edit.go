package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// EditTool replaces text in a file.
type EditTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewEditTool creates a new EditTool. Paths are restricted to
// allowedDir when non-empty.
func NewEditTool(allowedDir string, fileOps ops.FileOps) *EditTool {
	return &EditTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *EditTool) Name() string {
	return "Edit"
}

func (t *EditTool) Description() string {
	return "Edit a file by replacing old_string with new_string. The old_string must exist exactly in the file. Use all=\"true\" to replace all occurrences."
}

func (t *EditTool) Usage() string {
	return `file_path="..." old_string="..." new_string="..." all="true|false"`
}

func (t *EditTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	path := args["file_path"]
	if path == "" {
		return types.ErrorResult("file_path is required")
	}
	oldString, ok := args["old_string"]
	if !ok || oldString == "" {
		return types.ErrorResult("old_string is required")
	}
	newString, ok := args["new_string"]
	if !ok {
		return types.ErrorResult("new_string is required")
	}
	replaceAll := util.ParseBool(args, "all", false)

	resolvedPath, err := util.ValidatePath(path, t.allowedDir)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	info, err := t.fileOps.Stat(resolvedPath)
	if os.IsNotExist(err) {
		return types.ErrorResult(fmt.Sprintf("file not found: %s", path))
	}
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to stat file: %v", err))
	}

	content, err := t.fileOps.ReadFile(resolvedPath)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to read file: %v", err))
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, oldString) {
		return types.ErrorResult("old_string not found in file. Make sure it matches exactly")
	}

	count := strings.Count(contentStr, oldString)
	if count > 1 && !replaceAll {
		return types.ErrorResult(fmt.Sprintf("old_string appears %d times. Use all=\"true\" to replace all, or provide more context to make it unique", count))
	}

	var newContent string
	if replaceAll {
		newContent = strings.ReplaceAll(contentStr, oldString, newString)
	} else {
		newContent = strings.Replace(contentStr, oldString, newString, 1)
	}

	if err := t.fileOps.WriteFile(resolvedPath, []byte(newContent), info.Mode().Perm()); err != nil {
		return types.ErrorResult(fmt.Sprintf("failed to write file: %v", err))
	}

	if replaceAll {
		return types.NewToolResult(fmt.Sprintf("File edited: %s (%d replacements)", path, count))
	}
	return types.NewToolResult(fmt.Sprintf("File edited: %s", path))
}
