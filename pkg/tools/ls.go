package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// LsTool lists directory contents with type indicators. It is a
// discovery tool: its result carries the file paths it found.
type LsTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewLsTool creates a new LsTool. Paths are restricted to allowedDir
// when non-empty.
func NewLsTool(allowedDir string, fileOps ops.FileOps) *LsTool {
	return &LsTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *LsTool) Name() string {
	return "Ls"
}

func (t *LsTool) Description() string {
	return "List directory contents with type indicators (file/dir/symlink)."
}

func (t *LsTool) Usage() string {
	return `path="..." all="true|false"`
}

func (t *LsTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	pathArg := args["path"]
	if pathArg == "" {
		pathArg = "."
	}
	showAll := util.ParseBool(args, "all", false)

	resolvedPath, err := util.ValidatePath(pathArg, t.allowedDir)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("path error: %v", err))
	}

	info, err := t.fileOps.Stat(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrorResult(fmt.Sprintf("path not found: %s", pathArg))
		}
		return types.ErrorResult(fmt.Sprintf("cannot access path: %v", err))
	}
	if !info.IsDir() {
		return types.ErrorResult(fmt.Sprintf("not a directory: %s", pathArg))
	}

	entries, err := t.fileOps.ReadDir(resolvedPath)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("cannot read directory: %v", err))
	}

	var lines []string
	var files []string
	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files unless all is set
		if !showAll && strings.HasPrefix(name, ".") {
			continue
		}

		lines = append(lines, fmt.Sprintf("%s %s", typeIndicator(entry), name))
		if !entry.IsDir() {
			files = append(files, filepath.Join(pathArg, name))
		}

		if len(lines) >= types.LsMaxEntries {
			lines = append(lines, fmt.Sprintf("... (truncated, %d+ entries)", types.LsMaxEntries))
			break
		}
	}

	sort.Strings(lines)

	if len(lines) == 0 {
		return types.NewToolResult("(empty directory)")
	}

	listing := fmt.Sprintf("Directory: %s\n%s", pathArg, strings.Join(lines, "\n"))
	return types.FileListResult(listing, files)
}

// typeIndicator returns a short type indicator for a directory entry.
func typeIndicator(entry os.DirEntry) string {
	if entry.Type()&os.ModeSymlink != 0 {
		return "[link]"
	}
	if entry.IsDir() {
		return "[dir] "
	}
	return "[file]"
}
