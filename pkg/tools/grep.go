package tools

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// GrepTool searches file contents for a regex pattern.
type GrepTool struct {
	allowedDir string
	fileOps    ops.FileOps
}

// NewGrepTool creates a new GrepTool. Searches are restricted to
// allowedDir when non-empty.
func NewGrepTool(allowedDir string, fileOps ops.FileOps) *GrepTool {
	return &GrepTool{allowedDir: allowedDir, fileOps: fileOps}
}

func (t *GrepTool) Name() string {
	return "Grep"
}

func (t *GrepTool) Description() string {
	return "Search file contents for a regex pattern. Returns matching lines with file paths and line numbers."
}

func (t *GrepTool) Usage() string {
	return `pattern="..." path="..." include="*.go"`
}

func (t *GrepTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	pattern := args["pattern"]
	if pattern == "" {
		return types.ErrorResult("pattern is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return types.ErrorResult(fmt.Sprintf("invalid regex pattern: %v", err))
	}

	searchPath := args["path"]
	if searchPath == "" {
		searchPath = "."
	}
	include := args["include"]

	resolvedPath, err := util.ValidatePath(searchPath, t.allowedDir)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	info, err := t.fileOps.Stat(resolvedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrorResult(fmt.Sprintf("path not found: %s", searchPath))
		}
		return types.ErrorResult(fmt.Sprintf("failed to access path: %v", err))
	}

	var result strings.Builder
	matches := 0
	limitHit := false

	searchFile := func(path string) {
		if limitHit {
			return
		}
		content, err := t.fileOps.ReadFile(path)
		if err != nil {
			return
		}
		scanner := bufio.NewScanner(strings.NewReader(string(content)))
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			line := scanner.Text()
			if !re.MatchString(line) {
				continue
			}
			if matches >= types.GrepMaxMatches || result.Len() >= types.GrepMaxBytes {
				limitHit = true
				return
			}
			matches++
			if len(line) > types.GrepMaxLine {
				line = line[:types.GrepMaxLine] + "..."
			}
			fmt.Fprintf(&result, "%s:%d: %s\n", util.RelativizePath(path, resolvedPath), lineNum, line)
		}
	}

	if !info.IsDir() {
		searchFile(resolvedPath)
	} else {
		t.fileOps.WalkDir(resolvedPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}
			if util.IsBinaryExtension(d.Name()) {
				return nil
			}
			if include != "" {
				if ok, _ := filepath.Match(include, d.Name()); !ok {
					return nil
				}
			}
			searchFile(path)
			if limitHit {
				return fs.SkipAll
			}
			return nil
		})
	}

	if matches == 0 {
		return types.NewToolResult("No matches found.")
	}

	out := fmt.Sprintf("%d matches:\n%s", matches, result.String())
	if limitHit {
		out += fmt.Sprintf("[truncated at %d matches]", types.GrepMaxMatches)
	}
	return types.NewToolResult(out)
}
