package agent

import (
	"fmt"
	"strings"

	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// Summarize produces the one-line description of a tool execution that
// the context manager keeps after the full output is discarded.
func Summarize(inv types.ToolInvocation, result *types.ToolResult) string {
	if result.IsError {
		return fmt.Sprintf("%s failed: %s", inv.Name, util.FirstLine(result.ForLLM, 120))
	}
	switch inv.Name {
	case "Read":
		lines := strings.Count(result.ForLLM, "\n") + 1
		return fmt.Sprintf("read %s (%d lines)", inv.Args["file_path"], lines)
	case "Write":
		return fmt.Sprintf("wrote %s", inv.Args["file_path"])
	case "Edit":
		return fmt.Sprintf("edited %s", inv.Args["file_path"])
	case "Bash":
		return fmt.Sprintf("ran `%s`", util.FirstLine(inv.Args["command"], 60))
	case "Ls":
		path := inv.Args["path"]
		if path == "" {
			path = "."
		}
		return fmt.Sprintf("listed %s (%d files)", path, len(result.Files))
	case "Glob":
		return fmt.Sprintf("glob %s matched %d files", inv.Args["pattern"], len(result.Files))
	case "Grep":
		return fmt.Sprintf("grep %q: %s", inv.Args["pattern"], util.FirstLine(result.ForLLM, 80))
	default:
		return util.FirstLine(result.ForLLM, 100)
	}
}
