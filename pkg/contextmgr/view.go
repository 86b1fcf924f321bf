package contextmgr

import (
	"fmt"
	"path/filepath"
	"strings"
)

// renderCompressedView serializes layer 3 for the light tier: task
// goal, the capped file lists, and the last few result summaries.
// Found files keep their full paths; read/failed lists show the base
// name to keep the slice small.
func (m *Manager) renderCompressedView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Task: %s\n", m.view.TaskGoal)

	if len(m.view.FoundFiles) > 0 {
		b.WriteString("\nFiles discovered:\n")
		for _, f := range m.view.FoundFiles {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}

	if len(m.view.ReadFiles) > 0 {
		b.WriteString("\nAlready read: ")
		b.WriteString(strings.Join(baseNames(m.view.ReadFiles), ", "))
		b.WriteString("\n")
	}

	if len(m.view.FailedFiles) > 0 {
		b.WriteString("\nFailed to read (do not retry): ")
		b.WriteString(strings.Join(baseNames(m.view.FailedFiles), ", "))
		b.WriteString("\n")
	}

	if len(m.view.RecentResults) > 0 {
		b.WriteString("\nRecent results:\n")
		for _, r := range m.view.RecentResults {
			fmt.Fprintf(&b, "  - %s\n", r)
		}
	}

	return b.String()
}

// renderFullView serializes layers 1 and 2 for the heavy tier: the
// complete session log followed by the current turn's tool execution
// log, untruncated.
func (m *Manager) renderFullView() string {
	var b strings.Builder

	b.WriteString("Conversation so far:\n")
	for _, msg := range m.sessionLog {
		fmt.Fprintf(&b, "[%s] %s\n", msg.Role, msg.Content)
	}

	if len(m.turn.Executions) > 0 {
		b.WriteString("\nTool executions this turn:\n")
		for i, e := range m.turn.Executions {
			fmt.Fprintf(&b, "%d. %s", i+1, e.Invocation.Name)
			if len(e.Invocation.Args) > 0 {
				fmt.Fprintf(&b, " %v", e.Invocation.Args)
			}
			status := "ok"
			if e.Result.IsError {
				status = "failed"
			}
			fmt.Fprintf(&b, " (%s)\n", status)
			fmt.Fprintf(&b, "%s\n", e.Result.ForLLM)
		}
	}

	return b.String()
}

func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}
