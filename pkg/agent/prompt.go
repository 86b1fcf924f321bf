package agent

import (
	"fmt"
	"strings"

	"github.com/tandem-agent/tandem/pkg/contextmgr"
	"github.com/tandem-agent/tandem/pkg/tools"
)

// CompletionMarker is the literal token the model emits, with no
// directives in the same response, to end a turn.
const CompletionMarker = "[[TASK_COMPLETE]]"

const directiveGrammar = `To use a tool, emit a directive tag on its own line:

  <tandem:tool name="Read" file_path="src/main.go" />
  <tandem:tool name="Grep" pattern="func main" include="*.go" />

Rules:
- One directive per line. Attribute values go in double quotes, or
  single quotes when the value itself contains a double quote.
- You may emit several directives in one response; they run in order.
- There is no other way to act. Plain prose never runs a tool.`

// lightSystemPrompt is the exploration-phase prompt. The light tier
// sees only the compressed view, so the prompt leans on the directive
// grammar and the per-file exploration state.
func lightSystemPrompt(registry *tools.Registry) string {
	var b strings.Builder
	b.WriteString("You are the exploration engine of a coding agent. ")
	b.WriteString("Your job is to gather the files and facts needed to complete the task, not to write the final answer.\n\n")
	b.WriteString(directiveGrammar)
	b.WriteString("\n\nAvailable tools:\n")
	b.WriteString(registry.Describe())
	b.WriteString("\nGuidelines:\n")
	b.WriteString("- Use Ls and Glob to discover files, Read to inspect them, Grep to locate symbols.\n")
	b.WriteString("- Files listed under \"Failed to read\" could not be read. Do not request them again.\n")
	b.WriteString("- Prefer a few precise directives per response over broad sweeps.\n")
	b.WriteString(fmt.Sprintf("- If the task is already fully answered by what you have seen, reply with the answer followed by %s and no directives.\n", CompletionMarker))
	return b.String()
}

// heavySystemPrompt is the synthesis-phase prompt. The heavy tier sees
// the full session log and turn trace and is allowed to mutate files.
func heavySystemPrompt(registry *tools.Registry) string {
	var b strings.Builder
	b.WriteString("You are the reasoning engine of a coding agent. ")
	b.WriteString("You receive the full conversation and the results of every tool run this turn. ")
	b.WriteString("Complete the user's task: edit files, run commands, and explain your changes.\n\n")
	b.WriteString(directiveGrammar)
	b.WriteString("\n\nAvailable tools:\n")
	b.WriteString(registry.Describe())
	b.WriteString("\nGuidelines:\n")
	b.WriteString("- Read a file before editing it. Edit replaces an exact unique substring.\n")
	b.WriteString("- Keep working until the task is done; each response may combine prose and directives.\n")
	b.WriteString(fmt.Sprintf("- When the task is complete, give your final answer followed by %s and no directives.\n", CompletionMarker))
	return b.String()
}

// checkpointSystemPrompt frames the binary exploration-progress
// question. The evaluator treats anything that is not a clear STOP as
// CONTINUE.
const checkpointSystemPrompt = `You supervise a coding agent that is exploring a workspace.
Based on the state below, answer with a single word:
STOP if enough context has been gathered and the agent should move on to synthesizing the answer.
CONTINUE if more exploration is still needed.`

// heavyTurnPrompt opens a turn's heavy-tier conversation with the raw
// request plus the full context view.
func heavyTurnPrompt(userText, view string) string {
	return fmt.Sprintf("User request: %s\n\n%s", userText, view)
}

// lightInstruction trails the compressed view on every light-tier call.
const lightInstruction = "\n\nEmit the next directives, or the final answer with " + CompletionMarker + "."

// renderExecutions formats tool results executed since the last
// planning call, for feeding back into the heavy conversation.
func renderExecutions(execs []contextmgr.ToolExecution) string {
	if len(execs) == 0 {
		return "No directives were executed. Continue, or finish with " + CompletionMarker + "."
	}
	var b strings.Builder
	b.WriteString("Tool results:\n")
	for _, ex := range execs {
		status := "ok"
		if ex.Result.IsError {
			status = "failed"
		}
		fmt.Fprintf(&b, "\n[%s %s]\n%s\n", ex.Invocation.Name, status, ex.Result.ForLLM)
	}
	return b.String()
}
