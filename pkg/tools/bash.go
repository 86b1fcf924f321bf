package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/types"
	"github.com/tandem-agent/tandem/pkg/util"
)

// BashTool executes shell commands with an output cap and a wall-clock
// timeout enforced at this boundary.
type BashTool struct {
	execOps ops.ExecOps
}

// NewBashTool creates a new BashTool.
func NewBashTool(execOps ops.ExecOps) *BashTool {
	return &BashTool{execOps: execOps}
}

func (t *BashTool) Name() string {
	return "Bash"
}

func (t *BashTool) Description() string {
	return "Execute a shell command and return its output. Use with caution."
}

func (t *BashTool) Usage() string {
	return `command="..." timeout="seconds"`
}

func (t *BashTool) Execute(ctx context.Context, args map[string]string) *types.ToolResult {
	command := args["command"]
	if command == "" {
		return types.ErrorResult("command is required")
	}

	timeout := util.ParseInt(args, "timeout", types.BashDefaultTimeout)
	if timeout <= 0 {
		return types.ErrorResult("timeout must be a positive number")
	}

	cmdCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	stdout, stderr, exitCode, err := t.execOps.Run(cmdCtx, "/bin/bash", []string{"-c", command}, util.SanitizeEnv())
	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return types.ErrorResult(fmt.Sprintf("Command timed out after %d seconds", timeout))
		}
		return types.ErrorResult(fmt.Sprintf("failed to run command: %v", err))
	}

	output := stdout
	if stderr != "" {
		if output != "" {
			output += "\n"
		}
		output += "STDERR:\n" + stderr
	}
	if exitCode != 0 {
		output += fmt.Sprintf("\nExit code: %d", exitCode)
	}
	if output == "" {
		output = "(no output)"
	}

	// Keep the tail: errors and exit status appear at the end.
	output = util.TruncateTail(output, types.BashMaxOutput)

	if exitCode != 0 {
		return &types.ToolResult{ForLLM: output, ForUser: output, IsError: true}
	}
	return types.UserResult(output)
}
