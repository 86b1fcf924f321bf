package types

import "context"

// ToolInvocation is a single tool request parsed from model output.
// Args values are always strings; tools convert as needed.
// Invocations are immutable once created.
type ToolInvocation struct {
	Name string
	Args map[string]string
}

// Tool is the interface that all tool providers implement. Tools are
// pure request/response functions with no awareness of the loop that
// dispatches them.
type Tool interface {
	Name() string
	Description() string
	// Usage returns the attribute signature shown to the model,
	// e.g. `file_path="..." offset="..."`.
	Usage() string
	Execute(ctx context.Context, args map[string]string) *ToolResult
}

// ToolResult represents the structured return value from tool execution.
// Files is populated by discovery tools (ls, glob) with the paths they
// found, so the context manager can refresh its file list without
// re-parsing formatted output.
type ToolResult struct {
	ForLLM  string   `json:"for_llm"`
	ForUser string   `json:"for_user,omitempty"`
	Files   []string `json:"files,omitempty"`
	IsError bool     `json:"is_error"`
}

// NewToolResult creates a basic ToolResult with content for the LLM.
func NewToolResult(forLLM string) *ToolResult {
	return &ToolResult{ForLLM: forLLM}
}

// ErrorResult creates a ToolResult representing a failure.
func ErrorResult(message string) *ToolResult {
	return &ToolResult{
		ForLLM:  message,
		IsError: true,
	}
}

// UserResult creates a ToolResult with content for both LLM and user.
func UserResult(content string) *ToolResult {
	return &ToolResult{
		ForLLM:  content,
		ForUser: content,
	}
}

// FileListResult creates a ToolResult for discovery tools, carrying
// both the formatted listing and the raw file paths.
func FileListResult(forLLM string, files []string) *ToolResult {
	return &ToolResult{
		ForLLM: forLLM,
		Files:  files,
	}
}
