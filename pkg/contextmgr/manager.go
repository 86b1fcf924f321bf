// Package contextmgr maintains the three context layers behind the
// orchestration loop: the unbounded session log, the per-turn tool
// execution log, and the bounded compressed view served to the light
// tier.
package contextmgr

import (
	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/types"
)

// Caps for the compressed view. Every list stays at or under its cap
// for any turn length; old entries are evicted FIFO.
const (
	MaxFoundFiles    = 12
	MaxReadFiles     = 10
	MaxFailedFiles   = 5
	MaxRecentResults = 3
)

// ToolExecution is one dispatched invocation with its result and a
// one-line summary. Read-only once appended to the turn log.
type ToolExecution struct {
	Invocation types.ToolInvocation
	Result     *types.ToolResult
	Summary    string
}

// Turn holds the per-request state: the user's text and every tool
// execution spent satisfying it.
type Turn struct {
	UserText   string
	Executions []ToolExecution
}

// CompressedView is the bounded context slice served to the light
// tier. Its serialized size is O(caps), independent of turn or session
// length.
type CompressedView struct {
	TaskGoal      string
	FoundFiles    []string
	ReadFiles     []string
	FailedFiles   []string
	RecentResults []string
}

// Manager owns the three layers. It is mutated only by the
// orchestration loop; there are no concurrent writers.
type Manager struct {
	sessionLog []types.Message // layer 1: full session, unbounded
	turn       Turn            // layer 2: current turn
	view       CompressedView  // layer 3: bounded derived state
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// RecordUserMessage appends a user message to the session log.
func (m *Manager) RecordUserMessage(text string) {
	m.sessionLog = append(m.sessionLog, types.Message{Role: types.RoleUser, Content: text})
}

// RecordModelResponse appends a model response to the session log.
func (m *Manager) RecordModelResponse(text string) {
	m.sessionLog = append(m.sessionLog, types.Message{Role: types.RoleAssistant, Content: text})
}

// BeginTurn resets the turn state and the compressed task goal. The
// session log carries over; everything else starts fresh.
func (m *Manager) BeginTurn(userText string) {
	m.turn = Turn{UserText: userText}
	m.view = CompressedView{TaskGoal: userText}
}

// RecordToolExecution appends to the turn log and folds the result
// into the compressed view.
func (m *Manager) RecordToolExecution(inv types.ToolInvocation, result *types.ToolResult, summary string) {
	m.turn.Executions = append(m.turn.Executions, ToolExecution{
		Invocation: inv,
		Result:     result,
		Summary:    summary,
	})

	// Discovery results replace the found list wholesale; the newest
	// listing is the authoritative one.
	if len(result.Files) > 0 && !result.IsError {
		files := result.Files
		if len(files) > MaxFoundFiles {
			files = files[:MaxFoundFiles]
		}
		m.view.FoundFiles = append([]string(nil), files...)
	}

	if inv.Name == "Read" {
		if path := inv.Args["file_path"]; path != "" {
			if result.IsError {
				m.view.FailedFiles = pushCapped(m.view.FailedFiles, path, MaxFailedFiles)
				m.view.FoundFiles = remove(m.view.FoundFiles, path)
			} else {
				m.view.ReadFiles = pushCapped(m.view.ReadFiles, path, MaxReadFiles)
			}
		}
	}

	if summary != "" {
		m.view.RecentResults = pushCapped(m.view.RecentResults, summary, MaxRecentResults)
	}
}

// pushCapped appends value and evicts the oldest entries beyond limit.
// A value already present is moved to the newest position.
func pushCapped(list []string, value string, limit int) []string {
	list = remove(list, value)
	list = append(list, value)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}

func remove(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// TurnExecutions returns the current turn's tool execution log.
func (m *Manager) TurnExecutions() []ToolExecution {
	return m.turn.Executions
}

// TurnToolNames returns the names of tools executed this turn, in
// dispatch order.
func (m *Manager) TurnToolNames() []string {
	names := make([]string, 0, len(m.turn.Executions))
	for _, e := range m.turn.Executions {
		names = append(names, e.Invocation.Name)
	}
	return names
}

// SessionLog returns the full session message log.
func (m *Manager) SessionLog() []types.Message {
	return m.sessionLog
}

// View returns a copy of the compressed view.
func (m *Manager) View() CompressedView {
	return m.view
}

// ViewFor serializes the context appropriate for a tier: the bounded
// compressed view for light, the full session log plus the turn's tool
// execution log for heavy.
func (m *Manager) ViewFor(t tier.Tier) string {
	if t == tier.Heavy {
		return m.renderFullView()
	}
	return m.renderCompressedView()
}
