package llm

import "github.com/tandem-agent/tandem/pkg/types"

// History is an explicit, caller-owned conversation memory for one
// model tier. The caller decides when it accumulates and when it
// resets; Clear is the only way messages leave it.
type History struct {
	systemPrompt string
	messages     []types.Message
}

// NewHistory creates a History with a fixed system prompt.
func NewHistory(systemPrompt string) *History {
	return &History{systemPrompt: systemPrompt}
}

// Append adds a message to the history.
func (h *History) Append(role, content string) {
	h.messages = append(h.messages, types.Message{Role: role, Content: content})
}

// Clear discards everything except the system prompt.
func (h *History) Clear() {
	h.messages = nil
}

// Len returns the number of appended messages, excluding the system
// prompt.
func (h *History) Len() int {
	return len(h.messages)
}

// Messages returns the full message list to pass to a provider: the
// system prompt followed by the appended conversation.
func (h *History) Messages() []types.Message {
	out := make([]types.Message, 0, len(h.messages)+1)
	if h.systemPrompt != "" {
		out = append(out, types.Message{Role: types.RoleSystem, Content: h.systemPrompt})
	}
	return append(out, h.messages...)
}
