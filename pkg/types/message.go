package types

// Message represents a chat message exchanged with a model provider.
// Metadata carries persistence-only annotations (tier, tool name, etc.)
// and is never sent to the provider.
type Message struct {
	Role     string            `json:"role"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ChatResponse represents the response from a model provider call.
// An empty Content with FinishReason set is a valid response; the
// orchestration loop treats it as a turn-ending signal.
type ChatResponse struct {
	Content      string
	FinishReason string
	Usage        TokenUsage
}

// TokenUsage tracks token counts from an API response.
type TokenUsage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Add accumulates usage from another response.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Roles used in message history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
