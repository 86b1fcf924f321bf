// Package llm provides the chat provider contract and its OpenAI and
// Anthropic implementations. Providers are stateless request/response
// functions; conversation memory is owned by the caller and passed in
// explicitly with every call.
package llm

import (
	"context"

	"github.com/tandem-agent/tandem/pkg/types"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Complete sends the full message history to the given model and
	// returns its response. There is no client-side timeout; the
	// provider's own limits apply.
	Complete(ctx context.Context, modelID string, messages []types.Message) (*types.ChatResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Provider = (*OpenAIProvider)(nil)
	_ Provider = (*AnthropicProvider)(nil)
)
