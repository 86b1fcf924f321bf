package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandem-agent/tandem/pkg/types"
)

func TestHistoryMessages(t *testing.T) {
	h := NewHistory("you are a test fixture")
	h.Append(types.RoleUser, "hello")
	h.Append(types.RoleAssistant, "hi")

	msgs := h.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hello", msgs[1].Content)
	assert.Equal(t, types.RoleAssistant, msgs[2].Role)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryClearKeepsSystemPrompt(t *testing.T) {
	h := NewHistory("system")
	h.Append(types.RoleUser, "a")
	h.Append(types.RoleAssistant, "b")
	h.Clear()

	msgs := h.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, types.RoleSystem, msgs[0].Role)
	assert.Equal(t, 0, h.Len())
}

func TestHistoryWithoutSystemPrompt(t *testing.T) {
	h := NewHistory("")
	h.Append(types.RoleUser, "a")
	msgs := h.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
}
