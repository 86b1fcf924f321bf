package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandem-agent/tandem/pkg/config"
	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/tools"
	"github.com/tandem-agent/tandem/pkg/types"
)

// fakeProvider replays scripted responses in call order and records
// every request it sees.
type fakeProvider struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []fakeCall
}

type fakeCall struct {
	modelID  string
	messages []types.Message
}

func (f *fakeProvider) Complete(_ context.Context, modelID string, messages []types.Message) (*types.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{modelID: modelID, messages: messages})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &types.ChatResponse{Content: CompletionMarker, FinishReason: "stop"}, nil
	}
	content := f.responses[0]
	f.responses = f.responses[1:]
	return &types.ChatResponse{
		Content:      content,
		FinishReason: "stop",
		Usage:        types.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

// stubTool records invocations and returns a canned result.
type stubTool struct {
	name   string
	result *types.ToolResult
	calls  []map[string]string
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return "stub" }
func (s *stubTool) Usage() string       { return "" }

func (s *stubTool) Execute(_ context.Context, args map[string]string) *types.ToolResult {
	s.calls = append(s.calls, args)
	if s.result != nil {
		return s.result
	}
	return types.NewToolResult("ok")
}

func testConfig() *config.Config {
	return &config.Config{
		Provider:            "openai",
		APIKey:              "test-key",
		MaxIterations:       24,
		CheckpointInterval:  100, // out of the way unless a test lowers it
		ExplorationFloor:    2,
		ZeroDirectiveStreak: 2,
	}
}

func newTestAgent(cfg *config.Config, p *fakeProvider, extraTools ...types.Tool) *Agent {
	registry := tools.NewRegistry()
	for _, tool := range extraTools {
		registry.Register(tool)
	}
	return New(cfg, WithProvider(p), WithRegistry(registry))
}

func TestRunTurnCompletesOnMarker(t *testing.T) {
	provider := &fakeProvider{responses: []string{"The config lives in config.yaml. " + CompletionMarker}}
	a := newTestAgent(testConfig(), provider)

	result, err := a.RunTurn(context.Background(), "where is the config file?")
	require.NoError(t, err)
	assert.False(t, result.Aborted)
	assert.Equal(t, PhaseDone, result.Phase)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "The config lives in config.yaml.", result.Text)
	assert.NotContains(t, result.Text, CompletionMarker)
}

func TestRunTurnSynthesizesDiscoveryOnFirstIteration(t *testing.T) {
	ls := &stubTool{name: "Ls", result: types.FileListResult("main.go", []string{"main.go"})}
	provider := &fakeProvider{responses: []string{
		"I believe the answer is main.go.", // no directives, no marker
		"It is main.go. " + CompletionMarker,
	}}
	a := newTestAgent(testConfig(), provider, ls)

	result, err := a.RunTurn(context.Background(), "what files are here?")
	require.NoError(t, err)
	require.Len(t, ls.calls, 1, "a directive-free first response must trigger one discovery run")
	assert.Equal(t, 2, result.Iterations)
	require.Len(t, result.Executions, 1)
	assert.Equal(t, "Ls", result.Executions[0].Invocation.Name)
}

func TestRunTurnDispatchesDirectives(t *testing.T) {
	read := &stubTool{name: "Read", result: types.NewToolResult("1\tpackage main")}
	provider := &fakeProvider{responses: []string{
		`Let me look. <tandem:tool name="Read" file_path="main.go" />`,
		"It declares package main. " + CompletionMarker,
	}}
	a := newTestAgent(testConfig(), provider, read)

	result, err := a.RunTurn(context.Background(), "read main.go")
	require.NoError(t, err)
	require.Len(t, read.calls, 1)
	assert.Equal(t, "main.go", read.calls[0]["file_path"])
	require.Len(t, result.Executions, 1)
	assert.False(t, result.Executions[0].Result.IsError)
}

func TestRunTurnUnknownToolBecomesFailure(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Teleport" dest="prod" />`,
		"Never mind. " + CompletionMarker,
	}}
	a := newTestAgent(testConfig(), provider)

	result, err := a.RunTurn(context.Background(), "read the notes")
	require.NoError(t, err)
	require.Len(t, result.Executions, 1)
	exec := result.Executions[0]
	assert.True(t, exec.Result.IsError)
	assert.Contains(t, exec.Result.ForLLM, "Unknown tool: Teleport")
}

func TestRunTurnProviderErrorAborts(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	a := newTestAgent(testConfig(), provider)

	result, err := a.RunTurn(context.Background(), "read main.go")
	require.Error(t, err)
	assert.True(t, result.Aborted)
	assert.Equal(t, PhaseAborted, result.Phase)
	assert.Contains(t, result.AbortReason, "rate limited")
}

func TestRunTurnIterationCeiling(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	cfg := testConfig()
	cfg.MaxIterations = 3
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Probe" />`,
		`<tandem:tool name="Probe" />`,
		`<tandem:tool name="Probe" />`,
	}}
	a := newTestAgent(cfg, provider, probe)

	result, err := a.RunTurn(context.Background(), "read everything forever")
	require.NoError(t, err, "the ceiling is a soft stop, not an error")
	assert.Equal(t, 3, result.Iterations)
	assert.Len(t, probe.calls, 3)
	assert.True(t, result.Aborted)
	assert.Equal(t, PhaseAborted, result.Phase)
	assert.Equal(t, "max iterations", result.AbortReason)
	assert.Contains(t, result.Text, "Iteration limit")
	assert.Len(t, result.Executions, 3, "results gathered before the ceiling are preserved")
}

func TestRunTurnCeilingWithProseStillSignalsAbort(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	cfg := testConfig()
	cfg.MaxIterations = 3
	provider := &fakeProvider{responses: []string{
		`Scanning. <tandem:tool name="Probe" />`,
		`Still scanning. <tandem:tool name="Probe" />`,
		`More scanning. <tandem:tool name="Probe" />`,
	}}
	a := newTestAgent(cfg, provider, probe)

	result, err := a.RunTurn(context.Background(), "read everything forever")
	require.NoError(t, err)
	// The last response's prose survives, but the exhaustion must
	// still be visible in the result.
	assert.Equal(t, "More scanning.", result.Text)
	assert.True(t, result.Aborted)
	assert.Equal(t, PhaseAborted, result.Phase)
	assert.Equal(t, "max iterations", result.AbortReason)
}

func TestRunTurnMarkerOnFinalIterationIsNotACeilingHit(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	cfg := testConfig()
	cfg.MaxIterations = 2
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Probe" />`,
		CompletionMarker, // marker only, no prose, on the last allowed iteration
	}}
	a := newTestAgent(cfg, provider, probe)

	result, err := a.RunTurn(context.Background(), "read everything")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Iterations)
	assert.False(t, result.Aborted)
	assert.Equal(t, PhaseDone, result.Phase)
	assert.Empty(t, result.AbortReason)
	assert.NotContains(t, result.Text, "Iteration limit")
}

func TestRunTurnCheckpointStopSwitchesToHeavy(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	cfg := testConfig()
	cfg.CheckpointInterval = 1
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Probe" />`, // light planning, iteration 1
		"STOP",                         // checkpoint verdict
		"All done. " + CompletionMarker, // first heavy planning call
	}}
	a := newTestAgent(cfg, provider, probe)

	var switched bool
	a.Events().Subscribe(func(ev types.AgentEvent) {
		if ev.Type == types.EventTierSwitch {
			switched = true
		}
	})

	result, err := a.RunTurn(context.Background(), "show me the readme")
	require.NoError(t, err)
	assert.True(t, switched)
	assert.Equal(t, tier.Heavy, result.FinalTier)

	// The heavy conversation opens with the raw request plus the full view.
	heavyCall := provider.calls[len(provider.calls)-1]
	require.NotEmpty(t, heavyCall.messages)
	last := heavyCall.messages[len(heavyCall.messages)-1]
	assert.Contains(t, last.Content, "User request: show me the readme")
}

func TestRunTurnAmbiguousCheckpointStaysLight(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	cfg := testConfig()
	cfg.CheckpointInterval = 1
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Probe" />`,
		"More exploration seems warranted here.", // no clear STOP
		"Found it. " + CompletionMarker,          // still the light tier
	}}
	a := newTestAgent(cfg, provider, probe)

	result, err := a.RunTurn(context.Background(), "show me the readme")
	require.NoError(t, err)
	assert.Equal(t, tier.Light, result.FinalTier)
}

func TestRunTurnZeroDirectiveStreakSwitches(t *testing.T) {
	ls := &stubTool{name: "Ls", result: types.FileListResult("a.go", []string{"a.go"})}
	cfg := testConfig()
	cfg.ExplorationFloor = 1
	provider := &fakeProvider{responses: []string{
		"Let me think about this first.", // iteration 1: synthesized discovery, streak stays 0
		"Hmm, still thinking.",           // iteration 2: streak 1
		"Not sure what else to look at.", // iteration 3: streak 2, past floor
		"Here is the answer. " + CompletionMarker, // heavy
	}}
	a := newTestAgent(cfg, provider, ls)

	result, err := a.RunTurn(context.Background(), "list the files")
	require.NoError(t, err)
	assert.Equal(t, tier.Heavy, result.FinalTier)
	assert.Equal(t, 4, result.Iterations)
}

func TestRunTurnLightPromptIsRebuiltEachCall(t *testing.T) {
	probe := &stubTool{name: "Probe"}
	provider := &fakeProvider{responses: []string{
		`<tandem:tool name="Probe" />`,
		`<tandem:tool name="Probe" />`,
		"Done. " + CompletionMarker,
	}}
	a := newTestAgent(testConfig(), provider, probe)

	_, err := a.RunTurn(context.Background(), "show me around")
	require.NoError(t, err)

	lightModel := a.Models()[tier.Light]
	for _, call := range provider.calls {
		if call.modelID != lightModel {
			continue
		}
		// One system prompt plus exactly one freshly built user view.
		require.Len(t, call.messages, 2)
		assert.Equal(t, types.RoleSystem, call.messages[0].Role)
		assert.Equal(t, types.RoleUser, call.messages[1].Role)
	}
}

func TestRunTurnAccumulatesUsage(t *testing.T) {
	provider := &fakeProvider{responses: []string{"Done. " + CompletionMarker}}
	a := newTestAgent(testConfig(), provider)

	_, err := a.RunTurn(context.Background(), "quick question")
	require.NoError(t, err)
	assert.Equal(t, int64(15), a.Usage().TotalTokens)
}

func TestHandleCommand(t *testing.T) {
	a := newTestAgent(testConfig(), &fakeProvider{})

	t.Run("not a command", func(t *testing.T) {
		handled, _, _ := a.HandleCommand("read main.go")
		assert.False(t, handled)
	})

	t.Run("quit", func(t *testing.T) {
		handled, _, quit := a.HandleCommand("/q")
		assert.True(t, handled)
		assert.True(t, quit)
	})

	t.Run("usage reports tokens and context size", func(t *testing.T) {
		provider := &fakeProvider{responses: []string{"All set. " + CompletionMarker}}
		b := newTestAgent(testConfig(), provider)
		_, err := b.RunTurn(context.Background(), "quick check")
		require.NoError(t, err)

		handled, out, _ := b.HandleCommand("/usage")
		assert.True(t, handled)
		assert.Contains(t, out, "15 total")
		assert.Contains(t, out, "2 messages")
		assert.Contains(t, out, "chars")
	})

	t.Run("model override applies to both tiers", func(t *testing.T) {
		handled, out, _ := a.HandleCommand("/model gpt-5")
		assert.True(t, handled)
		assert.Contains(t, out, "gpt-5")
		assert.Equal(t, "gpt-5", a.Models()[tier.Light])
		assert.Equal(t, "gpt-5", a.Models()[tier.Heavy])
	})

	t.Run("unknown command", func(t *testing.T) {
		handled, out, quit := a.HandleCommand("/frobnicate")
		assert.True(t, handled)
		assert.False(t, quit)
		assert.Contains(t, out, "Unknown command")
	})
}
