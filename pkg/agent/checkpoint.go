package agent

import (
	"context"
	"strings"

	"github.com/tandem-agent/tandem/pkg/llm"
	"github.com/tandem-agent/tandem/pkg/types"
)

// Decision is the outcome of a checkpoint evaluation.
type Decision int

const (
	// Continue keeps the agent exploring on the light tier.
	Continue Decision = iota
	// Stop ends exploration and hands the turn to the heavy tier.
	Stop
)

func (d Decision) String() string {
	if d == Stop {
		return "STOP"
	}
	return "CONTINUE"
}

// Evaluator asks a model whether exploration has gathered enough
// context. It fails open: any error or ambiguous answer means
// Continue, so a flaky evaluation can never strand a turn.
type Evaluator struct {
	provider llm.Provider
	modelID  string
}

// NewEvaluator creates a checkpoint evaluator bound to a model.
func NewEvaluator(provider llm.Provider, modelID string) *Evaluator {
	return &Evaluator{provider: provider, modelID: modelID}
}

// Evaluate runs one checkpoint against the given context view.
func (e *Evaluator) Evaluate(ctx context.Context, view string) Decision {
	messages := []types.Message{
		{Role: types.RoleSystem, Content: checkpointSystemPrompt},
		{Role: types.RoleUser, Content: view},
	}
	resp, err := e.provider.Complete(ctx, e.modelID, messages)
	if err != nil {
		return Continue
	}
	return ParseDecision(resp.Content)
}

// ParseDecision extracts the verdict from a model response. CONTINUE
// anywhere in the text wins over STOP; only an unambiguous STOP stops.
func ParseDecision(text string) Decision {
	sawStop := false
	for _, field := range strings.Fields(strings.ToUpper(text)) {
		word := strings.Trim(field, ".,!:;\"'()")
		switch word {
		case "CONTINUE":
			return Continue
		case "STOP":
			sawStop = true
		}
	}
	if sawStop {
		return Stop
	}
	return Continue
}
