package agent

import (
	"context"
	"strings"

	"github.com/tandem-agent/tandem/pkg/contextmgr"
	"github.com/tandem-agent/tandem/pkg/directive"
	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/types"
)

// Phase is a state of the turn machine. Transitions are linear within
// an iteration: Planning, Parsing, Executing, Folding, then back to
// Planning or out to Done/Aborted.
type Phase int

const (
	PhasePlanning Phase = iota
	PhaseParsing
	PhaseExecuting
	PhaseFolding
	PhaseDone
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseParsing:
		return "parsing"
	case PhaseExecuting:
		return "executing"
	case PhaseFolding:
		return "folding"
	case PhaseDone:
		return "done"
	default:
		return "aborted"
	}
}

// TurnResult is what a completed or aborted turn hands back to the
// caller. Executions and the session log survive an abort.
type TurnResult struct {
	Text        string
	Executions  []contextmgr.ToolExecution
	Iterations  int
	FinalTier   tier.Tier
	Phase       Phase // PhaseDone or PhaseAborted
	Aborted     bool
	AbortReason string
}

// RunTurn drives one user request through the plan / act / observe
// loop until the model signals completion, the iteration ceiling is
// reached, or the provider fails. Not safe for concurrent calls; an
// Agent runs one turn at a time.
func (a *Agent) RunTurn(ctx context.Context, userText string) (*TurnResult, error) {
	// Classify against the previous turn's tool trace before it is reset.
	class := tier.Classify(userText, a.cm.TurnToolNames())
	active := tier.StartTier(class)

	a.cm.RecordUserMessage(userText)
	a.cm.BeginTurn(userText)
	a.persist(types.RoleUser, userText, nil)
	// Heavy memory is per turn; cross-turn continuity lives in the
	// session log carried by the context manager.
	a.histories[tier.Heavy].Clear()

	a.events.Emit(types.AgentEvent{Type: types.EventTurnStart, Tier: active.String(), Content: userText})

	result := &TurnResult{FinalTier: active}
	completed := false
	zeroStreak := 0
	foldedThrough := 0

	for iter := 1; iter <= a.cfg.MaxIterations; iter++ {
		a.iteration++
		result.Iterations = iter

		a.setPhase(PhasePlanning)
		a.events.Emit(types.AgentEvent{Type: types.EventPlanning, Tier: active.String()})
		resp, err := a.plan(ctx, active, userText, &foldedThrough)
		if err != nil {
			a.setPhase(PhaseAborted)
			result.Phase = PhaseAborted
			result.Aborted = true
			result.AbortReason = err.Error()
			result.Executions = a.cm.TurnExecutions()
			result.FinalTier = active
			a.events.Emit(types.AgentEvent{Type: types.EventTurnAborted, Tier: active.String(), Error: err})
			return result, err
		}
		a.usage.Add(resp.Usage)
		if resp.Content == "" {
			// An empty completion carries no directives and no
			// answer; treat it as the model yielding the turn.
			completed = true
			break
		}
		a.cm.RecordModelResponse(resp.Content)
		a.persist(types.RoleAssistant, resp.Content, map[string]string{"tier": active.String()})

		a.setPhase(PhaseParsing)
		invs := directive.Parse(resp.Content)
		prose := strings.TrimSpace(strings.ReplaceAll(directive.Strip(resp.Content), CompletionMarker, ""))
		if prose != "" {
			result.Text = prose
		}
		if strings.Contains(resp.Content, CompletionMarker) && len(invs) == 0 {
			completed = true
			break
		}
		if iter == 1 && len(invs) == 0 {
			// A first response with no directives means the model
			// answered without looking at anything. Force one round
			// of discovery before accepting that.
			invs = []types.ToolInvocation{{Name: "Ls", Args: map[string]string{}}}
		}
		if len(invs) == 0 {
			zeroStreak++
		} else {
			zeroStreak = 0
		}

		a.setPhase(PhaseExecuting)
		for _, inv := range invs {
			a.events.Emit(types.AgentEvent{Type: types.EventToolStart, Tier: active.String(), ToolName: inv.Name})
			res := a.dispatch(ctx, inv)
			summary := Summarize(inv, res)
			a.cm.RecordToolExecution(inv, res, summary)
			a.events.Emit(types.AgentEvent{Type: types.EventToolEnd, Tier: active.String(), ToolName: inv.Name, Content: summary})
		}

		// The context manager absorbed the results during dispatch;
		// what remains of folding is deciding which tier plans next.
		a.setPhase(PhaseFolding)
		if active == tier.Light {
			switch {
			case a.cfg.CheckpointInterval > 0 && iter%a.cfg.CheckpointInterval == 0:
				decision := a.evaluator.Evaluate(ctx, a.cm.ViewFor(tier.Light))
				a.events.Emit(types.AgentEvent{Type: types.EventCheckpoint, Tier: active.String(), Content: decision.String()})
				if decision == Stop {
					active = a.switchTier(active)
				}
			case zeroStreak >= a.cfg.ZeroDirectiveStreak && iter > a.cfg.ExplorationFloor:
				// Repeated directive-free responses past the floor
				// mean exploration has nothing left to ask for.
				active = a.switchTier(active)
			}
		}
	}

	if completed {
		a.setPhase(PhaseDone)
		result.Phase = PhaseDone
	} else {
		// The ceiling is a soft stop: the turn is aborted, the error
		// is nil, and everything gathered so far stays usable.
		a.setPhase(PhaseAborted)
		result.Phase = PhaseAborted
		result.Aborted = true
		result.AbortReason = "max iterations"
		if result.Text == "" {
			result.Text = "Iteration limit reached before the task completed. Partial results are preserved in the session."
		}
	}
	result.Executions = a.cm.TurnExecutions()
	result.FinalTier = active
	a.events.Emit(types.AgentEvent{Type: types.EventTurnEnd, Tier: active.String(), Content: result.Text})
	return result, nil
}

// plan issues one completion on the active tier. The light tier is
// rebuilt from the compressed view on every call; the heavy tier keeps
// an accumulating conversation for the turn and receives only the tool
// results produced since its previous call.
func (a *Agent) plan(ctx context.Context, active tier.Tier, userText string, foldedThrough *int) (*types.ChatResponse, error) {
	h := a.histories[active]
	execs := a.cm.TurnExecutions()

	if active == tier.Light {
		h.Clear()
		h.Append(types.RoleUser, a.cm.ViewFor(tier.Light)+lightInstruction)
	} else if h.Len() == 0 {
		h.Append(types.RoleUser, heavyTurnPrompt(userText, a.cm.ViewFor(tier.Heavy)))
	} else {
		h.Append(types.RoleUser, renderExecutions(execs[*foldedThrough:]))
	}
	*foldedThrough = len(execs)

	resp, err := a.provider.Complete(ctx, a.models[active], h.Messages())
	if err != nil {
		return nil, err
	}
	if resp.Content != "" {
		h.Append(types.RoleAssistant, resp.Content)
	}
	return resp, nil
}

// dispatch resolves and runs one directive. Unknown names become
// failed executions so the model sees its mistake in the next view.
func (a *Agent) dispatch(ctx context.Context, inv types.ToolInvocation) *types.ToolResult {
	tool, ok := a.registry.Get(inv.Name)
	if !ok {
		return types.ErrorResult("Unknown tool: " + inv.Name)
	}
	return tool.Execute(ctx, inv.Args)
}

// switchTier moves the turn from light to heavy and announces it. The
// switch is one-way within a turn.
func (a *Agent) switchTier(from tier.Tier) tier.Tier {
	a.events.Emit(types.AgentEvent{
		Type:    types.EventTierSwitch,
		Tier:    tier.Heavy.String(),
		Content: "switching from " + from.String() + " to " + tier.Heavy.String(),
	})
	return tier.Heavy
}
