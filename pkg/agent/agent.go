// Package agent implements the orchestration engine: the iterative
// plan / act / observe state machine that drives a model through
// directives, tool dispatch, context folding, and tier switching.
package agent

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tandem-agent/tandem/pkg/config"
	"github.com/tandem-agent/tandem/pkg/contextmgr"
	"github.com/tandem-agent/tandem/pkg/llm"
	"github.com/tandem-agent/tandem/pkg/ops"
	"github.com/tandem-agent/tandem/pkg/session"
	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/tools"
	"github.com/tandem-agent/tandem/pkg/types"
)

// Agent owns one interactive session: its context manager, per-tier
// conversation memory, and the monotonically increasing iteration
// counter. Exactly one turn runs at a time.
type Agent struct {
	cfg       *config.Config
	provider  llm.Provider
	registry  *tools.Registry
	cm        *contextmgr.Manager
	events    *types.EventEmitter
	evaluator *Evaluator
	store     *session.Store

	models    map[tier.Tier]string
	histories map[tier.Tier]*llm.History

	usage     types.TokenUsage
	iteration int // session-wide, across turns
	phase     Phase
}

// Option configures an Agent.
type Option func(*Agent)

// WithProvider injects a model provider (used by tests and custom
// wiring).
func WithProvider(p llm.Provider) Option {
	return func(a *Agent) { a.provider = p }
}

// WithRegistry injects a tool registry.
func WithRegistry(r *tools.Registry) Option {
	return func(a *Agent) { a.registry = r }
}

// WithStore attaches a persistence sink for turn messages.
func WithStore(s *session.Store) Option {
	return func(a *Agent) { a.store = s }
}

// New creates an Agent from configuration. Without options it builds
// the provider named in the config and registers the default tool
// suite restricted to the current working directory.
func New(cfg *config.Config, opts ...Option) *Agent {
	a := &Agent{
		cfg:    cfg,
		cm:     contextmgr.NewManager(),
		events: types.NewEventEmitter(),
		models: map[tier.Tier]string{
			tier.Light: tier.ModelForTier(tier.Light, cfg.ModelOverride, cfg.Experimental),
			tier.Heavy: tier.ModelForTier(tier.Heavy, cfg.ModelOverride, cfg.Experimental),
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.provider == nil {
		switch cfg.Provider {
		case "anthropic":
			a.provider = llm.NewAnthropicProvider(cfg.APIKey, cfg.BaseURL)
		default:
			a.provider = llm.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL)
		}
	}
	if a.registry == nil {
		a.registry = defaultRegistry()
	}

	a.histories = map[tier.Tier]*llm.History{
		tier.Light: llm.NewHistory(lightSystemPrompt(a.registry)),
		tier.Heavy: llm.NewHistory(heavySystemPrompt(a.registry)),
	}
	a.evaluator = NewEvaluator(a.provider, a.models[tier.Heavy])

	return a
}

// defaultRegistry registers the full tool suite restricted to the
// current working directory.
func defaultRegistry() *tools.Registry {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot get working directory: %v\n", err)
	}
	allowedDir := ""
	if cwd != "" {
		if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
			allowedDir = resolved
		} else {
			allowedDir = cwd
		}
	}

	fileOps := &ops.RealFileOps{}
	registry := tools.NewRegistry()
	registry.Register(tools.NewReadTool(allowedDir, fileOps))
	registry.Register(tools.NewWriteTool(allowedDir, fileOps))
	registry.Register(tools.NewEditTool(allowedDir, fileOps))
	registry.Register(tools.NewBashTool(&ops.RealExecOps{}))
	registry.Register(tools.NewGrepTool(allowedDir, fileOps))
	registry.Register(tools.NewGlobTool(allowedDir, fileOps))
	registry.Register(tools.NewLsTool(allowedDir, fileOps))
	return registry
}

// Events returns the agent's event emitter for UI subscription.
func (a *Agent) Events() *types.EventEmitter {
	return a.events
}

// Registry returns the tool registry.
func (a *Agent) Registry() *tools.Registry {
	return a.registry
}

// Phase returns the loop phase most recently entered.
func (a *Agent) Phase() Phase {
	return a.phase
}

func (a *Agent) setPhase(p Phase) {
	a.phase = p
}

// Usage returns the accumulated session token usage.
func (a *Agent) Usage() types.TokenUsage {
	return a.usage
}

// Models returns the model id serving each tier.
func (a *Agent) Models() map[tier.Tier]string {
	return a.models
}

// ClearHistory resets both tiers' conversation memory and the session
// log. This is the explicit prompt-size bound for long sessions.
func (a *Agent) ClearHistory() {
	for _, h := range a.histories {
		h.Clear()
	}
	a.cm = contextmgr.NewManager()
}

// persist writes a message to the session store when one is attached.
func (a *Agent) persist(role, content string, metadata map[string]string) {
	if a.store == nil {
		return
	}
	if err := a.store.RecordMessage(role, content, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot persist message: %v\n", err)
	}
}
