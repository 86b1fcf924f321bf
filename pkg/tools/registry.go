// Package tools implements the tool providers dispatched by the
// orchestration loop: file reading and mutation, shell execution, and
// workspace discovery. Each tool is a pure request/response function
// over string arguments parsed from directives.
package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tandem-agent/tandem/pkg/types"
)

// Registry is a fixed mapping of tool names to providers. Lookup of an
// unknown name is reported to the caller; the registry never
// synthesizes results itself.
type Registry struct {
	tools map[string]types.Tool
	mu    sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]types.Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool types.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (types.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe renders a usage line per tool for inclusion in the system
// prompt, in sorted name order.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		tool := r.tools[name]
		fmt.Fprintf(&b, "- %s %s: %s\n", name, tool.Usage(), tool.Description())
	}
	return b.String()
}
