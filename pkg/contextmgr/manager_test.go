package contextmgr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/types"
)

func readInvocation(path string) types.ToolInvocation {
	return types.ToolInvocation{Name: "Read", Args: map[string]string{"file_path": path}}
}

func TestBeginTurnResetsTurnState(t *testing.T) {
	m := NewManager()
	m.RecordUserMessage("first request")
	m.BeginTurn("first request")
	m.RecordToolExecution(readInvocation("a.go"), types.NewToolResult("content"), "read a.go")

	m.RecordUserMessage("second request")
	m.BeginTurn("second request")

	assert.Empty(t, m.TurnExecutions())
	assert.Equal(t, "second request", m.View().TaskGoal)
	assert.Empty(t, m.View().ReadFiles)
	// Layer 1 survives turn resets.
	assert.Len(t, m.SessionLog(), 2)
}

func TestCompressedViewBoundedness(t *testing.T) {
	m := NewManager()
	m.BeginTurn("explore everything")

	for i := 0; i < 200; i++ {
		path := fmt.Sprintf("pkg/file%d.go", i)
		m.RecordToolExecution(readInvocation(path), types.NewToolResult("ok"), fmt.Sprintf("read %s", path))
		failPath := fmt.Sprintf("missing%d.go", i)
		m.RecordToolExecution(readInvocation(failPath), types.ErrorResult("not found"), "read failed")

		files := make([]string, 30)
		for j := range files {
			files[j] = fmt.Sprintf("dir/f%d-%d", i, j)
		}
		m.RecordToolExecution(
			types.ToolInvocation{Name: "Ls", Args: map[string]string{"path": "dir"}},
			types.FileListResult("listing", files),
			"listed dir",
		)
	}

	v := m.View()
	assert.LessOrEqual(t, len(v.FoundFiles), MaxFoundFiles)
	assert.LessOrEqual(t, len(v.ReadFiles), MaxReadFiles)
	assert.LessOrEqual(t, len(v.FailedFiles), MaxFailedFiles)
	assert.LessOrEqual(t, len(v.RecentResults), MaxRecentResults)
	// And the turn log keeps everything.
	assert.Len(t, m.TurnExecutions(), 600)
}

func TestFifoEviction(t *testing.T) {
	m := NewManager()
	m.BeginTurn("goal")

	for i := 0; i < MaxReadFiles+2; i++ {
		m.RecordToolExecution(readInvocation(fmt.Sprintf("f%d.go", i)), types.NewToolResult("ok"), "")
	}

	v := m.View()
	require.Len(t, v.ReadFiles, MaxReadFiles)
	// Oldest two evicted, newest retained.
	assert.Equal(t, "f2.go", v.ReadFiles[0])
	assert.Equal(t, fmt.Sprintf("f%d.go", MaxReadFiles+1), v.ReadFiles[MaxReadFiles-1])
}

func TestFailedReadMovesToFailedList(t *testing.T) {
	m := NewManager()
	m.BeginTurn("check mystery file")

	m.RecordToolExecution(
		types.ToolInvocation{Name: "Ls", Args: map[string]string{"path": "."}},
		types.FileListResult("listing", []string{"real.go", "ghost.go"}),
		"listed .",
	)
	m.RecordToolExecution(readInvocation("ghost.go"), types.ErrorResult("file not found: ghost.go"), "read failed: ghost.go")

	v := m.View()
	assert.Contains(t, v.FailedFiles, "ghost.go")
	assert.NotContains(t, v.FoundFiles, "ghost.go")
	assert.Contains(t, v.FoundFiles, "real.go")

	light := m.ViewFor(tier.Light)
	assert.Contains(t, light, "ghost.go")
	assert.Contains(t, light, "do not retry")
}

func TestDiscoveryRefreshReplacesFoundFiles(t *testing.T) {
	m := NewManager()
	m.BeginTurn("goal")

	m.RecordToolExecution(
		types.ToolInvocation{Name: "Glob", Args: map[string]string{"pattern": "*.go"}},
		types.FileListResult("a", []string{"old1.go", "old2.go"}),
		"",
	)
	m.RecordToolExecution(
		types.ToolInvocation{Name: "Ls", Args: map[string]string{"path": "sub"}},
		types.FileListResult("b", []string{"sub/new.go"}),
		"",
	)

	v := m.View()
	assert.Equal(t, []string{"sub/new.go"}, v.FoundFiles)
}

func TestViewForLightIsBounded(t *testing.T) {
	m := NewManager()
	m.BeginTurn("short goal")

	// Pile on a long session and a long turn; the light view must not grow.
	for i := 0; i < 50; i++ {
		m.RecordUserMessage(fmt.Sprintf("user message %d with some padding text", i))
		m.RecordModelResponse(fmt.Sprintf("model response %d with some padding text", i))
		m.RecordToolExecution(readInvocation(fmt.Sprintf("f%d.go", i)), types.NewToolResult("lots of file content here"), fmt.Sprintf("read f%d.go", i))
	}

	light := m.ViewFor(tier.Light)
	heavy := m.ViewFor(tier.Heavy)

	assert.Less(t, len(light), 2000, "light view must stay O(caps)")
	assert.Greater(t, len(heavy), len(light))
	assert.Contains(t, heavy, "user message 0")
	assert.NotContains(t, light, "user message 0")
}

func TestViewForHeavyIncludesTurnLog(t *testing.T) {
	m := NewManager()
	m.RecordUserMessage("inspect main.go")
	m.BeginTurn("inspect main.go")
	m.RecordToolExecution(readInvocation("main.go"), types.NewToolResult("package main"), "read main.go")

	heavy := m.ViewFor(tier.Heavy)
	assert.Contains(t, heavy, "inspect main.go")
	assert.Contains(t, heavy, "Read")
	assert.Contains(t, heavy, "package main")
}
