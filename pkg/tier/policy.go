package tier

import "strings"

// Length fallback thresholds: a message longer than this many
// characters, or spanning more than this many lines, is complex.
const (
	lengthThreshold = 300
	lineThreshold   = 3
)

// complexityKeywords mark a task as complex when present in the message.
var complexityKeywords = []string{
	"implement",
	"refactor",
	"debug",
	"architecture",
	"optimize",
	"rewrite",
	"design",
	"fix the bug",
	"migrate",
}

// simplicityKeywords mark a task as simple when present in the message.
var simplicityKeywords = []string{
	"read",
	"list",
	"show",
	"find",
	"what is",
	"where is",
	"display",
	"cat ",
}

// mutatingTools are tool names whose prior use forces complex
// classification: once the turn has written anything, synthesis needs
// the heavy tier.
var mutatingTools = map[string]bool{
	"Write": true,
	"Edit":  true,
}

// readOnlyTools are tools that only observe the workspace.
var readOnlyTools = map[string]bool{
	"Read": true,
	"Ls":   true,
	"Glob": true,
	"Grep": true,
}

// Classify applies three ordered rules, first match wins:
// prior mutating tool use, a complexity keyword, then a simplicity
// keyword or an all-read-only tool history. When none match it falls
// back to the length heuristic.
func Classify(message string, priorToolNames []string) Complexity {
	for _, name := range priorToolNames {
		if mutatingTools[name] {
			return Complex
		}
	}

	lower := strings.ToLower(message)
	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			return Complex
		}
	}

	for _, kw := range simplicityKeywords {
		if strings.Contains(lower, kw) {
			return Simple
		}
	}
	if len(priorToolNames) > 0 {
		allReadOnly := true
		for _, name := range priorToolNames {
			if !readOnlyTools[name] {
				allReadOnly = false
				break
			}
		}
		if allReadOnly {
			return Simple
		}
	}

	if len(message) > lengthThreshold || strings.Count(message, "\n") >= lineThreshold {
		return Complex
	}
	return Simple
}
