package agent

import (
	"fmt"
	"strings"

	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/util"
)

// HandleCommand processes slash commands typed at the REPL. It returns
// whether the input was a command, the text to print, and whether the
// session should end.
func (a *Agent) HandleCommand(input string) (handled bool, output string, quit bool) {
	if !strings.HasPrefix(input, "/") {
		return false, "", false
	}
	fields := strings.Fields(input)
	switch fields[0] {
	case "/q", "/quit", "/exit":
		return true, "bye", true
	case "/c", "/clear":
		a.ClearHistory()
		return true, "Context cleared.", false
	case "/usage":
		u := a.usage
		log := a.cm.SessionLog()
		return true, fmt.Sprintf("Tokens: %d prompt, %d completion, %d total\nContext: %d messages, ~%d chars",
			u.PromptTokens, u.CompletionTokens, u.TotalTokens,
			len(log), util.EstimateMessageChars(log)), false
	case "/model":
		if len(fields) > 1 {
			id := fields[1]
			a.models[tier.Light] = id
			a.models[tier.Heavy] = id
			a.evaluator = NewEvaluator(a.provider, id)
			return true, "Model override: " + id, false
		}
		return true, fmt.Sprintf("light: %s\nheavy: %s",
			a.models[tier.Light], a.models[tier.Heavy]), false
	case "/tier":
		return true, fmt.Sprintf("light -> %s\nheavy -> %s",
			a.models[tier.Light], a.models[tier.Heavy]), false
	case "/tools":
		return true, a.registry.Describe(), false
	case "/help":
		return true, helpText, false
	default:
		return true, "Unknown command: " + fields[0] + " (try /help)", false
	}
}

const helpText = `Commands:
  /help          show this help
  /tools         list available tools
  /model [id]    show or override the model for both tiers
  /tier          show the tier to model mapping
  /usage         show session token usage and context size
  /c, /clear     clear conversation context
  /q, /quit      exit`
