// Package directive extracts structured tool invocations from free-text
// model output. A directive is a self-closing tag:
//
//	<tandem:tool name="Read" file_path="main.go" />
//
// Attribute values are quoted with single or double quotes and may not
// contain the delimiting quote. Malformed tags are dropped silently.
package directive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tandem-agent/tandem/pkg/types"
)

// Marker is the fixed tag name identifying a tool directive.
const Marker = "tandem:tool"

const (
	openToken  = "<" + Marker
	closeToken = "/>"
)

// Parse extracts well-formed tool invocations from text, in their
// left-to-right order of appearance. A tag without a name attribute,
// with a bad attribute list, or without a closing marker yields no
// invocation.
func Parse(text string) []types.ToolInvocation {
	var invs []types.ToolInvocation
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], openToken)
		if idx < 0 {
			break
		}
		after := i + idx + len(openToken)
		// Require a boundary so a longer tag name does not match.
		if after < len(text) && !isBoundary(text[after]) {
			i = after
			continue
		}
		inv, end, ok := parseTag(text, after)
		if ok {
			invs = append(invs, inv)
		}
		if end > after {
			i = end
		} else {
			i = after
		}
	}
	return invs
}

func isBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '/':
		return true
	}
	return false
}

// parseTag lexes the attribute list starting right after the open
// marker. It returns the invocation, the position just past the tag
// (or past the failure point), and whether the tag was well-formed.
func parseTag(text string, pos int) (types.ToolInvocation, int, bool) {
	lx := &lexer{input: text, pos: pos}
	args := make(map[string]string)
	for {
		lx.skipSpace()
		if lx.eof() {
			return types.ToolInvocation{}, lx.pos, false
		}
		if lx.consume(closeToken) {
			name, ok := args["name"]
			if !ok || name == "" {
				return types.ToolInvocation{}, lx.pos, false
			}
			delete(args, "name")
			return types.ToolInvocation{Name: name, Args: args}, lx.pos, true
		}
		key, ok := lx.ident()
		if !ok {
			return types.ToolInvocation{}, lx.pos, false
		}
		if !lx.consume("=") {
			return types.ToolInvocation{}, lx.pos, false
		}
		val, ok := lx.quoted()
		if !ok {
			return types.ToolInvocation{}, lx.pos, false
		}
		args[key] = val
	}
}

// Strip removes every directive substring from text and trims the
// surrounding whitespace, yielding the user-facing prose. The result
// never contains the marker, and Strip(Strip(x)) == Strip(x).
func Strip(text string) string {
	out := stripOnce(text)
	// Removal can join fragments into a new marker occurrence;
	// iterate to a fixpoint.
	for strings.Contains(out, openToken) {
		out = stripOnce(out)
	}
	return strings.TrimSpace(out)
}

// stripOnce removes each marker occurrence through its closing token,
// or through end of input when unterminated, in a single pass.
func stripOnce(text string) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], openToken)
		if idx < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+idx])
		rest := i + idx + len(openToken)
		end := strings.Index(text[rest:], closeToken)
		if end < 0 {
			// Unterminated tag: drop the remainder rather than leak
			// a partial marker fragment.
			break
		}
		i = rest + end + len(closeToken)
	}
	return b.String()
}

// Render serializes invocations back to wire form, one per line, with
// name first and the remaining attributes in sorted order. Values
// containing a double quote are single-quoted.
func Render(invs []types.ToolInvocation) string {
	parts := make([]string, 0, len(invs))
	for _, inv := range invs {
		var b strings.Builder
		b.WriteString(openToken)
		fmt.Fprintf(&b, " name=%s", quoteValue(inv.Name))
		keys := make([]string, 0, len(inv.Args))
		for k := range inv.Args {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, quoteValue(inv.Args[k]))
		}
		b.WriteString(" " + closeToken)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func quoteValue(v string) string {
	if strings.Contains(v, `"`) {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}
