// Package tier classifies task complexity and routes requests to the
// light (fast, compressed-context) or heavy (capable, full-context)
// model tier.
package tier

// Tier is one of the two model-capability classes. Exactly one tier is
// active at any instant within a turn.
type Tier int

const (
	Light Tier = iota
	Heavy
)

func (t Tier) String() string {
	if t == Heavy {
		return "heavy"
	}
	return "light"
}

// Complexity is the result of classifying a user message.
type Complexity int

const (
	Simple Complexity = iota
	Complex
)

func (c Complexity) String() string {
	if c == Complex {
		return "complex"
	}
	return "simple"
}

// StartTier maps a classification to the tier a turn begins on.
func StartTier(c Complexity) Tier {
	if c == Complex {
		return Heavy
	}
	return Light
}
