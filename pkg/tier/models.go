package tier

// Default model ids per {complexity} x {stable, experimental}. The
// experimental column opts into newer models that have not been
// soak-tested with the directive grammar.
var modelTable = map[Complexity]map[bool]string{
	Simple: {
		false: "gpt-4o-mini",
		true:  "gpt-5-mini",
	},
	Complex: {
		false: "gpt-4o",
		true:  "gpt-5",
	},
}

// SelectModelID picks the model for a classification. A non-empty user
// override always wins; otherwise the static table decides.
func SelectModelID(c Complexity, userOverride string, experimental bool) string {
	if userOverride != "" {
		return userOverride
	}
	return modelTable[c][experimental]
}

// ModelForTier picks the model serving a tier, honoring the same
// override and experimental semantics as SelectModelID.
func ModelForTier(t Tier, userOverride string, experimental bool) string {
	c := Simple
	if t == Heavy {
		c = Complex
	}
	return SelectModelID(c, userOverride, experimental)
}
