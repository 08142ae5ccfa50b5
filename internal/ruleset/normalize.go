package ruleset

const (
	wordBoundaryPrefix = `\b`
	wordBoundarySuffix = `\b`
)

// Normalize returns the canonical form of p. RegexWord and String patterns
// become Regex patterns with the original text wrapped in word boundaries;
// every other kind is returned unchanged.
//
// The text is interpolated as is, so regex metacharacters in a String
// pattern keep their regex meaning. Existing rule sets depend on this.
//
// Normalize must run once per parsed pattern: a second pass over its own
// output is a no-op only because the kind has already become Regex.
func Normalize(p Pattern) Pattern {
	switch p.Kind {
	case KindRegexWord, KindString:
		p.Kind = KindRegex
		p.Text = wordBoundary(p.Text)
	}
	return p
}

func wordBoundary(text string) string {
	return wordBoundaryPrefix + text + wordBoundarySuffix
}

func normalizeRule(rule *Rule) {
	for i := range rule.Patterns {
		rule.Patterns[i] = Normalize(rule.Patterns[i])
	}
}
