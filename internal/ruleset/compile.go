package ruleset

import (
	"fmt"
	"regexp"
	"strings"
)

// Compile returns the regular expression a scan engine would run for p.
// String and RegexWord patterns that skipped normalization (added through
// AddRule) get the same word-boundary form the loader produces.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	var expr string
	switch p.Kind {
	case KindRegex:
		expr = p.Text
	case KindRegexWord, KindString:
		expr = wordBoundary(p.Text)
	case KindSubstring:
		expr = regexp.QuoteMeta(p.Text)
	default:
		return nil, fmt.Errorf("pattern type %q has no regex form", p.Kind)
	}
	if expr == "" {
		return nil, fmt.Errorf("pattern is empty")
	}

	re, err := regexp.Compile(modifierFlags(p.Modifiers) + expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// CompileAll compiles every pattern of rule in order.
func (r *Rule) CompileAll() ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(r.Patterns))
	for i, p := range r.Patterns {
		re, err := p.Compile()
		if err != nil {
			return nil, fmt.Errorf("rule %s pattern %d: %w", r.ID, i, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func modifierFlags(modifiers []string) string {
	var flags strings.Builder
	for _, m := range modifiers {
		switch strings.ToLower(strings.TrimSpace(m)) {
		case "i":
			flags.WriteByte('i')
		case "m":
			flags.WriteByte('m')
		case "s":
			flags.WriteByte('s')
		}
	}
	if flags.Len() == 0 {
		return ""
	}
	return "(?" + flags.String() + ")"
}
