package ruleset

import "slices"

type tier int

const (
	tierNone tier = iota
	tierLanguage
	tierGeneric
)

// FilterByLanguage returns the rules that apply to language, most specific
// first, with overridden rules removed. It is recomputed from the current
// contents on every call.
//
// Rules restricted to language, directly or through one of their patterns,
// come first in reverse insertion order. Rules that reach a generic pattern
// follow in insertion order. A rule that neither names language nor has a
// generic pattern is left out. Override removal happens once over that
// result: each overridden id removes its first occurrence only.
func (rs *Ruleset) FilterByLanguage(language string) []*Rule {
	var specific, generic []*Rule
	for _, rule := range rs.rules {
		switch ruleTier(rule, language) {
		case tierLanguage:
			specific = append(specific, rule)
		case tierGeneric:
			generic = append(generic, rule)
		}
	}

	slices.Reverse(specific)
	result := append(specific, generic...)
	result = removeOverridden(result)

	rs.metrics.ObserveFilter(rs.languageLabel(language), len(result))
	return result
}

// languageLabel bounds the metric label to known languages. Anything else,
// including arbitrary query strings, is counted as "other".
func (rs *Ruleset) languageLabel(language string) string {
	if language == "" {
		return ""
	}
	if _, ok := rs.languages[language]; ok {
		return language
	}
	return "other"
}

func ruleTier(rule *Rule, language string) tier {
	if len(rule.AppliesTo) > 0 {
		if slices.Contains(rule.AppliesTo, language) {
			return tierLanguage
		}
		return tierNone
	}

	for _, p := range rule.Patterns {
		if len(p.AppliesTo) == 0 {
			return tierGeneric
		}
		if slices.Contains(p.AppliesTo, language) {
			return tierLanguage
		}
	}
	return tierNone
}

func removeOverridden(rules []*Rule) []*Rule {
	var overridden []string
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, id := range rule.Overrides {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			overridden = append(overridden, id)
		}
	}

	for _, id := range overridden {
		i := slices.IndexFunc(rules, func(r *Rule) bool { return r.ID == id })
		if i >= 0 {
			rules = slices.Delete(rules, i, i+1)
		}
	}
	return rules
}
