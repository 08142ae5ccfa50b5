package ruleset

import (
	"encoding/json"
	"strings"
)

// PatternKind selects how a pattern's text is interpreted.
type PatternKind string

const (
	KindRegex     PatternKind = "regex"
	KindRegexWord PatternKind = "regex-word"
	KindString    PatternKind = "string"
	KindSubstring PatternKind = "substring"
)

// UnmarshalJSON accepts any casing and ignores '-' and '_', so "RegexWord",
// "regex-word" and "regex_word" all decode to KindRegexWord. Unknown kinds are
// kept verbatim and pass through normalization untouched.
func (k *PatternKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*k = ParsePatternKind(raw)
	return nil
}

func ParsePatternKind(raw string) PatternKind {
	folded := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
	switch folded {
	case "regex":
		return KindRegex
	case "regexword":
		return KindRegexWord
	case "string":
		return KindString
	case "substring":
		return KindSubstring
	default:
		return PatternKind(raw)
	}
}

// Pattern is one match expression of a rule.
type Pattern struct {
	Text      string      `json:"pattern"`
	Kind      PatternKind `json:"type"`
	AppliesTo []string    `json:"appliesTo,omitempty"`
	Scopes    []string    `json:"scopes,omitempty"`
	Modifiers []string    `json:"modifiers,omitempty"`
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	type plain Pattern
	aux := struct {
		*plain
		AppliesToSnake []string `json:"applies_to"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.AppliesTo = append(p.AppliesTo, aux.AppliesToSnake...)
	return nil
}

// Rule is a named set of patterns plus applicability and override metadata.
//
// Source and Tag record provenance and are set by the loader; values present
// in rule files are overwritten.
type Rule struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	Description    string    `json:"description,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Severity       string    `json:"severity,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	RuleInfo       string    `json:"rule_info,omitempty"`
	AppliesTo      []string  `json:"appliesTo,omitempty"`
	Overrides      []string  `json:"overrides,omitempty"`
	Patterns       []Pattern `json:"patterns"`

	Source string `json:"source,omitempty"`
	Tag    string `json:"tag,omitempty"`
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	type plain Rule
	aux := struct {
		*plain
		AppliesToSnake []string `json:"applies_to"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.AppliesTo = append(r.AppliesTo, aux.AppliesToSnake...)
	return nil
}
