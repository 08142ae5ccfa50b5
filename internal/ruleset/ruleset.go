// Package ruleset loads rule definitions and answers per-language queries.
//
// A Ruleset is an append-only, insertion-ordered collection of rules. Rules
// enter through the loader (AddString, AddFile, AddDirectory), which tags them
// with provenance and normalizes their patterns, or directly through AddRule
// and AddRange, which store them as given.
//
// A Ruleset does no locking. Load everything first, then query; concurrent
// FilterByLanguage calls are safe only while nothing is being added.
package ruleset

import (
	"iter"
	"slices"

	"github.com/kayman-mk/DevSkim/internal/observability"
	"github.com/rs/zerolog"
)

type Ruleset struct {
	rules []*Rule
	ids   map[string]int
	// languages holds every language named by a rule or pattern, plus those
	// passed to WithLanguages. Only these are used as metric labels.
	languages map[string]struct{}
	logger    zerolog.Logger
	metrics   *observability.Metrics
}

type Option func(*Ruleset)

// WithLogger sets the logger used for load diagnostics. The default discards.
func WithLogger(logger zerolog.Logger) Option {
	return func(rs *Ruleset) {
		rs.logger = logger
	}
}

func WithMetrics(metrics *observability.Metrics) Option {
	return func(rs *Ruleset) {
		rs.metrics = metrics
	}
}

// WithLanguages marks names as known languages for metric labels, in
// addition to those the loaded rules name.
func WithLanguages(names ...string) Option {
	return func(rs *Ruleset) {
		for _, name := range names {
			rs.languages[name] = struct{}{}
		}
	}
}

func New(opts ...Option) *Ruleset {
	rs := &Ruleset{
		ids:       make(map[string]int),
		languages: make(map[string]struct{}),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func FromDirectory(path, tag string, opts ...Option) (*Ruleset, error) {
	rs := New(opts...)
	if err := rs.AddDirectory(path, tag); err != nil {
		return nil, err
	}
	return rs, nil
}

func FromFile(path, tag string, opts ...Option) (*Ruleset, error) {
	rs := New(opts...)
	if err := rs.AddFile(path, tag); err != nil {
		return nil, err
	}
	return rs, nil
}

func FromString(data, sourceName, tag string, opts ...Option) (*Ruleset, error) {
	rs := New(opts...)
	if _, err := rs.AddString(data, sourceName, tag); err != nil {
		return nil, err
	}
	return rs, nil
}

// AddRule appends rule without normalizing it. Nil rules are ignored.
func (rs *Ruleset) AddRule(rule *Rule) {
	if rule == nil {
		return
	}
	rs.add(rule)
	rs.metrics.ObserveRules(rule.Tag, 1, len(rs.rules))
}

// AddRange appends rules in order without normalizing them.
func (rs *Ruleset) AddRange(rules []*Rule) {
	var tags []string
	added := make(map[string]int)
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		rs.add(rule)
		if _, ok := added[rule.Tag]; !ok {
			tags = append(tags, rule.Tag)
		}
		added[rule.Tag]++
	}
	for _, tag := range tags {
		rs.metrics.ObserveRules(tag, added[tag], len(rs.rules))
	}
}

func (rs *Ruleset) add(rule *Rule) {
	if rs.ids == nil {
		rs.ids = make(map[string]int)
	}
	if rs.languages == nil {
		rs.languages = make(map[string]struct{})
	}
	for _, lang := range rule.AppliesTo {
		rs.languages[lang] = struct{}{}
	}
	for _, p := range rule.Patterns {
		for _, lang := range p.AppliesTo {
			rs.languages[lang] = struct{}{}
		}
	}
	rs.ids[rule.ID]++
	if rs.ids[rule.ID] == 2 {
		rs.logger.Warn().
			Str("id", rule.ID).
			Str("source", rule.Source).
			Msg("Duplicate rule id; overrides will remove only the first occurrence")
	}
	rs.rules = append(rs.rules, rule)
}

func (rs *Ruleset) Count() int {
	return len(rs.rules)
}

// All yields every rule in insertion order.
func (rs *Ruleset) All() iter.Seq[*Rule] {
	return func(yield func(*Rule) bool) {
		for _, rule := range rs.rules {
			if !yield(rule) {
				return
			}
		}
	}
}

// Rules returns the rules in insertion order. The slice is a copy; the rules
// are shared with the ruleset and must not be modified.
func (rs *Ruleset) Rules() []*Rule {
	return slices.Clone(rs.rules)
}

// Sources returns the distinct source names in the order they were first seen.
func (rs *Ruleset) Sources() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rule := range rs.rules {
		if _, ok := seen[rule.Source]; ok {
			continue
		}
		seen[rule.Source] = struct{}{}
		out = append(out, rule.Source)
	}
	return out
}

// DuplicateIDs returns ids held by more than one rule, in first-seen order.
func (rs *Ruleset) DuplicateIDs() []string {
	var out []string
	reported := make(map[string]struct{})
	for _, rule := range rs.rules {
		if rs.ids[rule.ID] < 2 {
			continue
		}
		if _, ok := reported[rule.ID]; ok {
			continue
		}
		reported[rule.ID] = struct{}{}
		out = append(out, rule.ID)
	}
	return out
}
