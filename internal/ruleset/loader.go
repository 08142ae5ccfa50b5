package ruleset

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kayman-mk/DevSkim/internal/errs"
)

// RuleFileExt is the extension of files picked up by AddDirectory.
const RuleFileExt = ".json"

// AddString parses data as a JSON array of rules, tags each rule with
// sourceName and tag, normalizes every pattern and appends the rules.
// On a parse error nothing is appended.
func (rs *Ruleset) AddString(data, sourceName, tag string) ([]*Rule, error) {
	rules, err := parseRules(data, sourceName, tag)
	if err != nil {
		return nil, err
	}
	rs.AddRange(rules)
	rs.logger.Debug().
		Str("source", sourceName).
		Str("tag", tag).
		Int("rules", len(rules)).
		Msg("Loaded rules")
	return rules, nil
}

func parseRules(data, sourceName, tag string) ([]*Rule, error) {
	var rules []*Rule
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, errs.Parse(err, sourceName)
	}

	out := rules[:0]
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		rule.Source = sourceName
		rule.Tag = tag
		normalizeRule(rule)
		out = append(out, rule)
	}
	return out, nil
}

// AddFile reads the rule file at path and loads it with the path as source.
func (rs *Ruleset) AddFile(path, tag string) error {
	if path == "" {
		return errs.Argument("path")
	}

	err := rs.addFile(path, tag)
	rs.metrics.ObserveFile(err)
	return err
}

func (rs *Ruleset) addFile(path, tag string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.FileNotFound(path)
		}
		return errs.Wrapf(err, errs.CodeInternal, "stat %s", path)
	}
	if info.IsDir() {
		return errs.FileNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrapf(err, errs.CodeInternal, "read %s", path)
	}

	_, err = rs.AddString(string(data), path, tag)
	return err
}

// AddDirectory loads every rule file under path, recursively, in walk order.
// The first failing file aborts the walk; rules from files loaded before it
// stay in the ruleset.
func (rs *Ruleset) AddDirectory(path, tag string) error {
	if path == "" {
		return errs.Argument("path")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.DirectoryNotFound(path)
		}
		return errs.Wrapf(err, errs.CodeInternal, "stat %s", path)
	}
	if !info.IsDir() {
		return errs.DirectoryNotFound(path)
	}

	before := rs.Count()
	files := 0
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errs.Wrapf(walkErr, errs.CodeInternal, "walk %s", p)
		}
		if d.IsDir() || !isRuleFile(d.Name()) {
			return nil
		}
		if err := rs.AddFile(p, tag); err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		rs.logger.Error().
			Err(err).
			Str("directory", path).
			Int("files", files).
			Msg("Rule directory load aborted")
		return err
	}

	rs.logger.Info().
		Str("directory", path).
		Str("tag", tag).
		Int("files", files).
		Int("rules", rs.Count()-before).
		Msg("Loaded rule directory")
	return nil
}

func isRuleFile(name string) bool {
	return filepath.Ext(name) == RuleFileExt
}
