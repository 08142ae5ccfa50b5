package ruleset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/kayman-mk/DevSkim/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLoadsSourcesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "default", "eval.json"), evalRule)
	single := filepath.Join(dir, "custom.json")
	writeFile(t, single, `[{"id":"C1","patterns":[{"pattern":"TODO","type":"substring"}]}]`)

	cfg := &config.Config{
		ConfigVersion: config.CurrentVersion,
		Rules: []config.RuleSource{
			{Path: filepath.Join(dir, "default"), Tag: "default"},
			{Path: single, Tag: "custom"},
		},
	}

	rs, err := Build(cfg)
	require.NoError(t, err)

	rules := rs.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "default", rules[0].Tag)
	assert.Equal(t, "custom", rules[1].Tag)
	assert.Equal(t, []string{"R1", "C1"}, ids(rs.FilterByLanguage("javascript")))
}

func TestBuildMissingSource(t *testing.T) {
	_, err := Build(config.FromSources([]string{"/nonexistent.json"}, ""))
	assert.True(t, errors.Is(err, errs.ErrFileNotFound))

	_, err = Build(nil)
	assert.True(t, errors.Is(err, errs.ErrInvalidArgument))
}
