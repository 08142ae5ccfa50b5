package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "devskim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0o755))
	path := writeConfig(t, dir, `
configVersion: 1
rules:
  - path: rules
    tag: default
logging:
  level: debug
  format: json
server:
  listen: "127.0.0.1:9090"
  rateLimit:
    enabled: true
    rps: 5
    burst: 10
metrics:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "default", cfg.Rules[0].Tag)
	assert.Equal(t, filepath.Join(dir, "rules"), cfg.ResolvePath(cfg.Rules[0].Path))
	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, RateLimitConfig{Enabled: true, RPS: 5, Burst: 10}, cfg.Server.RateLimit)
}

func TestValidateCollectsProblems(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
configVersion: 2
rules:
  - path: ""
  - path: missing
languages: nowhere.json
logging:
  level: loud
  format: xml
server:
  listen: "not an address"
  rateLimit:
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	err = cfg.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 9)
	assert.Contains(t, verr.Problems, "configVersion must be 1")
	assert.Contains(t, verr.Problems, "rules[0].path is required")
	assert.Contains(t, verr.Problems, "logging.format must be console|json")
}

func TestValidateRequiresSources(t *testing.T) {
	cfg, err := Parse([]byte("configVersion: 1\n"))
	require.NoError(t, err)

	var verr *ValidationError
	require.ErrorAs(t, cfg.Validate(), &verr)
	assert.Equal(t, []string{"rules must list at least one source"}, verr.Problems)
	assert.Equal(t, DefaultListen, cfg.ListenAddr())
}

func TestFromSources(t *testing.T) {
	dir := t.TempDir()
	cfg := FromSources([]string{dir}, "cli")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []RuleSource{{Path: dir, Tag: "cli"}}, cfg.Rules)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("rules: [\n"))
	assert.ErrorContains(t, err, "parse config")
}
