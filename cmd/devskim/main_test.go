package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kayman-mk/DevSkim/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliRules = `[
	{"id":"GEN","severity":"moderate","patterns":[{"pattern":"TODO","type":"substring"}]},
	{"id":"PY1","appliesTo":["python"],"patterns":[{"pattern":"pickle","type":"string"}]},
	{"id":"PY2","appliesTo":["python"],"overrides":["PY1"],"patterns":[{"pattern":"eval","type":"string"}]}
]`

func writeRules(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.json"), []byte(body), 0o600))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRulesCommandJSON(t *testing.T) {
	dir := writeRules(t, cliRules)

	out, err := execute(t, "rules", "--rules", dir, "--language", "python", "--format", "json")
	require.NoError(t, err)

	var summary struct {
		Language string `json:"language"`
		Total    int    `json:"total"`
		Rules    []struct {
			ID string `json:"id"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "python", summary.Language)
	assert.Equal(t, 2, summary.Total)
	require.Len(t, summary.Rules, 2)
	assert.Equal(t, "PY2", summary.Rules[0].ID)
	assert.Equal(t, "GEN", summary.Rules[1].ID)
}

func TestRulesCommandFromFileName(t *testing.T) {
	dir := writeRules(t, cliRules)

	out, err := execute(t, "rules", "--rules", dir, "--file", "main.py")
	require.NoError(t, err)
	assert.Contains(t, out, "python")

	_, err = execute(t, "rules", "--rules", dir, "--file", "Makefile")
	assert.ErrorContains(t, err, "no language for file Makefile")
}

func TestRulesCommandRequiresSource(t *testing.T) {
	_, err := execute(t, "rules")
	assert.ErrorContains(t, err, "config path or --rules is required")
}

func TestValidateCommand(t *testing.T) {
	dir := writeRules(t, cliRules)

	out, err := execute(t, "validate", "--rules", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "config ok")
	assert.Contains(t, out, "rules: 3")
}

func TestValidateCommandReportsBadPatterns(t *testing.T) {
	dir := writeRules(t, `[{"id":"BAD","patterns":[{"pattern":"(","type":"regex"}]},{"id":"EMPTY"}]`)

	_, err := execute(t, "validate", "--rules", dir)
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems, "rule EMPTY has no patterns")
}

func TestValidateCommandParseError(t *testing.T) {
	dir := writeRules(t, `[{"id":`)

	_, err := execute(t, "validate", "--rules", dir)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=dev")
}

func TestValidateCommandWarnsOnDuplicateIDs(t *testing.T) {
	dir := writeRules(t, `[
		{"id":"A","patterns":[{"pattern":"x","type":"regex"}]},
		{"id":"A","patterns":[{"pattern":"y","type":"regex"}]}
	]`)

	out, err := execute(t, "validate", "--rules", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "duplicate ids: 1")
}
