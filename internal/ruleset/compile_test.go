package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRegex(t *testing.T) {
	re, err := Pattern{Text: `\beval\b`, Kind: KindRegex}.Compile()
	require.NoError(t, err)
	assert.True(t, re.MatchString("x = eval(input)"))
	assert.False(t, re.MatchString("medieval"))
}

func TestCompileModifiers(t *testing.T) {
	re, err := Pattern{Text: "md5", Kind: KindRegex, Modifiers: []string{"i"}}.Compile()
	require.NoError(t, err)
	assert.True(t, re.MatchString("hashlib.MD5()"))
}

func TestCompileUnnormalizedWordKinds(t *testing.T) {
	re, err := Pattern{Text: "strcpy", Kind: KindString}.Compile()
	require.NoError(t, err)
	assert.Equal(t, `\bstrcpy\b`, re.String())
}

func TestCompileSubstringIsQuoted(t *testing.T) {
	re, err := Pattern{Text: "a.b(", Kind: KindSubstring}.Compile()
	require.NoError(t, err)
	assert.True(t, re.MatchString("xa.b(y"))
	assert.False(t, re.MatchString("axb("))
}

func TestCompileErrors(t *testing.T) {
	_, err := Pattern{Text: "(", Kind: KindRegex}.Compile()
	assert.Error(t, err)

	_, err = Pattern{Text: "x", Kind: PatternKind("glob")}.Compile()
	assert.Error(t, err)

	rule := &Rule{ID: "R", Patterns: []Pattern{{Text: "ok", Kind: KindRegex}, {Text: "[", Kind: KindRegex}}}
	_, err = rule.CompileAll()
	assert.ErrorContains(t, err, "rule R pattern 1")
}
