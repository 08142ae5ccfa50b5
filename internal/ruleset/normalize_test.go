package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWrapsWordKinds(t *testing.T) {
	tests := []struct {
		name string
		in   Pattern
		want Pattern
	}{
		{
			name: "string",
			in:   Pattern{Text: "foo", Kind: KindString},
			want: Pattern{Text: `\bfoo\b`, Kind: KindRegex},
		},
		{
			name: "regex word",
			in:   Pattern{Text: "strcpy", Kind: KindRegexWord},
			want: Pattern{Text: `\bstrcpy\b`, Kind: KindRegex},
		},
		{
			name: "metacharacters are not escaped",
			in:   Pattern{Text: "a.b", Kind: KindString},
			want: Pattern{Text: `\ba.b\b`, Kind: KindRegex},
		},
		{
			name: "regex untouched",
			in:   Pattern{Text: `md5\(`, Kind: KindRegex},
			want: Pattern{Text: `md5\(`, Kind: KindRegex},
		},
		{
			name: "substring untouched",
			in:   Pattern{Text: "eval", Kind: KindSubstring},
			want: Pattern{Text: "eval", Kind: KindSubstring},
		},
		{
			name: "unknown kind untouched",
			in:   Pattern{Text: "x", Kind: PatternKind("glob")},
			want: Pattern{Text: "x", Kind: PatternKind("glob")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestAddStringTwiceDoesNotDoubleWrap(t *testing.T) {
	const raw = `[{"id":"R1","patterns":[{"pattern":"foo","type":"String"}]}]`

	rs := New()
	first, err := rs.AddString(raw, "a.json", "")
	require.NoError(t, err)
	second, err := rs.AddString(raw, "b.json", "")
	require.NoError(t, err)

	assert.Equal(t, `\bfoo\b`, first[0].Patterns[0].Text)
	assert.Equal(t, `\bfoo\b`, second[0].Patterns[0].Text)
	assert.Equal(t, 2, rs.Count())
}

func TestParsePatternKind(t *testing.T) {
	assert.Equal(t, KindRegex, ParsePatternKind("Regex"))
	assert.Equal(t, KindRegexWord, ParsePatternKind("RegexWord"))
	assert.Equal(t, KindRegexWord, ParsePatternKind("regex-word"))
	assert.Equal(t, KindString, ParsePatternKind("String"))
	assert.Equal(t, KindSubstring, ParsePatternKind("SubString"))
	assert.Equal(t, PatternKind("Glob"), ParsePatternKind("Glob"))
}
