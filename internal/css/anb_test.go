package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anbTokens(t *testing.T, src string) []Token {
	t.Helper()
	tok := NewTokenizerString(src)
	var out []Token
	for {
		tt := tok.Next()
		if tt.IsEOF() {
			break
		}
		out = append(out, tt)
	}
	return out
}

func TestParseAnbKeywords(t *testing.T) {
	v, err := ParseAnb(anbTokens(t, "odd"))
	require.NoError(t, err)
	assert.Equal(t, AnbValue{A: 2, B: 1}, v)

	v, err = ParseAnb(anbTokens(t, "even"))
	require.NoError(t, err)
	assert.Equal(t, AnbValue{A: 2, B: 0}, v)
}

func TestParseAnbForms(t *testing.T) {
	cases := map[string]AnbValue{
		"5":       {A: 0, B: 5},
		"2n":      {A: 2, B: 0},
		"2n+1":    {A: 2, B: 1},
		"2n + 1":  {A: 2, B: 1},
		"2n-1":    {A: 2, B: -1},
		"-n+3":    {A: -1, B: 3},
		"n":       {A: 1, B: 0},
	}
	for src, want := range cases {
		v, err := ParseAnb(anbTokens(t, src))
		require.NoError(t, err, src)
		assert.Equal(t, want, v, src)
	}
}

func TestAnbZeroMatchesNothing(t *testing.T) {
	v, err := ParseAnb(anbTokens(t, "0n+0"))
	require.NoError(t, err)
	for i := 1; i <= 10; i++ {
		assert.False(t, v.Matches(i))
	}
}

func TestAnbMatchesExpectedIndices(t *testing.T) {
	v := AnbValue{A: 2, B: 1}
	var got []int
	for i := 1; i <= 10; i++ {
		if v.Matches(i) {
			got = append(got, i)
		}
	}
	assert.Equal(t, []int{1, 3, 5, 7, 9}, got)
}
