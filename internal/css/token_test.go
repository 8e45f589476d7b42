package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	tok := NewTokenizerString(src)
	var out []Token
	for {
		tt := tok.Next()
		out = append(out, tt)
		if tt.IsEOF() {
			break
		}
	}
	return out
}

func TestTokenizerTotality(t *testing.T) {
	cases := []string{"", "   ", "a{b:c}", "/* unterminated", "\"unterminated", "url(unterminated"}
	for _, c := range cases {
		toks := allTokens(t, c)
		require.NotEmpty(t, toks)
		assert.True(t, toks[len(toks)-1].IsEOF())

		tok := NewTokenizerString(c)
		for !tok.IsEOF() {
			tok.Next()
		}
		again := tok.Next()
		assert.True(t, again.IsEOF(), "tokenizer must keep returning eof after exhaustion")
	}
}

func TestTokenOffsetsMonotonic(t *testing.T) {
	toks := allTokens(t, "div.class#id[attr=val] { fill: #ABC; }")
	last := -1
	for _, tt := range toks {
		off := tt.Offset.Offset
		if tt.Offset.AtEnd {
			continue
		}
		assert.GreaterOrEqual(t, off, last)
		last = off
	}
}

func TestNumberRoundTrip(t *testing.T) {
	cases := []string{"10", "-17", "3.14", "1e3", "-1.5e-2"}
	for _, c := range cases {
		toks := allTokens(t, c)
		require.Len(t, toks, 2) // number + eof
		n, _ := parseNumber(toks[0].Value)
		assert.InDelta(t, toks[0].NumValue, n, 1e-9)
	}
}

func TestDimensionSplitsUnitFromExponent(t *testing.T) {
	toks := allTokens(t, "1em")
	require.Equal(t, DimensionToken, toks[0].Type)
	assert.Equal(t, "em", toks[0].Unit)
	assert.Equal(t, float64(1), toks[0].NumValue)

	toks = allTokens(t, "1e3px")
	require.Equal(t, DimensionToken, toks[0].Type)
	assert.Equal(t, "px", toks[0].Unit)
	assert.Equal(t, float64(1000), toks[0].NumValue)
}

func TestHashTokenSubtype(t *testing.T) {
	toks := allTokens(t, "#abc")
	require.Equal(t, HashToken, toks[0].Type)
	assert.Equal(t, HashID, toks[0].HashType)
	assert.Equal(t, "abc", toks[0].Value)
}
