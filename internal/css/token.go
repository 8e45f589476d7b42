package css

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	wolffcss "github.com/tdewolff/parse/v2/css"
)

// TokenType is the tagged-union discriminant for Token, per spec §3.
type TokenType int

const (
	EOFToken TokenType = iota
	IdentToken
	FunctionToken // name includes the trailing '('
	AtKeywordToken
	HashToken
	StringToken
	BadStringToken
	URLToken
	BadURLToken
	DelimToken
	NumberToken
	PercentageToken
	DimensionToken
	WhitespaceToken
	CDOToken
	CDCToken
	ColonToken
	SemicolonToken
	CommaToken
	LeftBracketToken
	RightBracketToken
	LeftParenToken
	RightParenToken
	LeftBraceToken
	RightBraceToken
	ErrorToken // eof-in-string / eof-in-comment / eof-in-url
)

// HashType distinguishes the two hash-token subtypes from spec §3.
type HashType int

const (
	HashUnrestricted HashType = iota
	HashID
)

// NumberFlag records whether a numeric token's source text was an integer.
type NumberFlag int

const (
	FlagInteger NumberFlag = iota
	FlagNumber
)

// Token is the tagged-union output of the tokenizer (C1), exhaustive over
// the ~25 variants in spec §3. Only the fields relevant to Type are
// meaningful; Value always preserves the original source text of numeric
// tokens so numeric round-trip (spec §8) holds.
type Token struct {
	Type   TokenType
	Offset FileOffset

	Value string // ident/function/at-keyword/string/url/delim(1 rune)/error reason
	Unit  string // dimension unit text

	HashType   HashType
	NumValue   float64
	NumFlag    NumberFlag
	PctValue   float64 // percentage scaled by 100, i.e. 50% -> 0.5
	LengthUnit LengthUnit
	HasLength  bool // true if Unit resolves to a recognized length unit
}

// IsEOF reports whether this token is the terminal EOF token.
func (t Token) IsEOF() bool { return t.Type == EOFToken }

// Tokenizer turns a byte stream into a Token stream per CSS Syntax Level 3,
// delegating the character-level state machine to tdewolff/parse/v2/css and
// re-tagging its output into the Token union with byte offsets attached.
type Tokenizer struct {
	lexer  *wolffcss.Lexer
	offset int
	eof    bool
}

// NewTokenizer constructs a Tokenizer over src.
func NewTokenizer(src []byte) *Tokenizer {
	return &Tokenizer{lexer: wolffcss.NewLexer(parse.NewInput(bytes.NewReader(src)))}
}

// NewTokenizerString constructs a Tokenizer over a string.
func NewTokenizerString(src string) *Tokenizer {
	return NewTokenizer([]byte(src))
}

// IsEOF reports whether the tokenizer has been exhausted.
func (t *Tokenizer) IsEOF() bool { return t.eof }

// Next returns the next token. Once exhausted, it returns EOFToken forever.
// Next never fails: malformed input becomes a bad-*/error/delim token.
func (t *Tokenizer) Next() Token {
	if t.eof {
		return Token{Type: EOFToken, Offset: t.pos()}
	}

	for {
		start := t.pos()
		typ, raw := t.lexer.Next()

		if typ == wolffcss.ErrorToken {
			err := t.lexer.Err()
			t.eof = true
			if err == io.EOF || err == nil {
				return Token{Type: EOFToken, Offset: start}
			}
			return Token{Type: ErrorToken, Offset: start, Value: classifyEOF(string(raw), err.Error())}
		}

		t.offset += len(raw)

		if typ == wolffcss.CommentToken {
			// Comments are consumed and discarded (spec §4.1).
			continue
		}

		return t.convert(typ, raw, start)
	}
}

func (t *Tokenizer) pos() FileOffset { return Pos(t.offset) }

// classifyEOF guesses the specific eof-in-* reason from the partially
// consumed bytes, matching the bad-string/bad-url/eof-in-comment taxonomy of
// spec §4.1 even though the wrapped lexer only reports a generic error.
func classifyEOF(raw string, underlying string) string {
	switch {
	case strings.HasPrefix(raw, "/*"):
		return "eof-in-comment"
	case strings.HasPrefix(raw, "url(") || strings.HasPrefix(raw, "URL("):
		return "eof-in-url"
	case len(raw) > 0 && (raw[0] == '"' || raw[0] == '\''):
		return "eof-in-string"
	default:
		return underlying
	}
}

func (t *Tokenizer) convert(typ wolffcss.TokenType, raw []byte, start FileOffset) Token {
	value := string(raw)

	switch typ {
	case wolffcss.IdentToken:
		return Token{Type: IdentToken, Offset: start, Value: value}
	case wolffcss.FunctionToken:
		return Token{Type: FunctionToken, Offset: start, Value: value}
	case wolffcss.AtKeywordToken:
		return Token{Type: AtKeywordToken, Offset: start, Value: value[1:]}
	case wolffcss.HashToken:
		name := value[1:]
		ht := HashUnrestricted
		if isIdentifier(name) {
			ht = HashID
		}
		return Token{Type: HashToken, Offset: start, Value: name, HashType: ht}
	case wolffcss.StringToken:
		return Token{Type: StringToken, Offset: start, Value: unquoteCSSString(value)}
	case wolffcss.BadStringToken:
		return Token{Type: BadStringToken, Offset: start, Value: value}
	case wolffcss.URLToken:
		return Token{Type: URLToken, Offset: start, Value: unwrapURL(value)}
	case wolffcss.BadURLToken:
		return Token{Type: BadURLToken, Offset: start, Value: value}
	case wolffcss.DelimToken:
		return Token{Type: DelimToken, Offset: start, Value: value}
	case wolffcss.NumberToken:
		n, flag := parseNumber(value)
		return Token{Type: NumberToken, Offset: start, Value: value, NumValue: n, NumFlag: flag}
	case wolffcss.PercentageToken:
		n, flag := parseNumber(value[:len(value)-1])
		return Token{Type: PercentageToken, Offset: start, Value: value, NumValue: n, NumFlag: flag, PctValue: n / 100}
	case wolffcss.DimensionToken:
		numPart, unit := splitDimension(value)
		n, flag := parseNumber(numPart)
		unitLower := strings.ToLower(unit)
		lu, ok := lengthUnitByName(unitLower)
		return Token{
			Type: DimensionToken, Offset: start, Value: value, Unit: unit,
			NumValue: n, NumFlag: flag, LengthUnit: lu, HasLength: ok,
		}
	case wolffcss.WhitespaceToken:
		return Token{Type: WhitespaceToken, Offset: start, Value: value}
	case wolffcss.CDOToken:
		return Token{Type: CDOToken, Offset: start}
	case wolffcss.CDCToken:
		return Token{Type: CDCToken, Offset: start}
	case wolffcss.ColonToken:
		return Token{Type: ColonToken, Offset: start}
	case wolffcss.SemicolonToken:
		return Token{Type: SemicolonToken, Offset: start}
	case wolffcss.CommaToken:
		return Token{Type: CommaToken, Offset: start}
	case wolffcss.LeftBracketToken:
		return Token{Type: LeftBracketToken, Offset: start}
	case wolffcss.RightBracketToken:
		return Token{Type: RightBracketToken, Offset: start}
	case wolffcss.LeftParenthesisToken:
		return Token{Type: LeftParenToken, Offset: start}
	case wolffcss.RightParenthesisToken:
		return Token{Type: RightParenToken, Offset: start}
	case wolffcss.LeftBraceToken:
		return Token{Type: LeftBraceToken, Offset: start}
	case wolffcss.RightBraceToken:
		return Token{Type: RightBraceToken, Offset: start}
	default:
		// Any token type this wrapper doesn't know about degrades to a
		// delimiter on its first byte rather than panicking (spec §4.1:
		// tokenization never returns a fatal error).
		if len(value) > 0 {
			return Token{Type: DelimToken, Offset: start, Value: value[:1]}
		}
		return Token{Type: EOFToken, Offset: start}
	}
}

func splitDimension(v string) (numPart, unit string) {
	i := len(v)
	for i > 0 {
		c := v[i-1]
		if c >= '0' && c <= '9' || c == '.' {
			break
		}
		i--
	}
	// Walk back further to include a trailing exponent's digits correctly:
	// find the split between number grammar and unit by scanning forward
	// instead, since units never start with a digit, '+', '-', or '.'.
	for j := 0; j < len(v); j++ {
		c := v[j]
		if c >= '0' && c <= '9' || c == '.' || c == '+' || c == '-' {
			continue
		}
		// 'e'/'E' may begin a unit (e.g. "1em") rather than an exponent;
		// disambiguate by requiring a following digit for an exponent.
		if (c == 'e' || c == 'E') && j+1 < len(v) && (isASCIIDigit(v[j+1]) || ((v[j+1] == '+' || v[j+1] == '-') && j+2 < len(v) && isASCIIDigit(v[j+2]))) {
			continue
		}
		return v[:j], v[j:]
	}
	return v, ""
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseNumber(s string) (float64, NumberFlag) {
	flag := FlagInteger
	if strings.ContainsAny(s, ".eE") {
		flag = FlagNumber
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow becomes +/-Inf per spec §4.1, but the source text is
		// preserved on the token regardless.
		if strings.HasPrefix(s, "-") {
			return negInf(), flag
		}
		return posInf(), flag
	}
	return n, flag
}

func posInf() float64 { var f float64 = 1; return f / 0 * f }
func negInf() float64 { return -posInf() }

func unwrapURL(v string) string {
	// v is "url(...)" possibly with quotes inside; strip wrapper only.
	inner := v
	if len(inner) >= 4 && strings.HasPrefix(strings.ToLower(inner), "url(") {
		inner = inner[4 : len(inner)-1]
	}
	return strings.TrimSpace(unquoteIfQuoted(inner))
}

func unquoteIfQuoted(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func unquoteCSSString(v string) string {
	if len(v) >= 2 {
		return v[1 : len(v)-1]
	}
	return v
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	i := 0
	if name[0] == '-' {
		i = 1
		if len(name) == 1 {
			return false
		}
	}
	c := name[i]
	if !(c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80) {
		return false
	}
	return true
}
