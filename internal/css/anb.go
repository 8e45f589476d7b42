package css

import (
	"strconv"
	"strings"
)

// AnbValue is a parsed An+B microsyntax value (CSS Syntax Level 3 §9),
// used by :nth-child(), :nth-last-child(), :nth-of-type(), etc.
type AnbValue struct {
	A, B int
}

// Matches reports whether the 1-based index satisfies this An+B value: there
// exists a non-negative integer n such that index == A*n + B.
func (v AnbValue) Matches(index int) bool {
	diff := index - v.B
	if v.A == 0 {
		return diff == 0
	}
	if diff%v.A != 0 {
		return false
	}
	return diff/v.A >= 0
}

// ParseAnb parses the An+B grammar out of a trimmed token run, as produced by
// a pseudo-class's function argument (spec §4.5). Supports: odd, even,
// <integer>, <n-dimension>, ±n±<integer>, the ndashdigit forms ("3n-1",
// "n-1", "-n-1"), and "+n" style explicit-sign idents.
func ParseAnb(tokens []Token) (AnbValue, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return AnbValue{}, errf(KindSyntax, EndOfString, "expected An+B")
	}

	if len(tokens) == 1 && tokens[0].Type == IdentToken {
		switch strings.ToLower(tokens[0].Value) {
		case "odd":
			return AnbValue{A: 2, B: 1}, nil
		case "even":
			return AnbValue{A: 2, B: 0}, nil
		}
	}

	// Bare <integer>: A=0, B=integer.
	if len(tokens) == 1 && tokens[0].Type == NumberToken && tokens[0].NumFlag == FlagInteger {
		return AnbValue{A: 0, B: int(tokens[0].NumValue)}, nil
	}

	a, dashB, hasDashB, consumed, err := parseAnbLeading(tokens)
	if err != nil {
		return AnbValue{}, err
	}
	if hasDashB {
		if len(trimWhitespace(tokens[consumed:])) != 0 {
			return AnbValue{}, errf(KindSyntax, tokens[consumed].Offset, "unexpected token after An+B")
		}
		return AnbValue{A: a, B: dashB}, nil
	}

	rest := trimWhitespace(tokens[consumed:])
	if len(rest) == 0 {
		return AnbValue{A: a, B: 0}, nil
	}

	// A standalone explicitly-signed integer continues the expression
	// ("3n+1" lexes as dimension "3n" + number "+1").
	if len(rest) == 1 && rest[0].Type == NumberToken && rest[0].NumFlag == FlagInteger &&
		(strings.HasPrefix(rest[0].Value, "+") || strings.HasPrefix(rest[0].Value, "-")) {
		return AnbValue{A: a, B: int(rest[0].NumValue)}, nil
	}

	// Separated sign delim followed by a signless integer ("3n + 1").
	if len(rest) >= 2 && rest[0].Type == DelimToken && (rest[0].Value == "+" || rest[0].Value == "-") {
		sign := 1
		if rest[0].Value == "-" {
			sign = -1
		}
		num := trimWhitespace(rest[1:])
		if len(num) != 1 || num[0].Type != NumberToken || num[0].NumFlag != FlagInteger ||
			strings.HasPrefix(num[0].Value, "+") || strings.HasPrefix(num[0].Value, "-") {
			return AnbValue{}, errf(KindSyntax, rest[0].Offset, "expected a signless integer after sign")
		}
		return AnbValue{A: a, B: sign * int(num[0].NumValue)}, nil
	}

	return AnbValue{}, errf(KindSyntax, rest[0].Offset, "malformed An+B")
}

// parseAnbLeading consumes the leading A-bearing token(s) of tokens. It
// returns the A coefficient and how many tokens were consumed. For the
// ndashdigit forms it also sets dashB and hasDashB, since that production has
// no separate +/- sign token to parse: "3n-1", "n-1" and "-n-1" lex as one
// token carrying the digits, while "3n-", "n-" and "-n-" fold the following
// signless-integer token.
func parseAnbLeading(tokens []Token) (a int, dashB int, hasDashB bool, consumed int, err error) {
	t := tokens[0]
	var coeff int
	var digits string
	switch lower := strings.ToLower(t.Value); {
	case t.Type == DimensionToken && strings.HasPrefix(strings.ToLower(t.Unit), "n-"):
		coeff, digits = int(t.NumValue), t.Unit[2:]
	case t.Type == IdentToken && strings.HasPrefix(lower, "n-"):
		coeff, digits = 1, lower[2:]
	case t.Type == IdentToken && strings.HasPrefix(lower, "-n-"):
		coeff, digits = -1, lower[3:]
	}
	if v, convErr := strconv.Atoi(digits); convErr == nil && digits[0] != '+' && digits[0] != '-' {
		return coeff, -v, true, 1, nil
	}
	switch t.Type {
	case DimensionToken:
		unit := strings.ToLower(t.Unit)
		switch unit {
		case "n":
			return int(t.NumValue), 0, false, 1, nil
		case "n-":
			n, ok := trailingSignlessInt(tokens)
			if !ok {
				return 0, 0, false, 0, errf(KindSyntax, t.Offset, "malformed An+B")
			}
			return int(t.NumValue), -n, true, 2, nil
		default:
			return 0, 0, false, 0, errf(KindSyntax, t.Offset, "malformed An+B unit %q", t.Unit)
		}
	case IdentToken:
		switch strings.ToLower(t.Value) {
		case "n":
			return 1, 0, false, 1, nil
		case "-n":
			return -1, 0, false, 1, nil
		case "n-":
			n, ok := trailingSignlessInt(tokens)
			if !ok {
				return 0, 0, false, 0, errf(KindSyntax, t.Offset, "malformed An+B")
			}
			return 1, -n, true, 2, nil
		case "-n-":
			n, ok := trailingSignlessInt(tokens)
			if !ok {
				return 0, 0, false, 0, errf(KindSyntax, t.Offset, "malformed An+B")
			}
			return -1, -n, true, 2, nil
		default:
			return 0, 0, false, 0, errf(KindSyntax, t.Offset, "malformed An+B ident %q", t.Value)
		}
	default:
		return 0, 0, false, 0, errf(KindSyntax, t.Offset, "expected An+B")
	}
}

func trailingSignlessInt(tokens []Token) (int, bool) {
	if len(tokens) < 2 {
		return 0, false
	}
	n := tokens[1]
	if n.Type != NumberToken || n.NumFlag != FlagInteger {
		return 0, false
	}
	if strings.HasPrefix(n.Value, "+") || strings.HasPrefix(n.Value, "-") {
		return 0, false
	}
	return int(n.NumValue), true
}
