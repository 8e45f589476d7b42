package css

import "strings"

// LineCap is the closed keyword set for stroke-linecap.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

var lineCapNames = map[string]LineCap{
	"butt": CapButt, "round": CapRound, "square": CapSquare,
}

// ParseLineCap parses a stroke-linecap keyword.
func ParseLineCap(tokens []Token) (LineCap, error) {
	tokens = trimWhitespace(tokens)
	name, err := singleIdent(tokens, "stroke-linecap")
	if err != nil {
		return 0, err
	}
	cap, ok := lineCapNames[name]
	if !ok {
		return 0, errf(KindSemantic, tokens[0].Offset, "invalid stroke-linecap %q", name)
	}
	return cap, nil
}

// LineJoin is the closed keyword set for stroke-linejoin.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinMiterClip
	JoinRound
	JoinBevel
	JoinArcs
)

var lineJoinNames = map[string]LineJoin{
	"miter": JoinMiter, "miter-clip": JoinMiterClip, "round": JoinRound,
	"bevel": JoinBevel, "arcs": JoinArcs,
}

// ParseLineJoin parses a stroke-linejoin keyword.
func ParseLineJoin(tokens []Token) (LineJoin, error) {
	tokens = trimWhitespace(tokens)
	name, err := singleIdent(tokens, "stroke-linejoin")
	if err != nil {
		return 0, err
	}
	join, ok := lineJoinNames[name]
	if !ok {
		return 0, errf(KindSemantic, tokens[0].Offset, "invalid stroke-linejoin %q", name)
	}
	return join, nil
}

func singleIdent(tokens []Token, propName string) (string, error) {
	if len(tokens) != 1 || tokens[0].Type != IdentToken {
		off := EndOfString
		if len(tokens) > 0 {
			off = tokens[0].Offset
		}
		return "", errf(KindSyntax, off, "expected a single keyword for %s", propName)
	}
	return strings.ToLower(tokens[0].Value), nil
}

// ParseDasharray parses stroke-dasharray: "none" or a comma/whitespace
// separated list of <length-percentage>, each required to be non-negative.
func ParseDasharray(tokens []Token) ([]Length, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return nil, errf(KindSyntax, EndOfString, "expected none or a dash list")
	}
	if len(tokens) == 1 && tokens[0].Type == IdentToken && strings.ToLower(tokens[0].Value) == "none" {
		return nil, nil
	}

	var out []Length
	rest := tokens
	for {
		rest = trimWhitespace(rest)
		if len(rest) == 0 {
			return nil, errf(KindSyntax, EndOfString, "expected a length")
		}
		l, err := ParseLength(rest[0], LengthOptions{AllowUserUnits: true})
		if err != nil {
			return nil, err
		}
		if l.Value < 0 {
			return nil, errf(KindSemantic, rest[0].Offset, "dasharray values must be non-negative")
		}
		out = append(out, l)
		rest = rest[1:]

		rest = trimWhitespace(rest)
		if len(rest) == 0 {
			break
		}
		if rest[0].Type == CommaToken {
			rest = rest[1:]
		}
	}
	return out, nil
}

// ParseAlpha parses a unitless [0,1] number or a percentage, clamping to
// range, for properties like fill-opacity/stroke-opacity/opacity/stop-opacity.
func ParseAlpha(tokens []Token) (float64, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) != 1 {
		off := EndOfString
		if len(tokens) > 0 {
			off = tokens[0].Offset
		}
		return 0, errf(KindSyntax, off, "expected a number or percentage")
	}
	switch tokens[0].Type {
	case NumberToken:
		return clamp01(tokens[0].NumValue), nil
	case PercentageToken:
		return clamp01(tokens[0].NumValue / 100), nil
	default:
		return 0, errf(KindSyntax, tokens[0].Offset, "expected a number or percentage")
	}
}

// ParseNumber parses a generic unitless <number> value (e.g. stroke-miterlimit).
func ParseNumber(tokens []Token) (float64, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) != 1 || tokens[0].Type != NumberToken {
		off := EndOfString
		if len(tokens) > 0 {
			off = tokens[0].Offset
		}
		return 0, errf(KindSyntax, off, "expected a number")
	}
	return tokens[0].NumValue, nil
}
