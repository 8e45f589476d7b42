package css

import (
	"strconv"
	"strings"
)

// RGBA is a straightforward 8-bit-per-channel color, per spec §3.
type RGBA struct {
	R, G, B, A uint8
}

// Color is either a concrete RGBA value or the currentcolor sentinel.
type Color struct {
	RGBA          RGBA
	IsCurrentColor bool
}

// ParseColor parses a <color> value: a named color, hex color, currentcolor,
// transparent, or an rgb()/rgba()/hsl()/hsla() function (spec §4.3).
func ParseColor(tokens []Token) (Color, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return Color{}, errf(KindSyntax, EndOfString, "expected a color")
	}

	if tokens[0].Type == FunctionToken {
		return parseColorFunction(tokens)
	}

	if len(tokens) != 1 {
		return Color{}, errf(KindSyntax, tokens[1].Offset, "unexpected token after color")
	}

	tok := tokens[0]
	switch tok.Type {
	case IdentToken:
		name := strings.ToLower(tok.Value)
		switch name {
		case "currentcolor":
			return Color{IsCurrentColor: true}, nil
		case "transparent":
			return Color{RGBA: RGBA{}}, nil
		}
		rgba, ok := namedColors[name]
		if !ok {
			return Color{}, errf(KindSemantic, tok.Offset, "unknown color %q", tok.Value)
		}
		return Color{RGBA: rgba}, nil
	case HashToken:
		return parseHexColor(tok)
	case DelimToken:
		if tok.Value == "#" {
			return Color{}, errf(KindSemantic, tok.Offset, "not a hex number")
		}
		return Color{}, errf(KindSemantic, tok.Offset, "expected an identifier or hex color")
	default:
		return Color{}, errf(KindSemantic, tok.Offset, "expected an identifier or hex color")
	}
}

func parseHexColor(tok Token) (Color, error) {
	v := tok.Value
	var digits string
	hasAlpha := false
	switch len(v) {
	case 3:
		digits = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 4:
		digits = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
		hasAlpha = true
		digits += string([]byte{v[3], v[3]})
	case 6:
		digits = v
	case 8:
		digits = v[:6]
		hasAlpha = true
		digits += v[6:]
	default:
		return Color{}, errf(KindSemantic, tok.Offset, "not a hex number")
	}

	bytes, err := hexDecode(digits)
	if err != nil {
		return Color{}, errf(KindSemantic, tok.Offset, "%v", err)
	}

	a := uint8(255)
	if hasAlpha {
		a = bytes[3]
	}
	return Color{RGBA: RGBA{R: bytes[0], G: bytes[1], B: bytes[2], A: a}}, nil
}

func hexDecode(s string) ([]byte, error) {
	out := make([]byte, len(s)/2)
	for i := range out {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(n)
	}
	return out, nil
}

func parseColorFunction(tokens []Token) (Color, error) {
	fn := strings.ToLower(tokens[0].Value)
	var arity int
	switch fn {
	case "rgb(", "hsl(":
		arity = 3
	case "rgba(", "hsla(":
		arity = 4
	default:
		return Color{}, errf(KindSemantic, tokens[0].Offset, "not implemented: %s", tokens[0].Value)
	}

	args := tokens[1:]
	args = trimWhitespace(args)

	var channels []byte
	var alpha *float64

	for len(args) > 0 && args[0].Type != RightParenToken {
		if len(channels) == 3 {
			a, rest, err := parseAlphaArg(args)
			if err != nil {
				return Color{}, err
			}
			alpha = &a
			args = trimWhitespace(rest)
			break
		}

		switch args[0].Type {
		case NumberToken:
			channels = append(channels, clampByte(args[0].NumValue))
			args = args[1:]
		case PercentageToken:
			channels = append(channels, clampByte(args[0].NumValue*255/100))
			args = args[1:]
		default:
			return Color{}, errf(KindSyntax, args[0].Offset, "expected a number or percentage")
		}

		args = trimWhitespace(args)
		if len(args) == 0 {
			return Color{}, errf(KindSyntax, EndOfString, "expected ',' or ')'")
		}
		if args[0].Type == CommaToken {
			args = trimWhitespace(args[1:])
		}
	}

	if len(args) == 0 || args[0].Type != RightParenToken {
		return Color{}, errf(KindSyntax, EndOfString, "expected ')'")
	}
	if len(trimWhitespace(args[1:])) != 0 {
		return Color{}, errf(KindSyntax, args[1].Offset, "garbage after function call")
	}

	if len(channels) != 3 {
		return Color{}, errf(KindSemantic, tokens[0].Offset, "%s requires %d arguments", fn, arity)
	}

	a := uint8(255)
	if alpha != nil {
		a = clampByte(*alpha * 255)
	} else if arity == 4 {
		return Color{}, errf(KindSemantic, tokens[0].Offset, "%s requires an alpha argument", fn)
	}

	var r, g, b byte
	if fn == "hsl(" || fn == "hsla(" {
		r, g, b = hslToRGB(channels[0], channels[1], channels[2])
	} else {
		r, g, b = channels[0], channels[1], channels[2]
	}
	return Color{RGBA: RGBA{R: r, G: g, B: b, A: a}}, nil
}

func parseAlphaArg(tokens []Token) (float64, []Token, error) {
	switch tokens[0].Type {
	case NumberToken:
		return clamp01(tokens[0].NumValue), tokens[1:], nil
	case PercentageToken:
		return clamp01(tokens[0].NumValue / 100), tokens[1:], nil
	default:
		return 0, nil, errf(KindSyntax, tokens[0].Offset, "expected a number or percentage")
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hueToRGB(m1, m2, h float64) byte {
	switch {
	case h < 0:
		h += 1
	case h > 1:
		h -= 1
	}
	switch {
	case h*6 < 1:
		return clampByte((m1 + (m2-m1)*h*6) * 255)
	case h*2 < 1:
		return clampByte(m2 * 255)
	case h*3 < 2:
		return clampByte((m1 + (m2-m1)*(2.0/3-h)*6) * 255)
	}
	return clampByte(m1 * 255)
}

func hslToRGB(h, s, l byte) (r, g, b byte) {
	hf, sf, lf := float64(h)/255, float64(s)/255, float64(l)/255

	var m2 float64
	if lf <= 0.5 {
		m2 = lf * (sf + 1)
	} else {
		m2 = lf + sf - lf*sf
	}
	m1 := lf*2 - m2
	return hueToRGB(m1, m2, hf+1.0/3), hueToRGB(m1, m2, hf), hueToRGB(m1, m2, hf-1.0/3)
}

func trimWhitespace(tokens []Token) []Token {
	start := 0
	for start < len(tokens) && tokens[start].Type == WhitespaceToken {
		start++
	}
	end := len(tokens)
	for end > start && tokens[end-1].Type == WhitespaceToken {
		end--
	}
	return tokens[start:end]
}
