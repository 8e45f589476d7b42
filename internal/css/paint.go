package css

import "strings"

// PaintKind is the tagged-union discriminant for Paint.
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintContextFill
	PaintContextStroke
	PaintReference
)

// Paint is a <paint> value: none, a color, context-fill/context-stroke, or a
// url() reference to a paint server with an optional fallback (spec §4.3).
type Paint struct {
	Kind PaintKind

	Color Color // valid when Kind == PaintColor

	URL      string // valid when Kind == PaintReference
	Fallback *Paint // optional fallback, never itself PaintReference
}

// ParsePaint parses fill/stroke values: none | context-fill | context-stroke
// | <color> | url(<iri>) [none | <color>]?
func ParsePaint(tokens []Token) (Paint, error) {
	tokens = trimWhitespace(tokens)
	if len(tokens) == 0 {
		return Paint{}, errf(KindSyntax, EndOfString, "expected a paint value")
	}

	if tokens[0].Type == URLToken {
		ref := Paint{Kind: PaintReference, URL: tokens[0].Value}
		rest := trimWhitespace(tokens[1:])
		if len(rest) == 0 {
			return ref, nil
		}
		fallback, err := parsePaintFallback(rest)
		if err != nil {
			return Paint{}, err
		}
		ref.Fallback = &fallback
		return ref, nil
	}

	if tokens[0].Type == IdentToken {
		switch strings.ToLower(tokens[0].Value) {
		case "none":
			if len(trimWhitespace(tokens[1:])) != 0 {
				return Paint{}, errf(KindSyntax, tokens[1].Offset, "unexpected token after none")
			}
			return Paint{Kind: PaintNone}, nil
		case "context-fill":
			return Paint{Kind: PaintContextFill}, nil
		case "context-stroke":
			return Paint{Kind: PaintContextStroke}, nil
		}
	}

	c, err := ParseColor(tokens)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Kind: PaintColor, Color: c}, nil
}

func parsePaintFallback(tokens []Token) (Paint, error) {
	if len(tokens) == 1 && tokens[0].Type == IdentToken && strings.ToLower(tokens[0].Value) == "none" {
		return Paint{Kind: PaintNone}, nil
	}
	c, err := ParseColor(tokens)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Kind: PaintColor, Color: c}, nil
}
