package svg

import (
	"strings"

	"github.com/mistlace/svgdoc/internal/css"
)

// PropertyState is the explicit CSS-wide-keyword state a property slot can
// carry in addition to a concrete value (spec §4.5).
type PropertyState int

const (
	// StateUnwritten is the zero value: no declaration has ever touched
	// this slot. It resolves exactly like StateInherit (every one of the
	// ten supported properties is defined as inherited, per spec §4.5).
	StateUnwritten PropertyState = iota
	StateValue
	StateInitial
	StateInherit
	StateUnset
)

// Slot is one cascaded property slot: the winning value (when State ==
// StateValue), the rank of the write that produced the current state, and
// the explicit state itself.
type Slot[T any] struct {
	Value   T
	State   PropertyState
	Rank    css.CascadeRank
	written bool
}

// trySet applies the cascade's "higher rank wins, equal rank later wins"
// rule (spec §4.5/§4.7) to a single slot.
func trySet[T any](s *Slot[T], value T, state PropertyState, rank css.CascadeRank) {
	if s.written && !rank.Wins(s.Rank) {
		return
	}
	s.Value = value
	s.State = state
	s.Rank = rank
	s.written = true
}

// UnparsedProperty is a declaration whose name isn't one of the ten
// supported CSS properties, kept
// around (raw component values + specificity) per spec §3/§4.5 for callers
// that want to re-parse it with element-specific context.
type UnparsedProperty struct {
	Values []css.ComponentValue
	Rank   css.CascadeRank
}

// PropertyRegistry is the fixed set of cascaded property slots attached to
// every element entity (spec §3/§4.5). The ten slots are exactly the
// "Supported property names" from spec §6; a declaration with any other
// name lands in Unparsed instead.
type PropertyRegistry struct {
	Color             Slot[css.Color]
	Fill              Slot[css.Paint]
	Stroke            Slot[css.Paint]
	StrokeOpacity     Slot[float64]
	StrokeWidth       Slot[css.Length]
	StrokeLinecap     Slot[css.LineCap]
	StrokeLinejoin    Slot[css.LineJoin]
	StrokeMiterlimit  Slot[float64]
	StrokeDasharray   Slot[[]css.Length]
	StrokeDashoffset  Slot[css.Length]

	Unparsed map[string]UnparsedProperty
}

// propertyNames is the canonical, case-sensitive list from spec §6.
var propertyNames = map[string]bool{
	"color": true, "fill": true, "stroke": true,
	"stroke-opacity": true, "stroke-width": true, "stroke-linecap": true,
	"stroke-linejoin": true, "stroke-miterlimit": true,
	"stroke-dasharray": true, "stroke-dashoffset": true,
}

// IsSupportedProperty reports whether name is one of the ten CSS
// properties this engine cascades (as opposed to a presentation-only
// attribute handled by the element type, or a genuinely unknown name).
func IsSupportedProperty(name string) bool { return propertyNames[name] }

// initialColor, etc. are the property table's defined initial values (spec
// §4.5).
var (
	initialColor  = css.Color{RGBA: css.RGBA{A: 255}} // black
	initialFill   = css.Paint{Kind: css.PaintColor, Color: css.Color{RGBA: css.RGBA{A: 255}}}
	initialStroke = css.Paint{Kind: css.PaintNone}
)

const (
	initialStrokeOpacity    = 1.0
	initialStrokeMiterlimit = 4.0
)

var initialStrokeWidth = css.Length{Value: 1, Unit: css.UnitPx}
var initialStrokeDashoffset = css.Length{}

// ParseDeclaration routes one declaration to its per-property parser (spec
// §4.3) and writes the result through the registry at rank. Declarations
// whose name is a supported property but whose value fails to parse produce
// a warning and are otherwise ignored (spec §7: an invalid value never drops
// the surrounding declaration list). Declarations with any other name are
// stored in Unparsed without a warning; the name is not checked against the
// presentation-attribute names.
func (reg *PropertyRegistry) ParseDeclaration(decl css.Declaration, rank css.CascadeRank) []css.Warning {
	if !IsSupportedProperty(decl.Name) {
		if reg.Unparsed == nil {
			reg.Unparsed = map[string]UnparsedProperty{}
		}
		reg.Unparsed[decl.Name] = UnparsedProperty{Values: decl.Values, Rank: rank}
		return nil
	}

	tokens := css.Tokens(decl.Values)
	if state, ok := cssWideKeyword(tokens); ok {
		reg.setWideKeyword(decl.Name, state, rank)
		return nil
	}

	if err := reg.parseAndSet(decl.Name, tokens, rank, css.LengthOptions{}); err != nil {
		return []css.Warning{{Reason: err.Error(), Offset: decl.Offset}}
	}
	return nil
}

// ParsePresentationAttribute implements spec §4.5's presentation-attribute
// parse path: rank zero, unitless numbers allowed ("allow user units").
// ok is false when name isn't one of the ten supported properties, in
// which case the caller (the element type) should try its own attribute
// handler.
func (reg *PropertyRegistry) ParsePresentationAttribute(name string, rawValue string) (ok bool, err error) {
	if !IsSupportedProperty(name) {
		return false, nil
	}
	tok := css.NewTokenizerString(rawValue)
	var tokens []css.Token
	for {
		t := tok.Next()
		if t.IsEOF() {
			break
		}
		tokens = append(tokens, t)
	}
	tokens = trimCSSWhitespace(tokens)

	rank := css.CascadeRank{Band: css.RankPresentationAttribute}
	if state, isKW := cssWideKeyword(tokens); isKW {
		reg.setWideKeyword(name, state, rank)
		return true, nil
	}
	return true, reg.parseAndSet(name, tokens, rank, css.LengthOptions{AllowUserUnits: true})
}

func trimCSSWhitespace(tokens []css.Token) []css.Token {
	start := 0
	for start < len(tokens) && tokens[start].Type == css.WhitespaceToken {
		start++
	}
	end := len(tokens)
	for end > start && tokens[end-1].Type == css.WhitespaceToken {
		end--
	}
	return tokens[start:end]
}

func cssWideKeyword(tokens []css.Token) (PropertyState, bool) {
	tokens = trimCSSWhitespace(tokens)
	if len(tokens) != 1 || tokens[0].Type != css.IdentToken {
		return 0, false
	}
	switch strings.ToLower(tokens[0].Value) {
	case "initial":
		return StateInitial, true
	case "inherit":
		return StateInherit, true
	case "unset":
		return StateUnset, true
	default:
		return 0, false
	}
}

func (reg *PropertyRegistry) setWideKeyword(name string, state PropertyState, rank css.CascadeRank) {
	switch name {
	case "color":
		trySet(&reg.Color, css.Color{}, state, rank)
	case "fill":
		trySet(&reg.Fill, css.Paint{}, state, rank)
	case "stroke":
		trySet(&reg.Stroke, css.Paint{}, state, rank)
	case "stroke-opacity":
		trySet(&reg.StrokeOpacity, 0, state, rank)
	case "stroke-width":
		trySet(&reg.StrokeWidth, css.Length{}, state, rank)
	case "stroke-linecap":
		trySet(&reg.StrokeLinecap, 0, state, rank)
	case "stroke-linejoin":
		trySet(&reg.StrokeLinejoin, 0, state, rank)
	case "stroke-miterlimit":
		trySet(&reg.StrokeMiterlimit, 0, state, rank)
	case "stroke-dasharray":
		trySet(&reg.StrokeDasharray, nil, state, rank)
	case "stroke-dashoffset":
		trySet(&reg.StrokeDashoffset, css.Length{}, state, rank)
	}
}

func (reg *PropertyRegistry) parseAndSet(name string, tokens []css.Token, rank css.CascadeRank, lenOpts css.LengthOptions) error {
	switch name {
	case "color":
		v, err := css.ParseColor(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.Color, v, StateValue, rank)
	case "fill":
		v, err := css.ParsePaint(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.Fill, v, StateValue, rank)
	case "stroke":
		v, err := css.ParsePaint(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.Stroke, v, StateValue, rank)
	case "stroke-opacity":
		v, err := css.ParseAlpha(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeOpacity, v, StateValue, rank)
	case "stroke-width":
		if len(tokens) != 1 {
			return errExpected("a single length or percentage")
		}
		v, err := css.ParseLengthPercentage(tokens[0], lenOpts)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeWidth, v, StateValue, rank)
	case "stroke-linecap":
		v, err := css.ParseLineCap(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeLinecap, v, StateValue, rank)
	case "stroke-linejoin":
		v, err := css.ParseLineJoin(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeLinejoin, v, StateValue, rank)
	case "stroke-miterlimit":
		v, err := css.ParseNumber(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeMiterlimit, v, StateValue, rank)
	case "stroke-dasharray":
		v, err := css.ParseDasharray(tokens)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeDasharray, v, StateValue, rank)
	case "stroke-dashoffset":
		if len(tokens) != 1 {
			return errExpected("a single length or percentage")
		}
		v, err := css.ParseLengthPercentage(tokens[0], lenOpts)
		if err != nil {
			return err
		}
		trySet(&reg.StrokeDashoffset, v, StateValue, rank)
	}
	return nil
}

func errExpected(what string) error {
	return &ValueError{Reason: "expected " + what}
}

// ValueError is a simple property-value error not tied to a source offset
// (the registry layer works on already-tokenized values with offsets
// already reported by the tokenizer/declaration parser).
type ValueError struct{ Reason string }

func (e *ValueError) Error() string { return e.Reason }
