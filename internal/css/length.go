package css

import "math"

// LengthUnit is the closed set of CSS length units recognized by spec §3.
type LengthUnit int

const (
	UnitNone LengthUnit = iota
	UnitPercent
	UnitCm
	UnitMm
	UnitQ
	UnitIn
	UnitPc
	UnitPt
	UnitPx
	UnitEm
	UnitEx
	UnitCh
	UnitRem
	UnitVw
	UnitVh
	UnitVmin
	UnitVmax
)

var lengthUnitNames = map[string]LengthUnit{
	"cm": UnitCm, "mm": UnitMm, "q": UnitQ, "in": UnitIn, "pc": UnitPc,
	"pt": UnitPt, "px": UnitPx, "em": UnitEm, "ex": UnitEx, "ch": UnitCh,
	"rem": UnitRem, "vw": UnitVw, "vh": UnitVh, "vmin": UnitVmin, "vmax": UnitVmax,
}

func lengthUnitByName(name string) (LengthUnit, bool) {
	u, ok := lengthUnitNames[name]
	return u, ok
}

func (u LengthUnit) String() string {
	switch u {
	case UnitPercent:
		return "%"
	case UnitCm:
		return "cm"
	case UnitMm:
		return "mm"
	case UnitQ:
		return "Q"
	case UnitIn:
		return "in"
	case UnitPc:
		return "pc"
	case UnitPt:
		return "pt"
	case UnitPx:
		return "px"
	case UnitEm:
		return "em"
	case UnitEx:
		return "ex"
	case UnitCh:
		return "ch"
	case UnitRem:
		return "rem"
	case UnitVw:
		return "vw"
	case UnitVh:
		return "vh"
	case UnitVmin:
		return "vmin"
	case UnitVmax:
		return "vmax"
	default:
		return ""
	}
}

// Length is a numeric CSS length or percentage, per the data model in spec §3.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Viewbox supplies the width/height used to resolve percentages and
// viewport-relative units (vw/vh/vmin/vmax) to pixels.
type Viewbox struct {
	Width, Height float64
}

// FontMetrics supplies the font-relative context used to resolve em/ex/ch/rem.
type FontMetrics struct {
	FontSize     float64
	RootFontSize float64
	ExUnitInEm   float64
	ChUnitInEm   float64
}

// Extent selects which viewbox dimension backs a percentage or
// viewport-relative conversion.
type Extent int

const (
	ExtentX Extent = iota
	ExtentY
	ExtentMixed
)

const (
	cmToPixels    = 96.0 / 2.54
	inchesToPixel = 96.0
	pointsToPixel = 96.0 / 72.0
)

// ToPixels converts a Length to pixels following the ratios in
// https://www.w3.org/TR/css-values/#absolute-lengths and #relative-lengths.
func (l Length) ToPixels(vb Viewbox, fm FontMetrics, extent Extent) float64 {
	switch l.Unit {
	case UnitNone, UnitPx:
		return l.Value
	case UnitPercent:
		switch extent {
		case ExtentX:
			return l.Value * vb.Width / 100
		case ExtentY:
			return l.Value * vb.Height / 100
		default:
			return l.Value * diagonalExtent(vb) / 100
		}
	case UnitCm:
		return l.Value * cmToPixels
	case UnitMm:
		return l.Value * cmToPixels / 10
	case UnitQ:
		return l.Value * cmToPixels / 40
	case UnitIn:
		return l.Value * inchesToPixel
	case UnitPc:
		return l.Value * inchesToPixel / 6
	case UnitPt:
		return l.Value * pointsToPixel
	case UnitEm:
		return l.Value * fm.FontSize
	case UnitEx:
		return l.Value * fm.FontSize * fm.ExUnitInEm
	case UnitCh:
		return l.Value * fm.FontSize * fm.ChUnitInEm
	case UnitRem:
		return l.Value * fm.RootFontSize
	case UnitVw:
		return l.Value * vb.Width / 100
	case UnitVh:
		return l.Value * vb.Height / 100
	case UnitVmin:
		return l.Value * math.Min(vb.Width, vb.Height) / 100
	case UnitVmax:
		return l.Value * math.Max(vb.Width, vb.Height) / 100
	default:
		return l.Value
	}
}

// diagonalExtent implements the SVG2 normalized diagonal length:
// sqrt(w^2+h^2)/sqrt(2). https://svgwg.org/svg2-draft/coords.html#Units
func diagonalExtent(vb Viewbox) float64 {
	return math.Sqrt(vb.Width*vb.Width+vb.Height*vb.Height) * math.Sqrt2 / 2
}

// LengthOptions controls the length/percentage parser's leniency.
type LengthOptions struct {
	// AllowUserUnits permits a bare unitless number (not just zero).
	AllowUserUnits bool
}

// ParseLength parses a single component value as a <length> (spec §4.3).
// A unitless number is accepted only if opts.AllowUserUnits is set or the
// value is literal zero, since zero is always unitless.
func ParseLength(tok Token, opts LengthOptions) (Length, error) {
	switch tok.Type {
	case NumberToken:
		if tok.NumValue == 0 {
			return Length{}, nil
		}
		if !opts.AllowUserUnits {
			return Length{}, errf(KindSemantic, tok.Offset, "invalid unit")
		}
		return Length{Value: tok.NumValue, Unit: UnitNone}, nil
	case DimensionToken:
		if !tok.HasLength {
			if opts.AllowUserUnits {
				return Length{Value: tok.NumValue, Unit: UnitNone}, nil
			}
			return Length{}, errf(KindSemantic, tok.Offset, "invalid unit")
		}
		return Length{Value: tok.NumValue, Unit: tok.LengthUnit}, nil
	case PercentageToken:
		return Length{Value: tok.NumValue, Unit: UnitPercent}, nil
	default:
		return Length{}, errf(KindSyntax, tok.Offset, "expected a length or percentage")
	}
}

// ParseLengthPercentage is an alias kept for call sites that only ever see
// number/dimension/percentage tokens (never bare idents).
func ParseLengthPercentage(tok Token, opts LengthOptions) (Length, error) {
	return ParseLength(tok, opts)
}
