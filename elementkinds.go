package svg

import "github.com/mistlace/svgdoc/internal/css"

// TypeTag is the element type dispatched on by XML ingest's tag->factory
// table (spec §4.8) and read back by the renderer and DOM facade.
type TypeTag int

const (
	TypeUnknown TypeTag = iota
	TypeSVG
	TypeG
	TypeDefs
	TypeSymbol
	TypeUse
	TypeSwitch
	TypeMarker
	TypeLinearGradient
	TypeRadialGradient
	TypePattern
	TypeSolidColor
	TypePath
	TypeRect
	TypeCircle
	TypeEllipse
	TypeLine
	TypePolyline
	TypePolygon
	TypeText
	TypeTSpan
	TypeImage
	TypeForeignObject
	TypeStyle
	TypeStop
)

var typeTagNames = map[TypeTag]string{
	TypeUnknown:        "unknown",
	TypeSVG:            "svg",
	TypeG:              "g",
	TypeDefs:           "defs",
	TypeSymbol:         "symbol",
	TypeUse:            "use",
	TypeSwitch:         "switch",
	TypeMarker:         "marker",
	TypeLinearGradient: "linearGradient",
	TypeRadialGradient: "radialGradient",
	TypePattern:        "pattern",
	TypeSolidColor:     "solidColor",
	TypePath:           "path",
	TypeRect:           "rect",
	TypeCircle:         "circle",
	TypeEllipse:        "ellipse",
	TypeLine:           "line",
	TypePolyline:       "polyline",
	TypePolygon:        "polygon",
	TypeText:           "text",
	TypeTSpan:          "tspan",
	TypeImage:          "image",
	TypeForeignObject:  "foreignObject",
	TypeStyle:          "style",
	TypeStop:           "stop",
}

var typeTagByName map[string]TypeTag

func init() {
	typeTagByName = make(map[string]TypeTag, len(typeTagNames))
	for tag, name := range typeTagNames {
		typeTagByName[name] = tag
	}
}

// String returns the element's tag name, e.g. "circle".
func (t TypeTag) String() string {
	if name, ok := typeTagNames[t]; ok {
		return name
	}
	return "unknown"
}

// TypeTagByName resolves a tag name (the local name, after namespace
// stripping) to a TypeTag, returning (TypeUnknown, false) for anything not
// in the factory table.
func TypeTagByName(name string) (TypeTag, bool) {
	t, ok := typeTagByName[name]
	return t, ok
}

// NewElementData returns the zero-value typed component for tag, so ingest
// can attach it immediately at element-creation time and typed attribute
// handlers can fill in its fields as they're encountered (spec §4.8).
func NewElementData(tag TypeTag) ElementData {
	switch tag {
	case TypeSVG:
		return &RootData{}
	case TypeG:
		return &GroupData{}
	case TypeDefs:
		return &DefsData{}
	case TypeSymbol:
		return &SymbolData{}
	case TypeSwitch:
		return &SwitchData{}
	case TypeUse:
		return &UseData{}
	case TypeMarker:
		return &MarkerData{}
	case TypeLinearGradient:
		return &LinearGradientData{GradientUnits: "objectBoundingBox", SpreadMethod: "pad"}
	case TypeRadialGradient:
		return &RadialGradientData{GradientUnits: "objectBoundingBox", SpreadMethod: "pad"}
	case TypePattern:
		return &PatternData{PatternUnits: "objectBoundingBox"}
	case TypeSolidColor:
		return &SolidColorData{Opacity: 1}
	case TypePath:
		return &PathShapeData{}
	case TypeRect:
		return &RectData{}
	case TypeCircle:
		return &CircleData{}
	case TypeEllipse:
		return &EllipseData{}
	case TypeLine:
		return &LineData{}
	case TypePolyline, TypePolygon:
		return &PolyData{}
	case TypeText, TypeTSpan:
		return &TextData{}
	case TypeImage:
		return &ImageData{}
	case TypeForeignObject:
		return &ForeignObjectData{}
	case TypeStyle:
		return &StyleData{}
	case TypeStop:
		return &StopData{StopOpacity: 1}
	default:
		return nil
	}
}

// ElementData is the per-kind typed component attached to an entity (spec
// §4.4's "attach(entity, component)"), one concrete struct per TypeTag that
// carries geometry the property registry has no slot for (e.g. a circle's
// cx/cy/r, which are presentation attributes but not CSS properties per
// spec §6).
type ElementData interface {
	isElementData()
}

// RootData is attached to the document's root <svg> entity.
type RootData struct {
	X, Y          css.Length
	Width, Height css.Length
	ViewBox       *ViewBox
}

func (*RootData) isElementData() {}

// ViewBox is the parsed `viewBox="min-x min-y width height"` attribute.
type ViewBox struct {
	MinX, MinY, Width, Height float64
}

func (*GroupData) isElementData()   {}
func (*DefsData) isElementData()    {}
func (*SymbolData) isElementData()  {}
func (*SwitchData) isElementData()  {}

// GroupData, DefsData, SymbolData, SwitchData carry only an optional
// viewBox (symbol) or are otherwise pure containers; kept as distinct types
// so the renderer/DOM facade can type-switch on purpose rather than tag.
type GroupData struct{}
type DefsData struct{}
type SymbolData struct {
	ViewBox *ViewBox
	X, Y, Width, Height css.Length
}
type SwitchData struct{}

// UseData is a `<use>` element's href and geometry override.
type UseData struct {
	Href          string
	X, Y          css.Length
	Width, Height css.Length
	HasWidth      bool
	HasHeight     bool
}

func (*UseData) isElementData() {}

// MarkerData is a `<marker>` element's viewport and orientation attributes.
type MarkerData struct {
	RefX, RefY      css.Length
	MarkerWidth     css.Length
	MarkerHeight    css.Length
	MarkerUnits     string // "strokeWidth" (default) | "userSpaceOnUse"
	Orient          string // angle, "auto", or "auto-start-reverse"
	ViewBox         *ViewBox
}

func (*MarkerData) isElementData() {}

// PaintStop is one `<stop>` child of a gradient.
type PaintStop struct {
	Offset       float64 // 0..1
	Color        css.Color
	StopOpacity  float64
}

// LinearGradientData is a `<linearGradient>` element.
type LinearGradientData struct {
	X1, Y1, X2, Y2 css.Length
	HasX1, HasY1, HasX2, HasY2 bool
	GradientUnits  string // "objectBoundingBox" (default) | "userSpaceOnUse"
	SpreadMethod   string // "pad" (default) | "reflect" | "repeat"
	Href           string
	Stops          []PaintStop
}

func (*LinearGradientData) isElementData() {}

// RadialGradientData is a `<radialGradient>` element.
type RadialGradientData struct {
	Cx, Cy, R, Fx, Fy css.Length
	HasCx, HasCy, HasR, HasFx, HasFy bool
	GradientUnits     string
	SpreadMethod      string
	Href              string
	Stops             []PaintStop
}

func (*RadialGradientData) isElementData() {}

// PatternData is a `<pattern>` element.
type PatternData struct {
	X, Y, Width, Height css.Length
	PatternUnits        string // "objectBoundingBox" (default) | "userSpaceOnUse"
	PatternContentUnits string
	ViewBox             *ViewBox
	Href                string
}

func (*PatternData) isElementData() {}

// SolidColorData is an `<solidColor>` paint-server element.
type SolidColorData struct {
	Color   css.Color
	Opacity float64
}

func (*SolidColorData) isElementData() {}

// PathShapeData is a `<path>` element's geometry.
type PathShapeData struct {
	D          PathData
	PathLength float64
	HasPathLength bool
}

func (*PathShapeData) isElementData() {}

// RectData is a `<rect>` element.
type RectData struct {
	X, Y, Width, Height css.Length
	Rx, Ry              *css.Length
	PathLength          float64
	HasPathLength       bool
}

func (*RectData) isElementData() {}

// CircleData is a `<circle>` element.
type CircleData struct {
	Cx, Cy, R     css.Length
	PathLength    float64
	HasPathLength bool
}

func (*CircleData) isElementData() {}

// EllipseData is an `<ellipse>` element.
type EllipseData struct {
	Cx, Cy, Rx, Ry css.Length
	PathLength     float64
	HasPathLength  bool
}

func (*EllipseData) isElementData() {}

// LineData is a `<line>` element.
type LineData struct {
	X1, Y1, X2, Y2 css.Length
}

func (*LineData) isElementData() {}

// PolyData is a `<polyline>`/`<polygon>` element's point list.
type PolyData struct {
	Points []Point
}

func (*PolyData) isElementData() {}

// TextData is a `<text>`/`<tspan>` element.
type TextData struct {
	X, Y           []css.Length
	Dx, Dy         []css.Length
	Rotate         []float64
	CharacterData  string
}

func (*TextData) isElementData() {}

// ImageData is an `<image>` element.
type ImageData struct {
	X, Y, Width, Height css.Length
	Href                string
	PreserveAspectRatio string
}

func (*ImageData) isElementData() {}

// ForeignObjectData is a `<foreignObject>` element; its children are opaque
// to this engine (spec Non-goals exclude foreign-namespace content
// rendering), so only the viewport rectangle is retained.
type ForeignObjectData struct {
	X, Y, Width, Height css.Length
}

func (*ForeignObjectData) isElementData() {}

// StopData is a `<stop>` gradient-stop element before it is folded into
// its parent gradient's Stops list (spec §4.8).
type StopData struct {
	Offset      float64
	Color       css.Color
	StopOpacity float64
	HasColor    bool
	HasOpacity  bool
}

func (*StopData) isElementData() {}

// StyleData is a `<style>` element: its character data parsed as a
// stylesheet (spec §4.8).
type StyleData struct {
	Sheet    css.Stylesheet
	Warnings []css.Warning
}

func (*StyleData) isElementData() {}
