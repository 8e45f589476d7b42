package svg

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/mistlace/svgdoc/internal/css"
)

const defaultCanvasSize = 1024

// defaultFontMetrics stands in for the font-relative length context (spec
// §3's FontMetrics); font-size isn't one of the ten cascaded properties
// (spec §6), so every element renders against the same flat metrics.
var defaultFontMetrics = css.FontMetrics{FontSize: 16, RootFontSize: 16, ExUnitInEm: 0.5, ChUnitInEm: 0.5}

// NewContext creates a render context sized from the document's root
// viewport.
func NewContext(doc *Document) *gg.Context {
	w, h := rootDimensions(doc)
	return gg.NewContext(int(w), int(h))
}

// NewScaledContext creates a render context for doc scaled by factor.
func NewScaledContext(doc *Document, scale float64) *gg.Context {
	w, h := rootDimensions(doc)
	ctx := gg.NewContext(int(w*scale), int(h*scale))
	ctx.Scale(scale, scale)
	return ctx
}

func rootDimensions(doc *Document) (float64, float64) {
	w, h := float64(defaultCanvasSize), float64(defaultCanvasSize)
	root, ok := doc.Root().Kind().(*RootData)
	if !ok {
		return w, h
	}
	vb := css.Viewbox{Width: w, Height: h}
	if root.Width.Value != 0 {
		w = root.Width.ToPixels(vb, defaultFontMetrics, css.ExtentX)
	}
	if root.Height.Value != 0 {
		h = root.Height.ToPixels(vb, defaultFontMetrics, css.ExtentY)
	}
	return w, h
}

// Render paints a Document, already styled via ApplyDocument, onto ctx in
// document order (SVG's painter's-algorithm stacking model).
func Render(ctx *gg.Context, doc *Document) error {
	r := &renderer{
		elements: map[string]Element{},
		fonts:    defaultFonts(),
	}
	collectIDs(doc.Root(), r.elements)

	r.push(float64(ctx.Width()), float64(ctx.Height()))
	return r.renderChildren(ctx, doc.Root())
}

func collectIDs(e Element, out map[string]Element) {
	if id := e.Id(); id != "" {
		out[id] = e
	}
	for _, c := range e.Children() {
		collectIDs(c, out)
	}
}

type viewport struct{ width, height float64 }

type renderer struct {
	elements map[string]Element
	fonts    map[string]*fontFamily
	stack    []viewport
}

func (r *renderer) push(width, height float64) { r.stack = append(r.stack, viewport{width, height}) }
func (r *renderer) pop()                       { r.stack = r.stack[:len(r.stack)-1] }
func (r *renderer) width() float64             { return r.stack[len(r.stack)-1].width }
func (r *renderer) height() float64            { return r.stack[len(r.stack)-1].height }

func (r *renderer) diag() float64 {
	w, h := r.width(), r.height()
	return math.Sqrt(w*w+h*h) / math.Sqrt2
}

func (r *renderer) viewbox() css.Viewbox { return css.Viewbox{Width: r.width(), Height: r.height()} }

func (r *renderer) lengthX(l css.Length) float64 {
	return l.ToPixels(r.viewbox(), defaultFontMetrics, css.ExtentX)
}
func (r *renderer) lengthY(l css.Length) float64 {
	return l.ToPixels(r.viewbox(), defaultFontMetrics, css.ExtentY)
}
func (r *renderer) lengthMixed(l css.Length) float64 {
	return l.ToPixels(r.viewbox(), defaultFontMetrics, css.ExtentMixed)
}

// resolveColor resolves a currentcolor sentinel against cs.Color.
func resolveColor(cs ComputedStyle, c css.Color) color.NRGBA {
	if c.IsCurrentColor {
		c = cs.Color
	}
	return color.NRGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: c.RGBA.A}
}

func (r *renderer) computePaint(cs ComputedStyle, p css.Paint, opacity float64) (gg.Pattern, error) {
	switch p.Kind {
	case css.PaintNone:
		return gg.NewSolidPattern(color.Transparent), nil
	case css.PaintContextFill, css.PaintContextStroke:
		return nil, errors.New("NYI: context-fill/context-stroke")
	case css.PaintReference:
		if len(p.URL) > 1 && p.URL[0] == '#' {
			if e, ok := r.elements[p.URL[1:]]; ok {
				if pat, err := r.computePaintServer(e, opacity); err == nil {
					return pat, nil
				}
			}
		}
		if p.Fallback != nil {
			return r.computePaint(cs, *p.Fallback, opacity)
		}
		return gg.NewSolidPattern(color.Transparent), nil
	default: // css.PaintColor
		c := resolveColor(cs, p.Color)
		c.A = byte(float64(c.A) * opacity)
		return gg.NewSolidPattern(c), nil
	}
}

// computePaintServer resolves a `url(#id)` reference to the paint server it
// names: a gradient, a pattern (unsupported), or a solid-color element.
func (r *renderer) computePaintServer(e Element, opacity float64) (gg.Pattern, error) {
	switch d := e.Kind().(type) {
	case *LinearGradientData:
		return r.computeLinearGradient(d, opacity)
	case *RadialGradientData:
		return nil, errors.New("NYI: radial gradients")
	case *PatternData:
		return nil, errors.New("NYI: pattern paint servers")
	case *SolidColorData:
		c := color.NRGBA{
			R: d.Color.RGBA.R, G: d.Color.RGBA.G, B: d.Color.RGBA.B,
			A: byte(float64(d.Color.RGBA.A) * d.Opacity * opacity),
		}
		return gg.NewSolidPattern(c), nil
	}
	return nil, errors.New("not a paint server element")
}

func (r *renderer) computeLinearGradient(d *LinearGradientData, opacity float64) (gg.Pattern, error) {
	if len(d.Stops) == 0 {
		return nil, errors.New("gradient has no stops")
	}

	x1, y1 := r.lengthX(d.X1), r.lengthY(d.Y1)
	x2, y2 := r.width(), r.lengthY(d.Y1)
	if d.HasX2 || d.HasY2 {
		x2, y2 = r.lengthX(d.X2), r.lengthY(d.Y2)
	}

	gradient := gg.NewLinearGradient(x1, y1, x2, y2)
	for _, s := range d.Stops {
		c := color.NRGBA{
			R: s.Color.RGBA.R, G: s.Color.RGBA.G, B: s.Color.RGBA.B,
			A: byte(s.StopOpacity * opacity * 255),
		}
		gradient.AddColorStop(s.Offset, c)
	}
	return gradient, nil
}

func (r *renderer) setPaints(ctx *gg.Context, cs ComputedStyle) error {
	fill, err := r.computePaint(cs, cs.Fill, 1.0)
	if err != nil {
		return err
	}
	stroke, err := r.computePaint(cs, cs.Stroke, cs.StrokeOpacity)
	if err != nil {
		return err
	}

	switch cs.StrokeLinecap {
	case css.CapButt:
		ctx.SetLineCap(gg.LineCapButt)
	case css.CapRound:
		ctx.SetLineCap(gg.LineCapRound)
	case css.CapSquare:
		ctx.SetLineCap(gg.LineCapSquare)
	}

	ctx.SetLineWidth(r.lengthMixed(cs.StrokeWidth))
	if len(cs.StrokeDasharray) > 0 {
		dashes := make([]float64, len(cs.StrokeDasharray))
		for i, l := range cs.StrokeDasharray {
			dashes[i] = r.lengthMixed(l)
		}
		ctx.SetDash(dashes...)
		ctx.SetDashOffset(r.lengthMixed(cs.StrokeDashoffset))
	} else {
		ctx.SetDash()
	}

	ctx.SetFillStyle(fill)
	ctx.SetStrokeStyle(stroke)
	return nil
}

func (r *renderer) renderChildren(ctx *gg.Context, parent Element) error {
	for child, ok := parent.FirstChildElement(); ok; child, ok = child.NextSiblingElement() {
		if err := r.renderElement(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderElement(ctx *gg.Context, e Element) error {
	switch e.Type() {
	case TypeG, TypeSVG:
		return r.renderGroup(ctx, e)
	case TypeUse:
		return r.renderUse(ctx, e)
	case TypeSwitch:
		return r.renderSwitch(ctx, e)
	case TypePath:
		return r.renderPath(ctx, e)
	case TypeRect:
		return r.renderRect(ctx, e)
	case TypeCircle:
		return r.renderCircle(ctx, e)
	case TypeEllipse:
		return r.renderEllipse(ctx, e)
	case TypeLine:
		return r.renderLine(ctx, e)
	case TypePolyline, TypePolygon:
		return r.renderPoly(ctx, e)
	case TypeText, TypeTSpan:
		return r.renderText(ctx, e)
	case TypeImage:
		return r.renderImage(ctx, e)
	case TypeForeignObject:
		return r.renderForeignObject(ctx, e)
	case TypeDefs, TypeMarker, TypeLinearGradient, TypeRadialGradient, TypePattern, TypeSolidColor, TypeStyle, TypeStop, TypeSymbol:
		// Never directly painted: defs/markers/paint-servers/symbols are
		// only rendered through a referencing element.
		return nil
	default:
		return nil
	}
}

func (r *renderer) renderGroup(ctx *gg.Context, e Element) error {
	r.push(r.width(), r.height())
	defer r.pop()
	return r.renderChildren(ctx, e)
}

func (r *renderer) renderUse(ctx *gg.Context, e Element) error {
	return errors.New("NYI: use")
}

func (r *renderer) renderSwitch(ctx *gg.Context, e Element) error {
	return errors.New("NYI: switch")
}

func (r *renderer) renderPath(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*PathShapeData)
	if !ok {
		return fmt.Errorf("path element missing geometry")
	}

	ctx.Push()
	defer ctx.Pop()

	r.push(r.width(), r.height())
	defer r.pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	p, _ := ctx.GetCurrentPoint()
	x, y := p.X, p.Y

	active, subpath := false, false
	ctx.ClearPath()
	for i, c := range d.D.Commands {
		switch c := c.(type) {
		case *MoveTo:
			if active {
				ctx.NewSubPath()
				subpath = true
			}
			active = true

			if !c.IsAbsolute {
				x, y = x+c.Points[0].X, y+c.Points[0].Y
			} else {
				x, y = c.Points[0].X, c.Points[0].Y
			}
			ctx.MoveTo(x, y)

			for _, pt := range c.Points[1:] {
				if !c.IsAbsolute {
					x, y = x+pt.X, y+pt.Y
				} else {
					x, y = pt.X, pt.Y
				}
				ctx.LineTo(x, y)
			}
		case *ClosePath:
			ctx.ClosePath()
			if subpath {
				ctx.ClipPreserve()
			}
			active = false
		case *LineTo:
			for _, pt := range c.Points {
				if !c.IsAbsolute {
					if !math.IsNaN(pt.X) {
						x += pt.X
					}
					if !math.IsNaN(pt.Y) {
						y += pt.Y
					}
				} else {
					if !math.IsNaN(pt.X) {
						x = pt.X
					}
					if !math.IsNaN(pt.Y) {
						y = pt.Y
					}
				}
				ctx.LineTo(x, y)
			}
		case *CubicBezier:
			// If the current point is (curx, cury) and the final control
			// point of the previous segment is (oldx2, oldy2), the
			// reflected first control point of a smooth segment is
			// (2*curx - oldx2, 2*cury - oldy2).
			x1, y1, x2, y2 := 0.0, 0.0, 0.0, 0.0
			for _, pt := range c.Coordinates {
				if c.IsSmooth {
					hasPrevious := false
					if i > 0 {
						_, hasPrevious = d.D.Commands[i-1].(*CubicBezier)
					}
					if !hasPrevious {
						x1, y1 = x, y
					} else {
						x1, y1 = 2*x-x2, 2*y-y2
					}
				}

				if !c.IsAbsolute {
					if !c.IsSmooth {
						x1, y1 = x+pt.X1, y+pt.Y1
					}
					x2, y2 = x+pt.X2, y+pt.Y2
					x, y = x+pt.X, y+pt.Y
				} else {
					if !c.IsSmooth {
						x1, y1 = pt.X1, pt.Y1
					}
					x2, y2 = pt.X2, pt.Y2
					x, y = pt.X, pt.Y
				}
				ctx.CubicTo(x1, y1, x2, y2, x, y)
			}
		case *QuadraticBezier:
			return errors.New("NYI: quadratic bezier")
		case *EllipticalArc:
			return errors.New("NYI: elliptical arc")
		}
	}
	ctx.FillPreserve()
	ctx.StrokePreserve()
	ctx.ClearPath()

	return nil
}

func (r *renderer) renderRect(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*RectData)
	if !ok {
		return fmt.Errorf("rect element missing geometry")
	}

	ctx.Push()
	defer ctx.Pop()

	x0, y0 := r.lengthX(d.X), r.lengthY(d.Y)
	w, h := r.lengthX(d.Width), r.lengthY(d.Height)

	var rx, ry float64
	switch {
	case d.Rx != nil && d.Ry != nil:
		rx, ry = r.lengthX(*d.Rx), r.lengthY(*d.Ry)
	case d.Rx != nil:
		rx = r.lengthX(*d.Rx)
		ry = rx
	case d.Ry != nil:
		ry = r.lengthY(*d.Ry)
		rx = ry
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}

	x1, y1 := x0+rx, y0+ry
	x2, y2 := x0+w-rx, y0+h-ry
	x3, y3 := x0+w, y0+h

	r.push(w, h)
	defer r.pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	ctx.ClearPath()
	if rx == 0 && ry == 0 {
		ctx.DrawRectangle(x0, y0, w, h)
	} else {
		ctx.MoveTo(x1, y0)
		ctx.LineTo(x2, y0)
		ctx.DrawEllipticalArc(x2, y1, rx, ry, gg.Radians(270), gg.Radians(360))
		ctx.LineTo(x3, y2)
		ctx.DrawEllipticalArc(x2, y2, rx, ry, gg.Radians(0), gg.Radians(90))
		ctx.LineTo(x1, y3)
		ctx.DrawEllipticalArc(x1, y2, rx, ry, gg.Radians(90), gg.Radians(180))
		ctx.LineTo(x0, y1)
		ctx.DrawEllipticalArc(x1, y1, rx, ry, gg.Radians(180), gg.Radians(270))
		ctx.ClosePath()
	}
	ctx.FillPreserve()
	ctx.StrokePreserve()

	return nil
}

func (r *renderer) renderCircle(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*CircleData)
	if !ok {
		return fmt.Errorf("circle element missing geometry")
	}

	ctx.Push()
	defer ctx.Pop()

	cx, cy := r.lengthX(d.Cx), r.lengthY(d.Cy)
	rr := r.lengthMixed(d.R)

	r.push(rr*2, rr*2)
	defer r.pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	ctx.ClearPath()
	ctx.DrawCircle(cx, cy, rr)
	ctx.FillPreserve()
	ctx.StrokePreserve()

	return nil
}

func (r *renderer) renderEllipse(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*EllipseData)
	if !ok {
		return fmt.Errorf("ellipse element missing geometry")
	}

	ctx.Push()
	defer ctx.Pop()

	cx, cy := r.lengthX(d.Cx), r.lengthY(d.Cy)
	rx, ry := r.lengthX(d.Rx), r.lengthY(d.Ry)

	r.push(rx*2, ry*2)
	defer r.pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	ctx.ClearPath()
	ctx.DrawEllipse(cx, cy, rx, ry)
	ctx.FillPreserve()
	ctx.StrokePreserve()

	return nil
}

func (r *renderer) renderLine(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*LineData)
	if !ok {
		return fmt.Errorf("line element missing geometry")
	}

	ctx.Push()
	defer ctx.Pop()

	x1, y1 := r.lengthX(d.X1), r.lengthY(d.Y1)
	x2, y2 := r.lengthX(d.X2), r.lengthY(d.Y2)

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	// A line has no area to fill; only the stroke paint is meaningful.
	ctx.ClearPath()
	ctx.MoveTo(x1, y1)
	ctx.LineTo(x2, y2)
	ctx.StrokePreserve()

	return nil
}

func (r *renderer) renderPoly(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*PolyData)
	if !ok || len(d.Points) == 0 {
		return nil
	}

	ctx.Push()
	defer ctx.Pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}

	ctx.ClearPath()
	ctx.MoveTo(d.Points[0].X, d.Points[0].Y)
	for _, p := range d.Points[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	if e.Type() == TypePolygon {
		ctx.ClosePath()
	}
	ctx.FillPreserve()
	ctx.StrokePreserve()

	return nil
}

func (r *renderer) renderText(ctx *gg.Context, e Element) error {
	d, ok := e.Kind().(*TextData)
	if !ok || d.CharacterData == "" {
		return nil
	}

	ctx.Push()
	defer ctx.Pop()

	cs := e.GetComputedStyle()
	if err := r.setPaints(ctx, cs); err != nil {
		return err
	}
	ctx.ClearPath()

	fontFamily := r.resolveFontFamily(nil)
	face, err := fontFamily.newFace(font.WeightNormal, font.StyleNormal, defaultFontMetrics.FontSize, font.HintingNone)
	if err != nil {
		return err
	}
	ctx.SetFontFace(face)

	x, y := 0.0, 0.0
	if len(d.X) > 0 {
		x = r.lengthX(d.X[0])
	}
	if len(d.Y) > 0 {
		y = r.lengthY(d.Y[0])
	}

	ctx.DrawString(d.CharacterData, x, y)
	return nil
}

func (r *renderer) renderImage(ctx *gg.Context, e Element) error {
	return errors.New("NYI: image")
}

func (r *renderer) renderForeignObject(ctx *gg.Context, e Element) error {
	return errors.New("NYI: foreignObject")
}
