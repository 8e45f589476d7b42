package svg

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/mistlace/svgdoc/internal/css"
)

// applyTypedAttribute dispatches a non-structural, non-property attribute
// to the element type's own handler (spec §4.8 step 3): geometry like
// cx/cy/r, href, viewBox, and friends. ok is false when name isn't one this
// element type recognizes, so the caller falls back to the custom-
// attribute bucket.
func applyTypedAttribute(el Element, name, value string) (ok bool, err error) {
	switch data := el.Kind().(type) {
	case *RootData:
		return applyRootAttr(data, name, value)
	case *UseData:
		return applyUseAttr(data, name, value)
	case *SymbolData:
		return applySymbolAttr(data, name, value)
	case *MarkerData:
		return applyMarkerAttr(data, name, value)
	case *LinearGradientData:
		return applyLinearGradientAttr(data, name, value)
	case *RadialGradientData:
		return applyRadialGradientAttr(data, name, value)
	case *PatternData:
		return applyPatternAttr(data, name, value)
	case *SolidColorData:
		return applySolidColorAttr(data, name, value)
	case *PathShapeData:
		return applyPathAttr(data, name, value)
	case *RectData:
		return applyRectAttr(data, name, value)
	case *CircleData:
		return applyCircleAttr(data, name, value)
	case *EllipseData:
		return applyEllipseAttr(data, name, value)
	case *LineData:
		return applyLineAttr(data, name, value)
	case *PolyData:
		return applyPolyAttr(data, name, value)
	case *ImageData:
		return applyImageAttr(data, name, value)
	case *ForeignObjectData:
		return applyViewportAttr(&data.X, &data.Y, &data.Width, &data.Height, name, value)
	case *StopData:
		return applyStopAttr(data, name, value)
	case *TextData:
		return applyTextAttr(data, name, value)
	}
	return false, nil
}

func userLength(value string) (css.Length, error) {
	tok := css.NewTokenizerString(value)
	t := tok.Next()
	if t.IsEOF() {
		return css.Length{}, fmt.Errorf("empty length")
	}
	return css.ParseLengthPercentage(t, css.LengthOptions{AllowUserUnits: true})
}

func userNumber(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func applyViewportAttr(x, y, w, h *css.Length, name, value string) (bool, error) {
	var target *css.Length
	switch name {
	case "x":
		target = x
	case "y":
		target = y
	case "width":
		target = w
	case "height":
		target = h
	default:
		return false, nil
	}
	l, err := userLength(value)
	if err != nil {
		return true, err
	}
	*target = l
	return true, nil
}

func applyRootAttr(d *RootData, name, value string) (bool, error) {
	if name == "viewBox" {
		vb, err := parseViewBox(value)
		if err != nil {
			return true, err
		}
		d.ViewBox = vb
		return true, nil
	}
	return applyViewportAttr(&d.X, &d.Y, &d.Width, &d.Height, name, value)
}

func applyUseAttr(d *UseData, name, value string) (bool, error) {
	switch name {
	case "href":
		d.Href = value
		return true, nil
	case "x":
		l, err := userLength(value)
		d.X = l
		return true, err
	case "y":
		l, err := userLength(value)
		d.Y = l
		return true, err
	case "width":
		l, err := userLength(value)
		d.Width, d.HasWidth = l, true
		return true, err
	case "height":
		l, err := userLength(value)
		d.Height, d.HasHeight = l, true
		return true, err
	}
	return false, nil
}

func applySymbolAttr(d *SymbolData, name, value string) (bool, error) {
	if name == "viewBox" {
		vb, err := parseViewBox(value)
		d.ViewBox = vb
		return true, err
	}
	return applyViewportAttr(&d.X, &d.Y, &d.Width, &d.Height, name, value)
}

func applyMarkerAttr(d *MarkerData, name, value string) (bool, error) {
	switch name {
	case "viewBox":
		vb, err := parseViewBox(value)
		d.ViewBox = vb
		return true, err
	case "refX":
		l, err := userLength(value)
		d.RefX = l
		return true, err
	case "refY":
		l, err := userLength(value)
		d.RefY = l
		return true, err
	case "markerWidth":
		l, err := userLength(value)
		d.MarkerWidth = l
		return true, err
	case "markerHeight":
		l, err := userLength(value)
		d.MarkerHeight = l
		return true, err
	case "markerUnits":
		d.MarkerUnits = value
		return true, nil
	case "orient":
		d.Orient = value
		return true, nil
	}
	return false, nil
}

func applyLinearGradientAttr(d *LinearGradientData, name, value string) (bool, error) {
	switch name {
	case "x1":
		l, err := userLength(value)
		d.X1, d.HasX1 = l, true
		return true, err
	case "y1":
		l, err := userLength(value)
		d.Y1, d.HasY1 = l, true
		return true, err
	case "x2":
		l, err := userLength(value)
		d.X2, d.HasX2 = l, true
		return true, err
	case "y2":
		l, err := userLength(value)
		d.Y2, d.HasY2 = l, true
		return true, err
	case "gradientUnits":
		d.GradientUnits = value
		return true, nil
	case "spreadMethod":
		d.SpreadMethod = value
		return true, nil
	case "href":
		d.Href = value
		return true, nil
	}
	return false, nil
}

func applyRadialGradientAttr(d *RadialGradientData, name, value string) (bool, error) {
	switch name {
	case "cx":
		l, err := userLength(value)
		d.Cx, d.HasCx = l, true
		return true, err
	case "cy":
		l, err := userLength(value)
		d.Cy, d.HasCy = l, true
		return true, err
	case "r":
		l, err := userLength(value)
		d.R, d.HasR = l, true
		return true, err
	case "fx":
		l, err := userLength(value)
		d.Fx, d.HasFx = l, true
		return true, err
	case "fy":
		l, err := userLength(value)
		d.Fy, d.HasFy = l, true
		return true, err
	case "gradientUnits":
		d.GradientUnits = value
		return true, nil
	case "spreadMethod":
		d.SpreadMethod = value
		return true, nil
	case "href":
		d.Href = value
		return true, nil
	}
	return false, nil
}

func applyPatternAttr(d *PatternData, name, value string) (bool, error) {
	switch name {
	case "viewBox":
		vb, err := parseViewBox(value)
		d.ViewBox = vb
		return true, err
	case "patternUnits":
		d.PatternUnits = value
		return true, nil
	case "patternContentUnits":
		d.PatternContentUnits = value
		return true, nil
	case "href":
		d.Href = value
		return true, nil
	}
	return applyViewportAttr(&d.X, &d.Y, &d.Width, &d.Height, name, value)
}

func applySolidColorAttr(d *SolidColorData, name, value string) (bool, error) {
	switch name {
	case "solid-color":
		tok := css.NewTokenizerString(value)
		var tokens []css.Token
		for t := tok.Next(); !t.IsEOF(); t = tok.Next() {
			tokens = append(tokens, t)
		}
		c, err := css.ParseColor(tokens)
		d.Color = c
		return true, err
	case "solid-opacity":
		v, err := userNumber(value)
		d.Opacity = v
		return true, err
	}
	return false, nil
}

func applyPathAttr(d *PathShapeData, name, value string) (bool, error) {
	switch name {
	case "d":
		commands, err := ParsePathCommands(value)
		d.D = PathData{Commands: commands}
		return true, err
	case "pathLength":
		v, err := userNumber(value)
		d.PathLength, d.HasPathLength = v, true
		return true, err
	}
	return false, nil
}

func applyRectAttr(d *RectData, name, value string) (bool, error) {
	switch name {
	case "rx":
		l, err := userLength(value)
		d.Rx = &l
		return true, err
	case "ry":
		l, err := userLength(value)
		d.Ry = &l
		return true, err
	case "pathLength":
		v, err := userNumber(value)
		d.PathLength, d.HasPathLength = v, true
		return true, err
	}
	return applyViewportAttr(&d.X, &d.Y, &d.Width, &d.Height, name, value)
}

func applyCircleAttr(d *CircleData, name, value string) (bool, error) {
	switch name {
	case "cx":
		l, err := userLength(value)
		d.Cx = l
		return true, err
	case "cy":
		l, err := userLength(value)
		d.Cy = l
		return true, err
	case "r":
		l, err := userLength(value)
		d.R = l
		return true, err
	case "pathLength":
		v, err := userNumber(value)
		d.PathLength, d.HasPathLength = v, true
		return true, err
	}
	return false, nil
}

func applyEllipseAttr(d *EllipseData, name, value string) (bool, error) {
	switch name {
	case "cx":
		l, err := userLength(value)
		d.Cx = l
		return true, err
	case "cy":
		l, err := userLength(value)
		d.Cy = l
		return true, err
	case "rx":
		l, err := userLength(value)
		d.Rx = l
		return true, err
	case "ry":
		l, err := userLength(value)
		d.Ry = l
		return true, err
	case "pathLength":
		v, err := userNumber(value)
		d.PathLength, d.HasPathLength = v, true
		return true, err
	}
	return false, nil
}

func applyLineAttr(d *LineData, name, value string) (bool, error) {
	var target *css.Length
	switch name {
	case "x1":
		target = &d.X1
	case "y1":
		target = &d.Y1
	case "x2":
		target = &d.X2
	case "y2":
		target = &d.Y2
	default:
		return false, nil
	}
	l, err := userLength(value)
	*target = l
	return true, err
}

func applyPolyAttr(d *PolyData, name, value string) (bool, error) {
	if name != "points" {
		return false, nil
	}
	points, err := parseCoordinatePairSequence(bufio.NewReader(strings.NewReader(value)))
	d.Points = points
	return true, err
}

func applyImageAttr(d *ImageData, name, value string) (bool, error) {
	switch name {
	case "href":
		d.Href = value
		return true, nil
	case "preserveAspectRatio":
		d.PreserveAspectRatio = value
		return true, nil
	}
	return applyViewportAttr(&d.X, &d.Y, &d.Width, &d.Height, name, value)
}

func applyStopAttr(d *StopData, name, value string) (bool, error) {
	switch name {
	case "offset":
		v := strings.TrimSpace(value)
		pct := strings.HasSuffix(v, "%")
		v = strings.TrimSuffix(v, "%")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return true, err
		}
		if pct {
			f /= 100
		}
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		d.Offset = f
		return true, nil
	case "stop-color":
		tok := css.NewTokenizerString(value)
		var tokens []css.Token
		for t := tok.Next(); !t.IsEOF(); t = tok.Next() {
			tokens = append(tokens, t)
		}
		c, err := css.ParseColor(tokens)
		d.Color, d.HasColor = c, true
		return true, err
	case "stop-opacity":
		v, err := userNumber(value)
		d.StopOpacity, d.HasOpacity = v, true
		return true, err
	}
	return false, nil
}

// applyTextAttr handles the x/y/dx/dy/rotate list attributes shared by
// `<text>` and `<tspan>` (spec §6 treats these as presentation-only, not
// cascaded properties).
func applyTextAttr(d *TextData, name, value string) (bool, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})

	switch name {
	case "x", "y", "dx", "dy":
		lengths := make([]css.Length, len(fields))
		for i, f := range fields {
			l, err := userLength(f)
			if err != nil {
				return true, err
			}
			lengths[i] = l
		}
		switch name {
		case "x":
			d.X = lengths
		case "y":
			d.Y = lengths
		case "dx":
			d.Dx = lengths
		case "dy":
			d.Dy = lengths
		}
		return true, nil
	case "rotate":
		rotations := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return true, err
			}
			rotations[i] = v
		}
		d.Rotate = rotations
		return true, nil
	}
	return false, nil
}

// parseViewBox parses a `viewBox="min-x min-y width height"` attribute.
func parseViewBox(value string) (*ViewBox, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return nil, fmt.Errorf("viewBox requires exactly 4 numbers, got %d", len(fields))
	}
	var nums [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid viewBox number %q", f)
		}
		nums[i] = v
	}
	return &ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}, nil
}
