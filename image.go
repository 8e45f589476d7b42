package svg

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// SVGImage adapts a rendered Document to the standard image.Image
// interface, so svgdoc documents can flow through any Go imaging pipeline.
type SVGImage struct {
	doc *Document
	ctx *gg.Context
}

// Document returns the underlying styled document.
func (i *SVGImage) Document() *Document { return i.doc }

// Context returns the underlying render context.
func (i *SVGImage) Context() *gg.Context { return i.ctx }

func (i *SVGImage) ColorModel() color.Model { return i.ctx.Image().ColorModel() }
func (i *SVGImage) Bounds() image.Rectangle { return i.ctx.Image().Bounds() }
func (i *SVGImage) At(x, y int) color.Color { return i.ctx.Image().At(x, y) }

// Scale re-renders the document at a new scaling factor.
func (i *SVGImage) Scale(factor float64) (*SVGImage, error) {
	ctx := NewScaledContext(i.doc, factor)
	if err := Render(ctx, i.doc); err != nil {
		return nil, err
	}
	return &SVGImage{doc: i.doc, ctx: ctx}, nil
}

// Decode ingests, cascades, and rasterizes an SVG document in one step, for
// registration with the standard image package.
func Decode(r io.Reader) (image.Image, error) {
	doc, _, err := Ingest(r, IngestOptions{})
	if err != nil {
		return nil, err
	}
	ApplyDocument(doc)

	ctx := NewContext(doc)
	if err := Render(ctx, doc); err != nil {
		return nil, err
	}
	return &SVGImage{doc: doc, ctx: ctx}, nil
}

// DecodeConfig reports the dimensions of an SVG document without fully
// rendering it more than once (image.RegisterFormat requires this shape).
func DecodeConfig(r io.Reader) (image.Config, error) {
	img, err := Decode(r)
	if err != nil {
		return image.Config{}, err
	}
	bounds := img.Bounds()
	return image.Config{
		ColorModel: img.ColorModel(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
	}, nil
}

func init() {
	image.RegisterFormat("svg", "<svg", Decode, DecodeConfig)
}
