package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistlace/svgdoc/internal/css"
)

func parseSheet(t *testing.T, src string) css.Stylesheet {
	t.Helper()
	sheet, warnings := css.ParseStylesheet([]byte(src))
	require.Empty(t, warnings)
	return sheet
}

func TestApplyStylesheetMatchesEveryElement(t *testing.T) {
	doc := NewDocument()
	rect := doc.NewElement(TypeRect)
	doc.Root().AppendChild(rect)

	warnings := ApplyStylesheet(doc, parseSheet(t, "rect { fill: blue; }"))
	assert.Empty(t, warnings)
	assert.Equal(t, css.PaintColor, rect.GetComputedStyle().Fill.Kind)
	assert.Equal(t, uint8(0xFF), rect.GetComputedStyle().Fill.Color.RGBA.B)
}

func TestApplyStylesheetHigherSpecificityWinsOverSourceOrder(t *testing.T) {
	doc := NewDocument()
	rect := doc.NewElement(TypeRect)
	rect.SetId("target")
	doc.Root().AppendChild(rect)

	sheet := parseSheet(t, "#target { fill: blue; } rect { fill: red; }")
	ApplyStylesheet(doc, sheet)
	assert.Equal(t, uint8(0xFF), rect.GetComputedStyle().Fill.Color.RGBA.B, "the ID selector must win regardless of rule order")
}

func TestStylesheetImportantOutranksLaterPlainInlineStyle(t *testing.T) {
	doc := NewDocument()
	rect := doc.NewElement(TypeRect)
	doc.Root().AppendChild(rect)
	rect.SetStyle("fill: blue")

	// Apply the stylesheet first and the inline style second: the later
	// inline write still loses, because the cascade compares rank bands
	// rather than call order and RankImportant sits above RankStyleAttribute.
	sheet := parseSheet(t, "rect { fill: red !important; }")
	ApplyStylesheet(doc, sheet)
	ApplyInlineStyle(rect)

	assert.Equal(t, uint8(0xFF), rect.GetComputedStyle().Fill.Color.RGBA.R,
		"stylesheet !important must still outrank a plain inline declaration")
}

func TestApplyDocumentOrdersStylesheetsBeforeInlineStyles(t *testing.T) {
	doc := NewDocument()
	rect := doc.NewElement(TypeRect)
	doc.Root().AppendChild(rect)
	rect.SetStyle("fill: blue")
	doc.Stylesheets = append(doc.Stylesheets, parseSheet(t, "rect { fill: red; }"))

	ApplyDocument(doc)

	assert.Equal(t, uint8(0xFF), rect.GetComputedStyle().Fill.Color.RGBA.B,
		"plain inline style must outrank a normal stylesheet rule")
}

func TestApplyStylesheetUnmatchedRuleLeavesSlotUnwritten(t *testing.T) {
	doc := NewDocument()
	rect := doc.NewElement(TypeRect)
	doc.Root().AppendChild(rect)

	ApplyStylesheet(doc, parseSheet(t, "circle { fill: blue; }"))
	assert.Equal(t, initialFill, rect.GetComputedStyle().Fill)
}

func TestVisitAllCoversWholeSubtree(t *testing.T) {
	doc := NewDocument()
	g := doc.NewElement(TypeG)
	a := doc.NewElement(TypeRect)
	b := doc.NewElement(TypeCircle)
	doc.Root().AppendChild(g)
	g.AppendChild(a)
	g.AppendChild(b)

	var seen []TypeTag
	visitAll(doc.Root(), func(e Element) { seen = append(seen, e.Type()) })
	assert.Equal(t, []TypeTag{TypeSVG, TypeG, TypeRect, TypeCircle}, seen)
}

func TestApplyDocumentEndToEndFromIngestedSource(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<style>.warn { stroke: red; }</style>
		<rect class="warn" style="stroke-width: 3px"/>
	</svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)

	warnings := ApplyDocument(doc)
	assert.Empty(t, warnings)

	rect, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	cs := rect.GetComputedStyle()
	assert.Equal(t, css.PaintColor, cs.Stroke.Kind)
	assert.Equal(t, uint8(0xFF), cs.Stroke.Color.RGBA.R)
	assert.Equal(t, 3.0, cs.StrokeWidth.Value)
}
