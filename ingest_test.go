package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestBuildsTreeInDocumentOrder(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50">
		<g id="layer1"><rect x="1" y="2" width="3" height="4"/><circle cx="5" cy="6" r="7"/></g>
	</svg>`
	doc, warnings, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	root := doc.Root()
	assert.Equal(t, TypeSVG, root.Type())

	g, ok := root.FirstChildElement()
	require.True(t, ok)
	assert.Equal(t, TypeG, g.Type())
	assert.Equal(t, "layer1", g.Id())

	rect, ok := g.FirstChildElement()
	require.True(t, ok)
	assert.Equal(t, TypeRect, rect.Type())
	rd, ok := rect.Kind().(*RectData)
	require.True(t, ok)
	assert.Equal(t, 1.0, rd.X.Value)
	assert.Equal(t, 4.0, rd.Height.Value)

	circle, ok := rect.NextSiblingElement()
	require.True(t, ok)
	assert.Equal(t, TypeCircle, circle.Type())
}

func TestIngestRejectsNonSVGRoot(t *testing.T) {
	_, _, err := Ingest(strings.NewReader(`<notsvg/>`), IngestOptions{})
	require.Error(t, err)
	var ierr *IngestError
	require.ErrorAs(t, err, &ierr)
	assert.Contains(t, ierr.Reason, "root element must be svg")
}

func TestIngestRejectsMalformedXML(t *testing.T) {
	_, _, err := Ingest(strings.NewReader(`<svg><g></svg>`), IngestOptions{})
	require.Error(t, err)
}

func TestIngestDiscardsForeignNamespaceSubtree(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:x="urn:other">
		<x:weird><x:child/></x:weird>
		<rect/>
	</svg>`
	doc, warnings, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, warnings)

	root := doc.Root()
	child, ok := root.FirstChildElement()
	require.True(t, ok)
	assert.Equal(t, TypeRect, child.Type(), "the foreign subtree must be skipped entirely, leaving only <rect>")
	_, ok = child.NextSiblingElement()
	assert.False(t, ok)
}

func TestIngestFoldsStopsIntoParentGradient(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
		<linearGradient id="g1">
			<stop offset="0" stop-color="red"/>
			<stop offset="1" stop-color="blue" stop-opacity="0.5"/>
		</linearGradient>
	</svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)

	grad, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	gd, ok := grad.Kind().(*LinearGradientData)
	require.True(t, ok)
	require.Len(t, gd.Stops, 2)
	assert.Equal(t, 0.0, gd.Stops[0].Offset)
	assert.Equal(t, 0.5, gd.Stops[1].StopOpacity)

	// <stop> is purely structural: it must not remain a rendered child.
	_, hasChild := grad.FirstChildElement()
	assert.False(t, hasChild)
}

func TestIngestCollectsStyleElementAsStylesheet(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><style>rect{fill:red;}</style><rect/></svg>`
	doc, warnings, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, doc.Stylesheets, 1)
	require.Len(t, doc.Stylesheets[0].Rules, 1)
}

func TestIngestRoutesPresentationAttributeIntoRegistry(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><rect fill="blue" stroke-width="2"/></svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	rect, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	cs := rect.GetComputedStyle()
	assert.Equal(t, 2.0, cs.StrokeWidth.Value)
}

func TestIngestStoresUnrecognizedAttributeAsCustom(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><rect data-thing="hello"/></svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	rect, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	v, ok := rect.GetAttribute("data-thing")
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestIngestDisableUserAttributesDropsCustomAttribute(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><rect data-thing="hello"/></svg>`
	doc, warnings, err := Ingest(strings.NewReader(src), IngestOptions{DisableUserAttributes: true})
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	rect, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	_, ok = rect.GetAttribute("data-thing")
	assert.False(t, ok)
}

func TestIngestXlinkHrefNormalizesToHref(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
		<use xlink:href="#a"/>
	</svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	use, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	ud, ok := use.Kind().(*UseData)
	require.True(t, ok)
	assert.Equal(t, "#a", ud.Href)
}

func TestIngestTextCharacterDataAccumulates(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><text x="1 2" y="3">hello<!-- c --> world</text></svg>`
	doc, _, err := Ingest(strings.NewReader(src), IngestOptions{})
	require.NoError(t, err)
	text, ok := doc.Root().FirstChildElement()
	require.True(t, ok)
	td, ok := text.Kind().(*TextData)
	require.True(t, ok)
	assert.Equal(t, "hello world", td.CharacterData)
	require.Len(t, td.X, 2)
	assert.Equal(t, 1.0, td.X[0].Value)
	assert.Equal(t, 2.0, td.X[1].Value)
}
