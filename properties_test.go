package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistlace/svgdoc/internal/css"
)

func componentValues(src string) []css.ComponentValue {
	tok := css.NewTokenizerString(src)
	var tokens []css.Token
	for {
		t := tok.Next()
		if t.IsEOF() {
			break
		}
		tokens = append(tokens, t)
	}
	out := make([]css.ComponentValue, len(tokens))
	for i, t := range tokens {
		out[i] = css.ComponentValue{Token: t}
	}
	return out
}

func decl(name, value string, important bool) css.Declaration {
	return css.Declaration{Name: name, Values: componentValues(value), Important: important}
}

func TestParseDeclarationSupportedPropertyWritesSlot(t *testing.T) {
	var reg PropertyRegistry
	warnings := reg.ParseDeclaration(decl("stroke-width", "2px", false), css.CascadeRank{Band: css.RankNormal})
	assert.Empty(t, warnings)
	assert.Equal(t, StateValue, reg.StrokeWidth.State)
	assert.Equal(t, css.Length{Value: 2, Unit: css.UnitPx}, reg.StrokeWidth.Value)
}

func TestParseDeclarationUnsupportedNameGoesToUnparsedBucket(t *testing.T) {
	var reg PropertyRegistry
	warnings := reg.ParseDeclaration(decl("font-size", "12px", false), css.CascadeRank{Band: css.RankNormal})
	assert.Empty(t, warnings)
	assert.Contains(t, reg.Unparsed, "font-size")
	assert.Equal(t, StateUnwritten, reg.StrokeWidth.State)
}

func TestParseDeclarationInvalidValueProducesWarningNotPanic(t *testing.T) {
	var reg PropertyRegistry
	warnings := reg.ParseDeclaration(decl("stroke-width", "notalength", false), css.CascadeRank{Band: css.RankNormal})
	assert.NotEmpty(t, warnings)
}

func TestHigherBandAlwaysWinsRegardlessOfSpecificity(t *testing.T) {
	var reg PropertyRegistry
	low := css.CascadeRank{Band: css.RankNormal, Specificity: css.Specificity{A: 1, B: 0, C: 0}}
	high := css.CascadeRank{Band: css.RankStyleAttribute}

	reg.ParseDeclaration(decl("stroke-width", "5px", false), low)
	reg.ParseDeclaration(decl("stroke-width", "1px", false), high)

	assert.Equal(t, css.Length{Value: 1, Unit: css.UnitPx}, reg.StrokeWidth.Value)
}

func TestImportantInlineOutranksEverything(t *testing.T) {
	var reg PropertyRegistry
	reg.ParseDeclaration(decl("stroke-width", "1px", false), css.CascadeRank{Band: css.RankStyleAttributeImportant})
	reg.ParseDeclaration(decl("stroke-width", "2px", true), css.CascadeRank{Band: css.RankImportant, Specificity: css.Specificity{A: 9, B: 9, C: 9}})

	assert.Equal(t, css.Length{Value: 1, Unit: css.UnitPx}, reg.StrokeWidth.Value,
		"RankStyleAttributeImportant must outrank RankImportant regardless of specificity")
}

func TestEqualSpecificityLaterSourceOrderWins(t *testing.T) {
	var reg PropertyRegistry
	spec := css.Specificity{A: 0, B: 1, C: 0}
	reg.ParseDeclaration(decl("stroke-width", "1px", false), css.CascadeRank{Band: css.RankNormal, Specificity: spec, SourceOrder: 0})
	reg.ParseDeclaration(decl("stroke-width", "2px", false), css.CascadeRank{Band: css.RankNormal, Specificity: spec, SourceOrder: 1})

	assert.Equal(t, css.Length{Value: 2, Unit: css.UnitPx}, reg.StrokeWidth.Value)
}

func TestHigherSpecificityWinsOverEarlierHigherSourceOrder(t *testing.T) {
	var reg PropertyRegistry
	reg.ParseDeclaration(decl("stroke-width", "1px", false), css.CascadeRank{
		Band: css.RankNormal, Specificity: css.Specificity{A: 1}, SourceOrder: 0,
	})
	reg.ParseDeclaration(decl("stroke-width", "2px", false), css.CascadeRank{
		Band: css.RankNormal, Specificity: css.Specificity{A: 0, B: 9}, SourceOrder: 1,
	})

	assert.Equal(t, css.Length{Value: 1, Unit: css.UnitPx}, reg.StrokeWidth.Value,
		"higher specificity must win even with an earlier source order")
}

func TestCSSWideKeywordsSetExplicitState(t *testing.T) {
	var reg PropertyRegistry
	reg.ParseDeclaration(decl("fill", "red", false), css.CascadeRank{Band: css.RankNormal})
	reg.ParseDeclaration(decl("fill", "inherit", false), css.CascadeRank{Band: css.RankStyleAttribute})
	assert.Equal(t, StateInherit, reg.Fill.State)

	reg.ParseDeclaration(decl("fill", "initial", false), css.CascadeRank{Band: css.RankStyleAttributeImportant})
	assert.Equal(t, StateInitial, reg.Fill.State)
}

func TestPresentationAttributeAllowsUnitlessUserUnits(t *testing.T) {
	var reg PropertyRegistry
	ok, err := reg.ParsePresentationAttribute("stroke-width", "3")
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, css.Length{Value: 3, Unit: css.UnitNone}, reg.StrokeWidth.Value,
		"a unitless presentation-attribute number stays UnitNone, resolved as user units at render time")
	assert.Equal(t, css.RankPresentationAttribute, reg.StrokeWidth.Rank.Band)
}

func TestPresentationAttributeRejectsUnrecognizedName(t *testing.T) {
	var reg PropertyRegistry
	ok, err := reg.ParsePresentationAttribute("cx", "5")
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestResolvePropertyWalksToNearestAncestorWithExplicitValue(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	mid := doc.NewElement(TypeG)
	leaf := doc.NewElement(TypeRect)
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	mid.Registry().ParsePresentationAttribute("stroke-width", "7")

	cs := leaf.GetComputedStyle()
	assert.Equal(t, css.Length{Value: 7, Unit: css.UnitNone}, cs.StrokeWidth,
		"a never-written leaf slot must inherit from the nearest ancestor that wrote one")
}

func TestResolvePropertyFallsBackToInitialAtRoot(t *testing.T) {
	doc := NewDocument()
	leaf := doc.NewElement(TypeRect)
	doc.Root().AppendChild(leaf)

	cs := leaf.GetComputedStyle()
	assert.Equal(t, initialStrokeWidth, cs.StrokeWidth)
	assert.Equal(t, initialStroke, cs.Stroke)
}

func TestResolvePropertyInitialKeywordStopsInheritanceWalk(t *testing.T) {
	doc := NewDocument()
	root := doc.Root()
	root.Registry().ParsePresentationAttribute("stroke-width", "9")
	leaf := doc.NewElement(TypeRect)
	root.AppendChild(leaf)
	leaf.SetStyle("stroke-width: initial")
	ApplyInlineStyle(leaf)

	cs := leaf.GetComputedStyle()
	assert.Equal(t, initialStrokeWidth, cs.StrokeWidth,
		"explicit `initial` must stop the walk rather than continue to the ancestor's 9px")
}
