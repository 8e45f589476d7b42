package css

// Specificity is the (a, b, c) tuple from Selectors Level 4 §17: ID
// selectors, class/attribute/pseudo-class selectors, and type/pseudo-element
// selectors respectively.
type Specificity struct {
	A, B, C int
}

// Less implements tuple ordering: compare A, then B, then C.
func (s Specificity) Less(o Specificity) bool {
	if s.A != o.A {
		return s.A < o.A
	}
	if s.B != o.B {
		return s.B < o.B
	}
	return s.C < o.C
}

func (s Specificity) add(o Specificity) Specificity {
	return Specificity{A: s.A + o.A, B: s.B + o.B, C: s.C + o.C}
}

// RankBand is the outer precedence band a declaration falls into during the
// cascade, ordered from lowest to highest: initial/inherit < presentation
// attribute < stylesheet (normal) < inline style < stylesheet !important <
// inline style !important (spec §4.7: "!important inline > !important
// stylesheet > inline style > stylesheet by (specificity, source-order) >
// presentation attribute > initial/inherit"). Within a band, RankNormal and
// RankImportant break ties by Specificity then source order; the others
// just take the later write.
type RankBand int

const (
	RankInitialOrInherited RankBand = iota
	RankPresentationAttribute
	RankNormal
	RankStyleAttribute
	RankImportant
	RankStyleAttributeImportant
)

// CascadeRank totally orders two competing declarations for the same
// property on the same element: higher band wins; within RankNormal and
// RankImportant, higher specificity wins; ties go to later source order.
type CascadeRank struct {
	Band        RankBand
	Specificity Specificity
	SourceOrder int
}

// Wins reports whether r should overwrite the currently-winning rank prev.
func (r CascadeRank) Wins(prev CascadeRank) bool {
	if r.Band != prev.Band {
		return r.Band > prev.Band
	}
	if r.Band != RankNormal && r.Band != RankImportant {
		// Presentation attributes and style-attribute declarations don't
		// carry a meaningful specificity comparison; later always wins
		// within the same band (there is at most one of each per element,
		// but source order still breaks exact ties deterministically).
		return r.SourceOrder >= prev.SourceOrder
	}
	if r.Specificity != prev.Specificity {
		return r.Specificity.Less(prev.Specificity) == false
	}
	return r.SourceOrder >= prev.SourceOrder
}
