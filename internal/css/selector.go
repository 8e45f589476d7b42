package css

// Combinator is the relationship between two compound selectors in a
// complex selector (Selectors Level 4 §4).
type Combinator int

const (
	// CombinatorNone marks the rightmost compound selector, which has no
	// combinator joining it to anything further right.
	CombinatorNone Combinator = iota
	CombinatorDescendant       // ' '
	CombinatorChild            // '>'
	CombinatorNextSibling      // '+'
	CombinatorSubsequentSibling // '~'
	CombinatorColumn           // '||' — never matches (spec Open Question)
)

// AttrMatcher is the closed set of attribute-selector comparison operators.
type AttrMatcher int

const (
	AttrExists AttrMatcher = iota // [attr]
	AttrEquals                    // [attr=val]
	AttrIncludes                  // [attr~=val]
	AttrDashMatch                  // [attr|=val]
	AttrPrefixMatch                // [attr^=val]
	AttrSuffixMatch                // [attr$=val]
	AttrSubstringMatch              // [attr*=val]
)

// WqName is a possibly-namespace-qualified name (CSS Syntax "wq-name").
// HasPrefix distinguishes an explicit empty-namespace prefix ("|name") from
// no prefix at all ("name", which inherits the default namespace).
type WqName struct {
	Prefix       string
	HasPrefix    bool
	IsUniversalNs bool // prefix was '*' ("*|name")
	Name         string
}

// SimpleSelectorKind is the tagged-union discriminant for SimpleSelector.
type SimpleSelectorKind int

const (
	SimpleType SimpleSelectorKind = iota
	SimpleUniversal
	SimpleID
	SimpleClass
	SimpleAttribute
	SimplePseudoClass
	SimplePseudoElement
)

// SimpleSelector is one atomic test within a compound selector.
type SimpleSelector struct {
	Kind SimpleSelectorKind

	TypeName WqName // SimpleType / SimpleUniversal

	Value string // SimpleID (id text) / SimpleClass (class text)

	AttrName        WqName
	AttrMatcher     AttrMatcher
	AttrValue       string
	AttrCaseInsens  bool

	PseudoName string   // SimplePseudoClass / SimplePseudoElement, lowercase
	Anb        *AnbValue // set for :nth-child/:nth-last-child
	OfSelector *SelectorList // set for the "of <selector>" clause
	Arg        string   // raw argument for pseudo-classes like :dir(ltr)
}

// CompoundSelector is a sequence of simple selectors that all apply to the
// same element (no combinator between them).
type CompoundSelector struct {
	Simple []SimpleSelector
}

// complexPart is one (compound selector, combinator-to-its-left) link in a
// ComplexSelector, stored left to right in source order.
type complexPart struct {
	Compound   CompoundSelector
	Combinator Combinator // combinator joining this compound to the NEXT one (to its right); CombinatorNone on the last part
}

// ComplexSelector is a full selector: one or more compound selectors joined
// by combinators, read left to right in source order (Selectors Level 4 §4).
type ComplexSelector struct {
	Parts []complexPart
}

// Rightmost returns the final (key) compound selector, the one a DOM
// element is tested against first when matching right to left.
func (c ComplexSelector) Rightmost() CompoundSelector {
	return c.Parts[len(c.Parts)-1].Compound
}

// SelectorList is a comma-separated list of complex selectors (spec §4.2).
type SelectorList struct {
	Selectors []ComplexSelector
}

// Specificity computes the (a,b,c) tuple for a complex selector per
// Selectors Level 4 §17: ID selectors contribute to a, classes/attributes/
// pseudo-classes to b, type selectors/pseudo-elements to c. :nth-child(An+B
// of S) additionally folds in the specificity of the most specific complex
// selector in S; other pseudo-classes with selector arguments are treated
// the same way when present via OfSelector.
func (c ComplexSelector) Specificity() Specificity {
	var total Specificity
	for _, part := range c.Parts {
		for _, s := range part.Compound.Simple {
			total = total.add(s.specificity())
		}
	}
	return total
}

func (s SimpleSelector) specificity() Specificity {
	switch s.Kind {
	case SimpleID:
		return Specificity{A: 1}
	case SimpleClass, SimpleAttribute:
		return Specificity{B: 1}
	case SimplePseudoClass:
		sp := Specificity{B: 1}
		if s.OfSelector != nil {
			sp = sp.add(maxSpecificity(*s.OfSelector))
		}
		return sp
	case SimpleType:
		return Specificity{C: 1}
	case SimplePseudoElement:
		return Specificity{C: 1}
	default: // SimpleUniversal contributes nothing
		return Specificity{}
	}
}

func maxSpecificity(list SelectorList) Specificity {
	var best Specificity
	for i, sel := range list.Selectors {
		sp := sel.Specificity()
		if i == 0 || best.Less(sp) {
			best = sp
		}
	}
	return best
}
