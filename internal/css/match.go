package css

import "strings"

// SelectorMatchResult is the outcome of matching a single complex selector
// against a candidate element (spec §4.6).
type SelectorMatchResult struct {
	Matched     bool
	Specificity Specificity
}

// MatchSelectorList reports whether el matches any selector in list, and
// if so, the highest specificity among the selectors that matched (the
// applier only needs the winning specificity, not which alternative won).
func MatchSelectorList(list SelectorList, el ElementLike) SelectorMatchResult {
	var best SelectorMatchResult
	for _, sel := range list.Selectors {
		if MatchComplexSelector(sel, el) {
			sp := sel.Specificity()
			if !best.Matched || best.Specificity.Less(sp) {
				best = SelectorMatchResult{Matched: true, Specificity: sp}
			}
		}
	}
	return best
}

// MatchComplexSelector matches a single complex selector against el,
// right to left, per Selectors Level 4 §17.1's matching algorithm: the
// rightmost compound selector must match el itself; each combinator to its
// left is satisfied by trying every candidate the corresponding traversal
// generator yields until one lets the remainder of the selector match (or
// the generator is exhausted).
func MatchComplexSelector(sel ComplexSelector, el ElementLike) bool {
	if len(sel.Parts) == 0 {
		return false
	}
	last := len(sel.Parts) - 1
	if !matchCompound(sel.Parts[last].Compound, el) {
		return false
	}
	return matchFromPart(sel, last-1, el)
}

// matchFromPart tries to satisfy parts[0..partIdx] given that the compound
// to the right of parts[partIdx] already matched at anchor.
func matchFromPart(sel ComplexSelector, partIdx int, anchor ElementLike) bool {
	if partIdx < 0 {
		return true
	}
	combinator := sel.Parts[partIdx].Combinator
	it := iteratorFor(combinator, anchor)
	for {
		cand, ok := it.Next()
		if !ok {
			return false
		}
		if !matchCompound(sel.Parts[partIdx].Compound, cand) {
			continue
		}
		if matchFromPart(sel, partIdx-1, cand) {
			return true
		}
	}
}

func matchCompound(c CompoundSelector, el ElementLike) bool {
	for _, s := range c.Simple {
		if !matchSimple(s, el) {
			return false
		}
	}
	return true
}

func matchSimple(s SimpleSelector, el ElementLike) bool {
	switch s.Kind {
	case SimpleUniversal:
		return matchesNamespace(s.TypeName, el)
	case SimpleType:
		return strings.EqualFold(el.LocalName(), s.TypeName.Name) && matchesNamespace(s.TypeName, el)
	case SimpleID:
		return el.ID() == s.Value
	case SimpleClass:
		for _, c := range el.ClassList() {
			if c == s.Value {
				return true
			}
		}
		return false
	case SimpleAttribute:
		return matchAttribute(s, el)
	case SimplePseudoClass:
		return matchPseudoClass(s, el)
	case SimplePseudoElement:
		// Pseudo-elements have no corresponding rendered node in this
		// engine's element tree, so they never match a real element.
		return false
	default:
		return false
	}
}

// matchesNamespace implements the (simplified) namespace test: an
// unprefixed type/universal selector and the `*|` form match in any
// namespace (this engine has no default-namespace concept distinct from SVG
// itself); an explicit prefix matches only when its text equals the
// element's namespace URI. No prefix-to-URI mapping is looked up.
func matchesNamespace(name WqName, el ElementLike) bool {
	if !name.HasPrefix || name.IsUniversalNs {
		return true
	}
	return el.NamespaceURI() == name.Prefix
}

func matchAttribute(s SimpleSelector, el ElementLike) bool {
	val, ok := el.GetAttribute(s.AttrName.Name)
	if s.AttrMatcher == AttrExists {
		return ok
	}
	if !ok {
		return false
	}

	want := s.AttrValue
	have := val
	if s.AttrCaseInsens {
		want = strings.ToLower(want)
		have = strings.ToLower(have)
	}

	switch s.AttrMatcher {
	case AttrEquals:
		return have == want
	case AttrIncludes:
		for _, word := range strings.Fields(have) {
			if word == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return have == want || strings.HasPrefix(have, want+"-")
	case AttrPrefixMatch:
		return want != "" && strings.HasPrefix(have, want)
	case AttrSuffixMatch:
		return want != "" && strings.HasSuffix(have, want)
	case AttrSubstringMatch:
		return want != "" && strings.Contains(have, want)
	default:
		return false
	}
}

func matchPseudoClass(s SimpleSelector, el ElementLike) bool {
	switch s.PseudoName {
	case "root":
		_, hasParent := el.Parent()
		return !hasParent
	case "empty":
		_, hasChild := el.FirstChild()
		return !hasChild
	case "first-child":
		_, ok := el.PreviousSibling()
		return !ok
	case "last-child":
		_, ok := el.NextSibling()
		return !ok
	case "only-child":
		_, hasPrev := el.PreviousSibling()
		_, hasNext := el.NextSibling()
		return !hasPrev && !hasNext
	case "first-of-type":
		return indexOfType(el, backward) == 1
	case "last-of-type":
		return indexOfType(el, forward) == 1
	case "only-of-type":
		return indexOfType(el, backward) == 1 && indexOfType(el, forward) == 1
	case "nth-child":
		return matchAnbOf(s, el, backward, false)
	case "nth-last-child":
		return matchAnbOf(s, el, forward, false)
	case "nth-of-type":
		return matchAnbOf(s, el, backward, true)
	case "nth-last-of-type":
		return matchAnbOf(s, el, forward, true)
	default:
		// Any pseudo-class this engine doesn't implement (:hover, :focus,
		// etc.) never matches a static document; there is no live user
		// interaction state to consult.
		return false
	}
}

type direction int

const (
	backward direction = iota // count toward the start (PreviousSibling)
	forward                   // count toward the end (NextSibling)
)

// index1Based returns el's 1-based position counting in dir, optionally
// restricted to siblings sharing el's local name (sameTypeOnly).
func index1Based(el ElementLike, dir direction, sameTypeOnly bool) int {
	count := 1
	cur := el
	for {
		var next ElementLike
		var ok bool
		if dir == backward {
			next, ok = cur.PreviousSibling()
		} else {
			next, ok = cur.NextSibling()
		}
		if !ok {
			return count
		}
		if !sameTypeOnly || strings.EqualFold(next.LocalName(), el.LocalName()) {
			count++
		}
		cur = next
	}
}

func indexOfType(el ElementLike, dir direction) int {
	return index1Based(el, dir, true)
}

func matchAnbOf(s SimpleSelector, el ElementLike, dir direction, sameTypeOnly bool) bool {
	if s.Anb == nil {
		return false
	}
	if s.OfSelector != nil {
		if !matchesAny(*s.OfSelector, el) {
			return false
		}
		return s.Anb.Matches(index1BasedFiltered(el, dir, s.OfSelector))
	}
	return s.Anb.Matches(index1Based(el, dir, sameTypeOnly))
}

func matchesAny(list SelectorList, el ElementLike) bool {
	for _, sel := range list.Selectors {
		if MatchComplexSelector(sel, el) {
			return true
		}
	}
	return false
}

// index1BasedFiltered counts only siblings matching the "of S" selector
// list, per Selectors Level 4 §5.1's nth-child-of-S semantics.
func index1BasedFiltered(el ElementLike, dir direction, list *SelectorList) int {
	count := 1
	cur := el
	for {
		var next ElementLike
		var ok bool
		if dir == backward {
			next, ok = cur.PreviousSibling()
		} else {
			next, ok = cur.NextSibling()
		}
		if !ok {
			return count
		}
		if matchesAny(*list, next) {
			count++
		}
		cur = next
	}
}
