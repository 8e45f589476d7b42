package css

// ElementLike is the minimal read interface the selector matcher needs from
// a DOM-like element. The root svg package's DOM facade implements this
// directly over its entity/component store (C4/C9).
type ElementLike interface {
	Parent() (ElementLike, bool)
	FirstChild() (ElementLike, bool)
	LastChild() (ElementLike, bool)
	PreviousSibling() (ElementLike, bool)
	NextSibling() (ElementLike, bool)

	LocalName() string
	NamespaceURI() string
	ID() string
	ClassList() []string
	GetAttribute(name string) (string, bool)
	HasAttribute(name string) bool

	// SameElement reports whether this and other refer to the same element,
	// used by the matcher to detect self-reference (e.g. :root equality).
	SameElement(other ElementLike) bool
}

// elementIterator is the uniform shape every traversal generator below
// implements: repeated calls to Next return the next element in the
// traversal order, or ok=false once exhausted. Reimplements, as an explicit
// cursor object, what the reference engine expresses with a coroutine
// generator (Selectors Level 4 combinators read right to left need only
// ever look at one candidate ancestor/sibling at a time, so a lazy
// generator avoids materializing whole ancestor/sibling chains up front).
type elementIterator interface {
	Next() (ElementLike, bool)
}

// singleIterator yields exactly one element. iteratorFor never returns it;
// the matcher tests the rightmost compound against the target directly.
type singleIterator struct {
	el   ElementLike
	done bool
}

func newSingleIterator(el ElementLike) *singleIterator { return &singleIterator{el: el} }

func (it *singleIterator) Next() (ElementLike, bool) {
	if it.done || it.el == nil {
		return nil, false
	}
	it.done = true
	return it.el, true
}

// ancestorIterator walks strictly upward from an element's parent, for the
// descendant combinator (' ').
type ancestorIterator struct {
	cur ElementLike
}

func newAncestorIterator(from ElementLike) *ancestorIterator {
	return &ancestorIterator{cur: from}
}

func (it *ancestorIterator) Next() (ElementLike, bool) {
	if it.cur == nil {
		return nil, false
	}
	parent, ok := it.cur.Parent()
	if !ok {
		it.cur = nil
		return nil, false
	}
	it.cur = parent
	return parent, true
}

// parentIterator yields only the immediate parent, for the child
// combinator ('>').
type parentIterator struct {
	from ElementLike
	done bool
}

func newParentIterator(from ElementLike) *parentIterator {
	return &parentIterator{from: from}
}

func (it *parentIterator) Next() (ElementLike, bool) {
	if it.done || it.from == nil {
		return nil, false
	}
	it.done = true
	return it.from.Parent()
}

// previousSiblingIterator walks backward through preceding siblings, for
// the subsequent-sibling combinator ('~').
type previousSiblingIterator struct {
	cur ElementLike
}

func newPreviousSiblingIterator(from ElementLike) *previousSiblingIterator {
	return &previousSiblingIterator{cur: from}
}

func (it *previousSiblingIterator) Next() (ElementLike, bool) {
	if it.cur == nil {
		return nil, false
	}
	prev, ok := it.cur.PreviousSibling()
	if !ok {
		it.cur = nil
		return nil, false
	}
	it.cur = prev
	return prev, true
}

// immediatePreviousSiblingIterator yields only the adjacent previous
// sibling, for the next-sibling combinator ('+').
type immediatePreviousSiblingIterator struct {
	from ElementLike
	done bool
}

func newImmediatePreviousSiblingIterator(from ElementLike) *immediatePreviousSiblingIterator {
	return &immediatePreviousSiblingIterator{from: from}
}

func (it *immediatePreviousSiblingIterator) Next() (ElementLike, bool) {
	if it.done || it.from == nil {
		return nil, false
	}
	it.done = true
	return it.from.PreviousSibling()
}

// iteratorFor returns the traversal generator appropriate to combinator c,
// seeded at element el (the element the combinator's left-hand compound
// selector must match one of the candidates it yields). The column
// combinator always yields nothing: SVG documents have no notion of table
// columns, and matching it unconditionally fails (an explicit engine
// decision, since Selectors 4 leaves column semantics to table-layout
// languages this engine doesn't implement).
func iteratorFor(c Combinator, el ElementLike) elementIterator {
	switch c {
	case CombinatorDescendant:
		return newAncestorIterator(el)
	case CombinatorChild:
		return newParentIterator(el)
	case CombinatorNextSibling:
		return newImmediatePreviousSiblingIterator(el)
	case CombinatorSubsequentSibling:
		return newPreviousSiblingIterator(el)
	default: // CombinatorColumn, CombinatorNone
		return newEmptyIterator()
	}
}

type emptyIterator struct{}

func newEmptyIterator() *emptyIterator { return &emptyIterator{} }

func (*emptyIterator) Next() (ElementLike, bool) { return nil, false }
