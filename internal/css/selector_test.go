package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeElement is a minimal in-memory tree used only to exercise the
// selector matcher in isolation from the root package's entity store.
type fakeElement struct {
	name     string
	id       string
	classes  []string
	attrs    map[string]string
	parent   *fakeElement
	children []*fakeElement
}

func newFake(name string, children ...*fakeElement) *fakeElement {
	el := &fakeElement{name: name, attrs: map[string]string{}}
	for _, c := range children {
		c.parent = el
		el.children = append(el.children, c)
	}
	return el
}

func (f *fakeElement) Parent() (ElementLike, bool) {
	if f.parent == nil {
		return nil, false
	}
	return f.parent, true
}

func (f *fakeElement) FirstChild() (ElementLike, bool) {
	if len(f.children) == 0 {
		return nil, false
	}
	return f.children[0], true
}

func (f *fakeElement) LastChild() (ElementLike, bool) {
	if len(f.children) == 0 {
		return nil, false
	}
	return f.children[len(f.children)-1], true
}

func (f *fakeElement) indexInParent() int {
	if f.parent == nil {
		return -1
	}
	for i, c := range f.parent.children {
		if c == f {
			return i
		}
	}
	return -1
}

func (f *fakeElement) PreviousSibling() (ElementLike, bool) {
	i := f.indexInParent()
	if i <= 0 {
		return nil, false
	}
	return f.parent.children[i-1], true
}

func (f *fakeElement) NextSibling() (ElementLike, bool) {
	i := f.indexInParent()
	if i < 0 || i+1 >= len(f.parent.children) {
		return nil, false
	}
	return f.parent.children[i+1], true
}

func (f *fakeElement) LocalName() string    { return f.name }
func (f *fakeElement) NamespaceURI() string { return "http://www.w3.org/2000/svg" }
func (f *fakeElement) ID() string           { return f.id }
func (f *fakeElement) ClassList() []string  { return f.classes }
func (f *fakeElement) GetAttribute(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}
func (f *fakeElement) HasAttribute(name string) bool {
	_, ok := f.attrs[name]
	return ok
}
func (f *fakeElement) SameElement(other ElementLike) bool {
	o, ok := other.(*fakeElement)
	return ok && o == f
}

func parseSelector(t *testing.T, src string) SelectorList {
	t.Helper()
	tok := NewTokenizerString(src)
	var toks []Token
	for {
		tt := tok.Next()
		if tt.IsEOF() {
			break
		}
		toks = append(toks, tt)
	}
	list, err := ParseSelectorList(toks)
	require.NoError(t, err)
	return list
}

func TestNthChildOfTypeFilter(t *testing.T) {
	// <root><mid><a/><b/><a/><b/><a/><b/><a/><b/></mid></root>
	as := []*fakeElement{newFake("a"), newFake("a"), newFake("a"), newFake("a")}
	var kids []*fakeElement
	for i := 0; i < 4; i++ {
		kids = append(kids, as[i], newFake("b"))
	}
	mid := newFake("mid", kids...)
	newFake("root", mid)

	list := parseSelector(t, "a:nth-child(2n of a)")

	var matched []*fakeElement
	for _, a := range as {
		if MatchComplexSelector(list.Selectors[0], a) {
			matched = append(matched, a)
		}
	}
	require.Len(t, matched, 2)
	assert.Same(t, as[1], matched[0])
	assert.Same(t, as[3], matched[1])
}

func TestDescendantAndChildCombinators(t *testing.T) {
	leaf := newFake("circle")
	g := newFake("g", leaf)
	newFake("svg", g)

	assert.True(t, MatchComplexSelector(parseSelector(t, "svg circle").Selectors[0], leaf))
	assert.False(t, MatchComplexSelector(parseSelector(t, "svg > circle").Selectors[0], leaf))
	assert.True(t, MatchComplexSelector(parseSelector(t, "svg > g > circle").Selectors[0], leaf))
}

func TestAttributeAndClassSelectors(t *testing.T) {
	el := newFake("rect")
	el.classes = []string{"foo", "bar"}
	el.attrs["data-x"] = "Hello"

	assert.True(t, MatchComplexSelector(parseSelector(t, ".foo").Selectors[0], el))
	assert.False(t, MatchComplexSelector(parseSelector(t, ".baz").Selectors[0], el))
	assert.True(t, MatchComplexSelector(parseSelector(t, "[data-x=hello i]").Selectors[0], el))
	assert.False(t, MatchComplexSelector(parseSelector(t, "[data-x=hello]").Selectors[0], el))
}

func TestPseudoElementNeverMatches(t *testing.T) {
	el := newFake("rect")
	assert.False(t, MatchComplexSelector(parseSelector(t, "rect::before").Selectors[0], el))
}

func TestColumnCombinatorNeverMatches(t *testing.T) {
	a := newFake("col")
	b := newFake("td", a)
	_ = b
	assert.False(t, MatchComplexSelector(parseSelector(t, "col || td").Selectors[0], a))
}

func TestSpecificityOrdering(t *testing.T) {
	idSel := parseSelector(t, "#x").Selectors[0]
	classSel := parseSelector(t, ".x").Selectors[0]
	typeSel := parseSelector(t, "rect").Selectors[0]

	assert.True(t, classSel.Specificity().Less(idSel.Specificity()))
	assert.True(t, typeSel.Specificity().Less(classSel.Specificity()))
}
