package svg

import "github.com/mistlace/svgdoc/internal/css"

// Element is the C9 DOM facade: a thin, copyable handle onto one entity in
// a Document's Store (spec §4.9). It's the type application code and the
// renderer interact with instead of EntityId/Store directly.
type Element struct {
	doc *Document
	id  EntityId
}

// Document returns the owning document (spec §4.9's owner_document).
func (e Element) Document() *Document { return e.doc }

// RawID returns the raw EntityId backing this handle, for callers that
// need to round-trip through the Store directly (ingest, tests).
func (e Element) RawID() EntityId { return e.id }

// Valid reports whether the handle still refers to a live entity.
func (e Element) Valid() bool { return e.doc != nil && e.doc.store.Contains(e.id) }

// Type returns the element's type tag.
func (e Element) Type() TypeTag { return e.doc.store.TypeTag(e.id) }

// TypeString returns the element's tag name, e.g. "circle".
func (e Element) TypeString() string { return e.Type().String() }

// Kind returns the element's per-type typed component (nil if none).
func (e Element) Kind() ElementData { return e.doc.store.Kind(e.id) }

// Registry returns the element's property registry.
func (e Element) Registry() *PropertyRegistry { return e.doc.store.Registry(e.id) }

func (e Element) rec() *entityRecord {
	rec, _ := e.doc.store.record(e.id)
	return rec
}

func (e Element) wrap(id EntityId, ok bool) (Element, bool) {
	if !ok {
		return Element{}, false
	}
	return Element{doc: e.doc, id: id}, true
}

// Tree navigation (spec §4.9), as concrete Element handles for use by
// ingest, the renderer, and the rest of this package.
func (e Element) ParentElement() (Element, bool)          { return e.wrap(e.doc.store.Parent(e.id)) }
func (e Element) FirstChildElement() (Element, bool)      { return e.wrap(e.doc.store.FirstChild(e.id)) }
func (e Element) LastChildElement() (Element, bool)       { return e.wrap(e.doc.store.LastChild(e.id)) }
func (e Element) PreviousSiblingElement() (Element, bool) { return e.wrap(e.doc.store.PreviousSibling(e.id)) }
func (e Element) NextSiblingElement() (Element, bool)     { return e.wrap(e.doc.store.NextSibling(e.id)) }

// Parent, FirstChild, LastChild, PreviousSibling, NextSibling implement
// internal/css.ElementLike so the C6 selector matcher's traversal
// generators can run directly against a live document.
func (e Element) Parent() (css.ElementLike, bool) {
	el, ok := e.ParentElement()
	return likeOrNil(el, ok)
}
func (e Element) FirstChild() (css.ElementLike, bool) {
	el, ok := e.FirstChildElement()
	return likeOrNil(el, ok)
}
func (e Element) LastChild() (css.ElementLike, bool) {
	el, ok := e.LastChildElement()
	return likeOrNil(el, ok)
}
func (e Element) PreviousSibling() (css.ElementLike, bool) {
	el, ok := e.PreviousSiblingElement()
	return likeOrNil(el, ok)
}
func (e Element) NextSibling() (css.ElementLike, bool) {
	el, ok := e.NextSiblingElement()
	return likeOrNil(el, ok)
}

func likeOrNil(el Element, ok bool) (css.ElementLike, bool) {
	if !ok {
		return nil, false
	}
	return el, true
}

// Children returns e's children in document order.
func (e Element) Children() []Element {
	ids := e.doc.store.Children(e.id)
	out := make([]Element, len(ids))
	for i, id := range ids {
		out[i] = Element{doc: e.doc, id: id}
	}
	return out
}

// Tree mutation (spec §4.9, delegating straight to the C4 store).
func (e Element) AppendChild(child Element)               { e.doc.store.AppendChild(e.id, child.id) }
func (e Element) InsertBefore(child, reference Element)   { e.doc.store.InsertBefore(e.id, child.id, reference.id) }
func (e Element) ReplaceChild(newChild, oldChild Element) { e.doc.store.ReplaceChild(e.id, newChild.id, oldChild.id) }
func (e Element) RemoveChild(child Element)                { e.doc.store.RemoveChild(e.id, child.id) }
func (e Element) Remove()                                  { e.doc.store.Remove(e.id) }

// Id returns the element's `id` attribute value ("" if unset).
func (e Element) Id() string {
	if rec := e.rec(); rec != nil {
		return rec.id
	}
	return ""
}

// ID satisfies internal/css.ElementLike; it's an alias for Id.
func (e Element) ID() string { return e.Id() }

// SetId sets the element's `id` attribute.
func (e Element) SetId(v string) {
	if rec := e.rec(); rec != nil {
		rec.id = v
	}
}

// ClassName returns the raw `class` attribute value, space-joined.
func (e Element) ClassName() string {
	rec := e.rec()
	if rec == nil {
		return ""
	}
	out := ""
	for i, c := range rec.class {
		if i > 0 {
			out += " "
		}
		out += c
	}
	return out
}

// SetClassName replaces the element's class list from a space-separated
// string.
func (e Element) SetClassName(v string) {
	rec := e.rec()
	if rec == nil {
		return
	}
	rec.class = splitClassList(v)
}

func splitClassList(v string) []string {
	var out []string
	start := -1
	for i, r := range v {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if start >= 0 {
				out = append(out, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, v[start:])
	}
	return out
}

// SetStyle parses raw as an inline declaration list and stores it as the
// element's `style` attribute (spec §4.8/§6).
func (e Element) SetStyle(raw string) []css.Warning {
	rec := e.rec()
	if rec == nil {
		return nil
	}
	decls, warnings := css.ParseInlineDeclarations([]byte(raw))
	rec.inline = decls
	return warnings
}

// Transform returns the element's raw `transform` attribute text.
func (e Element) Transform() string {
	if rec := e.rec(); rec != nil {
		return rec.transform
	}
	return ""
}

// SetTransform sets the element's raw `transform` attribute text.
func (e Element) SetTransform(v string) {
	if rec := e.rec(); rec != nil {
		rec.transform = v
	}
}

// InlineDeclarations returns the element's parsed `style="..."` content.
func (e Element) InlineDeclarations() []css.Declaration {
	if rec := e.rec(); rec != nil {
		return rec.inline
	}
	return nil
}

// TrySetPresentationAttribute attempts to parse value as one of the ten
// supported CSS properties at the presentation-attribute rank (spec
// §4.5/§4.8). ok is false when name isn't a recognized property name, in
// which case the caller should fall back to the element's own attribute
// handling (geometry like cx/cy/r, etc.).
func (e Element) TrySetPresentationAttribute(name, value string) (ok bool, err error) {
	reg := e.Registry()
	if reg == nil {
		return false, nil
	}
	return reg.ParsePresentationAttribute(name, value)
}

// HasAttribute, GetAttribute, SetAttribute, RemoveAttribute operate on the
// raw attribute table ingest populates (everything that isn't routed to a
// typed ElementData field or the property registry).
func (e Element) HasAttribute(name string) bool {
	rec := e.rec()
	if rec == nil {
		return false
	}
	_, ok := rec.attrs[name]
	return ok
}

func (e Element) GetAttribute(name string) (string, bool) {
	rec := e.rec()
	if rec == nil {
		return "", false
	}
	v, ok := rec.attrs[name]
	return v, ok
}

func (e Element) SetAttribute(name, value string) {
	rec := e.rec()
	if rec == nil {
		return
	}
	if rec.attrs == nil {
		rec.attrs = map[string]string{}
	}
	if _, exists := rec.attrs[name]; !exists {
		rec.attrKeys = append(rec.attrKeys, name)
	}
	rec.attrs[name] = value
}

func (e Element) RemoveAttribute(name string) {
	rec := e.rec()
	if rec == nil {
		return
	}
	delete(rec.attrs, name)
	for i, k := range rec.attrKeys {
		if k == name {
			rec.attrKeys = append(rec.attrKeys[:i], rec.attrKeys[i+1:]...)
			break
		}
	}
}

// AttributeNames returns attribute names in the order they were first set.
func (e Element) AttributeNames() []string {
	if rec := e.rec(); rec != nil {
		return rec.attrKeys
	}
	return nil
}

// QuerySelector parses selector and returns the first descendant matching
// it in document order (spec §4.9), or ok=false if none match or the
// selector fails to parse.
func (e Element) QuerySelector(selector string) (Element, bool, error) {
	list, err := parseSelectorString(selector)
	if err != nil {
		return Element{}, false, err
	}
	var found Element
	ok := false
	walkDescendants(e, func(cand Element) bool {
		if css.MatchSelectorList(list, cand).Matched {
			found, ok = cand, true
			return false
		}
		return true
	})
	return found, ok, nil
}

// QuerySelectorAll returns every descendant matching selector, in document
// order.
func (e Element) QuerySelectorAll(selector string) ([]Element, error) {
	list, err := parseSelectorString(selector)
	if err != nil {
		return nil, err
	}
	var out []Element
	walkDescendants(e, func(cand Element) bool {
		if css.MatchSelectorList(list, cand).Matched {
			out = append(out, cand)
		}
		return true
	})
	return out, nil
}

func parseSelectorString(selector string) (css.SelectorList, error) {
	tok := css.NewTokenizerString(selector)
	var tokens []css.Token
	for {
		t := tok.Next()
		if t.IsEOF() {
			break
		}
		tokens = append(tokens, t)
	}
	return css.ParseSelectorList(tokens)
}

// walkDescendants visits every descendant of root in document order,
// stopping early if visit returns false.
func walkDescendants(root Element, visit func(Element) bool) {
	child, ok := root.FirstChildElement()
	for ok {
		if !visit(child) {
			return
		}
		walkDescendants(child, visit)
		child, ok = child.NextSiblingElement()
	}
}

// GetComputedStyle resolves the cascaded value of every supported property
// for e, walking ancestors for inherited/unresolved slots (spec §4.9).
func (e Element) GetComputedStyle() ComputedStyle {
	return ComputedStyle{
		Color:            resolveProperty(e, func(r *PropertyRegistry) *Slot[css.Color] { return &r.Color }, initialColor),
		Fill:             resolveProperty(e, func(r *PropertyRegistry) *Slot[css.Paint] { return &r.Fill }, initialFill),
		Stroke:           resolveProperty(e, func(r *PropertyRegistry) *Slot[css.Paint] { return &r.Stroke }, initialStroke),
		StrokeOpacity:    resolveProperty(e, func(r *PropertyRegistry) *Slot[float64] { return &r.StrokeOpacity }, initialStrokeOpacity),
		StrokeWidth:      resolveProperty(e, func(r *PropertyRegistry) *Slot[css.Length] { return &r.StrokeWidth }, initialStrokeWidth),
		StrokeLinecap:    resolveProperty(e, func(r *PropertyRegistry) *Slot[css.LineCap] { return &r.StrokeLinecap }, css.CapButt),
		StrokeLinejoin:   resolveProperty(e, func(r *PropertyRegistry) *Slot[css.LineJoin] { return &r.StrokeLinejoin }, css.JoinMiter),
		StrokeMiterlimit: resolveProperty(e, func(r *PropertyRegistry) *Slot[float64] { return &r.StrokeMiterlimit }, initialStrokeMiterlimit),
		StrokeDasharray:  resolveProperty(e, func(r *PropertyRegistry) *Slot[[]css.Length] { return &r.StrokeDasharray }, nil),
		StrokeDashoffset: resolveProperty(e, func(r *PropertyRegistry) *Slot[css.Length] { return &r.StrokeDashoffset }, initialStrokeDashoffset),
	}
}

// ComputedStyle is the fully resolved value of every supported property
// for one element (spec §4.9's get_computed_style result).
type ComputedStyle struct {
	Color            css.Color
	Fill             css.Paint
	Stroke           css.Paint
	StrokeOpacity    float64
	StrokeWidth      css.Length
	StrokeLinecap    css.LineCap
	StrokeLinejoin   css.LineJoin
	StrokeMiterlimit float64
	StrokeDasharray  []css.Length
	StrokeDashoffset css.Length
}

// resolveProperty implements the property table's resolution order (spec
// §4.5): an explicit StateValue wins outright; StateInitial stops the walk
// at the initial value; StateInherit/StateUnset (and an element with no
// write at all, since every supported property is defined as inherited)
// continue to the parent; running off the root falls back to initial.
func resolveProperty[T any](el Element, slot func(*PropertyRegistry) *Slot[T], initial T) T {
	cur := el
	for {
		reg := cur.Registry()
		if reg != nil {
			s := slot(reg)
			switch {
			case s.State == StateValue:
				return s.Value
			case s.State == StateInitial:
				return initial
			}
		}
		parent, ok := cur.ParentElement()
		if !ok {
			return initial
		}
		cur = parent
	}
}

// ElementLike implementation, so the C6 selector matcher can run directly
// against live documents.
func (e Element) LocalName() string    { return e.TypeString() }
func (e Element) NamespaceURI() string { return svgNamespace }
func (e Element) ClassList() []string {
	if rec := e.rec(); rec != nil {
		return rec.class
	}
	return nil
}
func (e Element) SameElement(other css.ElementLike) bool {
	o, ok := other.(Element)
	return ok && o.doc == e.doc && o.id == e.id
}

const svgNamespace = "http://www.w3.org/2000/svg"

var _ css.ElementLike = Element{}
