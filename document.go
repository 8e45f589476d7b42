package svg

import "github.com/mistlace/svgdoc/internal/css"

// Document is the root of one ingested SVG document: its element store and
// the root <svg> entity (spec §3's "Document" data-model entry).
type Document struct {
	store      *Store
	root       EntityId
	Stylesheets []css.Stylesheet // <style> elements and any externally supplied sheets, in document order
}

// NewDocument creates an empty document with a root <svg> entity and no
// children.
func NewDocument() *Document {
	doc := &Document{store: NewStore()}
	doc.root = doc.store.Create(TypeSVG)
	doc.store.SetKind(doc.root, &RootData{})
	return doc
}

// Root returns the document's root <svg> element handle.
func (d *Document) Root() Element { return Element{doc: d, id: d.root} }

// Store exposes the underlying C4 element store for callers (ingest, the
// renderer) that need direct access.
func (d *Document) Store() *Store { return d.store }

// NewElement creates a detached entity of the given type, owned by d.
func (d *Document) NewElement(tag TypeTag) Element {
	return Element{doc: d, id: d.store.Create(tag)}
}

// Destroy destroys el and every descendant, via the store.
func (d *Document) Destroy(el Element) {
	for _, child := range el.Children() {
		d.Destroy(child)
	}
	d.store.Destroy(el.id)
}
