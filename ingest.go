package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mistlace/svgdoc/internal/css"
)

const xlinkNamespace = "http://www.w3.org/1999/xlink"

// IngestOptions tunes XML ingest behavior (spec §4.8).
type IngestOptions struct {
	// DisableUserAttributes demotes genuinely unrecognized attribute names
	// (neither a structural attribute, a supported CSS property, nor a
	// type-specific attribute) to warnings instead of storing them as
	// custom attributes.
	DisableUserAttributes bool
}

// IngestError is a fatal XML well-formedness or structural error, carrying
// a resolved source position (spec §4.8/§7).
type IngestError struct {
	Reason string
	Line   int
	Column int
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Reason, e.Line, e.Column)
}

// Ingest parses an SVG XML document into a Document, per spec §4.8. It
// returns a fatal *IngestError for malformed XML or a non-SVG/non-default-
// namespace root; anything else recoverable is reported as a Warning
// alongside the result.
func Ingest(r io.Reader, opts IngestOptions) (*Document, []css.Warning, error) {
	dec := xml.NewDecoder(r)
	var warnings []css.Warning

	doc := &Document{store: NewStore()}
	var cur Element
	rootSeen := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := approximateLineCol(dec)
			return nil, warnings, &IngestError{Reason: err.Error(), Line: line, Column: col}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !rootSeen {
				if t.Name.Local != "svg" || (t.Name.Space != "" && t.Name.Space != svgNamespace) {
					line, col := approximateLineCol(dec)
					return nil, warnings, &IngestError{
						Reason: fmt.Sprintf("root element must be svg in the SVG namespace, got %q in %q", t.Name.Local, t.Name.Space),
						Line:   line, Column: col,
					}
				}
				rootSeen = true
				doc.root = doc.store.Create(TypeSVG)
				doc.store.SetKind(doc.root, NewElementData(TypeSVG))
				cur = Element{doc: doc, id: doc.root}
				w := applyAttributes(cur, t.Attr, opts)
				warnings = append(warnings, w...)
				continue
			}

			if t.Name.Space != "" && t.Name.Space != svgNamespace {
				warnings = append(warnings, css.Warning{
					Reason: fmt.Sprintf("discarding element %q in unrecognized namespace %q", t.Name.Local, t.Name.Space),
				})
				// Skip this element and its subtree entirely.
				if err := dec.Skip(); err != nil {
					line, col := approximateLineCol(dec)
					return nil, warnings, &IngestError{Reason: err.Error(), Line: line, Column: col}
				}
				continue
			}

			tag, known := TypeTagByName(t.Name.Local)
			if !known {
				tag = TypeUnknown
			}
			child := doc.NewElement(tag)
			if data := NewElementData(tag); data != nil {
				doc.store.SetKind(child.id, data)
			}
			if !known {
				child.SetAttribute("__unknown_tag__", t.Name.Local)
			}
			cur.AppendChild(child)
			w := applyAttributes(child, t.Attr, opts)
			warnings = append(warnings, w...)
			cur = child

		case xml.EndElement:
			if parent, ok := cur.ParentElement(); ok {
				finishElement(cur, &warnings)
				cur = parent
			} else if cur.doc == doc {
				finishElement(cur, &warnings)
			}

		case xml.CharData:
			if rootSeen && (cur.Type() == TypeStyle || cur.Type() == TypeText || cur.Type() == TypeTSpan) {
				appendCharacterData(doc, cur, string(t))
			}
		}
	}

	if !rootSeen {
		return nil, warnings, &IngestError{Reason: "no svg root element found", Line: 1, Column: 0}
	}
	return doc, warnings, nil
}

func approximateLineCol(dec *xml.Decoder) (int, int) {
	line, col := dec.InputPos()
	return line, col
}

// finishElement does end-of-element bookkeeping: for a <style> element,
// parses its accumulated character data as a stylesheet and registers it on
// the document; for a <stop>, folds it into its parent gradient's stop
// list and destroys the standalone entity (spec §4.8's stop-element
// handling is purely structural, not a rendered node in its own right).
func finishElement(el Element, warnings *[]css.Warning) {
	switch el.Type() {
	case TypeStyle:
		data, _ := el.Kind().(*StyleData)
		if data == nil {
			return
		}
		el.doc.Stylesheets = append(el.doc.Stylesheets, data.Sheet)
		*warnings = append(*warnings, data.Warnings...)

	case TypeStop:
		parent, ok := el.ParentElement()
		if !ok {
			return
		}
		stop, _ := el.Kind().(*StopData)
		if stop == nil {
			return
		}
		if !stop.HasOpacity {
			stop.StopOpacity = 1
		}
		entry := PaintStop{Offset: stop.Offset, Color: stop.Color, StopOpacity: stop.StopOpacity}
		switch g := parent.Kind().(type) {
		case *LinearGradientData:
			g.Stops = append(g.Stops, entry)
		case *RadialGradientData:
			g.Stops = append(g.Stops, entry)
		default:
			return
		}
		el.doc.Destroy(el)
	}
}

func appendCharacterData(doc *Document, el Element, text string) {
	if el.Type() == TypeStyle {
		data, _ := el.Kind().(*StyleData)
		if data == nil {
			data = &StyleData{}
			doc.store.SetKind(el.id, data)
		}
		sheet, warnings := css.ParseStylesheet([]byte(text))
		data.Sheet.Rules = append(data.Sheet.Rules, sheet.Rules...)
		data.Warnings = append(data.Warnings, warnings...)
		return
	}
	if td, _ := el.Kind().(*TextData); td != nil {
		td.CharacterData += text
	} else {
		td := &TextData{CharacterData: text}
		doc.store.SetKind(el.id, td)
	}
}

// applyAttributes implements spec §4.8's per-attribute normalize/route
// pipeline.
func applyAttributes(el Element, attrs []xml.Attr, opts IngestOptions) []css.Warning {
	var warnings []css.Warning
	for _, a := range attrs {
		name := normalizeAttrName(a.Name)
		if name == "xmlns" || strings.HasPrefix(a.Name.Space, "xmlns") {
			continue // namespace declarations are structural, not element data
		}

		switch name {
		case "id":
			el.SetId(a.Value)
			continue
		case "class":
			el.SetClassName(a.Value)
			continue
		case "style":
			warnings = append(warnings, el.SetStyle(a.Value)...)
			continue
		case "transform":
			el.SetTransform(a.Value)
			continue
		}

		if ok, err := el.TrySetPresentationAttribute(name, a.Value); ok {
			if err != nil {
				warnings = append(warnings, css.Warning{Reason: err.Error()})
			}
			continue
		}

		if ok, err := applyTypedAttribute(el, name, a.Value); ok {
			if err != nil {
				warnings = append(warnings, css.Warning{Reason: err.Error()})
			}
			continue
		}

		if opts.DisableUserAttributes {
			warnings = append(warnings, css.Warning{Reason: fmt.Sprintf("ignoring user attribute %q", name)})
			continue
		}
		el.SetAttribute(name, a.Value)
	}
	return warnings
}

// normalizeAttrName maps an `xlink:*` attribute to its non-namespaced
// equivalent (spec §4.8) and otherwise returns the local name.
func normalizeAttrName(name xml.Name) string {
	if name.Space == xlinkNamespace || name.Space == "xlink" {
		if name.Local == "href" {
			return "href"
		}
		return name.Local
	}
	return name.Local
}
