package svg

import "github.com/mistlace/svgdoc/internal/css"

// ApplyStylesheet is the C7 stylesheet applier (spec §4.7): for every
// SelectorRule in sheet, in document order, test it against every element
// in doc and, on a match, feed each declaration into the element's
// property registry at rank (rule_specificity, rule_source_index).
func ApplyStylesheet(doc *Document, sheet css.Stylesheet) []css.Warning {
	var warnings []css.Warning
	root := doc.Root()
	visitAll(root, func(el Element) {
		reg := el.Registry()
		if reg == nil {
			return
		}
		for _, rule := range sheet.Rules {
			result := css.MatchSelectorList(rule.Selectors, el)
			if !result.Matched {
				continue
			}
			for _, decl := range rule.Declarations {
				band := css.RankNormal
				if decl.Important {
					band = css.RankImportant
				}
				rank := css.CascadeRank{
					Band:        band,
					Specificity: result.Specificity,
					SourceOrder: rule.SourceOrder,
				}
				warnings = append(warnings, reg.ParseDeclaration(decl, rank)...)
			}
		}
	})
	return warnings
}

// ApplyInlineStyle applies el's own parsed `style="..."` declarations at
// the inline-style rank, above every stylesheet rule except `!important`
// stylesheet declarations, but below an `!important` inline declaration
// (spec §4.7).
func ApplyInlineStyle(el Element) []css.Warning {
	reg := el.Registry()
	if reg == nil {
		return nil
	}
	var warnings []css.Warning
	for i, decl := range el.InlineDeclarations() {
		band := css.RankStyleAttribute
		if decl.Important {
			band = css.RankStyleAttributeImportant
		}
		rank := css.CascadeRank{Band: band, SourceOrder: i}
		warnings = append(warnings, reg.ParseDeclaration(decl, rank)...)
	}
	return warnings
}

// ApplyDocument runs the full cascade over doc: every document-level
// stylesheet (in the order they were collected during ingest), then every
// element's own inline style, last so RankStyleAttribute correctly
// out-ranks RankNormal regardless of DOM order.
func ApplyDocument(doc *Document) []css.Warning {
	var warnings []css.Warning
	for _, sheet := range doc.Stylesheets {
		warnings = append(warnings, ApplyStylesheet(doc, sheet)...)
	}
	visitAll(doc.Root(), func(el Element) {
		warnings = append(warnings, ApplyInlineStyle(el)...)
	})
	return warnings
}

// visitAll visits root and every descendant, in document order.
func visitAll(root Element, visit func(Element)) {
	visit(root)
	for child, ok := root.FirstChildElement(); ok; child, ok = child.NextSiblingElement() {
		visitAll(child, visit)
	}
}
