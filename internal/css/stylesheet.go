package css

// SelectorRule pairs a parsed selector list with its declaration block and
// its position in source order, the unit the stylesheet applier (C7)
// iterates over.
type SelectorRule struct {
	Selectors   SelectorList
	Declarations []Declaration
	SourceOrder int
}

// Stylesheet is an ordered list of style rules. Every at-rule is dropped
// with a warning; this engine has no @media/@supports evaluation (spec
// Non-goals).
type Stylesheet struct {
	Rules []SelectorRule
}

// ParseStylesheet parses the contents of a <style> element or an external
// CSS resource into a Stylesheet, per spec §4.7. Rules with an invalid
// selector are dropped with a warning rather than aborting the whole sheet,
// matching CSS's error-tolerant parsing model. A rule whose declaration
// block is empty is kept, with no declarations.
func ParseStylesheet(src []byte) (Stylesheet, []Warning) {
	tok := NewTokenizer(src)
	var tokens []Token
	for {
		t := tok.Next()
		tokens = append(tokens, t)
		if t.IsEOF() {
			break
		}
	}

	rules, warnings := ParseRuleList(tokens)
	var sheet Stylesheet
	order := 0
	for _, r := range rules {
		if r.AtRule != nil {
			warnings = append(warnings, Warning{Reason: "at-rule \"@" + r.AtRule.Name + "\" is not supported", Offset: EndOfString})
			continue
		}
		qr := r.QualifiedRule

		selList, err := ParseSelectorList(Tokens(qr.Prelude))
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				warnings = append(warnings, Warning{Reason: pe.Reason, Offset: pe.Offset})
			}
			continue
		}

		decls, declWarnings := ParseDeclarationList(Tokens(qr.Block.Block))
		warnings = append(warnings, declWarnings...)

		sheet.Rules = append(sheet.Rules, SelectorRule{
			Selectors:    selList,
			Declarations: decls,
			SourceOrder:  order,
		})
		order++
	}

	return sheet, warnings
}

// ParseInlineDeclarations parses a style="..." attribute value into a
// declaration list, per spec §4.7 (an inline style's declarations always
// carry RankStyleAttribute or RankStyleAttributeImportant, never a
// specificity-ranked comparison).
func ParseInlineDeclarations(src []byte) ([]Declaration, []Warning) {
	tok := NewTokenizer(src)
	var tokens []Token
	for {
		t := tok.Next()
		tokens = append(tokens, t)
		if t.IsEOF() {
			break
		}
	}
	return ParseDeclarationList(tokens)
}
