package css

import "strings"

// Declaration is a single "name: value" pair parsed out of a declaration
// list (a style attribute or a rule's block), per CSS Syntax Level 3 §5.4.6.
type Declaration struct {
	Name      string
	Values    []ComponentValue
	Offset    FileOffset
	Important bool
}

// AtRule is a parsed at-rule: name, prelude component values, and an
// optional block (nil for rules like @import terminated by ';').
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *ComponentValue // Kind == ComponentSimpleBlock when present
}

// QualifiedRule is a parsed qualified rule: a prelude (for a style rule,
// this is the as-yet-unparsed selector list) and a required block.
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   ComponentValue // Kind == ComponentSimpleBlock
	Offset  FileOffset
}

// Rule is either an AtRule or a QualifiedRule.
type Rule struct {
	AtRule        *AtRule
	QualifiedRule *QualifiedRule
}

// ParseDeclarationList parses the contents of a style attribute or a rule's
// body block into a list of declarations, discarding any embedded at-rules
// (none are meaningful inside a style-rule body for this engine) and any
// qualified rule that isn't itself a valid declaration. Malformed
// declarations are dropped, matching CSS's "throw away the rest of this
// declaration" recovery (spec §4.2), and do not abort the remaining list.
func ParseDeclarationList(tokens []Token) ([]Declaration, []Warning) {
	values := ParseComponentValues(tokens)
	var decls []Declaration
	var warnings []Warning

	i := 0
	for i < len(values) {
		v := values[i]
		if v.Kind == ComponentToken && v.Token.Type == WhitespaceToken {
			i++
			continue
		}
		if v.Kind == ComponentToken && v.Token.Type == SemicolonToken {
			i++
			continue
		}
		if v.Kind == ComponentToken && v.Token.Type == AtKeywordToken {
			// At-rules are consumed and discarded; not a recognized
			// declaration-list construct for this engine.
			j := i + 1
			for j < len(values) {
				if values[j].Kind == ComponentToken && values[j].Token.Type == SemicolonToken {
					j++
					break
				}
				if values[j].Kind == ComponentSimpleBlock && values[j].BlockStart.Type == LeftBraceToken {
					j++
					break
				}
				j++
			}
			warnings = append(warnings, Warning{Reason: "at-rules are not supported in a declaration list", Offset: v.Token.Offset})
			i = j
			continue
		}

		// Consume one declaration: up to (not including) the next top-level
		// semicolon.
		start := i
		for i < len(values) && !(values[i].Kind == ComponentToken && values[i].Token.Type == SemicolonToken) {
			i++
		}
		decl, ok, offset := parseOneDeclaration(values[start:i])
		if ok {
			decls = append(decls, decl)
		} else {
			warnings = append(warnings, Warning{Reason: "invalid declaration", Offset: offset})
		}
		if i < len(values) {
			i++ // consume the semicolon
		}
	}
	return decls, warnings
}

func parseOneDeclaration(values []ComponentValue) (Declaration, bool, FileOffset) {
	values = trimComponentWhitespace(values)
	if len(values) == 0 {
		return Declaration{}, false, EndOfString
	}
	if values[0].Kind != ComponentToken || values[0].Token.Type != IdentToken {
		return Declaration{}, false, componentOffset(values[0])
	}
	name := values[0].Token.Value
	offset := values[0].Token.Offset

	rest := trimComponentWhitespace(values[1:])
	if len(rest) == 0 || rest[0].Kind != ComponentToken || rest[0].Token.Type != ColonToken {
		return Declaration{}, false, offset
	}
	rest = trimComponentWhitespace(rest[1:])

	important := false
	if n := len(rest); n >= 2 {
		last := rest[n-1]
		secondLast := rest[n-2]
		if last.Kind == ComponentToken && last.Token.Type == IdentToken &&
			strings.EqualFold(last.Token.Value, "important") &&
			secondLast.Kind == ComponentToken && secondLast.Token.Type == DelimToken && secondLast.Token.Value == "!" {
			important = true
			rest = trimComponentWhitespace(rest[:n-2])
		}
	}

	return Declaration{Name: strings.ToLower(name), Values: rest, Offset: offset, Important: important}, true, offset
}

func trimComponentWhitespace(values []ComponentValue) []ComponentValue {
	start := 0
	for start < len(values) && values[start].Kind == ComponentToken && values[start].Token.Type == WhitespaceToken {
		start++
	}
	end := len(values)
	for end > start && values[end-1].Kind == ComponentToken && values[end-1].Token.Type == WhitespaceToken {
		end--
	}
	return values[start:end]
}

func componentOffset(v ComponentValue) FileOffset {
	switch v.Kind {
	case ComponentToken:
		return v.Token.Offset
	case ComponentFunction:
		if len(v.Function) > 0 {
			return componentOffset(v.Function[0])
		}
	case ComponentSimpleBlock:
		return v.BlockStart.Offset
	}
	return EndOfString
}

// ParseRuleList parses a stylesheet body (the top level, or an at-rule's
// block) into a list of Rules, per CSS Syntax Level 3 §5.4.1. CDO/CDC
// tokens and whitespace are ignored at the top level.
func ParseRuleList(tokens []Token) ([]Rule, []Warning) {
	values := ParseComponentValues(tokens)
	var rules []Rule
	var warnings []Warning

	i := 0
	for i < len(values) {
		v := values[i]
		if v.Kind == ComponentToken && (v.Token.Type == WhitespaceToken || v.Token.Type == CDOToken || v.Token.Type == CDCToken) {
			i++
			continue
		}
		if v.Kind == ComponentToken && v.Token.Type == AtKeywordToken {
			at, next := consumeAtRule(values, i)
			rules = append(rules, Rule{AtRule: &at})
			i = next
			continue
		}

		qr, next, ok := consumeQualifiedRule(values, i)
		if ok {
			rules = append(rules, Rule{QualifiedRule: &qr})
		} else {
			warnings = append(warnings, Warning{Reason: "invalid rule, expected a block", Offset: componentOffset(v)})
		}
		i = next
	}
	return rules, warnings
}

func consumeAtRule(values []ComponentValue, i int) (AtRule, int) {
	name := values[i].Token.Value
	offset := values[i].Token.Offset
	_ = offset
	i++
	var prelude []ComponentValue
	for i < len(values) {
		v := values[i]
		if v.Kind == ComponentToken && v.Token.Type == SemicolonToken {
			i++
			return AtRule{Name: name, Prelude: prelude}, i
		}
		if v.Kind == ComponentSimpleBlock && v.BlockStart.Type == LeftBraceToken {
			block := v
			i++
			return AtRule{Name: name, Prelude: prelude, Block: &block}, i
		}
		prelude = append(prelude, v)
		i++
	}
	return AtRule{Name: name, Prelude: prelude}, i
}

func consumeQualifiedRule(values []ComponentValue, i int) (QualifiedRule, int, bool) {
	start := i
	offset := componentOffset(values[i])
	var prelude []ComponentValue
	for i < len(values) {
		v := values[i]
		if v.Kind == ComponentSimpleBlock && v.BlockStart.Type == LeftBraceToken {
			i++
			return QualifiedRule{Prelude: prelude, Block: v, Offset: offset}, i, true
		}
		prelude = append(prelude, v)
		i++
	}
	// Ran off the end of input without a block: not a valid rule (spec
	// §4.2's "EOF while consuming a qualified rule is a parse error").
	_ = start
	return QualifiedRule{}, i, false
}
