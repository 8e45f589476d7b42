package css

import "strings"

// ParseSelectorList parses a selector list (a rule's prelude, or a
// standalone argument to query_selector) per Selectors Level 4 §4, §16.
func ParseSelectorList(tokens []Token) (SelectorList, error) {
	groups := splitTopLevelCommas(tokens)
	list := SelectorList{}
	for _, g := range groups {
		g = trimWhitespace(g)
		if len(g) == 0 {
			return SelectorList{}, errf(KindSyntax, EndOfString, "empty selector")
		}
		sel, err := parseComplexSelector(g)
		if err != nil {
			return SelectorList{}, err
		}
		list.Selectors = append(list.Selectors, sel)
	}
	return list, nil
}

// splitTopLevelCommas splits tokens on CommaToken, ignoring commas nested
// inside parentheses or brackets (e.g. the argument list of :is(a, b)).
func splitTopLevelCommas(tokens []Token) [][]Token {
	var groups [][]Token
	depth := 0
	start := 0
	for i, t := range tokens {
		switch t.Type {
		case LeftParenToken, LeftBracketToken, FunctionToken:
			depth++
		case RightParenToken, RightBracketToken:
			if depth > 0 {
				depth--
			}
		case CommaToken:
			if depth == 0 {
				groups = append(groups, tokens[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, tokens[start:])
	return groups
}

func parseComplexSelector(tokens []Token) (ComplexSelector, error) {
	var sel ComplexSelector
	i := 0
	n := len(tokens)

	for {
		compound, next, err := parseCompoundSelector(tokens, i)
		if err != nil {
			return ComplexSelector{}, err
		}
		i = next

		// Determine the combinator (if any) joining this compound to the
		// next one. Leading/trailing whitespace around an explicit
		// combinator is insignificant; a bare run of whitespace with no
		// explicit combinator token means CombinatorDescendant.
		sawWhitespace := false
		for i < n && tokens[i].Type == WhitespaceToken {
			sawWhitespace = true
			i++
		}
		if i >= n {
			sel.Parts = append(sel.Parts, complexPart{Compound: compound, Combinator: CombinatorNone})
			break
		}

		comb, consumed, ok := parseCombinatorToken(tokens, i)
		if ok {
			i = consumed
			for i < n && tokens[i].Type == WhitespaceToken {
				i++
			}
			sel.Parts = append(sel.Parts, complexPart{Compound: compound, Combinator: comb})
			continue
		}

		if sawWhitespace {
			sel.Parts = append(sel.Parts, complexPart{Compound: compound, Combinator: CombinatorDescendant})
			continue
		}

		return ComplexSelector{}, errf(KindSyntax, tokens[i].Offset, "unexpected token in selector")
	}

	return sel, nil
}

func parseCombinatorToken(tokens []Token, i int) (Combinator, int, bool) {
	if i >= len(tokens) {
		return 0, i, false
	}
	t := tokens[i]
	if t.Type != DelimToken {
		return 0, i, false
	}
	switch t.Value {
	case ">":
		return CombinatorChild, i + 1, true
	case "+":
		return CombinatorNextSibling, i + 1, true
	case "~":
		return CombinatorSubsequentSibling, i + 1, true
	case "|":
		if i+1 < len(tokens) && tokens[i+1].Type == DelimToken && tokens[i+1].Value == "|" {
			return CombinatorColumn, i + 2, true
		}
		return 0, i, false
	default:
		return 0, i, false
	}
}

// parseCompoundSelector consumes one run of simple selectors with no
// separating combinator, starting at tokens[i].
func parseCompoundSelector(tokens []Token, i int) (CompoundSelector, int, error) {
	var compound CompoundSelector
	n := len(tokens)
	sawAny := false

	for i < n {
		t := tokens[i]
		switch {
		case t.Type == IdentToken || (t.Type == DelimToken && t.Value == "*"):
			wq, next, err := parseWqNameAt(tokens, i)
			if err != nil {
				return CompoundSelector{}, i, err
			}
			kind := SimpleType
			if wq.Name == "*" {
				kind = SimpleUniversal
			}
			compound.Simple = append(compound.Simple, SimpleSelector{Kind: kind, TypeName: wq})
			i = next
			sawAny = true

		case t.Type == DelimToken && t.Value == "|":
			wq, next, err := parseWqNameAt(tokens, i)
			if err != nil {
				return CompoundSelector{}, i, err
			}
			kind := SimpleType
			if wq.Name == "*" {
				kind = SimpleUniversal
			}
			compound.Simple = append(compound.Simple, SimpleSelector{Kind: kind, TypeName: wq})
			i = next
			sawAny = true

		case t.Type == HashToken:
			compound.Simple = append(compound.Simple, SimpleSelector{Kind: SimpleID, Value: t.Value})
			i++
			sawAny = true

		case t.Type == DelimToken && t.Value == ".":
			if i+1 >= n || tokens[i+1].Type != IdentToken {
				return CompoundSelector{}, i, errf(KindSyntax, t.Offset, "expected a class name")
			}
			compound.Simple = append(compound.Simple, SimpleSelector{Kind: SimpleClass, Value: tokens[i+1].Value})
			i += 2
			sawAny = true

		case t.Type == LeftBracketToken:
			attr, next, err := parseAttributeSelector(tokens, i)
			if err != nil {
				return CompoundSelector{}, i, err
			}
			compound.Simple = append(compound.Simple, attr)
			i = next
			sawAny = true

		case t.Type == ColonToken:
			ss, next, err := parsePseudo(tokens, i)
			if err != nil {
				return CompoundSelector{}, i, err
			}
			compound.Simple = append(compound.Simple, ss)
			i = next
			sawAny = true

		default:
			if !sawAny {
				return CompoundSelector{}, i, errf(KindSyntax, t.Offset, "expected a simple selector")
			}
			return compound, i, nil
		}
	}

	if !sawAny {
		return CompoundSelector{}, i, errf(KindSyntax, EndOfString, "expected a simple selector")
	}
	return compound, i, nil
}

// parseWqNameAt parses a (possibly namespace-prefixed) type selector or
// universal selector starting at tokens[i].
func parseWqNameAt(tokens []Token, i int) (WqName, int, error) {
	n := len(tokens)
	t := tokens[i]

	// '*|name' / '|name' forms: lookahead for '|' after this token.
	if i+1 < n && tokens[i+1].Type == DelimToken && tokens[i+1].Value == "|" {
		prefix := t.Value
		universalNs := t.Type == DelimToken && t.Value == "*"
		if i+2 >= n {
			return WqName{}, i, errf(KindSyntax, t.Offset, "expected a name after namespace prefix")
		}
		nameTok := tokens[i+2]
		name := nameTok.Value
		if nameTok.Type == DelimToken && nameTok.Value == "*" {
			name = "*"
		} else if nameTok.Type != IdentToken {
			return WqName{}, i, errf(KindSyntax, nameTok.Offset, "expected a name after namespace prefix")
		}
		return WqName{Prefix: prefix, HasPrefix: true, IsUniversalNs: universalNs, Name: name}, i + 3, nil
	}

	if t.Type == DelimToken && t.Value == "|" {
		if i+1 >= n {
			return WqName{}, i, errf(KindSyntax, t.Offset, "expected a name")
		}
		nameTok := tokens[i+1]
		name := nameTok.Value
		if nameTok.Type == DelimToken && nameTok.Value == "*" {
			name = "*"
		} else if nameTok.Type != IdentToken {
			return WqName{}, i, errf(KindSyntax, nameTok.Offset, "expected a name")
		}
		return WqName{HasPrefix: true, Name: name}, i + 2, nil
	}

	name := t.Value
	if t.Type == DelimToken && t.Value == "*" {
		name = "*"
	}
	return WqName{Name: name}, i + 1, nil
}

func parseAttributeSelector(tokens []Token, i int) (SimpleSelector, int, error) {
	n := len(tokens)
	i++ // consume '['
	for i < n && tokens[i].Type == WhitespaceToken {
		i++
	}
	if i >= n {
		return SimpleSelector{}, i, errf(KindSyntax, EndOfString, "unterminated attribute selector")
	}
	wq, next, err := parseWqNameAt(tokens, i)
	if err != nil {
		return SimpleSelector{}, i, err
	}
	i = next
	for i < n && tokens[i].Type == WhitespaceToken {
		i++
	}
	if i >= n {
		return SimpleSelector{}, i, errf(KindSyntax, EndOfString, "unterminated attribute selector")
	}
	if tokens[i].Type == RightBracketToken {
		return SimpleSelector{Kind: SimpleAttribute, AttrName: wq, AttrMatcher: AttrExists}, i + 1, nil
	}

	matcher, next, ok := parseAttrMatcher(tokens, i)
	if !ok {
		return SimpleSelector{}, i, errf(KindSyntax, tokens[i].Offset, "expected an attribute matcher")
	}
	i = next
	for i < n && tokens[i].Type == WhitespaceToken {
		i++
	}
	if i >= n || (tokens[i].Type != StringToken && tokens[i].Type != IdentToken) {
		off := EndOfString
		if i < n {
			off = tokens[i].Offset
		}
		return SimpleSelector{}, i, errf(KindSyntax, off, "expected an attribute value")
	}
	value := tokens[i].Value
	i++
	for i < n && tokens[i].Type == WhitespaceToken {
		i++
	}

	caseInsens := false
	if i < n && tokens[i].Type == IdentToken {
		switch strings.ToLower(tokens[i].Value) {
		case "i":
			caseInsens = true
			i++
		case "s":
			i++
		}
		for i < n && tokens[i].Type == WhitespaceToken {
			i++
		}
	}

	if i >= n || tokens[i].Type != RightBracketToken {
		off := EndOfString
		if i < n {
			off = tokens[i].Offset
		}
		return SimpleSelector{}, i, errf(KindSyntax, off, "expected ']'")
	}
	i++

	return SimpleSelector{
		Kind: SimpleAttribute, AttrName: wq, AttrMatcher: matcher,
		AttrValue: value, AttrCaseInsens: caseInsens,
	}, i, nil
}

func parseAttrMatcher(tokens []Token, i int) (AttrMatcher, int, bool) {
	n := len(tokens)
	if i >= n {
		return 0, i, false
	}
	t := tokens[i]
	if t.Type == DelimToken && t.Value == "=" {
		return AttrEquals, i + 1, true
	}
	if t.Type != DelimToken {
		return 0, i, false
	}
	if i+1 >= n || tokens[i+1].Type != DelimToken || tokens[i+1].Value != "=" {
		return 0, i, false
	}
	switch t.Value {
	case "~":
		return AttrIncludes, i + 2, true
	case "|":
		return AttrDashMatch, i + 2, true
	case "^":
		return AttrPrefixMatch, i + 2, true
	case "$":
		return AttrSuffixMatch, i + 2, true
	case "*":
		return AttrSubstringMatch, i + 2, true
	default:
		return 0, i, false
	}
}

// anbOfPseudoClasses take an An+B argument optionally followed by "of
// <selector-list>" (Selectors Level 4 §5.1).
var anbOfPseudoClasses = map[string]bool{
	"nth-child": true, "nth-last-child": true,
	"nth-of-type": true, "nth-last-of-type": true,
}

// noArgPseudoClasses are recognized pseudo-classes taking no function
// argument, per spec §4.5.
var noArgPseudoClasses = map[string]bool{
	"root": true, "empty": true, "first-child": true, "last-child": true,
	"only-child": true, "first-of-type": true, "last-of-type": true,
	"only-of-type": true, "hover": true, "active": true, "focus": true,
	"link": true, "visited": true,
}

func parsePseudo(tokens []Token, i int) (SimpleSelector, int, error) {
	n := len(tokens)
	i++ // consume ':'
	kind := SimplePseudoClass
	if i < n && tokens[i].Type == ColonToken {
		kind = SimplePseudoElement
		i++
	}
	if i >= n {
		return SimpleSelector{}, i, errf(KindSyntax, EndOfString, "expected a pseudo-class or pseudo-element name")
	}

	t := tokens[i]
	switch t.Type {
	case IdentToken:
		name := strings.ToLower(t.Value)
		return SimpleSelector{Kind: kind, PseudoName: name}, i + 1, nil
	case FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(t.Value, "("))
		args, next, err := collectFunctionArgs(tokens, i+1)
		if err != nil {
			return SimpleSelector{}, i, err
		}
		i = next

		ss := SimpleSelector{Kind: kind, PseudoName: name}
		if anbOfPseudoClasses[name] {
			anbTokens, ofTokens, hasOf := splitAnbOf(args)
			anb, err := ParseAnb(anbTokens)
			if err != nil {
				return SimpleSelector{}, i, err
			}
			ss.Anb = &anb
			if hasOf {
				ofList, err := ParseSelectorList(ofTokens)
				if err != nil {
					return SimpleSelector{}, i, err
				}
				ss.OfSelector = &ofList
			}
		} else {
			ss.Arg = tokensToArgString(args)
		}
		return ss, i, nil
	default:
		return SimpleSelector{}, i, errf(KindSyntax, t.Offset, "expected a pseudo-class or pseudo-element name")
	}
}

// collectFunctionArgs scans tokens from i (just after the opening function
// token) to the matching RightParenToken, tracking nested parens, and
// returns the argument tokens (excluding the closing paren) plus the index
// just past it.
func collectFunctionArgs(tokens []Token, i int) ([]Token, int, error) {
	n := len(tokens)
	depth := 0
	start := i
	for i < n {
		switch tokens[i].Type {
		case LeftParenToken, FunctionToken:
			depth++
		case RightParenToken:
			if depth == 0 {
				return tokens[start:i], i + 1, nil
			}
			depth--
		}
		i++
	}
	return nil, i, errf(KindSyntax, EndOfString, "unterminated function")
}

func splitAnbOf(tokens []Token) (anbTokens, ofTokens []Token, hasOf bool) {
	for i, t := range tokens {
		if t.Type == IdentToken && strings.EqualFold(t.Value, "of") {
			return trimWhitespace(tokens[:i]), trimWhitespace(tokens[i+1:]), true
		}
	}
	return trimWhitespace(tokens), nil, false
}

func tokensToArgString(tokens []Token) string {
	var sb strings.Builder
	for _, t := range trimWhitespace(tokens) {
		sb.WriteString(t.Value)
	}
	return sb.String()
}
