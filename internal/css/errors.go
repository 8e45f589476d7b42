package css

import "fmt"

// ErrorKind classifies why a parse step failed, per spec §7.
type ErrorKind int

const (
	// KindTokenization covers bad-string, bad-url, and eof-in-* token errors.
	KindTokenization ErrorKind = iota
	// KindSyntax covers unexpected tokens, missing colons, unterminated
	// functions/blocks.
	KindSyntax
	// KindSemantic covers invalid property values, units, colors, and
	// unknown properties.
	KindSemantic
	// KindStructural covers unknown elements, wrong namespaces, and
	// non-SVG document roots.
	KindStructural
	// KindIO covers resource-loader failures (not-found, sandbox-violation).
	KindIO
)

// ParseError is returned by the tokenizer, component-value builder, and
// grammar parsers. It always carries the offset of the first token that
// could not be consumed.
type ParseError struct {
	Kind   ErrorKind
	Reason string
	Offset FileOffset
}

func (e *ParseError) Error() string {
	return e.Reason
}

func errf(kind ErrorKind, offset FileOffset, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Reason: fmt.Sprintf(format, args...), Offset: offset}
}

// Warning is a non-fatal diagnostic: a dropped declaration, an unknown
// property, an invalid presentation attribute. Parsing continues after one
// is produced.
type Warning struct {
	Reason string
	Offset FileOffset
}
