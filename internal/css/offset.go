// Package css implements the tokenizer, component-value builder, grammar
// parsers, and selector matcher that back the styled-document core of
// package svg. It wraps github.com/tdewolff/parse/v2/css for the low-level
// byte-stream tokenization and builds the higher CSS Syntax/Selectors layers
// on top by hand.
package css

import "fmt"

// FileOffset is a byte index into a parse's input, or the sentinel EndOfString
// for positions that refer to exhausted input (e.g. an error at EOF).
type FileOffset struct {
	Offset int
	AtEnd  bool
}

// EndOfString is the sentinel offset used for errors located at the end of input.
var EndOfString = FileOffset{AtEnd: true}

// Pos returns a FileOffset pointing at the given byte index.
func Pos(offset int) FileOffset {
	return FileOffset{Offset: offset}
}

func (o FileOffset) String() string {
	if o.AtEnd {
		return "<eof>"
	}
	return fmt.Sprintf("%d", o.Offset)
}

// SourcePosition is a resolved 1-based line and 0-based column.
type SourcePosition struct {
	Line   int
	Column int
}

// NewlineTable precomputes the byte offset of every line start in an input,
// so that FileOffset -> SourcePosition resolution is O(log n) instead of
// O(n) per diagnostic.
type NewlineTable struct {
	lineStarts []int
	length     int
}

// BuildNewlineTable scans src once and records the offset following every
// newline, so that Resolve can binary-search for the containing line.
func BuildNewlineTable(src []byte) *NewlineTable {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &NewlineTable{lineStarts: starts, length: len(src)}
}

// Resolve converts a FileOffset into a 1-based line and 0-based column.
// An end-of-string offset resolves to the position just past the last byte.
func (t *NewlineTable) Resolve(o FileOffset) SourcePosition {
	offset := o.Offset
	if o.AtEnd {
		offset = t.length
	}

	// Binary search for the last line start <= offset.
	lo, hi := 0, len(t.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return SourcePosition{Line: lo + 1, Column: offset - t.lineStarts[lo]}
}
