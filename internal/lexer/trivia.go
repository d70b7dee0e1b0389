package lexer

import (
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/text"
)

// Trivia is a non-token source span: whitespace, newlines, or a comment.
// In the lexer's output trivia is not a Token in its own right; it rides
// along as the Leading slice of the token that follows it, and the parser
// commits it to the CST as token leaves.
type Trivia struct {
	Kind kind.TokenKind
	Span text.Span
}

// Bytes returns the trivia bytes referenced by Span, or nil if Span is out
// of range for src.
func (t Trivia) Bytes(src []byte) []byte {
	return bytesForSpan(src, t.Span)
}
