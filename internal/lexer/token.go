package lexer

import (
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/text"
)

// TokenFlags carry metadata about a token's provenance or recovery state.
type TokenFlags uint8

// TokenFlags values describe token provenance or recovery state.
const (
	TokenFlagMalformed TokenFlags = 1 << iota
	TokenFlagSynthesized
	TokenFlagRecovered
)

// Has reports whether all bits in mask are set.
func (f TokenFlags) Has(mask TokenFlags) bool {
	return f&mask == mask
}

// Token is a lexed token with a source span and its leading trivia.
type Token struct {
	Kind    kind.TokenKind
	Span    text.Span
	Leading []Trivia
	Flags   TokenFlags
}

// Bytes returns the token bytes referenced by Span, or nil if Span is out
// of range for src.
func (t Token) Bytes(src []byte) []byte {
	return bytesForSpan(src, t.Span)
}

func bytesForSpan(src []byte, sp text.Span) []byte {
	if !sp.IsValid() {
		return nil
	}
	if sp.End > text.Offset(len(src)) {
		return nil
	}
	return src[sp.Start:sp.End]
}
