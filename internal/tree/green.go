// Package tree implements the lossless concrete syntax tree: immutable,
// structure-shared "green" nodes built by a checkpoint-capable Builder, and
// a "red" view over them that adds parent pointers and absolute offsets on
// demand.
//
// Grounded on the Marker/wrap/checkpoint mechanics of
// boergens-gotypst/syntax/parser.go and the leaf/inner node shape of
// boergens-gotypst/syntax/node.go, adapted to split the green (shared,
// offset-free) and red (positioned, parented) views the tree builder's
// structure-sharing requires.
package tree

import (
	"fmt"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/text"
)

// Green is an immutable tree value: either a token leaf carrying its own
// text length, or an inner node carrying children. Green values never
// store absolute offsets or parent pointers, which is what makes sharing a
// single *Green among many parents safe.
type Green struct {
	tokenKind kind.TokenKind // valid iff isToken
	nodeKind  kind.NodeKind  // valid iff !isToken
	isToken   bool
	textLen   uint32 // token: byte length of the lexeme; node: sum of children
	children  []*Green
	erroneous bool // true if this subtree contains an ERROR node or malformed token
}

// NewGreenToken builds a leaf green node for a token of the given length.
// It does not intern: callers that want structure-sharing go through a
// Builder, which hash-conses within its own parse.
func NewGreenToken(tk kind.TokenKind, length uint32, malformed bool) *Green {
	return &Green{tokenKind: tk, isToken: true, textLen: length, erroneous: malformed}
}

// NewGreenNode builds an inner green node from already-built children.
// Like NewGreenToken, it does not intern on its own.
func NewGreenNode(nk kind.NodeKind, children []*Green) *Green {
	var length uint32
	erroneous := nk == kind.NodeError
	for _, c := range children {
		length += c.textLen
		erroneous = erroneous || c.erroneous
	}
	return &Green{nodeKind: nk, textLen: length, children: children, erroneous: erroneous}
}

// IsToken reports whether g is a leaf (token) rather than an inner node.
func (g *Green) IsToken() bool { return g.isToken }

// TokenKind returns the token kind. Only valid when IsToken is true.
func (g *Green) TokenKind() kind.TokenKind { return g.tokenKind }

// NodeKind returns the node kind. Only valid when IsToken is false.
func (g *Green) NodeKind() kind.NodeKind { return g.nodeKind }

// Len returns the number of source bytes this subtree spans.
func (g *Green) Len() text.Offset { return text.Offset(g.textLen) }

// Children returns the direct children of an inner node, or nil for a token.
func (g *Green) Children() []*Green { return g.children }

// Erroneous reports whether this subtree contains an ERROR node or a
// malformed token anywhere beneath it.
func (g *Green) Erroneous() bool { return g.erroneous }

func (g *Green) String() string {
	if g.isToken {
		return fmt.Sprintf("%s@%d", g.tokenKind, g.textLen)
	}
	return fmt.Sprintf("%s[%d children]", g.nodeKind, len(g.children))
}

// fingerprint and structurallyEqual back Builder's per-parse intern cache
// (see builder.go): a structural fingerprint buckets candidates, and a
// fingerprint collision falls back to a true structural comparison.
func fingerprint(g *Green) string {
	if g.isToken {
		return fmt.Sprintf("t:%d:%d:%t", g.tokenKind, g.textLen, g.erroneous)
	}
	return fmt.Sprintf("n:%d:%d:%d", g.nodeKind, g.textLen, len(g.children))
}

func structurallyEqual(a, b *Green) bool {
	if a.isToken != b.isToken || a.erroneous != b.erroneous || a.textLen != b.textLen {
		return false
	}
	if a.isToken {
		return a.tokenKind == b.tokenKind
	}
	if a.nodeKind != b.nodeKind || len(a.children) != len(b.children) {
		return false
	}
	for i, ca := range a.children {
		if ca != b.children[i] {
			return false
		}
	}
	return true
}
