package tree

import "github.com/felix-lang/felixcore/internal/kind"

// Checkpoint is a recorded position in the builder's child buffer, usable
// with StartNodeAt to retroactively open a node earlier than the current
// cursor — the mechanism a Pratt loop uses to wrap an already-emitted LHS
// once it discovers an infix operator follows it.
//
// Grounded on the Marker/wrap pair in boergens-gotypst/syntax/parser.go:
// marker() records len(p.nodes), wrap(from, kind) later splices
// Inner(kind, nodes[from:cursor]) back into the flat buffer. Builder keeps
// the same flat-buffer-plus-splice shape but exposes it as an explicit
// start/finish pair so open nodes can nest properly.
type Checkpoint int

type frame struct {
	marker int
	kind   kind.NodeKind
}

// Builder assembles a Green tree bottom-up from a flat append-only buffer
// of already-built children, using Checkpoints to splice ranges of that
// buffer into new parent nodes. One Builder produces exactly one tree.
type Builder struct {
	items    []*Green
	stack    []frame
	interned map[string][]*Green
}

// Checkpoint returns a checkpoint at the builder's current cursor.
func (b *Builder) Checkpoint() Checkpoint { return Checkpoint(len(b.items)) }

// intern hash-conses g against Green values this Builder has already built,
// so repeated shapes within one parse (the same punctuation token, the
// same small subtree) share one allocation. The cache lives on the Builder,
// not behind a package-level variable: it never outlives the parse that
// created it and is never visible to any other Builder, so two independent
// parses share no state and never contend on a lock.
func (b *Builder) intern(g *Green) *Green {
	if b.interned == nil {
		b.interned = make(map[string][]*Green)
	}
	key := fingerprint(g)
	for _, existing := range b.interned[key] {
		if structurallyEqual(existing, g) {
			return existing
		}
	}
	b.interned[key] = append(b.interned[key], g)
	return g
}

// Token appends a leaf node for a single token.
func (b *Builder) Token(tk kind.TokenKind, length uint32, malformed bool) {
	b.items = append(b.items, b.intern(NewGreenToken(tk, length, malformed)))
}

// StartNode opens a node at the current cursor. A matching FinishNode
// wraps everything emitted since in a new node of kind k.
func (b *Builder) StartNode(k kind.NodeKind) {
	b.StartNodeAt(b.Checkpoint(), k)
}

// StartNodeAt opens a node whose start is retroactively placed at cp,
// which may be earlier than the current cursor. It panics if cp lies
// inside a node that is still open (i.e. before the innermost open
// frame's own marker) — wrapping across an unclosed node's boundary would
// produce a malformed tree.
func (b *Builder) StartNodeAt(cp Checkpoint, k kind.NodeKind) {
	m := int(cp)
	if m < 0 || m > len(b.items) {
		panic("tree: checkpoint out of range")
	}
	if len(b.stack) > 0 && m < b.stack[len(b.stack)-1].marker {
		panic("tree: start_node_at checkpoint lies inside an unclosed node")
	}
	b.stack = append(b.stack, frame{marker: m, kind: k})
}

// FinishNode closes the innermost open node, wrapping every item emitted
// since its StartNode/StartNodeAt into one new Green node.
func (b *Builder) FinishNode() {
	if len(b.stack) == 0 {
		panic("tree: FinishNode with no open node")
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	children := make([]*Green, len(b.items)-f.marker)
	copy(children, b.items[f.marker:])
	b.items = append(b.items[:f.marker], b.intern(NewGreenNode(f.kind, children)))
}

// Depth reports how many nodes are currently open, for assertions in
// callers that need to check balance mid-parse.
func (b *Builder) Depth() int { return len(b.stack) }

// Finish completes the build. It panics if any node is still open or if
// the buffer does not hold exactly one root item — both indicate a caller
// bug, not a recoverable parse condition.
func (b *Builder) Finish() *Green {
	if len(b.stack) != 0 {
		panic("tree: Finish called with open nodes remaining")
	}
	if len(b.items) != 1 {
		panic("tree: Finish requires exactly one root item")
	}
	return b.items[0]
}
