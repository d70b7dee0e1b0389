package tree

import "github.com/felix-lang/felixcore/internal/text"

// Red is a positioned view over a Green node: it adds the one piece of
// information a shared Green value cannot carry itself — where it sits in
// this particular tree, and under which parent. Red values are computed on
// demand from a Green tree; nothing is cached, so the same Green subtree
// reached from different parents (after structure sharing) yields distinct,
// independently positioned Red views.
type Red struct {
	green  *Green
	parent *Red
	offset text.Offset
}

// NewRoot builds the root Red view over a Green tree.
func NewRoot(g *Green) *Red {
	return &Red{green: g, offset: 0}
}

// Green returns the underlying shared green value.
func (r *Red) Green() *Green { return r.green }

// Parent returns the enclosing Red node, or nil at the root.
func (r *Red) Parent() *Red { return r.parent }

// IsToken reports whether this view wraps a leaf token.
func (r *Red) IsToken() bool { return r.green.IsToken() }

// Span returns this node's absolute byte range in the source.
func (r *Red) Span() text.Span {
	return text.Span{Start: r.offset, End: r.offset + r.green.Len()}
}

// Text returns the raw source bytes this node spans.
func (r *Red) Text(src []byte) []byte {
	sp := r.Span()
	if int(sp.End) > len(src) {
		return nil
	}
	return src[sp.Start:sp.End]
}

// Children materializes the red views of this node's direct children,
// each positioned by accumulating sibling lengths from r's own offset.
// Returns nil for a token.
func (r *Red) Children() []*Red {
	greenChildren := r.green.Children()
	if len(greenChildren) == 0 {
		return nil
	}
	out := make([]*Red, len(greenChildren))
	off := r.offset
	for i, gc := range greenChildren {
		out[i] = &Red{green: gc, parent: r, offset: off}
		off += gc.Len()
	}
	return out
}

// ChildAt materializes only the i-th child, avoiding an allocation of the
// full children slice when a caller (e.g. a typed-view pattern match) only
// needs one.
func (r *Red) ChildAt(i int) *Red {
	greenChildren := r.green.Children()
	if i < 0 || i >= len(greenChildren) {
		return nil
	}
	off := r.offset
	for j := 0; j < i; j++ {
		off += greenChildren[j].Len()
	}
	return &Red{green: greenChildren[i], parent: r, offset: off}
}

// NumChildren returns the number of direct children (0 for a token).
func (r *Red) NumChildren() int { return len(r.green.Children()) }

// Ancestors walks from r up to (and including) the root.
func (r *Red) Ancestors() []*Red {
	var out []*Red
	for n := r; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out
}
