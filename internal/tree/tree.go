package tree

import "github.com/felix-lang/felixcore/internal/text"

// Tree bundles a finished parse: the positioned root view, the source bytes
// it spans, and the mapper used to resolve any further offsets the view or
// bridge layers need to turn into line/column points.
type Tree struct {
	Root   *Red
	Src    []byte
	Mapper *text.Mapper
}

// NewTree wraps a root Green value together with the buffer it was parsed
// from.
func NewTree(root *Green, src []byte) *Tree {
	return &Tree{Root: NewRoot(root), Src: src, Mapper: text.NewMapper(src)}
}
