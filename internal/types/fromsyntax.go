package types

import (
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/tree"
)

// FromTypeNode converts a TYPE_* CST subtree into a Type value, recursing
// through the grammar's union/intersection/complement/tuple/arrow/atom
// chain. Used to resolve a binder's optional type annotation for the rules
// that require one present (T-Abs).
func FromTypeNode(n *tree.Red, src []byte) Type {
	kids := typeNodeChildren(n)
	switch n.Green().NodeKind() {
	case kind.NodeTypeUnion:
		return Union(convertAll(kids, src)...)
	case kind.NodeTypeIntersection:
		return Intersection(convertAll(kids, src)...)
	case kind.NodeTypeComplement:
		return Complement(FromTypeNode(kids[0], src))
	case kind.NodeTypeTuple:
		if len(kids) == 0 {
			return Unit // '()' is the zero-element tuple type
		}
		return Product(convertAll(kids, src)...)
	case kind.NodeTypeArrow:
		return Arrow(FromTypeNode(kids[0], src), FromTypeNode(kids[1], src))
	case kind.NodeTypeFn:
		// The last child is the result; everything before it is the domain
		// list. `fn() -> T` has no domain children, so its domain is Unit.
		if len(kids) == 0 {
			return Type{}
		}
		result := FromTypeNode(kids[len(kids)-1], src)
		domains := kids[:len(kids)-1]
		switch len(domains) {
		case 0:
			return Arrow(Unit, result)
		case 1:
			return Arrow(FromTypeNode(domains[0], src), result)
		default:
			return Arrow(Product(convertAll(domains, src)...), result)
		}
	case kind.NodeTypeParen:
		return FromTypeNode(kids[0], src)
	case kind.NodeTypeBuiltin:
		return fromBuiltinText(string(n.Text(src)))
	case kind.NodeTypeRef:
		return Var(string(n.Text(src)))
	default:
		// A BROKEN or otherwise malformed annotation has no sound type;
		// callers that require an annotation treat this as "not present."
		return Type{}
	}
}

func fromBuiltinText(text string) Type {
	switch text {
	case "Bool":
		return Bool
	case "Int":
		return Int
	default:
		return Unit
	}
}

func convertAll(nodes []*tree.Red, src []byte) []Type {
	out := make([]Type, len(nodes))
	for i, n := range nodes {
		out[i] = FromTypeNode(n, src)
	}
	return out
}

func typeNodeChildren(n *tree.Red) []*tree.Red {
	var out []*tree.Red
	for _, c := range n.Children() {
		if !c.Green().IsToken() {
			out = append(out, c)
		}
	}
	return out
}
