// Package types implements the rule-driven bidirectional type checker: a
// Type value representation, a persistent Context, an ordered Rule
// registry, and the reference Simply Typed Lambda Calculus rule set.
//
// Grounded on original_source/type-checker/src/{type.rs,checker.rs,stlc.rs}
// (hurryabit/felix), reworked from Rust's Rc-boxed enum/trait-object idiom
// into a Go tagged struct (mirroring tree.Green's own leaf/inner tag) plus
// an ordinary interface for the pluggable rule dispatch thrift-weaver's
// own internal/lint.Rule registry (lint.go) already demonstrates in Go
// terms.
package types

import (
	"fmt"
	"strings"
)

// Kind tags a Type's shape.
type Kind uint8

const (
	KindVar Kind = iota
	KindArrow
	KindUnit
	KindBool
	KindInt
	KindProduct
	KindUnion
	KindIntersection
	KindComplement
)

// Type is a Felix type value. Var carries a name; Arrow and Complement
// carry one or two operands; Product/Union/Intersection carry an ordered
// element list (Union/Intersection compare order-insensitively; Product
// does not, since tuple element order is observable).
type Type struct {
	kind     Kind
	name     string  // Var
	operands []*Type // Arrow: [param, result]; Complement: [operand]; Product/Union/Intersection: elements
}

// Var builds a type variable.
func Var(name string) Type { return Type{kind: KindVar, name: name} }

// Arrow builds a function type from param to result.
func Arrow(param, result Type) Type {
	return Type{kind: KindArrow, operands: []*Type{&param, &result}}
}

// Unit is the nullary tuple type.
var Unit = Type{kind: KindUnit}

// Bool is the boolean type.
var Bool = Type{kind: KindBool}

// Int is the natural-number type.
var Int = Type{kind: KindInt}

// Product builds a tuple type from its element types.
func Product(elems ...Type) Type {
	return Type{kind: KindProduct, operands: toPtrs(elems)}
}

// Union builds a union type from its member types.
func Union(members ...Type) Type {
	return Type{kind: KindUnion, operands: toPtrs(members)}
}

// Intersection builds an intersection type from its member types.
func Intersection(members ...Type) Type {
	return Type{kind: KindIntersection, operands: toPtrs(members)}
}

// Complement builds the complement of a type.
func Complement(operand Type) Type {
	return Type{kind: KindComplement, operands: []*Type{&operand}}
}

func toPtrs(ts []Type) []*Type {
	out := make([]*Type, len(ts))
	for i := range ts {
		out[i] = &ts[i]
	}
	return out
}

// Kind returns t's shape tag.
func (t Type) Kind() Kind { return t.kind }

// Name returns a Var's name; valid only when Kind() == KindVar.
func (t Type) Name() string { return t.name }

// ArrowParts returns an Arrow's (param, result) pair; valid only when
// Kind() == KindArrow.
func (t Type) ArrowParts() (param, result Type) { return *t.operands[0], *t.operands[1] }

// ComplementOperand returns a Complement's operand; valid only when
// Kind() == KindComplement.
func (t Type) ComplementOperand() Type { return *t.operands[0] }

// Elements returns a Product/Union/Intersection's members; valid only for
// those three kinds.
func (t Type) Elements() []Type {
	out := make([]Type, len(t.operands))
	for i, p := range t.operands {
		out[i] = *p
	}
	return out
}

// String renders t for diagnostics and test failure messages.
func (t Type) String() string {
	switch t.kind {
	case KindVar:
		return t.name
	case KindArrow:
		p, r := t.ArrowParts()
		return fmt.Sprintf("(%s -> %s)", p, r)
	case KindUnit:
		return "Unit"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindProduct:
		return "(" + joinTypes(t.Elements(), ", ") + ")"
	case KindUnion:
		return joinTypes(t.Elements(), " | ")
	case KindIntersection:
		return joinTypes(t.Elements(), " & ")
	case KindComplement:
		return "~" + t.ComplementOperand().String()
	default:
		return "?"
	}
}

func joinTypes(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// Equal reports structural equality per spec §3/§4.5: Var names compare by
// name only (no binder resolution),
// Arrow/Complement/Product are congruent position-wise, Union/Intersection
// are congruent as sets (order-insensitive).
func Equal(a, b Type) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindVar:
		return a.name == b.name
	case KindArrow:
		ap, ar := a.ArrowParts()
		bp, br := b.ArrowParts()
		return Equal(ap, bp) && Equal(ar, br)
	case KindUnit, KindBool, KindInt:
		return true
	case KindComplement:
		return Equal(a.ComplementOperand(), b.ComplementOperand())
	case KindProduct:
		ae, be := a.Elements(), b.Elements()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case KindUnion, KindIntersection:
		return sameSet(a.Elements(), b.Elements())
	default:
		return false
	}
}

// sameSet reports whether as and bs contain the same multiset of types,
// compared structurally and order-insensitively.
func sameSet(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	used := make([]bool, len(bs))
	for _, a := range as {
		found := false
		for i, b := range bs {
			if used[i] {
				continue
			}
			if Equal(a, b) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
