package types

import "github.com/felix-lang/felixcore/internal/tree"

// Checker is the bidirectional type checker driving a Registry's rules.
// Grounded on original_source/type-checker/src/checker.rs's TypeSystem
// (the Checker trait's sole implementation): lookup/infer/equal/
// decomposeArrow, one per the trait's methods.
type Checker struct {
	Registry *Registry
	Src      []byte
}

// NewChecker builds a Checker dispatching through reg, reading node text
// from src.
func NewChecker(reg *Registry, src []byte) *Checker {
	return &Checker{Registry: reg, Src: src}
}

// Lookup resolves evar in ctx, or reports UnknownVarError.
func (c *Checker) Lookup(ctx *Context, evar string) (Type, TypeError) {
	if t, ok := ctx.Lookup(evar); ok {
		return t, nil
	}
	return Type{}, &UnknownVarError{Name: evar}
}

// Infer dispatches node through the registry's rules in order, returning
// the first match's result, or NoInferRuleError if none match.
func (c *Checker) Infer(ctx *Context, node *tree.Red) (Type, TypeError) {
	for _, rule := range c.Registry.Rules() {
		if typ, matched, err := rule.Infer(c, ctx, node); matched {
			return typ, err
		}
	}
	return Type{}, &NoInferRuleError{Node: node}
}

// Check verifies node has the expected type by inferring and comparing.
// The Rust TypeSystem trait this is modeled on leaves its own check()
// method as todo!(); this gives it the obvious bidirectional default
// (infer, then compare) rather than leaving it a stub.
func (c *Checker) Check(ctx *Context, node *tree.Red, expected Type) TypeError {
	found, err := c.Infer(ctx, node)
	if err != nil {
		return err
	}
	return c.Equal(found, expected)
}

// Equal reports whether found and expected are the same type, or
// TypeMismatchError if not.
func (c *Checker) Equal(found, expected Type) TypeError {
	if Equal(found, expected) {
		return nil
	}
	return &TypeMismatchError{Found: found, Expected: expected}
}

// DecomposeArrow splits an arrow type into its param and result, or
// reports ExpectedArrowError.
func (c *Checker) DecomposeArrow(t Type) (param, result Type, err TypeError) {
	if t.Kind() != KindArrow {
		return Type{}, Type{}, &ExpectedArrowError{Found: t}
	}
	p, r := t.ArrowParts()
	return p, r, nil
}
