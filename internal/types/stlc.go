package types

import (
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/tree"
	"github.com/felix-lang/felixcore/internal/view"
)

// NewSTLC builds the reference Simply Typed Lambda Calculus rule set named
// in spec §4.5: T-Broken, T-Var, T-Abs, T-App, T-Let, T-Unit, registered in
// exactly that order. Grounded on
// original_source/type-checker/src/stlc.rs's make(), translating each
// Rc<Annot<...>>-typed rule function into a view.*From pattern match that
// reports "not my shape" by returning matched=false instead of Rust's
// Option-wrapped trait-object dispatch.
//
// T-Let declines a `let` whose binder carries an annotation, so an
// annotated `let` binder falls through every rule here to NoInferRuleError
// — the "disabled feature" signal spec §4.5 describes, since this rule set
// ships no T-Let-annot.
func NewSTLC() *Registry {
	reg := NewRegistry("Simply Typed Lambda Calculus")
	reg.Add("T-Broken", tBroken)
	reg.Add("T-Var", tVar)
	reg.Add("T-Abs", tAbs)
	reg.Add("T-App", tApp)
	reg.Add("T-Let", tLet)
	reg.Add("T-Unit", tUnit)
	return reg
}

func tBroken(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	if node.Green().NodeKind() != kind.NodeBroken {
		return Type{}, false, nil
	}
	return Type{}, true, &BrokenNodeError{Node: node}
}

func tVar(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	v, ok := view.VarFrom(node)
	if !ok {
		return Type{}, false, nil
	}
	t, err := c.Lookup(ctx, v.Name(c.Src))
	return t, true, err
}

// tAbs claims only the annotated single-argument lambda shape: T-Abs
// requires the binder's type to be present (§4.5's "binder:ty"), so a
// lambda whose sole parameter has no annotation falls through to
// NoInferRuleError rather than matching with a missing type.
func tAbs(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	a, ok := view.AbsFrom(node)
	if !ok {
		return Type{}, false, nil
	}
	annotNode, ok := a.Param().TypeAnnotation()
	if !ok {
		return Type{}, false, nil
	}
	tBinder := FromTypeNode(annotNode, c.Src)
	extended := ctx.Extend(a.Param().Name(c.Src), tBinder)
	tRes, err := c.Infer(extended, a.Body())
	if err != nil {
		return Type{}, true, err
	}
	return Arrow(tBinder, tRes), true, nil
}

func tApp(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	a, ok := view.AppFrom(node)
	if !ok {
		return Type{}, false, nil
	}
	tFun, err := c.Infer(ctx, a.Fn())
	if err != nil {
		return Type{}, true, err
	}
	tParam, tRes, err := c.DecomposeArrow(tFun)
	if err != nil {
		return Type{}, true, err
	}
	tArg, err := c.Infer(ctx, a.Arg())
	if err != nil {
		return Type{}, true, err
	}
	if err := c.Equal(tArg, tParam); err != nil {
		return Type{}, true, err
	}
	return tRes, true, nil
}

// tLet is always non-recursive: the binder is extended into scope only for
// the body, never for the bindee, per spec §4.5.
func tLet(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	l, ok := view.LetFrom(node)
	if !ok {
		return Type{}, false, nil
	}
	if _, annotated := l.Binder().TypeAnnotation(); annotated {
		return Type{}, false, nil
	}
	tBindee, err := c.Infer(ctx, l.Bindee())
	if err != nil {
		return Type{}, true, err
	}
	extended := ctx.Extend(l.Binder().Name(c.Src), tBindee)
	body := l.Body()
	tBody, err := inferBlockBody(c, extended, body)
	return tBody, true, err
}

// inferBlockBody infers the type of a Let's remaining statement sequence:
// a further let chains into T-Let again, a single trailing expression
// statement is the body expression itself, and anything else (including
// an empty remainder) has no STLC shape.
func inferBlockBody(c *Checker, ctx *Context, body view.Block) (Type, TypeError) {
	if nested, ok := view.LetFromStmts(body.Stmts); ok {
		if _, annotated := nested.Binder().TypeAnnotation(); annotated {
			return Type{}, &NoInferRuleError{Node: body.Node}
		}
		tBindee, err := c.Infer(ctx, nested.Bindee())
		if err != nil {
			return Type{}, err
		}
		extended := ctx.Extend(nested.Binder().Name(c.Src), tBindee)
		return inferBlockBody(c, extended, nested.Body())
	}
	if len(body.Stmts) == 1 {
		if expr, ok := exprOfStmt(body.Stmts[0]); ok {
			return c.Infer(ctx, expr)
		}
	}
	return Type{}, &NoInferRuleError{Node: body.Node}
}

func exprOfStmt(n *tree.Red) (*tree.Red, bool) {
	if n.Green().NodeKind() != kind.NodeStmtExpr {
		return nil, false
	}
	for _, c := range n.Children() {
		if !c.Green().IsToken() {
			return c, true
		}
	}
	return nil, false
}

func tUnit(c *Checker, ctx *Context, node *tree.Red) (Type, bool, TypeError) {
	if _, ok := view.UnitFrom(node); !ok {
		return Type{}, false, nil
	}
	return Unit, true, nil
}
