package types

import (
	"testing"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/tree"
)

// astBuilder assembles a synthetic CST fragment directly through
// tree.Builder, mirroring the bytes it emits in a parallel buffer so every
// token's Text() slice is correct without going through the lexer/parser.
// This is the Go analogue of original_source/type-checker/src/ast.rs's
// direct AST constructors (var(), abs(), app(), let_(), unit(), broken()):
// the reference tests build fixture trees by hand rather than parsing
// source text, and so do these.
type astBuilder struct {
	b   tree.Builder
	src []byte
}

func (a *astBuilder) tok(tk kind.TokenKind, text string) {
	a.b.Token(tk, uint32(len(text)), false)
	a.src = append(a.src, text...)
}

func (a *astBuilder) node(k kind.NodeKind, body func()) {
	a.b.StartNode(k)
	body()
	a.b.FinishNode()
}

func (a *astBuilder) finish() (*tree.Red, []byte) {
	return tree.NewRoot(a.b.Finish()), a.src
}

func broken() func(*astBuilder) {
	return func(a *astBuilder) { a.node(kind.NodeBroken, func() {}) }
}

func exprVar(name string) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeExprVar, func() { a.tok(kind.TokIdentExpr, name) })
	}
}

func unit() func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeExprTuple, func() {
			a.tok(kind.TokLParen, "(")
			a.tok(kind.TokRParen, ")")
		})
	}
}

func binder(name string) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeBinder, func() { a.tok(kind.TokIdentExpr, name) })
	}
}

func binderAnnot(name, tyName string) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeBinder, func() {
			a.tok(kind.TokIdentExpr, name)
			a.tok(kind.TokColon, ":")
			a.node(kind.NodeTypeRef, func() { a.tok(kind.TokIdentType, tyName) })
		})
	}
}

func abs(binderFn, bodyFn func(*astBuilder)) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeExprLambda, func() {
			a.tok(kind.TokBackslash, "\\")
			a.node(kind.NodeParams, func() {
				a.node(kind.NodeParam, func() { binderFn(a) })
			})
			a.tok(kind.TokArrow, "->")
			bodyFn(a)
		})
	}
}

func app(funFn, argFn func(*astBuilder)) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeExprCall, func() {
			funFn(a)
			a.tok(kind.TokLParen, "(")
			argFn(a)
			a.tok(kind.TokRParen, ")")
		})
	}
}

// letExpr builds a BLOCK whose first statement is `let binder = bindee;`
// followed by one trailing expression statement holding bodyFn — the
// shape view.LetFrom/inferBlockBody expect for a non-recursive T-Let.
func letExpr(binderFn, bindeeFn, bodyFn func(*astBuilder)) func(*astBuilder) {
	return func(a *astBuilder) {
		a.node(kind.NodeBlock, func() {
			a.tok(kind.TokLBrace, "{")
			a.node(kind.NodeStmtLet, func() {
				a.tok(kind.TokKwLet, "let")
				binderFn(a)
				a.tok(kind.TokEquals, "=")
				bindeeFn(a)
				a.tok(kind.TokSemi, ";")
			})
			a.node(kind.NodeStmtExpr, func() { bodyFn(a) })
			a.tok(kind.TokSemi, ";")
			a.tok(kind.TokRBrace, "}")
		})
	}
}

func build(fn func(*astBuilder)) (*tree.Red, []byte) {
	a := &astBuilder{}
	fn(a)
	return a.finish()
}

func checkerFor(src []byte) *Checker {
	return NewChecker(NewSTLC(), src)
}

func TestSTLCBroken(t *testing.T) {
	node, src := build(broken())
	_, err := checkerFor(src).Infer(nil, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(broken) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCVarOK(t *testing.T) {
	node, src := build(exprVar("x"))
	ctx := (*Context)(nil).Extend("x", Var("T"))
	got, err := checkerFor(src).Infer(ctx, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, Var("T")) {
		t.Fatalf("Infer(var x) = %s, want T", got)
	}
}

func TestSTLCVarUnknown(t *testing.T) {
	node, src := build(exprVar("x"))
	_, err := checkerFor(src).Infer(nil, node)
	if _, ok := err.(*UnknownVarError); !ok {
		t.Fatalf("Infer(unbound var) = %v, want *UnknownVarError", err)
	}
}

func TestSTLCAbsOK(t *testing.T) {
	node, src := build(abs(binderAnnot("x", "T"), exprVar("E")))
	ctx := (*Context)(nil).Extend("E", Var("S"))
	got, err := checkerFor(src).Infer(ctx, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Arrow(Var("T"), Var("S"))
	if !Equal(got, want) {
		t.Fatalf("Infer(abs) = %s, want %s", got, want)
	}
}

func TestSTLCAbsTypePropagates(t *testing.T) {
	node, src := build(abs(binderAnnot("x", "T"), exprVar("x")))
	got, err := checkerFor(src).Infer(nil, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Arrow(Var("T"), Var("T"))
	if !Equal(got, want) {
		t.Fatalf("Infer(abs identity) = %s, want %s", got, want)
	}
}

func TestSTLCAbsErrorPropagates(t *testing.T) {
	node, src := build(abs(binderAnnot("x", "T"), broken()))
	_, err := checkerFor(src).Infer(nil, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(abs with broken body) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCAbsNoAnnotation(t *testing.T) {
	node, src := build(abs(binder("x"), broken()))
	_, err := checkerFor(src).Infer(nil, node)
	if _, ok := err.(*NoInferRuleError); !ok {
		t.Fatalf("Infer(unannotated abs) = %v, want *NoInferRuleError", err)
	}
}

func TestSTLCAppOK(t *testing.T) {
	node, src := build(app(exprVar("F"), exprVar("A")))
	ctx := (*Context)(nil).Extend("F", Arrow(Var("S"), Var("T"))).Extend("A", Var("S"))
	got, err := checkerFor(src).Infer(ctx, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, Var("T")) {
		t.Fatalf("Infer(app) = %s, want T", got)
	}
}

func TestSTLCAppNoArrow(t *testing.T) {
	node, src := build(app(exprVar("F"), exprVar("X")))
	ctx := (*Context)(nil).Extend("F", Var("T")).Extend("X", Var("S"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*ExpectedArrowError); !ok {
		t.Fatalf("Infer(app non-arrow fun) = %v, want *ExpectedArrowError", err)
	}
}

func TestSTLCAppMismatch(t *testing.T) {
	node, src := build(app(exprVar("F"), exprVar("A")))
	ctx := (*Context)(nil).Extend("F", Arrow(Var("S"), Var("T"))).Extend("A", Var("U"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("Infer(app mismatch) = %v, want *TypeMismatchError", err)
	}
}

func TestSTLCAppErrorPropagatesFun(t *testing.T) {
	node, src := build(app(broken(), exprVar("A")))
	ctx := (*Context)(nil).Extend("A", Var("S"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(app broken fun) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCAppErrorPropagatesArg(t *testing.T) {
	node, src := build(app(exprVar("F"), broken()))
	ctx := (*Context)(nil).Extend("F", Arrow(Var("S"), Var("T")))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(app broken arg) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCLetOK(t *testing.T) {
	node, src := build(letExpr(binder("x"), exprVar("A"), exprVar("B")))
	ctx := (*Context)(nil).Extend("A", Var("S")).Extend("B", Var("T"))
	got, err := checkerFor(src).Infer(ctx, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, Var("T")) {
		t.Fatalf("Infer(let) = %s, want T", got)
	}
}

func TestSTLCLetTypePropagates(t *testing.T) {
	node, src := build(letExpr(binder("x"), exprVar("A"), exprVar("x")))
	ctx := (*Context)(nil).Extend("A", Var("S"))
	got, err := checkerFor(src).Infer(ctx, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, Var("S")) {
		t.Fatalf("Infer(let body=binder) = %s, want S", got)
	}
}

func TestSTLCLetNotRecursive(t *testing.T) {
	node, src := build(letExpr(binder("x"), exprVar("x"), exprVar("B")))
	ctx := (*Context)(nil).Extend("B", Var("T"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*UnknownVarError); !ok {
		t.Fatalf("Infer(let binder in own bindee) = %v, want *UnknownVarError", err)
	}
}

func TestSTLCLetErrorPropagatesBindee(t *testing.T) {
	node, src := build(letExpr(binder("x"), broken(), exprVar("B")))
	ctx := (*Context)(nil).Extend("B", Var("T"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(let broken bindee) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCLetErrorPropagatesBody(t *testing.T) {
	node, src := build(letExpr(binder("x"), exprVar("A"), broken()))
	ctx := (*Context)(nil).Extend("A", Var("S"))
	_, err := checkerFor(src).Infer(ctx, node)
	if _, ok := err.(*BrokenNodeError); !ok {
		t.Fatalf("Infer(let broken body) = %v, want *BrokenNodeError", err)
	}
}

func TestSTLCLetAnnotatedBinderDisabled(t *testing.T) {
	node, src := build(letExpr(binderAnnot("x", "T"), exprVar("A"), exprVar("B")))
	_, err := checkerFor(src).Infer(nil, node)
	if _, ok := err.(*NoInferRuleError); !ok {
		t.Fatalf("Infer(let annotated binder) = %v, want *NoInferRuleError", err)
	}
}

func TestSTLCUnit(t *testing.T) {
	node, src := build(unit())
	got, err := checkerFor(src).Infer(nil, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(got, Unit) {
		t.Fatalf("Infer(unit) = %s, want Unit", got)
	}
}
