// Package view implements typed pattern adapters over the CST: thin
// wrappers around a *tree.Red that recognize one surface shape and expose
// its parts by name, the way a rule in thrift-weaver's internal/lint
// package walks a named node and checks its child-kind shape before
// acting (see rule_field_id_required.go's forEachNamedNode/hasChildByKind
// idiom, generalized here from string-tagged grammar nodes to
// kind.NodeKind).
//
// None of these wrappers allocate beyond what Red.Children already does —
// a TryFrom either matches and returns a struct of borrowed *tree.Red
// pointers, or reports false and the caller moves on.
package view

import (
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/tree"
)

// nodeChildren returns n's children that are themselves CST nodes (not
// token leaves) — punctuation, keywords, and trivia never surface here.
func nodeChildren(n *tree.Red) []*tree.Red {
	var out []*tree.Red
	for _, c := range n.Children() {
		if !c.Green().IsToken() {
			out = append(out, c)
		}
	}
	return out
}

// tokenChild returns n's first direct token child of kind tk, if any.
func tokenChild(n *tree.Red, tk kind.TokenKind) (*tree.Red, bool) {
	for _, c := range n.Children() {
		if c.Green().IsToken() && c.Green().TokenKind() == tk {
			return c, true
		}
	}
	return nil, false
}

// significantChildren returns n's children with whitespace/comment trivia
// dropped, keeping both sub-nodes and non-trivia token leaves (operators,
// punctuation, keywords) — the shape Infix/Prefix need to see their
// operator token positioned between its operands.
func significantChildren(n *tree.Red) []*tree.Red {
	var out []*tree.Red
	for _, c := range n.Children() {
		if c.Green().IsToken() && kind.Trivia.Contains(c.Green().TokenKind()) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Var matches an EXPR_VAR node: a bare identifier reference.
type Var struct{ Node *tree.Red }

// VarFrom matches n against EXPR_VAR.
func VarFrom(n *tree.Red) (Var, bool) {
	if n.Green().NodeKind() != kind.NodeExprVar {
		return Var{}, false
	}
	return Var{Node: n}, true
}

// Name returns the identifier text.
func (v Var) Name(src []byte) string {
	if tok, ok := tokenChild(v.Node, kind.TokIdentExpr); ok {
		return string(tok.Text(src))
	}
	return ""
}

// Unit matches the zero-element EXPR_TUPLE `()`.
type Unit struct{ Node *tree.Red }

// UnitFrom matches n against an EXPR_TUPLE with no element children.
func UnitFrom(n *tree.Red) (Unit, bool) {
	if n.Green().NodeKind() != kind.NodeExprTuple {
		return Unit{}, false
	}
	if len(nodeChildren(n)) != 0 {
		return Unit{}, false
	}
	return Unit{Node: n}, true
}

// Binder matches a BINDER node: a bound identifier with an optional type
// annotation.
type Binder struct{ Node *tree.Red }

// BinderFrom matches n against BINDER.
func BinderFrom(n *tree.Red) (Binder, bool) {
	if n.Green().NodeKind() != kind.NodeBinder {
		return Binder{}, false
	}
	return Binder{Node: n}, true
}

// Name returns the bound identifier's text.
func (b Binder) Name(src []byte) string {
	if tok, ok := tokenChild(b.Node, kind.TokIdentExpr); ok {
		return string(tok.Text(src))
	}
	return ""
}

// TypeAnnotation returns the declared type node, if the binder carries one.
func (b Binder) TypeAnnotation() (*tree.Red, bool) {
	kids := nodeChildren(b.Node)
	if len(kids) == 0 {
		return nil, false
	}
	return kids[0], true
}

// Abs matches an EXPR_LAMBDA whose PARAMS holds exactly one PARAM/BINDER —
// the single-argument shape the reference type system's T-Abs rule claims.
// A curried (multi-parameter) lambda falls through: callers see AbsFrom
// return false and should treat the node as having no STLC shape.
type Abs struct {
	Node  *tree.Red
	param Binder
	body  *tree.Red
}

// AbsFrom matches n against the single-argument EXPR_LAMBDA shape.
func AbsFrom(n *tree.Red) (Abs, bool) {
	if n.Green().NodeKind() != kind.NodeExprLambda {
		return Abs{}, false
	}
	kids := nodeChildren(n)
	if len(kids) != 2 || kids[0].Green().NodeKind() != kind.NodeParams {
		return Abs{}, false
	}
	params := nodeChildren(kids[0])
	if len(params) != 1 || params[0].Green().NodeKind() != kind.NodeParam {
		return Abs{}, false
	}
	paramKids := nodeChildren(params[0])
	if len(paramKids) != 1 || paramKids[0].Green().NodeKind() != kind.NodeBinder {
		return Abs{}, false
	}
	return Abs{Node: n, param: Binder{Node: paramKids[0]}, body: kids[1]}, true
}

// Param returns the lambda's sole parameter binder.
func (a Abs) Param() Binder { return a.param }

// Body returns the lambda body expression.
func (a Abs) Body() *tree.Red { return a.body }

// App matches an EXPR_CALL carrying exactly one argument — the shape the
// reference type system's T-App rule claims. A zero- or multi-argument
// call falls through to NoInferRule territory instead of matching partially.
type App struct {
	Node *tree.Red
	fn   *tree.Red
	arg  *tree.Red
}

// AppFrom matches n against the single-argument EXPR_CALL shape.
func AppFrom(n *tree.Red) (App, bool) {
	if n.Green().NodeKind() != kind.NodeExprCall {
		return App{}, false
	}
	kids := nodeChildren(n)
	if len(kids) != 2 {
		return App{}, false
	}
	return App{Node: n, fn: kids[0], arg: kids[1]}, true
}

// Fn returns the called expression.
func (a App) Fn() *tree.Red { return a.fn }

// Arg returns the sole argument expression.
func (a App) Arg() *tree.Red { return a.arg }

// Let matches a BLOCK (or a Block view's re-sliced remainder, via
// LetFromStmts) whose first statement is STMT_LET(binder, bindee). Body
// re-slices the remaining statements rather than building a new tree.
type Let struct {
	binder Binder
	bindee *tree.Red
	rest   []*tree.Red
}

// LetFrom matches a BLOCK node against the "first statement is a let"
// shape.
func LetFrom(n *tree.Red) (Let, bool) {
	b, ok := BlockFrom(n)
	if !ok {
		return Let{}, false
	}
	return LetFromStmts(b.Stmts)
}

// LetFromStmts matches a statement slice directly, the form Let.Body needs
// to recurse without re-deriving a BLOCK view from a synthetic node.
func LetFromStmts(stmts []*tree.Red) (Let, bool) {
	if len(stmts) == 0 {
		return Let{}, false
	}
	head := stmts[0]
	if head.Green().NodeKind() != kind.NodeStmtLet {
		return Let{}, false
	}
	kids := nodeChildren(head)
	if len(kids) < 2 {
		return Let{}, false
	}
	binder, ok := BinderFrom(kids[0])
	if !ok {
		return Let{}, false
	}
	return Let{binder: binder, bindee: kids[1], rest: stmts[1:]}, true
}

// Binder returns the let's bound name.
func (l Let) Binder() Binder { return l.binder }

// Bindee returns the let's right-hand-side expression.
func (l Let) Bindee() *tree.Red { return l.bindee }

// Body returns a view over the statements following the let, without
// allocating a new backing array. A let with nothing after it yields a
// Block with a nil/empty Stmts slice — the degenerate single-statement
// case, not an error.
func (l Let) Body() Block { return Block{Stmts: l.rest} }

// Block matches a BLOCK node and exposes its direct statement children.
type Block struct {
	Node  *tree.Red
	Stmts []*tree.Red
}

// BlockFrom matches n against BLOCK.
func BlockFrom(n *tree.Red) (Block, bool) {
	if n.Green().NodeKind() != kind.NodeBlock {
		return Block{}, false
	}
	return Block{Node: n, Stmts: nodeChildren(n)}, true
}

// Tuple matches an EXPR_TUPLE with two or more elements (the zero-element
// case is Unit; the exactly-one case is Paren, not a tuple shape at all —
// the parser only emits EXPR_TUPLE for 0 or >=2 elements).
type Tuple struct {
	Node     *tree.Red
	Elements []*tree.Red
}

// TupleFrom matches n against a multi-element EXPR_TUPLE.
func TupleFrom(n *tree.Red) (Tuple, bool) {
	if n.Green().NodeKind() != kind.NodeExprTuple {
		return Tuple{}, false
	}
	els := nodeChildren(n)
	if len(els) < 2 {
		return Tuple{}, false
	}
	return Tuple{Node: n, Elements: els}, true
}

// Paren matches a single-element parenthesized expression EXPR_PAREN.
type Paren struct {
	Node  *tree.Red
	Inner *tree.Red
}

// ParenFrom matches n against EXPR_PAREN.
func ParenFrom(n *tree.Red) (Paren, bool) {
	if n.Green().NodeKind() != kind.NodeExprParen {
		return Paren{}, false
	}
	kids := nodeChildren(n)
	if len(kids) != 1 {
		return Paren{}, false
	}
	return Paren{Node: n, Inner: kids[0]}, true
}

// Call matches an EXPR_CALL of any arity, generalizing App beyond the
// single-argument STLC shape.
type Call struct {
	Node *tree.Red
	Fn   *tree.Red
	Args []*tree.Red
}

// CallFrom matches n against EXPR_CALL.
func CallFrom(n *tree.Red) (Call, bool) {
	if n.Green().NodeKind() != kind.NodeExprCall {
		return Call{}, false
	}
	kids := nodeChildren(n)
	if len(kids) == 0 {
		return Call{}, false
	}
	return Call{Node: n, Fn: kids[0], Args: kids[1:]}, true
}

// FieldSelect matches an EXPR_FIELD `expr '.' IDENT_EXPR`.
type FieldSelect struct {
	Node   *tree.Red
	Target *tree.Red
}

// FieldSelectFrom matches n against EXPR_FIELD.
func FieldSelectFrom(n *tree.Red) (FieldSelect, bool) {
	if n.Green().NodeKind() != kind.NodeExprField {
		return FieldSelect{}, false
	}
	kids := nodeChildren(n)
	if len(kids) != 1 {
		return FieldSelect{}, false
	}
	return FieldSelect{Node: n, Target: kids[0]}, true
}

// Field returns the selected field name.
func (f FieldSelect) Field(src []byte) string {
	if tok, ok := tokenChild(f.Node, kind.TokIdentExpr); ok {
		return string(tok.Text(src))
	}
	return ""
}

// If matches a STMT_IF, exposing its condition, then-block, and optional
// else arm (which is itself either a BLOCK or a nested STMT_IF).
type If struct {
	Node *tree.Red
	Cond *tree.Red
	Then *tree.Red
	Else *tree.Red // nil if there is no else arm
}

// IfFrom matches n against STMT_IF.
func IfFrom(n *tree.Red) (If, bool) {
	if n.Green().NodeKind() != kind.NodeStmtIf {
		return If{}, false
	}
	kids := nodeChildren(n)
	if len(kids) < 2 {
		return If{}, false
	}
	r := If{Node: n, Cond: kids[0], Then: kids[1]}
	if len(kids) >= 3 {
		r.Else = kids[2]
	}
	return r, true
}

// Ternary matches an EXPR_TERNARY `cond '?' then ':' else`.
type Ternary struct {
	Node                  *tree.Red
	Cond, Then, Otherwise *tree.Red
}

// TernaryFrom matches n against EXPR_TERNARY.
func TernaryFrom(n *tree.Red) (Ternary, bool) {
	if n.Green().NodeKind() != kind.NodeExprTernary {
		return Ternary{}, false
	}
	kids := nodeChildren(n)
	if len(kids) != 3 {
		return Ternary{}, false
	}
	return Ternary{Node: n, Cond: kids[0], Then: kids[1], Otherwise: kids[2]}, true
}

// Infix matches an EXPR_INFIX binary operator application.
type Infix struct {
	Node        *tree.Red
	Left, Right *tree.Red
	Op          *tree.Red // the operator token, wrapped
}

// InfixFrom matches n against EXPR_INFIX.
func InfixFrom(n *tree.Red) (Infix, bool) {
	if n.Green().NodeKind() != kind.NodeExprInfix {
		return Infix{}, false
	}
	children := significantChildren(n)
	if len(children) != 3 {
		return Infix{}, false
	}
	return Infix{Node: n, Left: children[0], Op: children[1], Right: children[2]}, true
}

// Operator returns the operator token's kind.
func (i Infix) Operator() kind.TokenKind { return i.Op.Green().TokenKind() }

// Prefix matches an EXPR_PREFIX unary operator application.
type Prefix struct {
	Node    *tree.Red
	Operand *tree.Red
	Op      *tree.Red
}

// PrefixFrom matches n against EXPR_PREFIX.
func PrefixFrom(n *tree.Red) (Prefix, bool) {
	if n.Green().NodeKind() != kind.NodeExprPrefix {
		return Prefix{}, false
	}
	children := significantChildren(n)
	if len(children) != 2 {
		return Prefix{}, false
	}
	return Prefix{Node: n, Op: children[0], Operand: children[1]}, true
}

// Operator returns the operator token's kind.
func (p Prefix) Operator() kind.TokenKind { return p.Op.Green().TokenKind() }

// Lit matches an EXPR_LIT literal (nat, true, or false).
type Lit struct {
	Node *tree.Red
}

// LitFrom matches n against EXPR_LIT.
func LitFrom(n *tree.Red) (Lit, bool) {
	if n.Green().NodeKind() != kind.NodeExprLit {
		return Lit{}, false
	}
	return Lit{Node: n}, true
}

// Text returns the literal's raw source text.
func (l Lit) Text(src []byte) string {
	for _, c := range l.Node.Children() {
		if c.Green().IsToken() {
			return string(c.Text(src))
		}
	}
	return ""
}
