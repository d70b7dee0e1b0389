// Package felixcore is the public entry point for the Felix front-end: a
// lossless, error-recovering parser producing a concrete syntax tree, and
// a pluggable rule-driven type checker operating over a typed view of
// that tree.
//
// Grounded on spec §6's two external entry points, parse and type_check;
// everything each one touches (lexer, tree builder, parser, typed view,
// type-rule registry) lives in internal/, the same layout
// github.com/kpumuk/thrift-weaver uses to keep its own
// syntax/parser/format packages unexported.
package felixcore

import (
	"github.com/felix-lang/felixcore/internal/diag"
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/parser"
	"github.com/felix-lang/felixcore/internal/tree"
	"github.com/felix-lang/felixcore/internal/types"
)

// ParseResult is the output of Parse: a complete CST plus every
// diagnostic raised while building it.
type ParseResult struct {
	Syntax   *tree.Tree
	Problems []diag.Problem
}

// Parse lexes and parses input, running the top-level "program" rule.
// Every input — syntactically valid or not — returns a well-formed tree;
// no call to Parse ever panics (see internal/parser's FuzzParse).
func Parse(input string) ParseResult {
	src := []byte(input)
	res := parser.Parse(src)
	return ParseResult{
		Syntax:   tree.NewTree(res.Root, src),
		Problems: res.Diagnostics,
	}
}

// NewSTLCRegistry builds the reference Simply Typed Lambda Calculus rule
// set (T-Broken, T-Var, T-Abs, T-App, T-Let, T-Unit) described in spec
// §4.5, ready to pass to TypeCheck.
func NewSTLCRegistry() *types.Registry { return types.NewSTLC() }

// TypeCheck dispatches inference on the root expression of a program —
// the body of its first function definition — against registry. A
// program with no function definition, or whose first function's body
// has no inferable root expression, yields NoInferRuleError the same way
// an unmatched rule shape does.
func TypeCheck(syntax *tree.Tree, registry *types.Registry) (types.Type, types.TypeError) {
	checker := types.NewChecker(registry, syntax.Src)
	root, ok := rootExpr(syntax.Root)
	if !ok {
		return types.Type{}, &types.NoInferRuleError{Node: syntax.Root}
	}
	return checker.Infer(nil, root)
}

// rootExpr locates the expression a program's type system should run on:
// the first DEFN_FN's BLOCK body, unwrapped to its sole expression
// statement when the block isn't itself a T-Let shape (a bare `{ x }`
// body has no dedicated CST kind of its own — see SPEC_FULL.md §4.1 on
// why EXPR_LET doesn't exist as a separate node kind).
func rootExpr(program *tree.Red) (*tree.Red, bool) {
	fn, ok := firstChildOfKind(program, kind.NodeDefnFn)
	if !ok {
		return nil, false
	}
	block, ok := firstChildOfKind(fn, kind.NodeBlock)
	if !ok {
		return nil, false
	}
	stmts := nodeChildrenOf(block)
	if len(stmts) == 0 {
		return nil, false
	}
	if stmts[0].Green().NodeKind() == kind.NodeStmtLet {
		return block, true
	}
	if len(stmts) == 1 && stmts[0].Green().NodeKind() == kind.NodeStmtExpr {
		if expr, ok := firstNonTokenChild(stmts[0]); ok {
			return expr, true
		}
	}
	return nil, false
}

func firstChildOfKind(n *tree.Red, k kind.NodeKind) (*tree.Red, bool) {
	for _, c := range n.Children() {
		if !c.Green().IsToken() && c.Green().NodeKind() == k {
			return c, true
		}
	}
	return nil, false
}

func firstNonTokenChild(n *tree.Red) (*tree.Red, bool) {
	for _, c := range n.Children() {
		if !c.Green().IsToken() {
			return c, true
		}
	}
	return nil, false
}

func nodeChildrenOf(n *tree.Red) []*tree.Red {
	var out []*tree.Red
	for _, c := range n.Children() {
		if !c.Green().IsToken() {
			out = append(out, c)
		}
	}
	return out
}
