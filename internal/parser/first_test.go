package parser

import (
	"testing"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/lexer"
	"github.com/felix-lang/felixcore/internal/text"
)

// selfTestRules maps each kind.SelfTestKinds entry to the Parser method
// that implements it, so TestFirstSetHonesty can drive each dedicated
// rule directly instead of going through the top-level Parse entry point.
var selfTestRules = map[kind.NodeKind]func(*Parser){
	kind.NodeDefnFn:      (*Parser).fnDef,
	kind.NodeDefnType:    (*Parser).typeDef,
	kind.NodeParams:      (*Parser).params,
	kind.NodeParam:       (*Parser).param,
	kind.NodeBinder:      (*Parser).binder,
	kind.NodeBlock:       (*Parser).block,
	kind.NodeStmtLet:     (*Parser).letStmt,
	kind.NodeStmtIf:      (*Parser).ifStmt,
	kind.NodeStmtExpr:    (*Parser).exprOrAssignStmt,
	kind.NodeExprVar:     (*Parser).exprVar,
	kind.NodeExprLit:     (*Parser).exprLit,
	kind.NodeExprTuple:   (*Parser).parenOrTuple,
	kind.NodeExprParen:   (*Parser).parenOrTuple,
	kind.NodeExprLambda:  (*Parser).exprLambda,
	kind.NodeTypeArrow:   (*Parser).typeArrow,
	kind.NodeTypeTuple:   (*Parser).typeParenOrTuple,
	kind.NodeTypeParen:   (*Parser).typeParenOrTuple,
	kind.NodeTypeFn:      (*Parser).typeFn,
	kind.NodeTypeBuiltin: (*Parser).typeBuiltin,
	kind.NodeTypeRef:     (*Parser).typeRef,
}

// newSyntheticParser builds a Parser directly over a hand-constructed
// token stream, bypassing the lexer — the synthetic "[T, UNKNOWN]" streams
// spec §4.1/§4.3's self-test drives each dedicated rule on.
func newSyntheticParser(kinds ...kind.TokenKind) *Parser {
	toks := make([]lexer.Token, len(kinds)+1)
	for i, tk := range kinds {
		toks[i] = lexer.Token{Kind: tk, Span: text.Span{Start: text.Offset(i), End: text.Offset(i + 1)}}
	}
	toks[len(kinds)] = lexer.Token{
		Kind: kind.TokEOF,
		Span: text.Span{Start: text.Offset(len(kinds)), End: text.Offset(len(kinds))},
	}
	src := make([]byte, len(kinds))
	return &Parser{src: src, tokens: toks, mapper: text.NewMapper(src)}
}

// TestFirstSetHonesty is spec §4.1/§4.3's Node-kind/FIRST consistency
// self-test (Testable Property #6, "FIRST honesty", §8): for every
// NodeKind with a dedicated, independently invocable parse rule and every
// non-trivia TokenKind T, running the rule on the synthetic stream
// [T, UNKNOWN] must consume T iff T is a member of the declared
// FIRST(kind) set.
func TestFirstSetHonesty(t *testing.T) {
	t.Parallel()

	universe := kind.AllTokens.Complement(kind.Trivia)
	for _, k := range kind.SelfTestKinds {
		k := k
		rule, ok := selfTestRules[k]
		if !ok {
			t.Fatalf("no self-test rule registered for %s", k)
		}
		first := kind.First(k)
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()
			for _, tk := range universe.ToSlice() {
				p := newSyntheticParser(tk, kind.TokUnknown)
				rule(p)
				consumed := p.pos > 0
				want := first.Contains(tk)
				if consumed != want {
					t.Errorf("%s on [%s, UNKNOWN]: consumed = %v, want %v (FIRST(%s) = %s)",
						k, tk, consumed, want, k, first)
				}
			}
		})
	}
}
