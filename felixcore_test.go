package felixcore

import (
	"testing"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/tree"
	"github.com/felix-lang/felixcore/internal/types"
)

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()
	res := Parse("")
	if len(res.Problems) != 0 {
		t.Fatalf("Problems = %+v, want none", res.Problems)
	}
	if res.Syntax.Root.Green().NodeKind() != kind.NodeProgram {
		t.Fatalf("root kind = %s, want PROGRAM", res.Syntax.Root.Green().NodeKind())
	}
	if res.Syntax.Root.Span().Len() != 0 {
		t.Fatalf("root span = %s, want empty", res.Syntax.Root.Span())
	}
}

func TestParseEmptyFunction(t *testing.T) {
	t.Parallel()
	res := Parse("fn f() {}")
	if len(res.Problems) != 0 {
		t.Fatalf("Problems = %+v, want none", res.Problems)
	}
	fn, ok := firstChildOfKind(res.Syntax.Root, kind.NodeDefnFn)
	if !ok {
		t.Fatal("expected a DEFN_FN child")
	}
	if _, ok := firstChildOfKind(fn, kind.NodeParams); ok {
		t.Fatal("expected no PARAMS node for an empty parameter list")
	}
	if _, ok := firstChildOfKind(fn, kind.NodeBlock); !ok {
		t.Fatal("expected a BLOCK child")
	}
}

func TestParseDanglingExpressionRecovers(t *testing.T) {
	t.Parallel()
	res := Parse("fn f(x) { x x }")
	if len(res.Problems) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	p := res.Problems[0]
	if p.Start.Display() != "1:13" {
		t.Fatalf("diagnostic start = %s, want 1:13", p.Start.Display())
	}
}

func TestParseLosslessRoundTrip(t *testing.T) {
	t.Parallel()
	for _, src := range []string{
		"",
		"fn f() {}",
		"fn f(x, y: Int) -> Int { x + y }",
		"fn f(x) { x x }",
		"type T = Int | Bool;",
	} {
		res := Parse(src)
		got := collectText(res.Syntax.Root, []byte(src))
		if got != src {
			t.Fatalf("round-trip mismatch for %q: got %q", src, got)
		}
	}
}

func TestTypeCheckAnnotatedIdentityLambda(t *testing.T) {
	t.Parallel()
	res := Parse("fn f() { \\x: T -> x }")
	if len(res.Problems) != 0 {
		t.Fatalf("unexpected problems: %+v", res.Problems)
	}
	typ, err := TypeCheck(res.Syntax, NewSTLCRegistry())
	if err != nil {
		t.Fatalf("TypeCheck error: %v", err)
	}
	want := types.Arrow(types.Var("T"), types.Var("T"))
	if !types.Equal(typ, want) {
		t.Fatalf("TypeCheck = %s, want %s", typ, want)
	}
}

func TestTypeCheckUnannotatedLambdaHasNoRule(t *testing.T) {
	t.Parallel()
	res := Parse("fn f() { \\x -> x }")
	_, err := TypeCheck(res.Syntax, NewSTLCRegistry())
	if _, ok := err.(*types.NoInferRuleError); !ok {
		t.Fatalf("TypeCheck error = %v, want *NoInferRuleError", err)
	}
}

func TestTypeCheckUnit(t *testing.T) {
	t.Parallel()
	res := Parse("fn f() { () }")
	typ, err := TypeCheck(res.Syntax, NewSTLCRegistry())
	if err != nil {
		t.Fatalf("TypeCheck error: %v", err)
	}
	if !types.Equal(typ, types.Unit) {
		t.Fatalf("TypeCheck = %s, want Unit", typ)
	}
}

// collectText re-concatenates every token leaf's text in document order —
// property 1 of spec §8, driven against the public Parse entry point.
func collectText(n *tree.Red, src []byte) string {
	if n.Green().IsToken() {
		return string(n.Text(src))
	}
	var buf []byte
	for _, c := range n.Children() {
		buf = append(buf, collectText(c, src)...)
	}
	return string(buf)
}
