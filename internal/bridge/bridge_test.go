package bridge

import (
	"strconv"
	"testing"

	"github.com/go-test/deep"

	"github.com/felix-lang/felixcore/internal/parser"
	"github.com/felix-lang/felixcore/internal/text"
	"github.com/felix-lang/felixcore/internal/tree"
)

func parseTree(src string) *tree.Tree {
	res := parser.Parse([]byte(src))
	return tree.NewTree(res.Root, []byte(src))
}

func TestSerializeRootSpansWholeInput(t *testing.T) {
	t.Parallel()
	src := "fn f() {}"
	el := Serialize(parseTree(src), Options{})
	if el.ID != "" {
		t.Fatalf("root id = %q, want empty", el.ID)
	}
	if int(el.End-el.Start) != len(src) {
		t.Fatalf("root span = [%d,%d), want to cover %d bytes", el.Start, el.End, len(src))
	}
	if el.Kind != "PROGRAM" {
		t.Fatalf("root kind = %q, want PROGRAM", el.Kind)
	}
}

func TestSerializeTriviaToggle(t *testing.T) {
	t.Parallel()
	tr := parseTree("fn f() {}")

	withTrivia := Serialize(tr, Options{IncludeTrivia: true})
	withoutTrivia := Serialize(tr, Options{IncludeTrivia: false})

	// PROGRAM's own children (DEFN_FN, EOF) carry no trivia here; the
	// whitespace tokens the toggle drops sit inside DEFN_FN.
	fnWith, fnWithout := withTrivia.Children[0], withoutTrivia.Children[0]
	if len(fnWithout.Children) >= len(fnWith.Children) {
		t.Fatalf("expected trivia filtering to drop children: with=%d without=%d",
			len(fnWith.Children), len(fnWithout.Children))
	}
	var containsTrivia func(e Element) bool
	containsTrivia = func(e Element) bool {
		if e.Kind == "WHITESPACE" {
			return true
		}
		for _, c := range e.Children {
			if containsTrivia(c) {
				return true
			}
		}
		return false
	}
	if containsTrivia(withoutTrivia) {
		t.Fatal("trivia leaked through with IncludeTrivia: false")
	}
}

func TestSerializeIDsAreDottedChildPaths(t *testing.T) {
	t.Parallel()
	el := Serialize(parseTree("fn f() {}"), Options{})
	var walk func(e Element)
	walk = func(e Element) {
		for i, c := range e.Children {
			want := strconv.Itoa(i)
			if e.ID != "" {
				want = e.ID + "." + want
			}
			if c.ID != want {
				t.Errorf("child id = %q, want %q", c.ID, want)
			}
			walk(c)
		}
	}
	walk(el)
	if len(el.Children) == 0 {
		t.Fatal("expected PROGRAM to have children")
	}
	first := el.Children[0]
	if first.ID != "0" {
		t.Fatalf("first child id = %q, want %q", first.ID, "0")
	}
}

func TestDiagnosticsMirrorsProblems(t *testing.T) {
	t.Parallel()
	res := parser.Parse([]byte("fn f(x) { x x }"))
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	diags := Diagnostics(res.Diagnostics)
	if len(diags) != len(res.Diagnostics) {
		t.Fatalf("Diagnostics returned %d entries, want %d", len(diags), len(res.Diagnostics))
	}
	if diags[0].Severity != "ERROR" {
		t.Fatalf("Severity = %q, want ERROR", diags[0].Severity)
	}
}

// TestDiagnosticsExactShape structurally diffs the bridge's Diagnostic
// slice against a hand-built expectation, the way playbymail/ottomap's
// parser tests diff parsed values field-by-field with go-test/deep instead
// of asserting one field at a time.
func TestDiagnosticsExactShape(t *testing.T) {
	t.Parallel()
	res := parser.Parse([]byte("fn f(x) { x x }"))

	want := []Diagnostic{
		{
			Start:    text.Point{Line: 0, Column: 12},
			End:      text.Point{Line: 0, Column: 13},
			Severity: "ERROR",
			Source:   "parser/block",
			Message:  "Found IDENT_EXPR, expected RBRACE | EQUALS | SEMI.",
		},
	}

	got := Diagnostics(res.Diagnostics)
	if diff := deep.Equal(got, want); diff != nil {
		for _, d := range diff {
			t.Errorf("Diagnostics mismatch: %s", d)
		}
	}
}
