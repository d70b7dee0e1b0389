// Package bridge serializes a finished CST into the plain id/span/kind/
// text-or-children shape spec §6 reserves for the browser-facing bridge,
// plus a Severity-tagged Diagnostic mirror of internal/diag.Problem.
//
// Grounded on internal/lsp/types.go's plain `json:"..."`-tagged struct
// style (github.com/kpumuk/thrift-weaver) — the nearest pack analogue of
// "define the wire shape a non-Go consumer deserializes," generalized from
// LSP's JSON-RPC envelope to the id/span/kind/text-or-children tree shape
// spec §6 fixes. No WASM/JS glue lives here (explicitly out of scope);
// this package only produces the Go-side value the real bridge would
// marshal.
package bridge

import (
	"strconv"
	"strings"

	"github.com/felix-lang/felixcore/internal/diag"
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/text"
	"github.com/felix-lang/felixcore/internal/tree"
)

// Options controls serialization.
type Options struct {
	// IncludeTrivia keeps whitespace/comment token children in the output.
	// When false (the default), tokens whose kind is in kind.Trivia are
	// filtered from a node's Children list.
	IncludeTrivia bool
}

// Element is one serialized tree node: a token (Text set, Children nil)
// or an interior node (Children set, Text empty). ID is the dotted path
// of child indices from the root, e.g. "0.2.1". Start/End are byte
// offsets into the source, matching the half-open spans the rest of the
// pipeline already carries; a JS/WASM bridge is free to re-resolve them
// to line/column via the same Mapper.
type Element struct {
	ID       string      `json:"id"`
	Start    text.Offset `json:"start"`
	End      text.Offset `json:"end"`
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Children []Element   `json:"children,omitempty"`
}

// Diagnostic mirrors diag.Problem in the bridge's SCREAMING_SNAKE_CASE
// severity shape.
type Diagnostic struct {
	Start    text.Point `json:"start"`
	End      text.Point `json:"end"`
	Severity string     `json:"severity"`
	Source   string     `json:"source"`
	Message  string     `json:"message"`
}

// Serialize walks t's red tree into the bridge Element shape.
func Serialize(t *tree.Tree, opts Options) Element {
	return serializeNode(t.Root, t.Src, "", opts)
}

func serializeNode(n *tree.Red, src []byte, id string, opts Options) Element {
	g := n.Green()
	sp := n.Span()
	el := Element{
		ID:    id,
		Start: sp.Start,
		End:   sp.End,
		Kind:  kindName(g),
	}
	if g.IsToken() {
		el.Text = string(n.Text(src))
		return el
	}
	children := n.Children()
	el.Children = make([]Element, 0, len(children))
	idx := 0
	for _, c := range children {
		if !opts.IncludeTrivia && c.Green().IsToken() && kind.Trivia.Contains(c.Green().TokenKind()) {
			continue
		}
		childID := strconv.Itoa(idx)
		if id != "" {
			childID = id + "." + childID
		}
		el.Children = append(el.Children, serializeNode(c, src, childID, opts))
		idx++
	}
	return el
}

func kindName(g *tree.Green) string {
	if g.IsToken() {
		return g.TokenKind().String()
	}
	return g.NodeKind().String()
}

// Diagnostics converts the parser/checker's internal Problems into the
// bridge's Diagnostic shape.
func Diagnostics(problems []diag.Problem) []Diagnostic {
	out := make([]Diagnostic, len(problems))
	for i, p := range problems {
		out[i] = Diagnostic{
			Start:    p.Start,
			End:      p.End,
			Severity: strings.ToUpper(p.Severity.String()),
			Source:   string(p.Source),
			Message:  p.Message,
		}
	}
	return out
}
