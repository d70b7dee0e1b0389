// Package parser implements Felix's recursive-descent + Pratt parser: a
// single-threaded, synchronous pass over a pre-lexed token stream that
// always produces a complete green tree plus a diagnostic list, never a
// hard failure.
//
// Grounded on the Marker/wrap/checkpoint mechanics of
// boergens-gotypst/syntax/parser.go (the nearest pack analogue of a
// hand-written recursive-descent parser with retroactive node wrapping),
// adapted to felixcore's pre-lexed (not streaming) token source and its
// split tree.Builder/diag.Problem types.
package parser

import (
	"fmt"
	"strings"

	"github.com/felix-lang/felixcore/internal/diag"
	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/lexer"
	"github.com/felix-lang/felixcore/internal/text"
	"github.com/felix-lang/felixcore/internal/tree"
)

// Result is the output of parsing a Felix source buffer.
type Result struct {
	Root        *tree.Green
	Diagnostics []diag.Problem
}

// Parse lexes and parses src, returning a complete CST and diagnostics
// from both stages, sorted into one deterministic sequence.
func Parse(src []byte) Result {
	lexResult := lexer.Lex(src)
	p := &Parser{
		src:    src,
		tokens: lexResult.Tokens,
		mapper: text.NewMapper(src),
	}
	for _, d := range lexResult.Diagnostics {
		p.problems = append(p.problems, diag.New(p.mapper, d.Span, diag.SeverityError, diag.SourceLexer, d.Message))
	}

	p.parseProgram()

	diag.Sort(p.problems)
	return Result{Root: p.b.Finish(), Diagnostics: p.problems}
}

// Parser holds all state for one parse. One Parser owns one input buffer.
type Parser struct {
	src      []byte
	tokens   []lexer.Token
	pos      int
	b        tree.Builder
	problems []diag.Problem
	mapper   *text.Mapper
	openName []string // names of currently open nodes, innermost last
}

func (p *Parser) cur() *lexer.Token {
	if p.pos >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // EOF sentinel is always the last token
	}
	return &p.tokens[p.pos]
}

// peek returns the kind of the next non-trivia token (trivia never
// appears as its own token in this lexer — it always rides as a
// preceding token's Leading — so "peek" is simply the current token).
func (p *Parser) peek() kind.TokenKind { return p.cur().Kind }

func (p *Parser) at(tk kind.TokenKind) bool { return p.peek() == tk }

func (p *Parser) atEnd() bool { return p.peek() == kind.TokEOF }

func (p *Parser) checkpoint() tree.Checkpoint { return p.b.Checkpoint() }

// advanceRaw commits the current token's leading trivia and the token
// itself to the builder, without opening any node around it.
func (p *Parser) advanceRaw() {
	tok := p.cur()
	for _, tr := range tok.Leading {
		p.b.Token(tr.Kind, uint32(tr.Span.Len()), false)
	}
	p.b.Token(tok.Kind, uint32(tok.Span.Len()), tok.Flags.Has(lexer.TokenFlagMalformed))
	p.advancePos()
}

// withNode commits the upcoming token's leading trivia first, so it
// precedes (sits outside) the node body opens — the "with_node"
// discipline. This is the default for every grammar rule except the
// top-level program, which uses withRoot so the file's leading trivia
// lands inside PROGRAM instead of being orphaned above the tree.
func (p *Parser) withNode(k kind.NodeKind, body func()) {
	p.flushLeadingTrivia()
	p.openName = append(p.openName, k.String())
	p.b.StartNode(k)
	body()
	p.b.FinishNode()
	p.openName = p.openName[:len(p.openName)-1]
}

// withRoot opens the node before committing any trivia, so the first
// token's leading trivia is the node's first child.
func (p *Parser) withRoot(k kind.NodeKind, body func()) {
	p.openName = append(p.openName, k.String())
	p.b.StartNode(k)
	body()
	p.b.FinishNode()
	p.openName = p.openName[:len(p.openName)-1]
}

func (p *Parser) flushLeadingTrivia() {
	tok := p.cur()
	for _, tr := range tok.Leading {
		p.b.Token(tr.Kind, uint32(tr.Span.Len()), false)
	}
	tok.Leading = nil
}

// advance asserts the current token is one of expected, commits it (and
// its leading trivia) as a leaf, and moves the cursor forward. On
// mismatch it records an expectation diagnostic and inserts a zero-width
// BROKEN node instead of consuming anything, leaving the cursor in place
// for the caller's recovery logic.
func (p *Parser) advance(expected kind.TokenKindSet) {
	if !expected.Contains(p.peek()) {
		p.expectationError(expected)
		p.insertBroken()
		return
	}
	p.flushLeadingTrivia()
	p.b.Token(p.cur().Kind, uint32(p.cur().Span.Len()), p.cur().Flags.Has(lexer.TokenFlagMalformed))
	p.advancePos()
}

func (p *Parser) advancePos() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// insertBroken emits a zero-width BROKEN node, marking a required
// sub-term that the input did not supply.
func (p *Parser) insertBroken() {
	p.b.StartNode(kind.NodeBroken)
	p.b.FinishNode()
}

// expectationError records "Found X, expected A | B | C." at the current
// token; the innermost currently open node names the diagnostic's source.
func (p *Parser) expectationError(expected kind.TokenKindSet) {
	kinds := expected.ToSlice()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	msg := fmt.Sprintf("Found %s, expected %s.", p.peek(), strings.Join(names, " | "))
	p.addError(p.cur().Span, msg)
}

// parserSource reports this diagnostic's source as parser/<node-kind
// lowercased>, per spec §3 — the innermost node open when the error fired.
func (p *Parser) parserSource() diag.Source {
	where := "root"
	if n := len(p.openName); n > 0 {
		where = p.openName[n-1]
	}
	return diag.Source("parser/" + strings.ToLower(where))
}

func (p *Parser) addError(span text.Span, msg string) {
	p.problems = append(p.problems, diag.New(p.mapper, span, diag.SeverityError, p.parserSource(), msg))
}

// skipUntil consumes tokens up to (not including) one in follow or EOF,
// wrapping everything it consumes in a single ERROR node: the first
// skipped token's leading trivia precedes the node, later tokens' trivia
// sits inside it. Used to resynchronize after a malformed item or statement so one
// bad construct doesn't cascade into spurious downstream diagnostics.
func (p *Parser) skipUntil(follow kind.TokenKindSet) {
	if follow.Contains(p.peek()) || p.atEnd() {
		return
	}
	p.withNode(kind.NodeError, func() {
		for !follow.Contains(p.peek()) && !p.atEnd() {
			p.advanceRaw()
		}
	})
}
