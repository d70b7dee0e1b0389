package lexer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/felix-lang/felixcore/internal/text"
)

func TestTokenAndTriviaBytesUseRawSpans(t *testing.T) {
	t.Parallel()

	src := []byte("  abc")
	tr := Trivia{Kind: 0, Span: text.Span{Start: 0, End: 2}}
	tok := Token{Span: text.Span{Start: 2, End: 5}}

	if got := string(tr.Bytes(src)); got != "  " {
		t.Fatalf("Trivia.Bytes() = %q, want %q", got, "  ")
	}
	if got := string(tok.Bytes(src)); got != "abc" {
		t.Fatalf("Token.Bytes() = %q, want %q", got, "abc")
	}
}

func TestLexGoldenRepresentativeValidInput(t *testing.T) {
	t.Parallel()

	src := []byte(`(* doc *)
fn f(x) {
  let rec g = \y -> x + y;
  g 1
}
`)

	res := Lex(src)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Diagnostics)
	}

	got := renderTokens(src, res.Tokens)
	want := strings.TrimSpace(`
KW_FN("fn") lead=[COMMENT("(* doc *)"),WHITESPACE("\n")]
IDENT_EXPR("f") lead=[WHITESPACE(" ")]
LPAREN("(") lead=[]
IDENT_EXPR("x") lead=[]
RPAREN(")") lead=[]
LBRACE("{") lead=[WHITESPACE(" ")]
KW_LET("let") lead=[WHITESPACE("\n  ")]
KW_REC("rec") lead=[WHITESPACE(" ")]
IDENT_EXPR("g") lead=[WHITESPACE(" ")]
EQUALS("=") lead=[WHITESPACE(" ")]
BACKSLASH("\\") lead=[WHITESPACE(" ")]
IDENT_EXPR("y") lead=[]
ARROW("->") lead=[WHITESPACE(" ")]
IDENT_EXPR("x") lead=[WHITESPACE(" ")]
PLUS("+") lead=[WHITESPACE(" ")]
IDENT_EXPR("y") lead=[WHITESPACE(" ")]
SEMI(";") lead=[]
IDENT_EXPR("g") lead=[WHITESPACE("\n  ")]
NAT_LIT("1") lead=[WHITESPACE(" ")]
RBRACE("}") lead=[WHITESPACE("\n")]
EOF("") lead=[WHITESPACE("\n")]
`)
	if got != want {
		t.Fatalf("golden mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestLexIdentifierCaseSplit(t *testing.T) {
	t.Parallel()

	res := Lex([]byte("foo Bar _baz Unit Bool Int Other"))
	var kinds []string
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind.String())
	}
	want := "IDENT_EXPR IDENT_TYPE IDENT_EXPR TY_UNIT TY_BOOL TY_INT IDENT_TYPE EOF"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("kinds = %q, want %q", got, want)
	}
}

func TestLexMalformedInputsEmitErrorsAndDiagnostics(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src          []byte
		wantDiagCode DiagnosticCode
	}{
		"unterminated block comment": {
			src:          []byte("(* abc"),
			wantDiagCode: DiagnosticUnterminatedBlock,
		},
		"invalid byte": {
			src:          []byte{0xff},
			wantDiagCode: DiagnosticInvalidByte,
		},
		"leading zero": {
			src:          []byte("007"),
			wantDiagCode: DiagnosticLeadingZero,
		},
		"unknown character": {
			src:          []byte("@"),
			wantDiagCode: DiagnosticUnknownCharacter,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := Lex(tc.src)
			if len(res.Diagnostics) == 0 {
				t.Fatalf("expected diagnostics for %q", tc.src)
			}
			if res.Diagnostics[0].Code != tc.wantDiagCode {
				t.Fatalf("diagnostic code = %s, want %s", res.Diagnostics[0].Code, tc.wantDiagCode)
			}
			if len(res.Tokens) == 0 || !res.Tokens[0].Flags.Has(TokenFlagMalformed) {
				t.Fatalf("expected malformed flag on first token, got %+v", res.Tokens)
			}
			if got := res.Tokens[len(res.Tokens)-1].Kind.String(); got != "EOF" {
				t.Fatalf("expected EOF token at end, got %s", got)
			}
		})
	}
}

func TestLexLosslessReassembly(t *testing.T) {
	t.Parallel()

	srcs := []string{
		"",
		"fn f() { x }",
		"(* a *) \t\n  type T = Int",
		"a == b != c",
		"\t  ",
	}

	for _, src := range srcs {
		res := Lex([]byte(src))
		var buf strings.Builder
		for _, tok := range res.Tokens {
			for _, tr := range tok.Leading {
				buf.Write(tr.Bytes([]byte(src)))
			}
			buf.Write(tok.Bytes([]byte(src)))
		}
		if got := buf.String(); got != src {
			t.Fatalf("reassembly(%q) = %q", src, got)
		}
	}
}

func TestLexNoPanicsOnMalformedCorpusSamples(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		[]byte(`(*`),
		[]byte(`0`),
		{0xff, '{', 0xfe},
		[]byte("fn f(x) { 007 }"),
	}

	for _, src := range inputs {
		src := src
		t.Run(fmt.Sprintf("%q", src), func(t *testing.T) {
			t.Parallel()
			_ = Lex(src)
		})
	}
}

func renderTokens(src []byte, tokens []Token) string {
	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lines = append(lines, fmt.Sprintf("%s(%q) lead=%s", tok.Kind, tok.Bytes(src), renderLeading(src, tok.Leading)))
	}
	return strings.Join(lines, "\n")
}

func renderLeading(src []byte, trivia []Trivia) string {
	if len(trivia) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(trivia))
	for _, tr := range trivia {
		parts = append(parts, fmt.Sprintf("%s(%q)", tr.Kind, tr.Bytes(src)))
	}
	return "[" + strings.Join(parts, ",") + "]"
}
