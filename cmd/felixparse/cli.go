package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/lexer"
	"github.com/felix-lang/felixcore/internal/parser"
	"github.com/felix-lang/felixcore/internal/tree"
	"github.com/felix-lang/felixcore/internal/types"
)

const (
	exitOK          = 0
	exitDiagnostics = 1
	exitInternal    = 2
)

type cliOptions struct {
	stdin          bool
	assumeFilename string
	debugTokens    bool
	debugCST       bool
	includeTrivia  bool
	checkTypes     bool
	path           string
}

func run(stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "felixparse: %v\n\n%s", err, usage)
		return exitInternal
	}

	src, label, err := readInput(stdin, opts)
	if err != nil {
		writef(stderr, "felixparse: %v\n", err)
		return exitInternal
	}

	if opts.debugTokens {
		dumpTokens(stdout, src)
	}

	res := parser.Parse(src)
	root := tree.NewRoot(res.Root)

	if opts.debugCST {
		dumpCST(stdout, root, src, opts.includeTrivia)
	}

	for _, p := range res.Diagnostics {
		writef(stderr, "%s:%s: %s\n", label, p.Start.Display(), p.Message)
	}

	if opts.checkTypes {
		if exit := runTypeCheck(stdout, stderr, label, tree.NewTree(res.Root, src)); exit != exitOK {
			return exit
		}
	}

	if len(res.Diagnostics) > 0 {
		return exitDiagnostics
	}
	return exitOK
}

func runTypeCheck(stdout, stderr io.Writer, label string, t *tree.Tree) int {
	checker := types.NewChecker(types.NewSTLC(), t.Src)
	root, ok := rootExprForCLI(t.Root)
	if !ok {
		writef(stderr, "%s: no type-checkable root expression\n", label)
		return exitDiagnostics
	}
	typ, err := checker.Infer(nil, root)
	if err != nil {
		writef(stderr, "%s: type error: %v\n", label, err)
		return exitDiagnostics
	}
	writef(stdout, "%s : %s\n", label, typ)
	return exitOK
}

// rootExprForCLI mirrors felixcore.rootExpr without importing the root
// package, keeping this command buildable purely on internal/ packages.
func rootExprForCLI(program *tree.Red) (*tree.Red, bool) {
	var fn *tree.Red
	for _, c := range program.Children() {
		if !c.Green().IsToken() && c.Green().NodeKind() == kind.NodeDefnFn {
			fn = c
			break
		}
	}
	if fn == nil {
		return nil, false
	}
	var block *tree.Red
	for _, c := range fn.Children() {
		if !c.Green().IsToken() && c.Green().NodeKind() == kind.NodeBlock {
			block = c
			break
		}
	}
	if block == nil {
		return nil, false
	}
	var stmts []*tree.Red
	for _, c := range block.Children() {
		if !c.Green().IsToken() {
			stmts = append(stmts, c)
		}
	}
	if len(stmts) == 0 {
		return nil, false
	}
	if stmts[0].Green().NodeKind() == kind.NodeStmtLet {
		return block, true
	}
	if len(stmts) == 1 && stmts[0].Green().NodeKind() == kind.NodeStmtExpr {
		for _, c := range stmts[0].Children() {
			if !c.Green().IsToken() {
				return c, true
			}
		}
	}
	return nil, false
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("felixparse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.stdin, "stdin", false, "read input from stdin")
	fs.StringVar(&opts.assumeFilename, "assume-filename", "", "label used for diagnostics when reading from stdin")
	fs.BoolVar(&opts.debugTokens, "debug-tokens", false, "dump lexer tokens")
	fs.BoolVar(&opts.debugCST, "debug-cst", false, "dump CST nodes")
	fs.BoolVar(&opts.includeTrivia, "trivia", false, "include trivia tokens in --debug-cst output")
	fs.BoolVar(&opts.checkTypes, "check-types", false, "run the reference STLC type checker on the program's root expression")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	rest := fs.Args()
	switch {
	case opts.stdin && len(rest) > 0:
		return cliOptions{}, usage, errors.New("positional file path is not allowed with --stdin")
	case !opts.stdin && len(rest) == 0:
		return cliOptions{}, usage, errors.New("exactly one input file path is required (or use --stdin)")
	case !opts.stdin && len(rest) != 1:
		return cliOptions{}, usage, errors.New("parsing multiple files in one invocation is not supported")
	}
	if !opts.stdin {
		opts.path = rest[0]
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  felixparse [flags] path/to/file.felix\n")
	b.WriteString("  felixparse --stdin [--assume-filename foo.felix] [flags]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func readInput(stdin io.Reader, opts cliOptions) ([]byte, string, error) {
	if opts.stdin {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		label := opts.assumeFilename
		if label == "" {
			label = "stdin.felix"
		}
		return src, label, nil
	}
	//nolint:gosec // CLI intentionally reads user-provided file paths.
	src, err := os.ReadFile(opts.path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", opts.path, err)
	}
	return src, opts.path, nil
}

func dumpTokens(w io.Writer, src []byte) {
	writeln(w, "TOKENS")
	res := lexer.Lex(src)
	for i, tok := range res.Tokens {
		writef(w, "[%d] kind=%s span=%s text=%q", i, tok.Kind, tok.Span, tok.Bytes(src))
		if len(tok.Leading) > 0 {
			writeString(w, " leading=[")
			for j, tr := range tok.Leading {
				if j > 0 {
					writeString(w, ", ")
				}
				writef(w, "%s@%s:%q", tr.Kind, tr.Span, tr.Bytes(src))
			}
			writeString(w, "]")
		}
		writeln(w)
	}
}

func dumpCST(w io.Writer, root *tree.Red, src []byte, includeTrivia bool) {
	writeln(w, "CST")
	var walk func(n *tree.Red, depth int)
	walk = func(n *tree.Red, depth int) {
		g := n.Green()
		if g.IsToken() && !includeTrivia && kind.Trivia.Contains(g.TokenKind()) {
			return
		}
		indent := strings.Repeat("  ", depth)
		if g.IsToken() {
			writef(w, "%s%s@%s %q\n", indent, g.TokenKind(), n.Span(), n.Text(src))
			return
		}
		writef(w, "%s%s@%s\n", indent, g.NodeKind(), n.Span())
		for _, c := range n.Children() {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
}

func writef(w io.Writer, format string, args ...any) {
	//nolint:gosec // Terminal/debug output helper; format strings are internal callsite constants.
	_, _ = io.WriteString(w, fmt.Sprintf(format, args...))
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}

func writeString(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
