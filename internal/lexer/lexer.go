// Package lexer turns Felix source bytes into a lossless token stream:
// every byte is accounted for, either as a token or as trivia riding along
// in a token's Leading slice. The lexer never aborts; unrecognised input
// becomes an UNKNOWN token plus a diagnostic, and scanning continues.
//
// Grounded on internal/lexer/lexer.go's scanner struct and run-loop shape
// (github.com/kpumuk/thrift-weaver), retargeted at Felix's lexical grammar
// (identifiers split by case, nat literals, (* … *) block comments) instead
// of Thrift IDL's keyword set.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/felix-lang/felixcore/internal/kind"
	"github.com/felix-lang/felixcore/internal/text"
)

// DiagnosticCode identifies lexer diagnostic categories.
type DiagnosticCode string

// DiagnosticCode values emitted by the lexer.
const (
	DiagnosticInvalidByte       DiagnosticCode = "LEX_INVALID_BYTE"
	DiagnosticUnknownCharacter  DiagnosticCode = "LEX_UNKNOWN_CHARACTER"
	DiagnosticUnterminatedBlock DiagnosticCode = "LEX_UNTERMINATED_COMMENT"
	DiagnosticLeadingZero       DiagnosticCode = "LEX_INVALID_NAT_LITERAL"
)

// Diagnostic is a lexer-level issue with source location.
type Diagnostic struct {
	Code    DiagnosticCode
	Message string
	Span    text.Span
}

// Result is the output of lexing source bytes.
type Result struct {
	Tokens      []Token
	Diagnostics []Diagnostic
}

// Lex tokenizes src into a lossless token stream with leading trivia. The
// final token is always kind.TokEOF.
func Lex(src []byte) Result {
	s := scanner{src: src}
	s.run()
	return Result{Tokens: s.tokens, Diagnostics: s.diagnostics}
}

type scanner struct {
	src         []byte
	i           int
	tokens      []Token
	diagnostics []Diagnostic
}

func (s *scanner) run() {
	for {
		leading, errTok := s.scanLeadingTrivia()
		if errTok != nil {
			errTok.Leading = leading
			s.tokens = append(s.tokens, *errTok)
			continue
		}

		if s.eof() {
			s.tokens = append(s.tokens, Token{
				Kind:    kind.TokEOF,
				Span:    span(len(s.src), len(s.src)),
				Leading: leading,
			})
			return
		}

		tok := s.scanToken()
		tok.Leading = leading
		s.tokens = append(s.tokens, tok)
	}
}

func (s *scanner) scanLeadingTrivia() ([]Trivia, *Token) {
	var out []Trivia

	for !s.eof() {
		start := s.i
		switch b := s.src[s.i]; b {
		case ' ', '\t', '\v', '\f', '\n', '\r':
			for !s.eof() && isSpace(s.src[s.i]) {
				s.i++
			}
			out = append(out, Trivia{Kind: kind.TokWhitespace, Span: span(start, s.i)})
		case '(':
			if s.peekByte(1) != '*' {
				return out, nil
			}
			t, errTok := s.scanBlockCommentOrError()
			if errTok != nil {
				return out, errTok
			}
			out = append(out, t)
		default:
			if b >= utf8.RuneSelf {
				if r, size := utf8.DecodeRune(s.src[s.i:]); r == utf8.RuneError && size == 1 {
					s.i++
					return out, s.makeErrorToken(start, s.i, DiagnosticInvalidByte, "invalid UTF-8 byte")
				}
			}
			return out, nil
		}
	}

	return out, nil
}

func (s *scanner) scanToken() Token {
	start := s.i
	b := s.src[s.i]

	switch {
	case isIdentStart(b):
		return s.scanIdentOrKeyword(start)
	case isDigit(b):
		return s.scanNatLiteral(start)
	case b >= utf8.RuneSelf:
		r, size := utf8.DecodeRune(s.src[s.i:])
		if r == utf8.RuneError && size == 1 {
			s.i++
			return *s.makeErrorToken(start, start+1, DiagnosticInvalidByte, "invalid UTF-8 byte")
		}
		s.i += size
		return *s.makeErrorToken(start, s.i, DiagnosticUnknownCharacter, "unsupported non-ASCII token character")
	default:
		return s.scanOperatorOrPunct(start)
	}
}

func (s *scanner) scanIdentOrKeyword(start int) Token {
	s.i++
	for !s.eof() && isIdentPart(s.src[s.i]) {
		s.i++
	}
	lexeme := string(s.src[start:s.i])

	if k, ok := kind.Keywords[lexeme]; ok {
		return Token{Kind: k, Span: span(start, s.i)}
	}

	tokKind := kind.TokIdentExpr
	if b := lexeme[0]; b >= 'A' && b <= 'Z' {
		tokKind = kind.TokIdentType
		if k, ok := kind.TypeKeywords[lexeme]; ok {
			tokKind = k
		}
	}
	return Token{Kind: tokKind, Span: span(start, s.i)}
}

func (s *scanner) scanNatLiteral(start int) Token {
	for !s.eof() && isDigit(s.src[s.i]) {
		s.i++
	}
	sp := span(start, s.i)
	if s.i-start > 1 && s.src[start] == '0' {
		s.diagnostics = append(s.diagnostics, Diagnostic{
			Code:    DiagnosticLeadingZero,
			Message: "natural number literal must not have a leading zero",
			Span:    sp,
		})
		return Token{Kind: kind.TokNatLit, Span: sp, Flags: TokenFlagMalformed}
	}
	return Token{Kind: kind.TokNatLit, Span: sp}
}

func (s *scanner) scanOperatorOrPunct(start int) Token {
	b := s.src[s.i]
	s.i++

	two := func(second byte, tk kind.TokenKind, single kind.TokenKind) Token {
		if !s.eof() && s.src[s.i] == second {
			s.i++
			return Token{Kind: tk, Span: span(start, s.i)}
		}
		return Token{Kind: single, Span: span(start, s.i)}
	}

	switch b {
	case '-':
		if !s.eof() && s.src[s.i] == '>' {
			s.i++
			return Token{Kind: kind.TokArrow, Span: span(start, s.i)}
		}
		return Token{Kind: kind.TokMinus, Span: span(start, s.i)}
	case '|':
		return two('|', kind.TokOrOr, kind.TokPipe)
	case '&':
		return two('&', kind.TokAndAnd, kind.TokAmp)
	case '=':
		return two('=', kind.TokEqEq, kind.TokEquals)
	case '!':
		return two('=', kind.TokNe, kind.TokBang)
	case '<':
		return two('=', kind.TokLe, kind.TokLt)
	case '>':
		return two('=', kind.TokGe, kind.TokGt)
	case '+':
		return Token{Kind: kind.TokPlus, Span: span(start, s.i)}
	case '*':
		return Token{Kind: kind.TokStar, Span: span(start, s.i)}
	case '/':
		return Token{Kind: kind.TokSlash, Span: span(start, s.i)}
	case '%':
		return Token{Kind: kind.TokPercent, Span: span(start, s.i)}
	case '~':
		return Token{Kind: kind.TokTilde, Span: span(start, s.i)}
	case '?':
		return Token{Kind: kind.TokQuestion, Span: span(start, s.i)}
	case '\\':
		return Token{Kind: kind.TokBackslash, Span: span(start, s.i)}
	case '(':
		return Token{Kind: kind.TokLParen, Span: span(start, s.i)}
	case ')':
		return Token{Kind: kind.TokRParen, Span: span(start, s.i)}
	case '{':
		return Token{Kind: kind.TokLBrace, Span: span(start, s.i)}
	case '}':
		return Token{Kind: kind.TokRBrace, Span: span(start, s.i)}
	case ',':
		return Token{Kind: kind.TokComma, Span: span(start, s.i)}
	case ':':
		return Token{Kind: kind.TokColon, Span: span(start, s.i)}
	case ';':
		return Token{Kind: kind.TokSemi, Span: span(start, s.i)}
	case '.':
		return Token{Kind: kind.TokDot, Span: span(start, s.i)}
	default:
		return *s.makeErrorToken(start, s.i, DiagnosticUnknownCharacter, fmt.Sprintf("unknown character %q", b))
	}
}

func (s *scanner) scanBlockCommentOrError() (Trivia, *Token) {
	start := s.i
	s.i += 2 // consume "(*"

	for !s.eof() {
		if s.src[s.i] == '*' && s.peekByte(1) == ')' {
			s.i += 2
			return Trivia{Kind: kind.TokBlockComment, Span: span(start, s.i)}, nil
		}
		s.i++
	}

	return Trivia{}, s.makeErrorToken(start, s.i, DiagnosticUnterminatedBlock, "unterminated block comment")
}

func (s *scanner) makeErrorToken(start, end int, code DiagnosticCode, msg string) *Token {
	sp := span(start, end)
	s.diagnostics = append(s.diagnostics, Diagnostic{Code: code, Message: msg, Span: sp})
	return &Token{Kind: kind.TokUnknown, Span: sp, Flags: TokenFlagMalformed}
}

func (s *scanner) eof() bool {
	return s.i >= len(s.src)
}

func (s *scanner) peekByte(delta int) byte {
	j := s.i + delta
	if j < 0 || j >= len(s.src) {
		return 0
	}
	return s.src[j]
}

func span(start, end int) text.Span {
	return text.Span{Start: text.Offset(start), End: text.Offset(end)}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
