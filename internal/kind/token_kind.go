// Package kind enumerates the fixed token/node vocabularies of the Felix
// grammar and the bit-set and FIRST-set machinery the parser drives off of.
//
// Grounded on internal/lexer.TokenKind's iota block + String() switch
// (github.com/kpumuk/thrift-weaver), generalized with the bit-set algebra
// and FIRST-set tables that a Pratt/recursive-descent grammar needs and a
// tree-sitter-fronted lexer never did.
package kind

import "fmt"

// TokenKind identifies the syntactic category of a token. The enumeration
// is closed and split into three disjoint subclasses: real tokens
// (keywords, identifiers, literals, operators, punctuation), trivia
// (whitespace, comments), and the two synthetic values Unknown and EOF.
type TokenKind uint16

const (
	TokUnknown TokenKind = iota // lexer error
	TokEOF                      // end of input

	// Identifiers and literals.
	TokIdentExpr // lowercase-leading identifier
	TokIdentType // uppercase-leading identifier
	TokNatLit    // 0 | [1-9][0-9]*
	TokKwTrue
	TokKwFalse

	// Keywords.
	TokKwFn
	TokKwType
	TokKwLet
	TokKwRec
	TokKwIf
	TokKwElse

	// Builtin type names (distinguished from TokIdentType by keyword table
	// lookup, the way thrift-weaver's own lexer distinguishes
	// TokenKwInclude from TokenIdentifier).
	TokTyUnit
	TokTyBool
	TokTyInt

	// Operators.
	TokArrow    // ->
	TokOrOr     // ||
	TokAndAnd   // &&
	TokEqEq     // ==
	TokNe       // !=
	TokLt       // <
	TokLe       // <=
	TokGt       // >
	TokGe       // >=
	TokPlus     // +
	TokMinus    // -
	TokStar     // *
	TokSlash    // /
	TokPercent  // %
	TokBang     // !
	TokPipe     // |
	TokAmp      // &
	TokTilde    // ~
	TokQuestion // ?
	TokBackslash

	// Punctuation.
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokComma
	TokColon
	TokEquals // =
	TokSemi
	TokDot

	// Trivia.
	TokWhitespace
	TokBlockComment

	tokenKindCount
)

func (k TokenKind) String() string {
	switch k {
	case TokUnknown:
		return "UNKNOWN"
	case TokEOF:
		return "EOF"
	case TokIdentExpr:
		return "IDENT_EXPR"
	case TokIdentType:
		return "IDENT_TYPE"
	case TokNatLit:
		return "NAT_LIT"
	case TokKwTrue:
		return "KW_TRUE"
	case TokKwFalse:
		return "KW_FALSE"
	case TokKwFn:
		return "KW_FN"
	case TokKwType:
		return "KW_TYPE"
	case TokKwLet:
		return "KW_LET"
	case TokKwRec:
		return "KW_REC"
	case TokKwIf:
		return "KW_IF"
	case TokKwElse:
		return "KW_ELSE"
	case TokTyUnit:
		return "TY_UNIT"
	case TokTyBool:
		return "TY_BOOL"
	case TokTyInt:
		return "TY_INT"
	case TokArrow:
		return "ARROW"
	case TokOrOr:
		return "PIPE_PIPE"
	case TokAndAnd:
		return "AMP_AMP"
	case TokEqEq:
		return "EQUALS_EQUALS"
	case TokNe:
		return "BANG_EQUALS"
	case TokLt:
		return "LT"
	case TokLe:
		return "LE"
	case TokGt:
		return "GT"
	case TokGe:
		return "GE"
	case TokPlus:
		return "PLUS"
	case TokMinus:
		return "MINUS"
	case TokStar:
		return "STAR"
	case TokSlash:
		return "SLASH"
	case TokPercent:
		return "PERCENT"
	case TokBang:
		return "BANG"
	case TokPipe:
		return "PIPE"
	case TokAmp:
		return "AMP"
	case TokTilde:
		return "TILDE"
	case TokQuestion:
		return "QUESTION"
	case TokBackslash:
		return "BACKSLASH"
	case TokLParen:
		return "LPAREN"
	case TokRParen:
		return "RPAREN"
	case TokLBrace:
		return "LBRACE"
	case TokRBrace:
		return "RBRACE"
	case TokComma:
		return "COMMA"
	case TokColon:
		return "COLON"
	case TokSemi:
		return "SEMI"
	case TokEquals:
		return "EQUALS"
	case TokDot:
		return "DOT"
	case TokWhitespace:
		return "WHITESPACE"
	case TokBlockComment:
		return "COMMENT"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint16(k))
	}
}

// Keywords maps lexeme text to its keyword token kind. Identifiers not in
// this table keep their IdentExpr/IdentType kind from case-of-first-letter.
var Keywords = map[string]TokenKind{
	"fn":    TokKwFn,
	"type":  TokKwType,
	"let":   TokKwLet,
	"rec":   TokKwRec,
	"if":    TokKwIf,
	"else":  TokKwElse,
	"true":  TokKwTrue,
	"false": TokKwFalse,
}

// TypeKeywords maps builtin type names to their dedicated token kind. Any
// other uppercase-leading identifier stays IdentType.
var TypeKeywords = map[string]TokenKind{
	"Unit": TokTyUnit,
	"Bool": TokTyBool,
	"Int":  TokTyInt,
}

// Trivia is the set of tokens carrying no syntactic meaning.
var Trivia = NewTokenSet(TokWhitespace, TokBlockComment)

// Literals is the set of tokens that may stand directly as EXPR_LIT.
var Literals = NewTokenSet(TokNatLit, TokKwTrue, TokKwFalse)

// InfixOps is the set of binary operator tokens recognized by the Pratt
// precedence table (spec §4.3).
var InfixOps = NewTokenSet(
	TokOrOr, TokAndAnd,
	TokEqEq, TokNe, TokLt, TokLe, TokGt, TokGe,
	TokPlus, TokMinus,
	TokStar, TokSlash, TokPercent,
)

// PrefixOps is the set of unary prefix operator tokens.
var PrefixOps = NewTokenSet(TokMinus, TokBang)

// BuiltinTypes is the set of builtin type-name tokens.
var BuiltinTypes = NewTokenSet(TokTyUnit, TokTyBool, TokTyInt)

// AllTokens is the universe set used to compute complements (e.g. ERROR's
// FIRST set, defined as "any non-trivia token").
var AllTokens = allTokenKinds()

func allTokenKinds() TokenKindSet {
	var s TokenKindSet
	for i := TokenKind(0); i < tokenKindCount; i++ {
		s = s.Add(i)
	}
	return s
}
