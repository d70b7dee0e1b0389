package kind

// RuleAlias names a grammar category that spans more than one concrete
// NodeKind — e.g. "an expression" covers EXPR_VAR, EXPR_LIT, EXPR_CALL, …
// depending on which token is seen. Spec §4.1 calls these "rule-alias
// categories"; they get a declared FIRST set the same way a NodeKind does,
// even though no single CST node carries the alias as its own Kind.
type RuleAlias uint16

const (
	AliasItem RuleAlias = iota
	AliasStmt
	AliasExpr
	AliasAtomExpr
	AliasType
	AliasTypeAtom
)

var atomExprFirst = PrefixOps.Union(Literals).
	Union(NewTokenSet(TokIdentExpr, TokLParen, TokBackslash, TokLBrace))

var exprFirst = atomExprFirst // every expression bottoms out at an atom or a prefix op

var typeAtomFirst = BuiltinTypes.Union(NewTokenSet(TokIdentType, TokLParen, TokKwFn))

var typeFirst = typeAtomFirst.Union(NewTokenSet(TokTilde))

var itemFirst = NewTokenSet(TokKwFn, TokKwType)

var stmtFirst = NewTokenSet(TokKwLet, TokKwIf).Union(exprFirst)

// FirstAlias returns the declared FIRST set for a rule-alias category.
func FirstAlias(a RuleAlias) TokenKindSet {
	switch a {
	case AliasItem:
		return itemFirst
	case AliasStmt:
		return stmtFirst
	case AliasExpr:
		return exprFirst
	case AliasAtomExpr:
		return atomExprFirst
	case AliasType:
		return typeFirst
	case AliasTypeAtom:
		return typeAtomFirst
	default:
		return 0
	}
}

// First returns the declared FIRST set for a NodeKind with a dedicated
// parse rule: the set of tokens that may open a non-empty instance of that
// category. ERROR is the sole exception: its FIRST is the complement of
// TRIVIA ∪ {EOF} — any non-trivia token may open an error region.
func First(k NodeKind) TokenKindSet {
	switch k {
	case NodeProgram:
		return itemFirst
	case NodeDefnFn:
		return NewTokenSet(TokKwFn)
	case NodeDefnType:
		return NewTokenSet(TokKwType)
	case NodeParams:
		return NewTokenSet(TokIdentExpr)
	case NodeParam, NodeBinder:
		return NewTokenSet(TokIdentExpr)
	case NodeBlock:
		return NewTokenSet(TokLBrace)
	case NodeStmtLet:
		return NewTokenSet(TokKwLet)
	case NodeStmtIf:
		return NewTokenSet(TokKwIf)
	case NodeStmtExpr, NodeStmtAssign:
		return exprFirst
	case NodeExprTernary:
		return exprFirst
	case NodeExprInfix:
		return exprFirst
	case NodeExprPrefix:
		return PrefixOps
	case NodeExprCall, NodeExprField:
		return atomExprFirst
	case NodeExprVar:
		return NewTokenSet(TokIdentExpr)
	case NodeExprLit:
		return Literals
	case NodeExprTuple, NodeExprParen:
		return NewTokenSet(TokLParen)
	case NodeExprLambda:
		return NewTokenSet(TokBackslash)
	case NodeTypeUnion, NodeTypeIntersection, NodeTypeComplement:
		return typeFirst
	case NodeTypeArrow:
		// typeArrow calls typeAtom directly, not typeComplement, so unlike
		// its callers it cannot open on a leading '~'.
		return typeAtomFirst
	case NodeTypeTuple, NodeTypeParen:
		return NewTokenSet(TokLParen)
	case NodeTypeFn:
		return NewTokenSet(TokKwFn)
	case NodeTypeBuiltin:
		return BuiltinTypes
	case NodeTypeRef:
		return NewTokenSet(TokIdentType)
	case NodeError:
		return AllTokens.Complement(Trivia.Union(NewTokenSet(TokEOF)))
	default:
		return 0
	}
}

// SelfTestKinds lists the NodeKinds whose parse rule can be driven in
// isolation on a synthetic single-token stream, for the FIRST/behavior
// self-test of spec §4.1/§4.3 (internal/parser/first_test.go). A NodeKind
// only qualifies if its rule unconditionally gates on its own FIRST set
// before doing anything else observable; several kinds are deliberately
// excluded because no such standalone rule exists for them:
//
//   - NodeStmtAssign, NodeExprTernary, NodeExprInfix: post-hoc
//     reclassifications the statement/Pratt loops apply to an
//     already-parsed expression, not a rule with its own gate.
//   - NodeExprCall, NodeExprField: retroactive wraps applied by postfix's
//     shared loop once an atom is already parsed; the loop's gate is on
//     '.'/'(' appearing *after* an atom, not on the call/field's own
//     declared FIRST (which is just the underlying atom's FIRST).
//   - NodeExprPrefix: prefix() only opens this node when its own peek
//     check passes; on a non-prefix-op token it silently falls through to
//     postfix/atom instead of failing, so "the rule consumes" does not
//     track "T ∈ FIRST(EXPR_PREFIX)" — it tracks the wider union with
//     atom's FIRST.
var SelfTestKinds = []NodeKind{
	NodeDefnFn,
	NodeDefnType,
	NodeParams,
	NodeParam,
	NodeBinder,
	NodeBlock,
	NodeStmtLet,
	NodeStmtIf,
	NodeStmtExpr,
	NodeExprVar,
	NodeExprLit,
	NodeExprTuple,
	NodeExprParen,
	NodeExprLambda,
	NodeTypeArrow,
	NodeTypeTuple,
	NodeTypeParen,
	NodeTypeFn,
	NodeTypeBuiltin,
	NodeTypeRef,
}
