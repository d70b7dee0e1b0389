package parser

import (
	"fmt"

	"github.com/felix-lang/felixcore/internal/kind"
)

func (p *Parser) parseProgram() {
	p.withRoot(kind.NodeProgram, func() {
		for !p.atEnd() {
			switch p.peek() {
			case kind.TokKwFn:
				p.fnDef()
			case kind.TokKwType:
				p.typeDef()
			default:
				p.expectationError(kind.FirstAlias(kind.AliasItem))
				p.skipUntil(kind.FirstAlias(kind.AliasItem).Union(kind.NewTokenSet(kind.TokEOF)))
			}
		}
		p.advance(kind.NewTokenSet(kind.TokEOF))
	})
}

// fnDef requires its own 'fn' gate to succeed before attempting anything
// else: without the early return, a missing 'fn' followed by e.g. a bare
// identifier would let the rest of the rule parse that identifier as the
// function name anyway, consuming a token FIRST(DEFN_FN) does not cover.
func (p *Parser) fnDef() {
	p.withNode(kind.NodeDefnFn, func() {
		if !p.at(kind.TokKwFn) {
			p.expectationError(kind.NewTokenSet(kind.TokKwFn))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		p.advance(kind.NewTokenSet(kind.TokIdentExpr))
		p.advance(kind.NewTokenSet(kind.TokLParen))
		if kind.First(kind.NodeParam).Contains(p.peek()) {
			p.params()
		}
		p.advance(kind.NewTokenSet(kind.TokRParen))
		if p.at(kind.TokArrow) {
			p.advance(kind.NewTokenSet(kind.TokArrow))
			p.typeExpr()
		}
		p.block()
	})
}

func (p *Parser) typeDef() {
	p.withNode(kind.NodeDefnType, func() {
		if !p.at(kind.TokKwType) {
			p.expectationError(kind.NewTokenSet(kind.TokKwType))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		p.advance(kind.NewTokenSet(kind.TokIdentType))
		p.advance(kind.NewTokenSet(kind.TokEquals))
		p.typeExpr()
		p.advance(kind.NewTokenSet(kind.TokSemi))
	})
}

func (p *Parser) params() {
	p.withNode(kind.NodeParams, func() {
		if !kind.First(kind.NodeParam).Contains(p.peek()) {
			p.expectationError(kind.First(kind.NodeParam))
			p.insertBroken()
			return
		}
		p.param()
		for p.at(kind.TokComma) {
			p.advance(kind.NewTokenSet(kind.TokComma))
			if !kind.First(kind.NodeParam).Contains(p.peek()) {
				p.expectationError(kind.First(kind.NodeParam))
				p.insertBroken()
				break
			}
			p.param()
		}
	})
}

func (p *Parser) param() {
	p.withNode(kind.NodeParam, func() {
		p.binder()
	})
}

func (p *Parser) binder() {
	p.withNode(kind.NodeBinder, func() {
		if !p.at(kind.TokIdentExpr) {
			p.expectationError(kind.NewTokenSet(kind.TokIdentExpr))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		if p.at(kind.TokColon) {
			p.advance(kind.NewTokenSet(kind.TokColon))
			p.typeAnnotation()
		}
	})
}

var blockFollow = kind.NewTokenSet(kind.TokRBrace)

// block parses BLOCK: '{' stmt* '}'. A missing '{' is reported and the
// rule returns without touching the body — it must not fall into the
// statement loop on whatever token it found instead, since that token may
// itself open a statement (e.g. a dangling `let`) and the rule would then
// silently swallow input that was never inside a block to begin with.
func (p *Parser) block() {
	p.withNode(kind.NodeBlock, func() {
		if !p.at(kind.TokLBrace) {
			p.expectationError(kind.NewTokenSet(kind.TokLBrace))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		for !p.at(kind.TokRBrace) && !p.atEnd() {
			if !kind.FirstAlias(kind.AliasStmt).Contains(p.peek()) {
				p.expectationError(kind.FirstAlias(kind.AliasStmt))
				p.skipUntil(kind.FirstAlias(kind.AliasStmt).Union(blockFollow).Union(kind.NewTokenSet(kind.TokEOF)))
				continue
			}
			p.stmt()
		}
		p.advance(kind.NewTokenSet(kind.TokRBrace))
	})
}

func (p *Parser) stmt() {
	switch p.peek() {
	case kind.TokKwLet:
		p.letStmt()
	case kind.TokKwIf:
		p.ifStmt()
	default:
		p.exprOrAssignStmt()
	}
}

func (p *Parser) letStmt() {
	p.withNode(kind.NodeStmtLet, func() {
		if !p.at(kind.TokKwLet) {
			p.expectationError(kind.NewTokenSet(kind.TokKwLet))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		if p.at(kind.TokKwRec) {
			p.advance(kind.NewTokenSet(kind.TokKwRec))
		}
		p.binder()
		p.advance(kind.NewTokenSet(kind.TokEquals))
		p.expr()
		p.advance(kind.NewTokenSet(kind.TokSemi))
	})
}

func (p *Parser) ifStmt() {
	p.withNode(kind.NodeStmtIf, func() {
		if !p.at(kind.TokKwIf) {
			p.expectationError(kind.NewTokenSet(kind.TokKwIf))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		p.expr()
		p.block()
		if p.at(kind.TokKwElse) {
			p.advance(kind.NewTokenSet(kind.TokKwElse))
			if p.at(kind.TokLBrace) {
				p.block()
			} else {
				p.ifStmt()
			}
		}
	})
}

// stmtSeparator is the set a statement must face once its expression (and
// optional assignment RHS) is fully parsed: ';' to continue the block,
// '}' to let the statement stand as the block's unseparated tail
// expression, or the unconsumed '=' that starts an assignment.
var stmtSeparator = kind.NewTokenSet(kind.TokRBrace, kind.TokEquals, kind.TokSemi)

// exprOrAssignStmt parses `expr_or_assign` and its statement-boundary
// punctuation, wrapping the result in STMT_ASSIGN if an '=' follows the
// expression, STMT_EXPR otherwise. Only the block's final statement may
// omit the trailing ';' (the Rust-style tail-expression convention); two
// bare expression statements back to back with no separator is an error,
// since IDENT (among others) begins both an expression and the following
// statement and the grammar would otherwise be ambiguous about where one
// ends and the next begins.
func (p *Parser) exprOrAssignStmt() {
	if !kind.FirstAlias(kind.AliasExpr).Contains(p.peek()) {
		// The gate matters when this rule is driven directly: without it, a
		// failed atom would leave the cursor on a stray operator ('=', '?',
		// '+', '.') that the assignment/ternary/Pratt continuations below
		// would then consume as if an expression had preceded it.
		p.expectationError(kind.FirstAlias(kind.AliasExpr))
		p.insertBroken()
		return
	}
	cp := p.checkpoint()
	p.expr()

	if p.at(kind.TokEquals) {
		p.advance(kind.NewTokenSet(kind.TokEquals))
		p.expr()
		p.b.StartNodeAt(cp, kind.NodeStmtAssign)
		p.b.FinishNode()
		p.finishStmt()
		return
	}

	p.b.StartNodeAt(cp, kind.NodeStmtExpr)
	p.b.FinishNode()
	p.finishStmt()
}

// finishStmt consumes the statement's trailing ';' if present, accepts a
// following '}' as the unseparated tail case, and otherwise reports the
// RBRACE|EQUALS|SEMI expectation error and resynchronizes at the block's
// follow set.
func (p *Parser) finishStmt() {
	switch {
	case p.at(kind.TokSemi):
		p.advanceRaw()
	case p.at(kind.TokRBrace):
		// Tail expression: no separator required before the closing brace.
	default:
		p.expectationError(stmtSeparator)
		p.skipUntil(blockFollow.Union(kind.NewTokenSet(kind.TokEOF)))
	}
}

func (p *Parser) expr() {
	p.ternary()
}

func (p *Parser) ternary() {
	cp := p.checkpoint()
	p.infix(0)
	if p.at(kind.TokQuestion) {
		p.advance(kind.NewTokenSet(kind.TokQuestion))
		p.expr()
		p.advance(kind.NewTokenSet(kind.TokColon))
		p.expr()
		p.b.StartNodeAt(cp, kind.NodeExprTernary)
		p.b.FinishNode()
	}
}

type bindingPower struct{ left, right int }

// infixPower gives each operator's (left, right) binding power. `||` and
// `&&` are right-associative (right < left); comparisons are non-
// associative (left == right, the chain-detection signal infix reads
// below); `+`/`-` and `*`/`/`/`%` are left-associative (left < right), with
// `*`/`/`/`%` binding tighter than `+`/`-`.
func infixPower(tk kind.TokenKind) (bindingPower, bool) {
	switch tk {
	case kind.TokOrOr:
		return bindingPower{15, 10}, true
	case kind.TokAndAnd:
		return bindingPower{25, 20}, true
	case kind.TokEqEq, kind.TokNe, kind.TokLt, kind.TokLe, kind.TokGt, kind.TokGe:
		return bindingPower{30, 30}, true
	case kind.TokPlus, kind.TokMinus:
		return bindingPower{40, 45}, true
	case kind.TokStar, kind.TokSlash, kind.TokPercent:
		return bindingPower{50, 55}, true
	default:
		return bindingPower{}, false
	}
}

// infix climbs the binary-operator precedence table starting at minBp,
// wrapping each accepted operator application around everything parsed
// since cp via a retroactive StartNodeAt — the standard Pratt-loop
// technique for building a left-associative chain without pre-allocating
// lookahead. A tier is non-associative when its binding power is
// symmetric (left == right, e.g. comparisons): `a == b == c` must not
// silently associate left, since that would imply a transitive reading
// the language does not give it. A second operator from that same tier is
// a chaining error: per spec §4.3/§8, the operator-plus-rhs that would
// have extended the chain is additionally wrapped in a nested ERROR node
// (so the overall application still reads as EXPR_INFIX, with the
// offending spine visibly marked inside it) rather than silently
// associating left.
//
// Detecting the second operator requires bumping the rhs recursive call's
// minBp by one for non-associative tiers: with left == right, a bare
// `bp.right` would let the next same-tier operator be swallowed by the
// nested recursive call (where `haveLastNonAssoc` starts fresh), losing
// the chain altogether. Raising it to bp.right+1 forces that operator back
// up to this frame, where the tracking state lives.
func (p *Parser) infix(minBp int) {
	cp := p.checkpoint()
	p.prefix()

	var lastNonAssocOp kind.TokenKind
	haveLastNonAssoc := false
	for {
		op := p.peek()
		bp, ok := infixPower(op)
		if !ok || bp.left < minBp {
			return
		}
		nonAssoc := bp.left == bp.right

		chained := nonAssoc && haveLastNonAssoc
		if chained {
			p.addError(p.cur().Span, fmt.Sprintf("Cannot chain operators %s and %s", lastNonAssocOp, op))
		}
		if nonAssoc {
			lastNonAssocOp = op
			haveLastNonAssoc = true
		} else {
			haveLastNonAssoc = false
		}

		rhsMinBp := bp.right
		if nonAssoc {
			rhsMinBp++
		}

		innerCp := p.checkpoint()
		p.advanceRaw()
		p.infix(rhsMinBp)
		if chained {
			p.b.StartNodeAt(innerCp, kind.NodeError)
			p.b.FinishNode()
		}

		p.b.StartNodeAt(cp, kind.NodeExprInfix)
		p.b.FinishNode()
	}
}

func (p *Parser) prefix() {
	if kind.PrefixOps.Contains(p.peek()) {
		p.withNode(kind.NodeExprPrefix, func() {
			p.advanceRaw()
			p.prefix()
		})
		return
	}
	p.postfix()
}

func (p *Parser) postfix() {
	cp := p.checkpoint()
	p.atom()

	for {
		switch {
		case p.at(kind.TokDot):
			p.b.StartNodeAt(cp, kind.NodeExprField)
			p.advance(kind.NewTokenSet(kind.TokDot))
			p.advance(kind.NewTokenSet(kind.TokIdentExpr))
			p.b.FinishNode()
		case p.at(kind.TokLParen):
			p.b.StartNodeAt(cp, kind.NodeExprCall)
			p.advance(kind.NewTokenSet(kind.TokLParen))
			if kind.FirstAlias(kind.AliasExpr).Contains(p.peek()) {
				p.expr()
				for p.at(kind.TokComma) {
					p.advance(kind.NewTokenSet(kind.TokComma))
					p.expr()
				}
			}
			p.advance(kind.NewTokenSet(kind.TokRParen))
			p.b.FinishNode()
		default:
			return
		}
	}
}

func (p *Parser) atom() {
	switch {
	case p.at(kind.TokIdentExpr):
		p.exprVar()
	case kind.Literals.Contains(p.peek()):
		p.exprLit()
	case p.at(kind.TokBackslash):
		p.exprLambda()
	case p.at(kind.TokLBrace):
		p.block()
	case p.at(kind.TokLParen):
		p.parenOrTuple()
	default:
		p.expectationError(kind.FirstAlias(kind.AliasAtomExpr))
		p.insertBroken()
	}
}

// exprVar, exprLit and exprLambda each self-check their leading token via
// advance rather than assuming atom's switch already verified it, so they
// are safe to drive directly (not just via atom's dispatch) — the FIRST
// self-test of spec §4.1/§4.3 does exactly that.

func (p *Parser) exprVar() {
	p.withNode(kind.NodeExprVar, func() {
		p.advance(kind.NewTokenSet(kind.TokIdentExpr))
	})
}

func (p *Parser) exprLit() {
	p.withNode(kind.NodeExprLit, func() {
		p.advance(kind.Literals)
	})
}

func (p *Parser) exprLambda() {
	p.withNode(kind.NodeExprLambda, func() {
		if !p.at(kind.TokBackslash) {
			p.expectationError(kind.NewTokenSet(kind.TokBackslash))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		if kind.First(kind.NodeParam).Contains(p.peek()) {
			p.params()
		}
		p.advance(kind.NewTokenSet(kind.TokArrow))
		p.expr()
	})
}

// parenOrTuple parses a '(' ... ')' atom, choosing EXPR_TUPLE (zero or
// two-plus comma-separated elements) versus EXPR_PAREN (exactly one, no
// comma) only once the contents are known — the checkpoint is taken
// before the opening paren so the final kind can be assigned in
// retrospect, per the typed view's Unit/App recovery in §4.4. A missing
// '(' returns immediately rather than falling into the body: otherwise a
// token that happens to start a valid expr on its own (but isn't '(')
// would get parsed and consumed here despite not belonging to this rule.
func (p *Parser) parenOrTuple() {
	if !p.at(kind.TokLParen) {
		p.expectationError(kind.NewTokenSet(kind.TokLParen))
		p.insertBroken()
		return
	}
	cp := p.checkpoint()
	p.advanceRaw()

	isTuple := false
	if !p.at(kind.TokRParen) {
		p.expr()
		for p.at(kind.TokComma) {
			isTuple = true
			p.advance(kind.NewTokenSet(kind.TokComma))
			if p.at(kind.TokRParen) {
				break
			}
			p.expr()
		}
	} else {
		isTuple = true // '()' is the zero-element tuple, i.e. Unit
	}
	p.advance(kind.NewTokenSet(kind.TokRParen))

	k := kind.NodeExprParen
	if isTuple {
		k = kind.NodeExprTuple
	}
	p.b.StartNodeAt(cp, k)
	p.b.FinishNode()
}

// --- Types ---

func (p *Parser) typeExpr() {
	p.typeUnion(true)
}

// typeAnnotation parses the restricted type level binder annotations use:
// no top-level '->'. A lambda binder's annotation sits directly before the
// lambda's own '->', so a top-level arrow in that position would be
// swallowed by the annotation (`\x: T -> x` must read the arrow as the
// lambda's, not as `T -> x`). Arrow types are still reachable inside an
// annotation via parens or the fn(...) spelling.
func (p *Parser) typeAnnotation() {
	p.typeUnion(false)
}

func (p *Parser) typeUnion(arrows bool) {
	cp := p.checkpoint()
	p.typeIntersection(arrows)
	for p.at(kind.TokPipe) {
		p.b.StartNodeAt(cp, kind.NodeTypeUnion)
		p.advance(kind.NewTokenSet(kind.TokPipe))
		p.typeIntersection(arrows)
		p.b.FinishNode()
	}
}

func (p *Parser) typeIntersection(arrows bool) {
	cp := p.checkpoint()
	p.typeComplement(arrows)
	for p.at(kind.TokAmp) {
		p.b.StartNodeAt(cp, kind.NodeTypeIntersection)
		p.advance(kind.NewTokenSet(kind.TokAmp))
		p.typeComplement(arrows)
		p.b.FinishNode()
	}
}

func (p *Parser) typeComplement(arrows bool) {
	if p.at(kind.TokTilde) {
		p.withNode(kind.NodeTypeComplement, func() {
			p.advance(kind.NewTokenSet(kind.TokTilde))
			p.typeComplement(arrows)
		})
		return
	}
	if arrows {
		p.typeArrow()
		return
	}
	p.typeAtom()
}

func (p *Parser) typeArrow() {
	cp := p.checkpoint()
	posBefore := p.pos
	p.typeAtom()
	// Only treat a following '->' as this rule's own continuation if
	// typeAtom actually consumed something: otherwise a bare '->' fed to a
	// mismatched typeAtom would be picked up here as if it legitimately
	// continued a domain type that was never parsed.
	if p.pos > posBefore && p.at(kind.TokArrow) {
		p.advance(kind.NewTokenSet(kind.TokArrow))
		p.typeArrow()
		p.b.StartNodeAt(cp, kind.NodeTypeArrow)
		p.b.FinishNode()
	}
}

func (p *Parser) typeAtom() {
	switch {
	case kind.BuiltinTypes.Contains(p.peek()):
		p.typeBuiltin()
	case p.at(kind.TokIdentType):
		p.typeRef()
	case p.at(kind.TokLParen):
		p.typeParenOrTuple()
	case p.at(kind.TokKwFn):
		p.typeFn()
	default:
		p.expectationError(kind.FirstAlias(kind.AliasTypeAtom))
		p.insertBroken()
	}
}

// typeFn parses the explicit function-type syntax `fn '(' domain types ')'
// '->' type`. The domain commas belong to this rule, not to a free-standing
// tuple production: a bare comma in type position would otherwise be
// ambiguous against the parameter-list commas of the binder contexts that
// annotations appear in.
func (p *Parser) typeFn() {
	p.withNode(kind.NodeTypeFn, func() {
		if !p.at(kind.TokKwFn) {
			p.expectationError(kind.NewTokenSet(kind.TokKwFn))
			p.insertBroken()
			return
		}
		p.advanceRaw()
		p.advance(kind.NewTokenSet(kind.TokLParen))
		if !p.at(kind.TokRParen) && !p.atEnd() {
			p.typeExpr()
			for p.at(kind.TokComma) {
				p.advance(kind.NewTokenSet(kind.TokComma))
				p.typeExpr()
			}
		}
		p.advance(kind.NewTokenSet(kind.TokRParen))
		p.advance(kind.NewTokenSet(kind.TokArrow))
		p.typeExpr()
	})
}

// typeBuiltin, typeRef and typeParenOrTuple self-check the same way exprVar
// and friends do, for the same reason: direct invocation from the FIRST
// self-test must behave identically to dispatch through typeAtom.

func (p *Parser) typeBuiltin() {
	p.withNode(kind.NodeTypeBuiltin, func() {
		p.advance(kind.BuiltinTypes)
	})
}

func (p *Parser) typeRef() {
	p.withNode(kind.NodeTypeRef, func() {
		p.advance(kind.NewTokenSet(kind.TokIdentType))
	})
}

// typeParenOrTuple parses a '(' ... ')' type atom, mirroring the value
// grammar's parenOrTuple: TYPE_TUPLE for zero or comma-joined elements,
// TYPE_PAREN for exactly one. Tuple types are only spelled inside parens —
// there is no free-standing comma production in type position (see typeFn).
func (p *Parser) typeParenOrTuple() {
	if !p.at(kind.TokLParen) {
		p.expectationError(kind.NewTokenSet(kind.TokLParen))
		p.insertBroken()
		return
	}
	cp := p.checkpoint()
	p.advanceRaw()

	isTuple := false
	if !p.at(kind.TokRParen) {
		p.typeExpr()
		for p.at(kind.TokComma) {
			isTuple = true
			p.advance(kind.NewTokenSet(kind.TokComma))
			if p.at(kind.TokRParen) {
				break
			}
			p.typeExpr()
		}
	} else {
		isTuple = true // '()' is the zero-element tuple type
	}
	p.advance(kind.NewTokenSet(kind.TokRParen))

	k := kind.NodeTypeParen
	if isTuple {
		k = kind.NodeTypeTuple
	}
	p.b.StartNodeAt(cp, k)
	p.b.FinishNode()
}
