// Package parser turns a token stream into an ast.Program by
// recursive-descent, precedence-climbing parsing — §4.2. Structurally
// grounded on the teacher's parser.Parser: a curToken/peekToken pair
// advanced by nextToken, prefixParseFns/infixParseFns maps keyed by
// token.Type, and a precedences table driving parseExpr's
// precedence-climbing loop. The teacher's token stream comes from an
// abstract pipeline.TokenStream fed by a channel; here the lexer already
// produces the whole []token.Token slice up front, so the stream is just
// an index into it — this language has no incremental/partial-parse
// requirement that would need the teacher's streaming abstraction. Unlike
// the teacher's prefix/infix functions (which signal failure by
// appending to a shared p.ctx.Errors and returning nil), these return
// (ast.Expression, error) directly — plain Go error handling, with no
// error-collection-and-continue: §4.2 requires stopping at the first
// offending token.
package parser

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/token"
)

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

// Precedence levels, lowest to highest. §4.2's grammar table covers
// cmp/add/mul/pow/app; §4.6 additionally specifies `&&`/`||` as strict
// logical primitives, which this parser seats directly below cmp (the
// conventional slot in every Haskell-family grammar this language
// otherwise follows) so `a == b && c == d` parses as `(a==b) && (c==d)`.
// `:`/`++` sit between cmp and add, right-associative, the same slot
// both occupy in every Haskell-family grammar (see DESIGN.md's
// "Supplemented operators" entry for why they exist at all). Otherwise
// only the operators this language actually has are registered; there is
// no bitwise, shift, pipe, compose, or user-definable operator tier.
const (
	LOWEST = iota
	LOGICOR  // ||  (left)
	LOGICAND // &&  (left)
	COMPARE  // == /= < <= > >=  (non-associative)
	CONS     // : ++  (right)
	ADD      // + -  (left)
	MUL      // * /  (left)
	POW      // ^ ** (right)
	APP      // function application by juxtaposition
)

var precedences = map[token.Type]int{
	token.OR:       LOGICOR,
	token.AND:      LOGICAND,
	token.EQ:       COMPARE,
	token.NEQ:      COMPARE,
	token.LT:       COMPARE,
	token.LE:       COMPARE,
	token.GT:       COMPARE,
	token.GE:       COMPARE,
	token.COLON:    CONS,
	token.PLUSPLUS: CONS,
	token.PLUS:     ADD,
	token.MINUS:    ADD,
	token.STAR:     MUL,
	token.SLASH:    MUL,
	token.CARET:    POW,
	token.POW:      POW,
}

// comparisons is used to enforce cmp's non-associativity: at most one
// comparison operator may appear in an unparenthesized chain.
var comparisons = map[token.Type]bool{
	token.EQ: true, token.NEQ: true, token.LT: true,
	token.LE: true, token.GT: true, token.GE: true,
}

// Parser holds parsing state over a pre-lexed token slice.
type Parser struct {
	tokens []token.Token
	pos    int // index of curToken within tokens

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser ready to consume toks (need not be EOF-terminated).
func New(toks []token.Token) *Parser {
	p := &Parser{tokens: toks}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:      p.parseVar,
		token.CONIDENT:   p.parseVar,
		token.UNDERSCORE: p.parseWildcardExpr,
		token.INT:        p.parseIntLit,
		token.FLOAT:      p.parseFloatLit,
		token.CHAR:       p.parseCharLit,
		token.STRING:     p.parseStringLit,
		token.TRUE:       p.parseBoolLit,
		token.FALSE:      p.parseBoolLit,
		token.HOLE:       p.parseHole,
		token.MINUS:      p.parseUnaryMinus,
		token.LPAREN:     p.parseParenOrTuple,
		token.LBRACKET:   p.parseListLit,
		token.BACKSLASH:  p.parseLambda,
		token.LET:        p.parseLetExpr,
		token.IF:         p.parseIfExpr,
		token.CASE:       p.parseCaseExpr,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.OR:       p.parseBinary,
		token.AND:      p.parseBinary,
		token.PLUS:     p.parseBinary,
		token.MINUS:    p.parseBinary,
		token.STAR:     p.parseBinary,
		token.SLASH:    p.parseBinary,
		token.EQ:       p.parseBinary,
		token.NEQ:      p.parseBinary,
		token.LT:       p.parseBinary,
		token.LE:       p.parseBinary,
		token.GT:       p.parseBinary,
		token.GE:       p.parseBinary,
		token.CARET:    p.parseRightAssocBinary,
		token.POW:      p.parseRightAssocBinary,
		token.COLON:    p.parseRightAssocBinary,
		token.PLUSPLUS: p.parseRightAssocBinary,
	}

	if len(p.tokens) == 0 {
		p.tokens = []token.Token{{Type: token.EOF}}
	}
	p.curToken = p.tokens[0]
	if len(p.tokens) > 1 {
		p.peekToken = p.tokens[1]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
	return p
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.peekToken
	if p.pos+1 < len(p.tokens) {
		p.peekToken = p.tokens[p.pos+1]
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) span() diagnostics.Span {
	return p.spanOf(p.curToken)
}

func (p *Parser) spanOf(t token.Token) diagnostics.Span {
	return diagnostics.Span{Line: t.Line, Column: t.Column, Start: t.Start, End: t.End}
}

// expectPeek advances past peekToken if it has type t; otherwise it
// returns a span-precise ExpectedToken error without advancing, per
// §4.2's "report at the first offending token span; never attempt
// recovery" rule.
func (p *Parser) expectPeek(t token.Type, expected string) error {
	if p.peekTokenIs(t) {
		p.nextToken()
		return nil
	}
	return diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrExpectedToken, p.spanOf(p.peekToken), expected, p.peekToken.Lexeme)
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseExpression parses one expression at precedence LOWEST, including
// the `lam | let_in | ifte | case | cmp` top level and its optional
// trailing `:: type` annotation, per the `expr` grammar row.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	e, err := p.parseExpr(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.DCOLON) {
		p.nextToken()
		p.nextToken()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		e = &ast.Annot{Token: e.GetToken(), Expr: e, Type: ty}
	}
	return e, nil
}

// parseExpr is precedence-climbing plus the `app` tier: application binds
// tighter than any registered infix operator, so it is handled entirely
// inside the prefix position (an atom followed by more atoms is folded
// into a single App before the infix loop ever runs), exactly matching
// `app = atom atom*` sitting directly above every binary operator level.
func (p *Parser) parseExpr(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "an expression", p.curToken.Lexeme)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}
	left, err = p.parseApplicationTail(left)
	if err != nil {
		return nil, err
	}

	usedComparison := false
	for precedence < p.peekPrecedence() {
		if comparisons[p.peekToken.Type] {
			if usedComparison {
				return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.spanOf(p.peekToken), "end of comparison (chained comparisons require parentheses)", p.peekToken.Lexeme)
			}
			usedComparison = true
		}
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left, nil
		}
		p.nextToken()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseApplicationTail consumes `atom*` following an already-parsed
// callee atom, left-associatively folding `f g h x` into `((f g) h) x` —
// the `app` grammar row. An argument atom is anything that can start a
// prefix expression AND does not also start an infix continuation the
// caller is waiting on, which in practice is just "whatever has its own
// prefixParseFn and isn't a binary operator token".
func (p *Parser) parseApplicationTail(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	for p.startsAtom(p.peekToken.Type) {
		p.nextToken()
		arg, err := p.parseAtomForApp()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return callee, nil
	}
	return &ast.App{Token: callee.GetToken(), Fn: callee, Args: args}, nil
}

// startsAtom reports whether t can begin an `atom` (the tight-binding
// argument position of `app`), deliberately excluding every binary
// operator and every token that only makes sense at LOWEST precedence
// (let/if/case/lambda), so that `f x + 1` parses as `(f x) + 1` and not
// `f (x + 1)`.
func (p *Parser) startsAtom(t token.Type) bool {
	switch t {
	case token.IDENT, token.CONIDENT, token.UNDERSCORE, token.INT, token.FLOAT,
		token.CHAR, token.STRING, token.TRUE, token.FALSE, token.HOLE,
		token.LPAREN, token.LBRACKET:
		return true
	default:
		return false
	}
}

// parseAtomForApp parses exactly one application argument: a single atom
// with no further application folded in (a bare `atom`, not `app`) — `f g
// h` must see g and h as two separate arguments, not as `g h` applied as
// one. Parenthesized sub-applications still work because
// parseParenOrTuple recurses into a full ParseExpression internally.
func (p *Parser) parseAtomForApp() (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "an argument", p.curToken.Lexeme)
	}
	return prefix()
}
