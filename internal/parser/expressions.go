package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/token"
)

func (p *Parser) parseVar() (ast.Expression, error) {
	return &ast.Var{Token: p.curToken, Name: p.curToken.Lexeme}, nil
}

func (p *Parser) parseWildcardExpr() (ast.Expression, error) {
	return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "an expression", p.curToken.Lexeme)
}

func (p *Parser) parseIntLit() (ast.Expression, error) {
	lit := strings.ReplaceAll(p.curToken.Lexeme, "_", "")
	v := new(big.Int)
	base := 10
	switch {
	case strings.HasPrefix(lit, "0x"), strings.HasPrefix(lit, "0X"):
		base, lit = 16, lit[2:]
	case strings.HasPrefix(lit, "0o"), strings.HasPrefix(lit, "0O"):
		base, lit = 8, lit[2:]
	case strings.HasPrefix(lit, "0b"), strings.HasPrefix(lit, "0B"):
		base, lit = 2, lit[2:]
	}
	if _, ok := v.SetString(lit, base); !ok {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a valid integer literal", p.curToken.Lexeme)
	}
	return &ast.IntLit{Token: p.curToken, Value: v}, nil
}

func (p *Parser) parseFloatLit() (ast.Expression, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(p.curToken.Lexeme, "_", ""), 64)
	if err != nil {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a valid floating literal", p.curToken.Lexeme)
	}
	return &ast.DoubleLit{Token: p.curToken, Value: f}, nil
}

func (p *Parser) parseCharLit() (ast.Expression, error) {
	r := []rune(p.curToken.Lexeme)
	var v rune
	if len(r) > 0 {
		v = r[0]
	}
	return &ast.CharLit{Token: p.curToken, Value: v}, nil
}

func (p *Parser) parseStringLit() (ast.Expression, error) {
	return &ast.StringLit{Token: p.curToken, Value: p.curToken.Lexeme}, nil
}

func (p *Parser) parseBoolLit() (ast.Expression, error) {
	return &ast.BoolLit{Token: p.curToken, Value: p.curToken.Type == token.TRUE}, nil
}

func (p *Parser) parseHole() (ast.Expression, error) {
	return &ast.Hole{Token: p.curToken, Name: p.curToken.Lexeme}, nil
}

// parseUnaryMinus handles prefix negation, which is not part of the
// `atom` row but must bind tighter than any binary operator: `-x + 1` is
// `(-x) + 1`, and likewise `-x^2` is `(-x)^2` (negation here only wraps
// the immediately following atom chain, i.e. `app`, not a full operator
// expression).
func (p *Parser) parseUnaryMinus() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	operand, err := p.parseAtomForApp()
	if err != nil {
		return nil, err
	}
	operand, err = p.parseApplicationTail(operand)
	if err != nil {
		return nil, err
	}
	return &ast.App{Token: tok, Fn: &ast.Var{Token: tok, Name: "negate"}, Args: []ast.Expression{operand}}, nil
}

func (p *Parser) parseBinary(left ast.Expression) (ast.Expression, error) {
	opTok := p.curToken
	precedence := precedences[opTok.Type]
	p.nextToken()
	right, err := p.parseExpr(precedence)
	if err != nil {
		return nil, err
	}
	return &ast.App{
		Token: opTok,
		Fn:    &ast.Var{Token: opTok, Name: string(opTok.Type)},
		Args:  []ast.Expression{left, right},
	}, nil
}

// parseRightAssocBinary parses `^`/`**`, right-associative: the
// recursive call uses precedence-1 so an immediately following `^`/`**`
// recurses instead of returning, giving `a ^ b ^ c` = `a ^ (b ^ c)`.
func (p *Parser) parseRightAssocBinary(left ast.Expression) (ast.Expression, error) {
	opTok := p.curToken
	p.nextToken()
	right, err := p.parseExpr(precedences[opTok.Type] - 1)
	if err != nil {
		return nil, err
	}
	return &ast.App{
		Token: opTok,
		Fn:    &ast.Var{Token: opTok, Name: string(opTok.Type)},
		Args:  []ast.Expression{left, right},
	}, nil
}

// parseParenOrTuple parses `( expr )` or `(e1, e2, …)`.
func (p *Parser) parseParenOrTuple() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	first, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.COMMA) {
		elems := []ast.Expression{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			e, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &ast.TupleLit{Token: tok, Elements: elems}, nil
	}
	if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseListLit() (ast.Expression, error) {
	tok := p.curToken
	var elems []ast.Expression
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLit{Token: tok, Elements: elems}, nil
	}
	p.nextToken()
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	elems = append(elems, e)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := p.expectPeek(token.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return &ast.ListLit{Token: tok, Elements: elems}, nil
}

// parseLambda parses `\v1 v2 … -> e`, binding one plain variable name per
// parameter (no pattern arguments, per §3.3).
func (p *Parser) parseLambda() (ast.Expression, error) {
	tok := p.curToken
	var params []string
	for p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.UNDERSCORE) {
		p.nextToken()
		params = append(params, p.curToken.Lexeme)
	}
	if len(params) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrExpectedToken, p.spanOf(p.peekToken), "at least one lambda parameter", p.peekToken.Lexeme)
	}
	if err := p.expectPeek(token.ARROW, "'->'"); err != nil {
		return nil, err
	}
	p.nextToken()
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Token: tok, Params: params, Body: body}, nil
}

// parseLetExpr parses `let b1 ; b2 ; … in body`, where each bi is either
// a name-form binding `v p1 … pn = e` (function parameters are plain
// names, not patterns, same as Lambda) or a pattern-destructuring binding
// `pat = e`. Self-reference in a name-form binding's own Value is what
// makes it "recursive" in the §4.4 sense; see ast.Let's doc comment.
func (p *Parser) parseLetExpr() (ast.Expression, error) {
	tok := p.curToken
	var bindings []*ast.Binding
	for {
		p.nextToken()
		b, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		break
	}
	if err := p.expectPeek(token.IN, "'in'"); err != nil {
		return nil, err
	}
	p.nextToken()
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Token: tok, Bindings: bindings, Body: body}, nil
}

// parseBinding parses one `let`/top-level clause to the left of `=`: a
// bare variable name optionally followed by more plain-name parameters
// (name-form), or any other pattern (pattern-destructuring form, never
// self-referential).
func (p *Parser) parseBinding() (*ast.Binding, error) {
	tok := p.curToken
	if p.curTokenIs(token.IDENT) && (p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.UNDERSCORE) || p.peekTokenIs(token.ASSIGN)) {
		name := p.curToken.Lexeme
		var params []string
		for p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.UNDERSCORE) {
			p.nextToken()
			params = append(params, p.curToken.Lexeme)
		}
		if err := p.expectPeek(token.ASSIGN, "'='"); err != nil {
			return nil, err
		}
		p.nextToken()
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Binding{Token: tok, Name: name, Params: params, Value: val}, nil
	}

	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	p.nextToken()
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Binding{Token: tok, Pattern: pat, Value: val}, nil
}

func (p *Parser) parseIfExpr() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.THEN, "'then'"); err != nil {
		return nil, err
	}
	p.nextToken()
	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.ELSE, "'else'"); err != nil {
		return nil, err
	}
	p.nextToken()
	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.If{Token: tok, Cond: cond, Then: then, Else: els}, nil
}

// parseCaseExpr parses `case e of { pat1 -> e1 ; pat2 -> e2 ; … }`. The
// braces and at-least-one-alternative requirement come straight from
// §4.2; semicolons between alternatives are required separators here
// (there is no layout/offside rule in this language, §4.1).
func (p *Parser) parseCaseExpr() (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	scrutinee, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.OF, "'of'"); err != nil {
		return nil, err
	}
	if err := p.expectPeek(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}

	var alts []ast.CaseAlt
	for {
		p.nextToken()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.ARROW, "'->'"); err != nil {
			return nil, err
		}
		p.nextToken()
		body, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		alts = append(alts, ast.CaseAlt{Pattern: pat, Body: body})

		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		break
	}
	if len(alts) == 0 {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrNoAlternatives, p.span())
	}
	if err := p.expectPeek(token.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return &ast.Case{Token: tok, Scrutinee: scrutinee, Alts: alts}, nil
}
