package parser

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/token"
)

// parsePattern parses one pattern at curToken, covering every variant in
// §3.4: wildcard, variable, literal, constructor application, list,
// tuple, and as-pattern. Grounded on the teacher's parser/patterns.go
// split of pattern grammar into its own file, separate from expression
// grammar, even though here the two share almost no code (this language's
// patterns are far simpler than funxy's record/guard patterns).
func (p *Parser) parsePattern() (ast.Pattern, error) {
	pat, err := p.parseAtomicPattern()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.AT) {
		v, ok := pat.(*ast.PVar)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.spanOf(p.peekToken), "a variable before '@'", p.peekToken.Lexeme)
		}
		p.nextToken() // consume '@'
		p.nextToken()
		inner, err := p.parseAtomicPattern()
		if err != nil {
			return nil, err
		}
		pat = &ast.PAs{Token: v.Token, Name: v.Name, Pattern: inner}
	}
	// A trailing `: rest` builds a cons pattern, right-associative so
	// `x : y : ys` matches a list of at least two elements, mirroring
	// `:`'s expression-level right-associativity.
	if p.peekTokenIs(token.COLON) {
		tok := p.peekToken
		p.nextToken()
		p.nextToken()
		rest, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.PCon{Token: tok, Name: ":", Args: []ast.Pattern{pat, rest}}, nil
	}
	return pat, nil
}

func (p *Parser) parseAtomicPattern() (ast.Pattern, error) {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.PWildcard{Token: p.curToken}, nil

	case token.IDENT:
		return &ast.PVar{Token: p.curToken, Name: p.curToken.Lexeme}, nil

	case token.CONIDENT:
		return p.parseConstructorPattern()

	case token.INT:
		e, err := p.parseIntLit()
		if err != nil {
			return nil, err
		}
		return ast.PInt(p.curToken, e.(*ast.IntLit).Value), nil

	case token.FLOAT:
		e, err := p.parseFloatLit()
		if err != nil {
			return nil, err
		}
		return ast.PDouble(p.curToken, e.(*ast.DoubleLit).Value), nil

	case token.CHAR:
		e, err := p.parseCharLit()
		if err != nil {
			return nil, err
		}
		return ast.PChar(p.curToken, e.(*ast.CharLit).Value), nil

	case token.STRING:
		return ast.PString(p.curToken, p.curToken.Lexeme), nil

	case token.TRUE, token.FALSE:
		return ast.PBool(p.curToken, p.curToken.Type == token.TRUE), nil

	case token.LBRACKET:
		return p.parseListPattern()

	case token.LPAREN:
		return p.parseParenOrTuplePattern()

	case token.MINUS:
		// a negative integer/double literal pattern, e.g. `-1`.
		tok := p.curToken
		p.nextToken()
		switch p.curToken.Type {
		case token.INT:
			e, err := p.parseIntLit()
			if err != nil {
				return nil, err
			}
			v := e.(*ast.IntLit).Value
			return ast.PInt(tok, new(big.Int).Neg(v)), nil
		case token.FLOAT:
			e, err := p.parseFloatLit()
			if err != nil {
				return nil, err
			}
			return ast.PDouble(tok, -e.(*ast.DoubleLit).Value), nil
		default:
			return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a numeric literal", p.curToken.Lexeme)
		}

	default:
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a pattern", p.curToken.Lexeme)
	}
}

// parseConstructorPattern parses `K` or `K p1 … pn`, where arguments are
// atomic patterns (so `Just Nothing` parses as `Just` applied to the
// single pattern `Nothing`, not to a further nested application).
func (p *Parser) parseConstructorPattern() (ast.Pattern, error) {
	tok := p.curToken
	name := p.curToken.Lexeme
	var args []ast.Pattern
	for p.startsAtomicPattern(p.peekToken.Type) {
		p.nextToken()
		arg, err := p.parseAtomicPattern()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &ast.PCon{Token: tok, Name: name, Args: args}, nil
}

func (p *Parser) startsAtomicPattern(t token.Type) bool {
	switch t {
	case token.IDENT, token.CONIDENT, token.UNDERSCORE, token.INT, token.FLOAT,
		token.CHAR, token.STRING, token.TRUE, token.FALSE, token.LPAREN, token.LBRACKET:
		return true
	default:
		return false
	}
}

func (p *Parser) parseListPattern() (ast.Pattern, error) {
	tok := p.curToken
	var elems []ast.Pattern
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.PList{Token: tok, Elements: elems}, nil
	}
	p.nextToken()
	first, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	elems = append(elems, first)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		e, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := p.expectPeek(token.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return &ast.PList{Token: tok, Elements: elems}, nil
}

func (p *Parser) parseParenOrTuplePattern() (ast.Pattern, error) {
	tok := p.curToken
	p.nextToken()
	first, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.COMMA) {
		elems := []ast.Pattern{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			e, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &ast.PTuple{Token: tok, Elements: elems}, nil
	}
	if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return first, nil
}
