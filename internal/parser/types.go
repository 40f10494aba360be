// Surface type grammar, kept in its own file per §4.2 ("types are parsed
// in a separate recursive descent"), mirroring the teacher's own split of
// parser/types.go from parser/expressions.go.
package parser

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/token"
)

// parseType parses `context => type` | `type`, where `type = type_app
// ('->' type)?` and context is one constraint or a parenthesized
// comma-separated list of constraints — §4.2.
func (p *Parser) parseType() (ast.Type, error) {
	if qt, ok, err := p.tryParseQualifier(); err != nil {
		return nil, err
	} else if ok {
		return qt, nil
	}
	return p.parseTypeArrow()
}

// tryParseQualifier speculatively parses a leading `context =>` by
// scanning forward for a top-level FATARROW before any ARROW/EOF; since
// this language's type grammar has no other use for `=>`, a successful
// scan commits to the qualified form.
func (p *Parser) tryParseQualifier() (ast.Type, bool, error) {
	save := *p
	constraints, ok := p.scanConstraintContext()
	if !ok {
		*p = save
		return nil, false, nil
	}
	p.nextToken() // consume '=>'
	p.nextToken()
	ty, err := p.parseTypeArrow()
	if err != nil {
		return nil, false, err
	}
	return &ast.QualifiedType{Token: ty.GetToken(), Constraints: constraints, Type: ty}, true, nil
}

// scanConstraintContext consumes and returns a constraint list followed
// by peekToken == FATARROW, leaving curToken on the last token of the
// context; it returns ok=false (restoring is the caller's job) if the
// shape doesn't match.
func (p *Parser) scanConstraintContext() ([]ast.ConstraintSyntax, bool) {
	if p.curTokenIs(token.LPAREN) {
		var cs []ast.ConstraintSyntax
		pos := *p
		p.nextToken()
		for {
			c, ok := p.parseOneConstraint()
			if !ok {
				*p = pos
				return nil, false
			}
			cs = append(cs, c)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		if !p.peekTokenIs(token.RPAREN) {
			*p = pos
			return nil, false
		}
		p.nextToken()
		if !p.peekTokenIs(token.FATARROW) {
			*p = pos
			return nil, false
		}
		return cs, true
	}

	c, ok := p.parseOneConstraint()
	if !ok || !p.peekTokenIs(token.FATARROW) {
		return nil, false
	}
	return []ast.ConstraintSyntax{c}, true
}

// parseOneConstraint parses `Class var` at curToken, advancing past both
// tokens on success.
func (p *Parser) parseOneConstraint() (ast.ConstraintSyntax, bool) {
	if !p.curTokenIs(token.CONIDENT) || !p.peekTokenIs(token.IDENT) {
		return ast.ConstraintSyntax{}, false
	}
	tok := p.curToken
	class := p.curToken.Lexeme
	p.nextToken()
	v := p.curToken.Lexeme
	return ast.ConstraintSyntax{Token: tok, Class: class, Var: v}, true
}

func (p *Parser) parseTypeArrow() (ast.Type, error) {
	from, err := p.parseTypeApp()
	if err != nil {
		return nil, err
	}
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		to, err := p.parseTypeArrow()
		if err != nil {
			return nil, err
		}
		return &ast.TypeArrow{Token: from.GetToken(), From: from, To: to}, nil
	}
	return from, nil
}

// parseTypeApp parses `atom atom*` (left-associative juxtaposition).
func (p *Parser) parseTypeApp() (ast.Type, error) {
	fn, err := p.parseAtomicType()
	if err != nil {
		return nil, err
	}
	for p.startsAtomicType(p.peekToken.Type) {
		p.nextToken()
		arg, err := p.parseAtomicType()
		if err != nil {
			return nil, err
		}
		fn = &ast.TypeApp{Token: fn.GetToken(), Fn: fn, Arg: arg}
	}
	return fn, nil
}

func (p *Parser) startsAtomicType(t token.Type) bool {
	switch t {
	case token.IDENT, token.CONIDENT, token.LPAREN, token.LBRACKET:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtomicType() (ast.Type, error) {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.TypeVar{Token: p.curToken, Name: p.curToken.Lexeme}, nil
	case token.CONIDENT:
		return &ast.TypeCon{Token: p.curToken, Name: p.curToken.Lexeme}, nil
	case token.LBRACKET:
		tok := p.curToken
		p.nextToken()
		elem, err := p.parseTypeArrow()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(token.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return &ast.TypeList{Token: tok, Elem: elem}, nil
	case token.LPAREN:
		tok := p.curToken
		p.nextToken()
		first, err := p.parseTypeArrow()
		if err != nil {
			return nil, err
		}
		if p.peekTokenIs(token.COMMA) {
			elems := []ast.Type{first}
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				e, err := p.parseTypeArrow()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
				return nil, err
			}
			return &ast.TypeTuple{Token: tok, Elements: elems}, nil
		}
		if err := p.expectPeek(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	default:
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a type", p.curToken.Lexeme)
	}
}
