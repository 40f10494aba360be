package parser

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/token"
)

// ParseProgram parses a whole module: a sequence of top-level
// declarations, semicolons between them optional (§6, "Semicolons
// between top-levels are optional").
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
			continue
		}
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl...)
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
		p.nextToken()
	}
	return prog, nil
}

// parseDecl parses one top-level declaration, which is either a `data`
// declaration, or an optional signature `v :: σ` immediately followed by
// `let v p1 … pn = e`. It returns a slice because a signature+let pair
// produces two Decl nodes (Signature, LetDecl) sharing one source
// construct.
func (p *Parser) parseDecl() ([]ast.Decl, error) {
	switch p.curToken.Type {
	case token.DATA:
		d, err := p.parseDataDecl()
		if err != nil {
			return nil, err
		}
		return []ast.Decl{d}, nil

	case token.IDENT:
		return p.parseSignatureAndLet()

	case token.LET:
		d, err := p.parseTopLevelLet()
		if err != nil {
			return nil, err
		}
		return []ast.Decl{d}, nil

	default:
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.span(), "a top-level declaration", p.curToken.Lexeme)
	}
}

// parseSignatureAndLet handles `v :: σ` immediately followed by `let v
// p1 … pn = e`; the signature must name the same v as the following
// bind (§4.2).
func (p *Parser) parseSignatureAndLet() ([]ast.Decl, error) {
	sigTok := p.curToken
	name := p.curToken.Lexeme
	if err := p.expectPeek(token.DCOLON, "'::'"); err != nil {
		return nil, err
	}
	p.nextToken()
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	sig := &ast.Signature{Token: sigTok, Name: name, Type: ty}

	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
	if err := p.expectPeek(token.LET, "'let' (a signature must be followed by its binding)"); err != nil {
		return nil, err
	}
	letDecl, err := p.parseTopLevelLet()
	if err != nil {
		return nil, err
	}
	if letDecl.Name != name {
		return nil, diagnostics.New(diagnostics.PhaseParser, diagnostics.ErrUnexpectedToken, p.spanOf(letDecl.GetToken()), "a binding named "+name, letDecl.Name)
	}
	letDecl.Signature = ty
	return []ast.Decl{sig, letDecl}, nil
}

// parseTopLevelLet parses `let v p1 … pn = e`, curToken on `let`.
func (p *Parser) parseTopLevelLet() (*ast.LetDecl, error) {
	tok := p.curToken
	if err := p.expectPeek(token.IDENT, "a binding name"); err != nil {
		return nil, err
	}
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
	return &ast.LetDecl{Token: tok, Name: name, Params: params, Value: val}, nil
}

// parseDataDecl parses `data T a1 … an = K1 t1… | K2 t2… | …`.
func (p *Parser) parseDataDecl() (*ast.DataDecl, error) {
	tok := p.curToken
	if err := p.expectPeek(token.CONIDENT, "a type name"); err != nil {
		return nil, err
	}
	typeName := p.curToken.Lexeme
	var typeParams []string
	for p.peekTokenIs(token.IDENT) {
		p.nextToken()
		typeParams = append(typeParams, p.curToken.Lexeme)
	}
	if err := p.expectPeek(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}

	var ctors []ast.DataConstructor
	for {
		if err := p.expectPeek(token.CONIDENT, "a constructor name"); err != nil {
			return nil, err
		}
		ctorTok := p.curToken
		ctorName := p.curToken.Lexeme
		var fields []ast.Type
		for p.startsAtomicType(p.peekToken.Type) {
			p.nextToken()
			f, err := p.parseAtomicType()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		ctors = append(ctors, ast.DataConstructor{Token: ctorTok, Name: ctorName, Fields: fields})
		if p.peekTokenIs(token.PIPE) {
			p.nextToken()
			continue
		}
		break
	}
	return &ast.DataDecl{Token: tok, TypeName: typeName, TypeParams: typeParams, Constructors: ctors}, nil
}
