package ast

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/token"
)

// Pattern is any node that can appear in pattern position: case
// alternatives, let destructuring, and (transitively, via Var) lambda
// parameters are NOT patterns — only plain names, per spec.
type Pattern interface {
	Node
	patternNode()
}

type PWildcard struct {
	Token token.Token
}

func (*PWildcard) patternNode()          {}
func (p *PWildcard) GetToken() token.Token { return p.Token }

type PVar struct {
	Token token.Token
	Name  string
}

func (*PVar) patternNode()          {}
func (p *PVar) GetToken() token.Token { return p.Token }

// PLit matches a literal value (int, double, char, string, or bool).
type PLit struct {
	Token token.Token
	Value interface{} // *big.Int | float64 | rune | string | bool
}

func (*PLit) patternNode()          {}
func (p *PLit) GetToken() token.Token { return p.Token }

// PInt is a convenience constructor used by the parser.
func PInt(tok token.Token, v *big.Int) *PLit    { return &PLit{Token: tok, Value: v} }
func PDouble(tok token.Token, v float64) *PLit  { return &PLit{Token: tok, Value: v} }
func PChar(tok token.Token, v rune) *PLit       { return &PLit{Token: tok, Value: v} }
func PString(tok token.Token, v string) *PLit   { return &PLit{Token: tok, Value: v} }
func PBool(tok token.Token, v bool) *PLit       { return &PLit{Token: tok, Value: v} }

// PCon matches a data constructor applied to sub-patterns, e.g. `Just x`.
type PCon struct {
	Token token.Token
	Name  string
	Args  []Pattern
}

func (*PCon) patternNode()          {}
func (p *PCon) GetToken() token.Token { return p.Token }

type PList struct {
	Token    token.Token
	Elements []Pattern
}

func (*PList) patternNode()          {}
func (p *PList) GetToken() token.Token { return p.Token }

type PTuple struct {
	Token    token.Token
	Elements []Pattern // len >= 2
}

func (*PTuple) patternNode()          {}
func (p *PTuple) GetToken() token.Token { return p.Token }

// PAs is `v@p`.
type PAs struct {
	Token   token.Token
	Name    string
	Pattern Pattern
}

func (*PAs) patternNode()          {}
func (p *PAs) GetToken() token.Token { return p.Token }
