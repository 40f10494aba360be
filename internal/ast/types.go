package ast

import "github.com/sin4auto/typelang-hm/internal/token"

// Type is the surface syntax for a type expression (§4.2's separate
// type grammar). It is kept distinct from internal/typesystem.Type: this
// one is what the parser produces, the other is what the inferencer
// reasons about; Annot and Signature carry a Type, and the analyzer
// elaborates it into a typesystem.Type the first time it is needed.
type Type interface {
	Node
	typeNode()
}

// ConstraintSyntax is one `Class v` entry in a `context => type`
// qualifier.
type ConstraintSyntax struct {
	Token token.Token
	Class string
	Var   string
}

// TypeVar is a lowercase type variable occurring in surface syntax.
type TypeVar struct {
	Token token.Token
	Name  string
}

func (*TypeVar) typeNode()            {}
func (t *TypeVar) GetToken() token.Token { return t.Token }

// TypeCon is a type constant/constructor name, e.g. Int, Maybe.
type TypeCon struct {
	Token token.Token
	Name  string
}

func (*TypeCon) typeNode()            {}
func (t *TypeCon) GetToken() token.Token { return t.Token }

// TypeApp is type application T1 T2 (left-associative, juxtaposition).
type TypeApp struct {
	Token token.Token
	Fn    Type
	Arg   Type
}

func (*TypeApp) typeNode()            {}
func (t *TypeApp) GetToken() token.Token { return t.Token }

// TypeArrow is T1 -> T2 (right-associative).
type TypeArrow struct {
	Token token.Token
	From  Type
	To    Type
}

func (*TypeArrow) typeNode()            {}
func (t *TypeArrow) GetToken() token.Token { return t.Token }

// TypeTuple is (T1, …, Tn), n >= 2.
type TypeTuple struct {
	Token    token.Token
	Elements []Type
}

func (*TypeTuple) typeNode()            {}
func (t *TypeTuple) GetToken() token.Token { return t.Token }

// TypeList is [T].
type TypeList struct {
	Token token.Token
	Elem  Type
}

func (*TypeList) typeNode()            {}
func (t *TypeList) GetToken() token.Token { return t.Token }

// QualifiedType is `context => type`, where context is one or more class
// constraints on type variables free in Type.
type QualifiedType struct {
	Token       token.Token
	Constraints []ConstraintSyntax
	Type        Type
}

func (*QualifiedType) typeNode()            {}
func (t *QualifiedType) GetToken() token.Token { return t.Token }
