package ast

import "github.com/sin4auto/typelang-hm/internal/token"

// Decl is a top-level declaration: an optional type signature followed by
// a let-binding, or a data declaration.
type Decl interface {
	Node
	declNode()
}

// Signature is `v :: σ`, which must be immediately followed by a LetDecl
// binding the same name.
type Signature struct {
	Token token.Token
	Name  string
	Type  Type
}

func (*Signature) declNode()            {}
func (s *Signature) GetToken() token.Token { return s.Token }

// LetDecl is `let v p1 … pn = e`.
type LetDecl struct {
	Token  token.Token
	Name   string
	Params []string
	Value  Expression
	// Signature is non-nil when a `v :: σ` immediately preceded this
	// binding and named the same v.
	Signature Type
}

func (*LetDecl) declNode()            {}
func (d *LetDecl) GetToken() token.Token { return d.Token }

// DataConstructor is one constructor of a data declaration, e.g. `Just a`.
type DataConstructor struct {
	Token  token.Token
	Name   string
	Fields []Type
}

// DataDecl is `data T a1 … an = K1 t… | K2 t… | …`.
type DataDecl struct {
	Token        token.Token
	TypeName     string
	TypeParams   []string
	Constructors []DataConstructor // non-empty
}

func (*DataDecl) declNode()            {}
func (d *DataDecl) GetToken() token.Token { return d.Token }

// Program is the root node produced by parsing a whole module: an ordered
// sequence of top-level declarations.
type Program struct {
	Decls []Decl
}
