// Package ast defines the untyped syntax tree produced by the parser:
// expressions, patterns, surface types, and top-level declarations.
//
// Every node carries the token.Token it started at so later phases can
// report a precise span; there is no separate Visitor interface (Algorithm
// W is naturally a recursive type switch, so double dispatch buys nothing
// here).
package ast

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/token"
)

// Node is the minimal interface every AST node satisfies.
type Node interface {
	GetToken() token.Token
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// Expression is any node that can appear in expression position.
type Expression interface {
	Node
	exprNode()
}

type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) GetToken() token.Token { return i.Token }

// Var references a bound name (lowercase identifier or, for a data
// constructor used as a value, an uppercase one).
type Var struct {
	Token token.Token
	Name  string
}

func (*Var) exprNode()              {}
func (v *Var) GetToken() token.Token { return v.Token }

type IntLit struct {
	Token token.Token
	Value *big.Int
}

func (*IntLit) exprNode()              {}
func (n *IntLit) GetToken() token.Token { return n.Token }

type DoubleLit struct {
	Token token.Token
	Value float64
}

func (*DoubleLit) exprNode()              {}
func (n *DoubleLit) GetToken() token.Token { return n.Token }

type CharLit struct {
	Token token.Token
	Value rune
}

func (*CharLit) exprNode()              {}
func (n *CharLit) GetToken() token.Token { return n.Token }

type StringLit struct {
	Token token.Token
	Value string
}

func (*StringLit) exprNode()              {}
func (n *StringLit) GetToken() token.Token { return n.Token }

type BoolLit struct {
	Token token.Token
	Value bool
}

func (*BoolLit) exprNode()              {}
func (n *BoolLit) GetToken() token.Token { return n.Token }

type ListLit struct {
	Token    token.Token
	Elements []Expression
}

func (*ListLit) exprNode()              {}
func (n *ListLit) GetToken() token.Token { return n.Token }

type TupleLit struct {
	Token    token.Token
	Elements []Expression // len >= 2
}

func (*TupleLit) exprNode()              {}
func (n *TupleLit) GetToken() token.Token { return n.Token }

// Lambda binds one plain variable name per parameter (no pattern
// arguments, per spec).
type Lambda struct {
	Token  token.Token // the '\'
	Params []string
	Body   Expression
}

func (*Lambda) exprNode()              {}
func (n *Lambda) GetToken() token.Token { return n.Token }

// App is left-associative function application, already flattened by the
// parser into a single callee plus an argument list.
type App struct {
	Token token.Token
	Fn    Expression
	Args  []Expression
}

func (*App) exprNode()              {}
func (n *App) GetToken() token.Token { return n.Token }

// Binding is one clause of a let: either a simple/function binder
// (Name + zero or more Params, eligible for self-reference / recursion)
// or a pattern-destructuring binder (Pattern, no self-reference).
type Binding struct {
	Token   token.Token
	Name    string   // set when this is a name-form binding
	Params  []string // function parameters, name-form only
	Pattern Pattern  // set when this is a pattern-destructuring binding
	Value   Expression
}

// Let is `let b1 ; b2 ; … in body`. Each name-form binding may refer to
// itself (and to its siblings) in its own Value; whether that makes the
// binding "non-recursive" or "recursive" in the sense of §4.4 falls out
// automatically from whether the name is actually used that way (see
// DESIGN.md).
type Let struct {
	Token    token.Token
	Bindings []*Binding
	Body     Expression
}

func (*Let) exprNode()              {}
func (n *Let) GetToken() token.Token { return n.Token }

type If struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (*If) exprNode()              {}
func (n *If) GetToken() token.Token { return n.Token }

type CaseAlt struct {
	Pattern Pattern
	Body    Expression
}

// Case is `case scrutinee of { pat1 -> e1 ; pat2 -> e2 ; … }`; the parser
// rejects zero alternatives.
type Case struct {
	Token     token.Token
	Scrutinee Expression
	Alts      []CaseAlt
}

func (*Case) exprNode()              {}
func (n *Case) GetToken() token.Token { return n.Token }

// Annot is `e :: type`.
type Annot struct {
	Token token.Token
	Expr  Expression
	Type  Type
}

func (*Annot) exprNode()              {}
func (n *Annot) GetToken() token.Token { return n.Token }

// Hole is `?name`: inference assigns it a fresh type and continues;
// evaluation raises UserHole. Type is filled in by the analyzer once the
// enclosing expression's substitution is fully known, so evaluation can
// report the hole's own resolved type rather than a placeholder; it is
// empty until then.
type Hole struct {
	Token token.Token
	Name  string
	Type  string
}

func (*Hole) exprNode()              {}
func (n *Hole) GetToken() token.Token { return n.Token }
