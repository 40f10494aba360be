// Package evaluator is the strict, environment-based, call-by-value
// interpreter over the inferred AST — §4.6. Grounded on the teacher's
// (funxy) internal/evaluator: the same Value-interface-plus-concrete-
// structs shape as the teacher's Object/Integer/Float/Function/Builtin
// family, and the same Environment parent-chaining as the teacher's
// Environment, trimmed to the one numeric tower, ADT family, and
// closure/partial-application model this language needs (no records,
// maps, bytes, bits, or host-IO value kinds — those are funxy-specific
// extensions with no home in this language; see DESIGN.md).
package evaluator

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/ast"
)

// Value is any runtime value this evaluator produces or consumes.
type Value interface {
	valueNode()
}

// IntValue is an arbitrary-precision integer (§9's "host choice" on
// Integer representation — this implementation chooses arbitrary
// precision via math/big, since the teacher's own BigInt value kind
// shows the pack already reaches for math/big for exactly this purpose).
type IntValue struct {
	Value *big.Int
}

func (*IntValue) valueNode() {}

func NewInt(v *big.Int) *IntValue { return &IntValue{Value: v} }
func NewIntInt64(v int64) *IntValue { return &IntValue{Value: big.NewInt(v)} }

// DoubleValue is an IEEE-754 double.
type DoubleValue struct {
	Value float64
}

func (*DoubleValue) valueNode() {}

// BoolValue is a boolean.
type BoolValue struct {
	Value bool
}

func (*BoolValue) valueNode() {}

var (
	TrueValue  = &BoolValue{Value: true}
	FalseValue = &BoolValue{Value: false}
)

func BoolFor(b bool) *BoolValue {
	if b {
		return TrueValue
	}
	return FalseValue
}

// CharValue is a single Unicode code point.
type CharValue struct {
	Value rune
}

func (*CharValue) valueNode() {}

// ListValue is a persistent (structurally shared) list; strings are
// represented as a ListValue of CharValue (§9's "String equals list of
// Char" rule) so pattern matching, indexing, and show all fall out of
// the list machinery without a separate string code path.
type ListValue struct {
	Elements []Value
}

func NewList(elems []Value) *ListValue { return &ListValue{Elements: elems} }

func (*ListValue) valueNode() {}

func StringToListValue(s string) *ListValue {
	runes := []rune(s)
	elems := make([]Value, len(runes))
	for i, r := range runes {
		elems[i] = &CharValue{Value: r}
	}
	return &ListValue{Elements: elems}
}

// TupleValue is a heterogeneous fixed-arity tuple, n >= 2.
type TupleValue struct {
	Elements []Value
}

func (*TupleValue) valueNode() {}

// DataValue is an instance of a `data` constructor application, e.g.
// `Just 5` or `Nothing`.
type DataValue struct {
	Constructor string
	Fields      []Value
}

func (*DataValue) valueNode() {}

// ClosureValue is a user-defined function: a lambda or let-bound
// function capturing its defining environment. Params holds every
// parameter the source lambda declared; application may be partial —
// see apply.go.
type ClosureValue struct {
	Params []string
	Body   ast.Expression
	Env    *Environment
	Name   string // non-empty for named let/top-level bindings, for stack-trace-free error messages
}

func (*ClosureValue) valueNode() {}

// PartialValue wraps a primitive together with arguments already
// supplied, short of its full arity. Closures need no such wrapper —
// partial application of a closure is just a shorter-Params
// ClosureValue, see apply.go.
type PartialValue struct {
	Callee   *PrimitiveValue
	Supplied []Value
}

func (*PartialValue) valueNode() {}

// ConstructorValue is a `data` constructor applied to fewer than Arity
// arguments — the curried callable a bare `Just` or `Pair` evaluates to
// before it is saturated into a DataValue.
type ConstructorValue struct {
	Name     string
	Arity    int
	Supplied []Value
}

func (*ConstructorValue) valueNode() {}

// PrimitiveValue is a built-in operator or prelude function (§4.6:
// "if it is a primitive whose arity is not yet satisfied, it extends
// its argument buffer; once saturated, the primitive's native step
// executes").
type PrimitiveValue struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (*PrimitiveValue) valueNode() {}
