package evaluator

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
)

// Eval implements the strict, call-by-value evaluation rules of §4.6,
// dispatching over every ast.Expression variant the way the teacher's
// evaluator.Eval dispatches over its own statement/expression node set.
func Eval(env *Environment, expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &IntValue{Value: new(big.Int).Set(e.Value)}, nil
	case *ast.DoubleLit:
		return &DoubleValue{Value: e.Value}, nil
	case *ast.CharLit:
		return &CharValue{Value: e.Value}, nil
	case *ast.StringLit:
		return StringToListValue(e.Value), nil
	case *ast.BoolLit:
		return BoolFor(e.Value), nil
	case *ast.Hole:
		display := e.Type
		if display == "" {
			display = "?"
		}
		return nil, diagnostics.New(diagnostics.PhaseEval, diagnostics.ErrUserHole, spanOf(e), e.Name, display)

	case *ast.Var:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseEval, diagnostics.ErrUnresolvedRecur, spanOf(e), e.Name)
		}
		return v, nil

	case *ast.Lambda:
		return &ClosureValue{Params: e.Params, Body: e.Body, Env: env}, nil

	case *ast.App:
		return evalApp(env, e)

	case *ast.If:
		return evalIf(env, e)

	case *ast.Let:
		return evalLet(env, e)

	case *ast.Case:
		return evalCase(env, e)

	case *ast.Annot:
		return Eval(env, e.Expr)

	case *ast.ListLit:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := Eval(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ListValue{Elements: elems}, nil

	case *ast.TupleLit:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := Eval(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &TupleValue{Elements: elems}, nil

	default:
		panic("evaluator: unreachable expression variant")
	}
}

// evalIf trusts that inference already proved e.Cond : Bool; the type
// assertion cannot fail on a program that passed ElaborateProgram.
func evalIf(env *Environment, e *ast.If) (Value, error) {
	cond, err := Eval(env, e.Cond)
	if err != nil {
		return nil, err
	}
	if cond.(*BoolValue).Value {
		return Eval(env, e.Then)
	}
	return Eval(env, e.Else)
}

func spanOf(n ast.Node) diagnostics.Span {
	tok := n.GetToken()
	return diagnostics.Span{Line: tok.Line, Column: tok.Column, Start: tok.Start, End: tok.End}
}
