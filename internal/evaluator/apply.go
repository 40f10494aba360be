package evaluator

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
)

// evalApp evaluates `f a1 … an` left to right (§4.6) and applies the
// callee to each argument in turn, so that a closure or primitive whose
// arity is less than n gets applied, saturates, produces a new callable,
// and is applied again to the remaining arguments (this models ordinary
// currying without the parser ever producing single-argument App nodes
// for a multi-argument call).
func evalApp(env *Environment, e *ast.App) (Value, error) {
	fn, err := Eval(env, e.Fn)
	if err != nil {
		return nil, err
	}
	for _, argExpr := range e.Args {
		arg, err := Eval(env, argExpr)
		if err != nil {
			return nil, err
		}
		fn, err = Apply(fn, arg)
		if err != nil {
			return nil, err
		}
	}
	return fn, nil
}

// Apply applies callee to a single argument, per §4.6: "if the callee is
// a closure with remaining parameters, it captures the argument; if it
// is a primitive whose arity is not yet satisfied, it extends its
// argument buffer; once saturated, the primitive's native step
// executes."
func Apply(callee Value, arg Value) (Value, error) {
	switch c := callee.(type) {
	case *ClosureValue:
		bodyEnv := c.Env.Child()
		bodyEnv.Bind(c.Params[0], arg)
		if len(c.Params) == 1 {
			return Eval(bodyEnv, c.Body)
		}
		return &ClosureValue{Params: c.Params[1:], Body: c.Body, Env: bodyEnv, Name: c.Name}, nil

	case *PrimitiveValue:
		return applyPrimitive(c, nil, arg)

	case *PartialValue:
		return applyPrimitive(c.Callee, c.Supplied, arg)

	case *ConstructorValue:
		supplied := append(append([]Value{}, c.Supplied...), arg)
		if len(supplied) == c.Arity {
			return &DataValue{Constructor: c.Name, Fields: supplied}, nil
		}
		return &ConstructorValue{Name: c.Name, Arity: c.Arity, Supplied: supplied}, nil
	}
	panic("evaluator: apply on a non-callable value")
}

func applyPrimitive(p *PrimitiveValue, supplied []Value, arg Value) (Value, error) {
	all := append(append([]Value{}, supplied...), arg)
	if len(all) == p.Arity {
		return p.Fn(all)
	}
	return &PartialValue{Callee: p, Supplied: all}, nil
}
