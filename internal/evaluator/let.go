package evaluator

import "github.com/sin4auto/typelang-hm/internal/ast"

// evalLet implements §9's "Recursive environments" note: every name-form
// binder's cell is reserved before any binding's value is evaluated, so
// a closure captured while evaluating one binding already has the
// environment slot its sibling (or itself, for direct recursion) will
// later fill. Pattern-form binders are evaluated and destructured
// immediately, in source order, with no forward visibility — matching
// the analyzer's non-recursive treatment of pattern bindings.
func evalLet(env *Environment, e *ast.Let) (Value, error) {
	letEnv := env.Child()

	for _, b := range e.Bindings {
		if b.Pattern == nil {
			letEnv.Reserve(b.Name)
		}
	}

	for _, b := range e.Bindings {
		value := b.Value
		if len(b.Params) > 0 {
			value = &ast.Lambda{Token: b.Token, Params: b.Params, Body: b.Value}
		}
		v, err := Eval(letEnv, value)
		if err != nil {
			return nil, err
		}
		if b.Pattern != nil {
			if err := matchPatternInto(letEnv, b.Pattern, v); err != nil {
				return nil, err
			}
			continue
		}
		if cl, ok := v.(*ClosureValue); ok && cl.Name == "" {
			cl.Name = b.Name
		}
		letEnv.Fill(b.Name, v)
	}

	return Eval(letEnv, e.Body)
}
