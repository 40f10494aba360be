package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// inferLet implements §4.4's unified recursive/non-recursive let: every
// name-form binder (`let f x = …`) gets a fresh type variable bound into
// a temporary child scope BEFORE any binding's value is inferred, so
// mutually recursive bindings resolve regardless of declaration order.
// Pattern-form binders (`let (a, b) = …`) are not pre-bound — their
// names only come into scope once the right-hand side's type is known,
// matching §3.3's rule that pattern destructuring is non-recursive.
func (c *Context) inferLet(env *typesystem.Env, e *ast.Let) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	letEnv := env.Child()

	nameVars := make(map[*ast.Binding]typesystem.TVar)
	for _, b := range e.Bindings {
		if b.Pattern == nil {
			v := c.FreshVar()
			nameVars[b] = v
			letEnv.Bind(b.Name, typesystem.Mono(v))
		}
	}

	s := typesystem.Subst{}
	var constraints []typesystem.Constraint

	for _, b := range e.Bindings {
		value := b.Value
		if len(b.Params) > 0 {
			value = &ast.Lambda{Token: b.Token, Params: b.Params, Body: b.Value}
		}

		bindEnv := typesystem.ApplyToEnv(s, letEnv)
		valTy, si, cs, err := c.Infer(bindEnv, value)
		if err != nil {
			return nil, nil, nil, err
		}
		s = si.Compose(s)
		constraints = append(applyConstraints(constraints, si), cs...)

		if b.Pattern != nil {
			su, err := c.elaboratePattern(letEnv, b.Pattern, valTy.Apply(s))
			if err != nil {
				return nil, nil, nil, err
			}
			s = su.Compose(s)
			constraints = applyConstraints(constraints, su)
			continue
		}

		v := nameVars[b]
		su, err := typesystem.UnifyAt(v.Apply(s), valTy.Apply(s), spanOfExpr(value))
		if err != nil {
			return nil, nil, nil, err
		}
		s = su.Compose(s)
		constraints = applyConstraints(constraints, su)
	}

	genEnv := typesystem.ApplyToEnv(s, env)
	quantified := map[string]bool{}
	for _, b := range e.Bindings {
		if b.Pattern != nil {
			continue
		}
		v := nameVars[b]
		ownConstraints := constraintsForVar(constraints, v.Apply(s))
		sc := Generalize(genEnv, v.Apply(s), ownConstraints)
		for _, qv := range sc.Vars {
			quantified[qv] = true
		}
		letEnv.Bind(b.Name, sc)
	}
	var outer []typesystem.Constraint
	for _, ct := range constraints {
		if !quantified[ct.Var] {
			outer = append(outer, ct)
		}
	}
	constraints = outer

	bodyEnv := typesystem.ApplyToEnv(s, letEnv)
	bodyTy, sb, csb, err := c.Infer(bodyEnv, e.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	s = sb.Compose(s)
	constraints = append(applyConstraints(constraints, sb), csb...)

	reduced, err := c.ReduceConstraints(s, constraints)
	if err != nil {
		return nil, nil, nil, err
	}
	return bodyTy.Apply(s), s, reduced, nil
}

// constraintsForVar picks out the constraints that mention a type
// variable free in t, used so each let-bound name generalizes only the
// constraints relevant to its own type rather than the whole let group's
// accumulated set. t need not be a bare TVar itself — a parameterized
// binding like `f x = x * x` resolves to a TArrow, and its Num
// constraint must still travel with it into the binding's scheme.
func constraintsForVar(constraints []typesystem.Constraint, t typesystem.Type) []typesystem.Constraint {
	free := map[string]bool{}
	for _, name := range t.FreeTypeVariables() {
		free[name] = true
	}
	if len(free) == 0 {
		return nil
	}
	var out []typesystem.Constraint
	for _, c := range constraints {
		if free[c.Var] {
			out = append(out, c)
		}
	}
	return out
}
