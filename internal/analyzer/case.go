package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// inferCase types `case scrutinee of { pat1 -> e1 ; … }` — §4.5. Every
// alternative's pattern is elaborated against the scrutinee's type in its
// own child scope, and every alternative's body must unify to one common
// result type. Exhaustiveness is deliberately not checked here: §4.6/4.7
// name NonExhaustiveCase as a runtime error, so this analyzer accepts any
// non-empty alternative list and leaves missing-pattern detection to the
// evaluator.
func (c *Context) inferCase(env *typesystem.Env, e *ast.Case) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	if len(e.Alts) == 0 {
		return nil, nil, nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrNoAlternatives, spanOfExpr(e))
	}

	scrutTy, s, constraints, err := c.Infer(env, e.Scrutinee)
	if err != nil {
		return nil, nil, nil, err
	}

	resultTy := c.FreshVar()
	var result typesystem.Type = resultTy

	for _, alt := range e.Alts {
		altEnv := typesystem.ApplyToEnv(s, env).Child()
		sp, err := c.elaboratePattern(altEnv, alt.Pattern, scrutTy.Apply(s))
		if err != nil {
			return nil, nil, nil, err
		}
		s = sp.Compose(s)
		constraints = applyConstraints(constraints, sp)

		bodyEnv := typesystem.ApplyToEnv(s, altEnv)
		bodyTy, sb, cs, err := c.Infer(bodyEnv, alt.Body)
		if err != nil {
			return nil, nil, nil, err
		}
		s = sb.Compose(s)
		constraints = append(applyConstraints(constraints, sb), cs...)

		su, err := typesystem.UnifyAt(result.Apply(s), bodyTy.Apply(sb), spanOfExpr(alt.Body))
		if err != nil {
			return nil, nil, nil, err
		}
		s = su.Compose(s)
		constraints = applyConstraints(constraints, su)
		result = result.Apply(su)
	}

	return result.Apply(s), s, constraints, nil
}
