package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// inferAnnot types `e :: type` (§4.4's explicit annotation rule). When
// the written type has no free variables, it behaves like a unification
// assertion: infer e's type and unify it against the annotation. When the
// annotation is itself polymorphic (has variables, possibly under a
// qualified context), inferring and then unifying would let the
// annotation's variables silently specialize to whatever e's inferred
// type happens to be — instead, e's type is generalized and compared to
// the annotation's scheme up to consistent renaming (α-equivalence), so
// a mismatched or under-general annotation is rejected outright rather
// than quietly narrowed.
func (c *Context) inferAnnot(env *typesystem.Env, e *ast.Annot) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	annotTy, annotConstraints := elaborateType(e.Type)

	exprTy, s, constraints, err := c.Infer(env, e.Expr)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(annotTy.FreeTypeVariables()) == 0 {
		su, err := typesystem.UnifyAt(exprTy.Apply(s), annotTy, spanOfExpr(e))
		if err != nil {
			return nil, nil, nil, err
		}
		s = su.Compose(s)
		constraints = applyConstraints(constraints, su)
		reduced, err := c.ReduceConstraints(s, constraints)
		if err != nil {
			return nil, nil, nil, err
		}
		return annotTy, s, reduced, nil
	}

	reduced, err := c.ReduceConstraints(s, constraints)
	if err != nil {
		return nil, nil, nil, err
	}
	inferredEnv := typesystem.ApplyToEnv(s, env)
	inferredScheme := Generalize(inferredEnv, exprTy.Apply(s), reduced)

	annotScheme := typesystem.Scheme{
		Vars:        annotTy.FreeTypeVariables(),
		Constraints: annotConstraints,
		Type:        annotTy,
	}

	if !schemesEquivalent(inferredScheme, annotScheme) {
		return nil, nil, nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrAnnotationMismatch, spanOfExpr(e), annotScheme.Type.String(), inferredScheme.Type.String())
	}

	return annotTy, s, annotConstraints, nil
}
