package evaluator

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
)

// evalCase evaluates the scrutinee fully, then dispatches to the first
// alternative whose pattern matches, per §4.6. If none matches, the
// analyzer's deliberate choice not to check exhaustiveness statically
// (§4.6/§4.7 name this a runtime failure) means this is where
// NonExhaustiveCase is actually raised.
func evalCase(env *Environment, e *ast.Case) (Value, error) {
	scrutinee, err := Eval(env, e.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, alt := range e.Alts {
		bindings, ok := match(alt.Pattern, scrutinee)
		if !ok {
			continue
		}
		altEnv := env.Child()
		for name, v := range bindings {
			altEnv.Bind(name, v)
		}
		return Eval(altEnv, alt.Body)
	}
	return nil, nonExhaustive(e)
}

func nonExhaustive(n ast.Node) error {
	return diagnostics.New(diagnostics.PhaseEval, diagnostics.ErrNonExhaustiveCase, spanOf(n))
}
