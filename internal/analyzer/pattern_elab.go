package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/pattern"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// elaboratePattern implements §4.5's inference-time rules: given the
// scrutinee's expected type and a pattern, it emits unifications and
// extends env (a fresh child scope the caller already created) with the
// pattern's bound variables. It returns the substitution accumulated
// while elaborating this pattern alone; the caller composes it with
// whatever substitution is already in flight.
func (c *Context) elaboratePattern(env *typesystem.Env, pat ast.Pattern, expected typesystem.Type) (typesystem.Subst, error) {
	if err := pattern.CheckNoDuplicateBinders(pat); err != nil {
		return nil, err
	}
	return c.elaboratePatternNode(env, pat, expected)
}

func (c *Context) elaboratePatternNode(env *typesystem.Env, pat ast.Pattern, expected typesystem.Type) (typesystem.Subst, error) {
	span := spanOfPattern(pat)
	switch p := pat.(type) {
	case *ast.PWildcard:
		return typesystem.Subst{}, nil

	case *ast.PVar:
		env.Bind(p.Name, typesystem.Mono(expected))
		return typesystem.Subst{}, nil

	case *ast.PLit:
		lt := literalPatternType(c, p)
		return typesystem.UnifyAt(lt, expected, span)

	case *ast.PAs:
		env.Bind(p.Name, typesystem.Mono(expected))
		return c.elaboratePatternNode(env, p.Pattern, expected)

	case *ast.PList:
		elemTy := c.FreshVar()
		s, err := typesystem.UnifyAt(typesystem.TList{Elem: elemTy}, expected, span)
		if err != nil {
			return nil, err
		}
		for _, sub := range p.Elements {
			si, err := c.elaboratePatternNode(env, sub, elemTy.Apply(s))
			if err != nil {
				return nil, err
			}
			s = si.Compose(s)
		}
		return s, nil

	case *ast.PTuple:
		elemTys := make([]typesystem.Type, len(p.Elements))
		for i := range elemTys {
			elemTys[i] = c.FreshVar()
		}
		s, err := typesystem.UnifyAt(typesystem.TTuple{Elements: elemTys}, expected, span)
		if err != nil {
			return nil, err
		}
		for i, sub := range p.Elements {
			si, err := c.elaboratePatternNode(env, sub, elemTys[i].Apply(s))
			if err != nil {
				return nil, err
			}
			s = si.Compose(s)
		}
		return s, nil

	case *ast.PCon:
		sc, ok := env.Lookup(p.Name)
		if !ok {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnboundVariable, span, p.Name)
		}
		ctorTy, _ := c.Instantiate(sc)
		argTys, resultTy := splitArrow(ctorTy, len(p.Args))
		s, err := typesystem.UnifyAt(resultTy, expected, span)
		if err != nil {
			return nil, err
		}
		for i, sub := range p.Args {
			si, err := c.elaboratePatternNode(env, sub, argTys[i].Apply(s))
			if err != nil {
				return nil, err
			}
			s = si.Compose(s)
		}
		return s, nil

	default:
		return typesystem.Subst{}, nil
	}
}

// literalPatternType mirrors the literal-expression typing rule (§4.4):
// an integer literal pattern is only a Num-constrained fresh variable in
// principle, but since pattern matching always immediately unifies
// against a concrete scrutinee type, a plain fresh Num var serves the
// same purpose without needing to thread a constraint set out of pattern
// elaboration.
func literalPatternType(c *Context, p *ast.PLit) typesystem.Type {
	switch p.Value.(type) {
	case float64:
		return typesystem.TCon{Name: "Double"}
	case rune:
		return typesystem.TCon{Name: "Char"}
	case string:
		return typesystem.TList{Elem: typesystem.TCon{Name: "Char"}}
	case bool:
		return typesystem.TCon{Name: "Bool"}
	default: // *big.Int
		return c.FreshVar()
	}
}

// splitArrow peels n arrows off t, returning the argument types in order
// and the final result type. Used for constructor patterns, whose scheme
// is always `T1 -> … -> Tn -> D`.
func splitArrow(t typesystem.Type, n int) ([]typesystem.Type, typesystem.Type) {
	args := make([]typesystem.Type, 0, n)
	for i := 0; i < n; i++ {
		arrow, ok := t.(typesystem.TArrow)
		if !ok {
			break
		}
		args = append(args, arrow.From)
		t = arrow.To
	}
	return args, t
}

func spanOfPattern(p ast.Pattern) diagnostics.Span {
	tok := p.GetToken()
	return diagnostics.Span{Line: tok.Line, Column: tok.Column, Start: tok.Start, End: tok.End}
}
