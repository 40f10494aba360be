package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// Infer implements Algorithm W (§4.4) for a single expression under env,
// returning its type, the substitution accumulated while inferring it,
// and the residual (not yet entailed) constraint set. The returned
// substitution has NOT been applied to the returned type — callers that
// need the fully-resolved type must call t.Apply(s) themselves, mirroring
// the teacher's convention of keeping substitution application explicit
// at each call site rather than baked into the return value.
func (c *Context) Infer(env *typesystem.Env, expr ast.Expression) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return c.inferIntLit(e)
	case *ast.DoubleLit:
		return typesystem.TCon{Name: "Double"}, typesystem.Subst{}, nil, nil
	case *ast.CharLit:
		return typesystem.TCon{Name: "Char"}, typesystem.Subst{}, nil, nil
	case *ast.StringLit:
		return typesystem.TList{Elem: typesystem.TCon{Name: "Char"}}, typesystem.Subst{}, nil, nil
	case *ast.BoolLit:
		return typesystem.TCon{Name: "Bool"}, typesystem.Subst{}, nil, nil
	case *ast.Hole:
		v := c.FreshVar()
		c.recordHole(e, v)
		return v, typesystem.Subst{}, nil, nil

	case *ast.Var:
		return c.inferVar(env, e)
	case *ast.Lambda:
		return c.inferLambda(env, e)
	case *ast.App:
		return c.inferApp(env, e)
	case *ast.If:
		return c.inferIf(env, e)
	case *ast.Let:
		return c.inferLet(env, e)
	case *ast.Case:
		return c.inferCase(env, e)
	case *ast.Annot:
		return c.inferAnnot(env, e)
	case *ast.ListLit:
		return c.inferListLit(env, e)
	case *ast.TupleLit:
		return c.inferTupleLit(env, e)

	default:
		return nil, nil, nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnboundVariable, diagnostics.Span{}, "<unknown expression form>")
	}
}

// inferIntLit: IntLit is a fresh variable with a Num constraint, so it
// unifies equally well against Int or Double contexts — §4.4.
func (c *Context) inferIntLit(e *ast.IntLit) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	alpha := c.FreshVar()
	return alpha, typesystem.Subst{}, []typesystem.Constraint{{Class: "Num", Var: alpha.Name}}, nil
}

func (c *Context) inferVar(env *typesystem.Env, e *ast.Var) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	sc, ok := env.Lookup(e.Name)
	if !ok {
		return nil, nil, nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnboundVariable, spanOfExpr(e), e.Name)
	}
	ty, constraints := c.Instantiate(sc)
	return ty, typesystem.Subst{}, constraints, nil
}

// inferLambda: \v1 v2 … -> e. Each parameter gets its own fresh
// variable; the body is inferred in one child scope extended with all of
// them at once (equivalent to nesting single-parameter lambdas, §3.3's
// "one or more parameters").
func (c *Context) inferLambda(env *typesystem.Env, e *ast.Lambda) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	child := env.Child()
	paramTys := make([]typesystem.Type, len(e.Params))
	for i, name := range e.Params {
		v := c.FreshVar()
		paramTys[i] = v
		child.Bind(name, typesystem.Mono(v))
	}
	bodyTy, s, constraints, err := c.Infer(child, e.Body)
	if err != nil {
		return nil, nil, nil, err
	}
	result := bodyTy.Apply(s)
	for i := len(paramTys) - 1; i >= 0; i-- {
		result = typesystem.TArrow{From: paramTys[i].Apply(s), To: result}
	}
	return result, s, constraints, nil
}

// inferApp: `f a1 … an`, unifying the callee with `a1 -> … -> an ->
// fresh`, threading the substitution through each argument left to right
// (§4.4's "app f x").
func (c *Context) inferApp(env *typesystem.Env, e *ast.App) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	fnTy, s, constraints, err := c.Infer(env, e.Fn)
	if err != nil {
		return nil, nil, nil, err
	}

	argTys := make([]typesystem.Type, len(e.Args))
	for i, arg := range e.Args {
		argEnv := typesystem.ApplyToEnv(s, env)
		ty, si, cs, err := c.Infer(argEnv, arg)
		if err != nil {
			return nil, nil, nil, err
		}
		s = si.Compose(s)
		argTys[i] = ty.Apply(si)
		constraints = append(applyConstraints(constraints, si), cs...)
	}

	result := c.FreshVar()
	var want typesystem.Type = result
	for i := len(argTys) - 1; i >= 0; i-- {
		want = typesystem.TArrow{From: argTys[i].Apply(s), To: want}
	}
	su, err := typesystem.UnifyAt(fnTy.Apply(s), want, spanOfExpr(e))
	if err != nil {
		return nil, nil, nil, err
	}
	s = su.Compose(s)
	return result.Apply(s), s, applyConstraints(constraints, su), nil
}

func (c *Context) inferIf(env *typesystem.Env, e *ast.If) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	condTy, s1, cs1, err := c.Infer(env, e.Cond)
	if err != nil {
		return nil, nil, nil, err
	}
	sb, err := typesystem.UnifyAt(condTy, typesystem.TCon{Name: "Bool"}, spanOfExpr(e.Cond))
	if err != nil {
		return nil, nil, nil, err
	}
	s := sb.Compose(s1)
	cs1 = applyConstraints(cs1, sb)

	thenEnv := typesystem.ApplyToEnv(s, env)
	thenTy, s2, cs2, err := c.Infer(thenEnv, e.Then)
	if err != nil {
		return nil, nil, nil, err
	}
	s = s2.Compose(s)
	cs1 = append(applyConstraints(cs1, s2), cs2...)

	elseEnv := typesystem.ApplyToEnv(s, env)
	elseTy, s3, cs3, err := c.Infer(elseEnv, e.Else)
	if err != nil {
		return nil, nil, nil, err
	}
	s = s3.Compose(s)
	cs1 = append(applyConstraints(cs1, s3), cs3...)

	su, err := typesystem.UnifyAt(thenTy.Apply(s3), elseTy, spanOfExpr(e))
	if err != nil {
		return nil, nil, nil, err
	}
	s = su.Compose(s)
	return elseTy.Apply(su), s, applyConstraints(cs1, su), nil
}

func (c *Context) inferListLit(env *typesystem.Env, e *ast.ListLit) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	elemTy := c.FreshVar()
	s := typesystem.Subst{}
	var constraints []typesystem.Constraint
	cur := elemTy.Apply(s)
	for _, el := range e.Elements {
		elEnv := typesystem.ApplyToEnv(s, env)
		ty, si, cs, err := c.Infer(elEnv, el)
		if err != nil {
			return nil, nil, nil, err
		}
		s = si.Compose(s)
		constraints = append(applyConstraints(constraints, si), cs...)
		su, err := typesystem.UnifyAt(cur.Apply(si), ty.Apply(si), spanOfExpr(el))
		if err != nil {
			return nil, nil, nil, err
		}
		s = su.Compose(s)
		constraints = applyConstraints(constraints, su)
		cur = elemTy.Apply(s)
	}
	return typesystem.TList{Elem: cur}, s, constraints, nil
}

func (c *Context) inferTupleLit(env *typesystem.Env, e *ast.TupleLit) (typesystem.Type, typesystem.Subst, []typesystem.Constraint, error) {
	s := typesystem.Subst{}
	var constraints []typesystem.Constraint
	tys := make([]typesystem.Type, len(e.Elements))
	for i, el := range e.Elements {
		elEnv := typesystem.ApplyToEnv(s, env)
		ty, si, cs, err := c.Infer(elEnv, el)
		if err != nil {
			return nil, nil, nil, err
		}
		s = si.Compose(s)
		constraints = append(applyConstraints(constraints, si), cs...)
		tys[i] = ty
	}
	for i := range tys {
		tys[i] = tys[i].Apply(s)
	}
	return typesystem.TTuple{Elements: tys}, s, constraints, nil
}

func applyConstraints(cs []typesystem.Constraint, s typesystem.Subst) []typesystem.Constraint {
	out := make([]typesystem.Constraint, len(cs))
	for i, c := range cs {
		out[i] = c.Apply(s)
	}
	return out
}

func spanOfExpr(e ast.Expression) diagnostics.Span {
	tok := e.GetToken()
	return diagnostics.Span{Line: tok.Line, Column: tok.Column, Start: tok.Start, End: tok.End}
}
