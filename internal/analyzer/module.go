package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/classenv"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// ElaborateProgram processes a parsed program's declarations in source
// order against baseEnv/classes (the prelude environment and the shared
// class registry), per §4.2's ordering rule: "declaration i must be
// fully elaborated before declaration i+1 may shadow its bindings." Each
// declaration gets its own Context — a fresh counter starting at 0, per
// §4.7's "the counter is per top-level declaration" rule — but every
// declaration shares the same class Registry, since a `data` declaration
// must be visible to every later declaration in the file.
//
// On the first error, elaboration stops and returns the environment as
// it stood before the failing declaration — §4.7 guarantee (1).
func ElaborateProgram(prog *ast.Program, baseEnv *typesystem.Env, classes *classenv.Registry) (*typesystem.Env, error) {
	env := baseEnv

	var pendingSig *ast.Signature

	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.Signature:
			if pendingSig != nil {
				return env, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnexpectedToken, spanOfDecl(d), "signature immediately followed by another signature")
			}
			pendingSig = d

		case *ast.LetDecl:
			if pendingSig != nil && pendingSig.Name != d.Name {
				return env, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrUnexpectedToken, spanOfDecl(d), "signature name does not match following binding")
			}
			next, err := elaborateLetDecl(env, classes, d, pendingSig)
			if err != nil {
				return env, err
			}
			env = next
			pendingSig = nil

		case *ast.DataDecl:
			env = elaborateDataDecl(env, classes, d)
			pendingSig = nil
		}
	}

	return env, nil
}

// elaborateLetDecl infers a single top-level binding, treating it as
// self-recursive the way a single-binding `let` would (§4.4): a fresh
// variable stands for the binding's own name while its body is inferred,
// so direct recursion resolves without requiring the whole program to be
// one mutually recursive group.
func elaborateLetDecl(env *typesystem.Env, classes *classenv.Registry, d *ast.LetDecl, sig *ast.Signature) (*typesystem.Env, error) {
	c := NewContext(classes)
	child := env.Child()
	self := c.FreshVar()
	child.Bind(d.Name, typesystem.Mono(self))

	value := d.Value
	if len(d.Params) > 0 {
		value = &ast.Lambda{Token: d.Token, Params: d.Params, Body: d.Value}
	}

	valTy, s, constraints, err := c.Infer(child, value)
	if err != nil {
		return env, err
	}
	su, err := typesystem.UnifyAt(self.Apply(s), valTy.Apply(s), spanOfDecl(d))
	if err != nil {
		return env, err
	}
	s = su.Compose(s)
	constraints = applyConstraints(constraints, su)

	reduced, err := c.ReduceConstraints(s, constraints)
	if err != nil {
		return env, err
	}
	c.ResolveHoles(s, reduced)

	finalTy := self.Apply(s)
	genEnv := typesystem.ApplyToEnv(s, env)
	scheme := Generalize(genEnv, finalTy, reduced)

	if sig != nil {
		annotTy, annotConstraints := elaborateType(sig.Type)
		annotScheme := typesystem.Scheme{Vars: annotTy.FreeTypeVariables(), Constraints: annotConstraints, Type: annotTy}
		if !schemesEquivalent(scheme, annotScheme) {
			return env, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrAnnotationMismatch, spanOfDecl(d), annotScheme.Type.String(), scheme.Type.String())
		}
		scheme = annotScheme
	}

	next := env.Child()
	next.Bind(d.Name, scheme)
	return next, nil
}

// elaborateDataDecl registers a `data T a1 … an = K1 t… | K2 t… | …`
// declaration: the type head gains a structural Eq/Ord/Show instance in
// classes, and each constructor Ki gets a polymorphic scheme
// `t… -> T a1 … an` bound into env, quantified over the type's own
// parameters (§3.5 / §4.2).
func elaborateDataDecl(env *typesystem.Env, classes *classenv.Registry, d *ast.DataDecl) *typesystem.Env {
	classes.DeclareDataType(d.TypeName)

	var resultTy typesystem.Type = typesystem.TCon{Name: d.TypeName}
	for _, p := range d.TypeParams {
		resultTy = typesystem.TApp{Fn: resultTy, Arg: typesystem.TVar{Name: p}}
	}

	next := env.Child()
	for _, ctor := range d.Constructors {
		fieldTys := make([]typesystem.Type, len(ctor.Fields))
		for i, f := range ctor.Fields {
			fieldTys[i], _ = elaborateType(f)
		}
		ctorTy := resultTy
		for i := len(fieldTys) - 1; i >= 0; i-- {
			ctorTy = typesystem.TArrow{From: fieldTys[i], To: ctorTy}
		}
		scheme := typesystem.Scheme{Vars: append([]string{}, d.TypeParams...), Type: ctorTy}
		next.Bind(ctor.Name, scheme)
	}

	return next
}

// InferExprScheme infers and generalizes a single free-standing
// expression against env/classes — the same shape as elaborateLetDecl
// but with no self-reference binding (a bare expression cannot recurse
// into its own name) and no signature to check against. Used by the
// driver's `:type`/bare-expression REPL queries, which have no top-level
// binding to attach to.
func InferExprScheme(env *typesystem.Env, classes *classenv.Registry, expr ast.Expression) (typesystem.Scheme, error) {
	c := NewContext(classes)
	ty, s, constraints, err := c.Infer(env, expr)
	if err != nil {
		return typesystem.Scheme{}, err
	}
	reduced, err := c.ReduceConstraints(s, constraints)
	if err != nil {
		return typesystem.Scheme{}, err
	}
	c.ResolveHoles(s, reduced)
	genEnv := typesystem.ApplyToEnv(s, env)
	return Generalize(genEnv, ty.Apply(s), reduced), nil
}

func spanOfDecl(d ast.Decl) diagnostics.Span {
	tok := d.GetToken()
	return diagnostics.Span{Line: tok.Line, Column: tok.Column, Start: tok.Start, End: tok.End}
}
