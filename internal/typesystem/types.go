// Package typesystem represents monotypes, qualified types, schemes,
// substitutions, and the environment that maps names to schemes. It is
// grounded on the teacher's (funxy) internal/typesystem package — same
// Type interface shape (String/Apply/FreeTypeVariables), same idempotent
// Subst.Compose — trimmed to exactly what Hindley–Milner with a closed
// class system needs: no records, no unions, no higher-kinded partial
// application (those are funxy-specific and have no home in this
// language; see DESIGN.md).
package typesystem

import (
	"fmt"
	"strings"
)

// Type is any monotype: a variable, a constant, an application, a
// function arrow, a tuple, or a list.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []string
}

// TVar is a type variable, identified by a fresh name (e.g. "t3"). The
// display hint (§3.2) is just the name itself here: fresh variables are
// named directly off the inferencer's monotonic counter, so there is no
// separate display-hint field to keep in sync.
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	if repl, ok := s[t.Name]; ok {
		return repl
	}
	return t
}

func (t TVar) FreeTypeVariables() []string { return []string{t.Name} }

// TCon is a type constant or nullary constructor: Int, Double, Bool,
// Char, or a user data type head introduced by `data`.
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Apply(Subst) Type { return t }

func (t TCon) FreeTypeVariables() []string { return nil }

// TApp is type application T1 T2 (e.g. `Maybe a`, curried as needed).
type TApp struct {
	Fn  Type
	Arg Type
}

func (t TApp) String() string {
	return fmt.Sprintf("%s %s", parenIfApp(t.Fn), parenAtom(t.Arg))
}

func (t TApp) Apply(s Subst) Type {
	return TApp{Fn: t.Fn.Apply(s), Arg: t.Arg.Apply(s)}
}

func (t TApp) FreeTypeVariables() []string {
	return uniq(append(t.Fn.FreeTypeVariables(), t.Arg.FreeTypeVariables()...))
}

// TArrow is the function type T1 -> T2, right-associative.
type TArrow struct {
	From Type
	To   Type
}

func (t TArrow) String() string {
	return fmt.Sprintf("%s -> %s", parenIfArrow(t.From), t.To.String())
}

func (t TArrow) Apply(s Subst) Type {
	return TArrow{From: t.From.Apply(s), To: t.To.Apply(s)}
}

func (t TArrow) FreeTypeVariables() []string {
	return uniq(append(t.From.FreeTypeVariables(), t.To.FreeTypeVariables()...))
}

// TTuple is (T1, …, Tn), n >= 2.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TTuple) Apply(s Subst) Type {
	els := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		els[i] = e.Apply(s)
	}
	return TTuple{Elements: els}
}

func (t TTuple) FreeTypeVariables() []string {
	var vars []string
	for _, e := range t.Elements {
		vars = append(vars, e.FreeTypeVariables()...)
	}
	return uniq(vars)
}

// TList is [T].
type TList struct {
	Elem Type
}

func (t TList) String() string { return "[" + t.Elem.String() + "]" }

func (t TList) Apply(s Subst) Type { return TList{Elem: t.Elem.Apply(s)} }

func (t TList) FreeTypeVariables() []string { return t.Elem.FreeTypeVariables() }

func parenAtom(t Type) string {
	switch t.(type) {
	case TApp, TArrow:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

func parenIfApp(t Type) string {
	if _, ok := t.(TArrow); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func parenIfArrow(t Type) string {
	if _, ok := t.(TArrow); ok {
		return "(" + t.String() + ")"
	}
	return t.String()
}

func uniq(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// ---------------------------------------------------------------------
// Substitutions
// ---------------------------------------------------------------------

// Subst maps type variable names to the types they stand for. Kept
// idempotent by construction (§9 "Substitutions"): Compose applies the
// newer substitution to the older one's codomain before folding its own
// bindings in, the same discipline the teacher's Subst.Compose follows.
type Subst map[string]Type

// Compose returns a substitution equivalent to applying s2 first, then
// this one (s1.Compose(s2) applies s1 to s2's codomain, then unions
// keys — same convention as the teacher's typesystem.Subst.Compose).
func (s1 Subst) Compose(s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = v.Apply(s1)
	}
	for k, v := range s1 {
		if _, already := out[k]; !already {
			out[k] = v
		}
	}
	return out
}

// ApplyToEnv is a convenience for applying a substitution to every scheme
// in an environment snapshot (used when computing free variables of the
// environment for generalization).
func ApplyToEnv(s Subst, env *Env) *Env {
	return env.mapSchemes(func(sc Scheme) Scheme { return sc.Apply(s) })
}

// ---------------------------------------------------------------------
// Constraints, qualified types, and schemes
// ---------------------------------------------------------------------

// Constraint is a class membership obligation on a single type variable,
// e.g. (Num, "t3").
type Constraint struct {
	Class string
	Var   string
}

func (c Constraint) String() string { return fmt.Sprintf("%s %s", c.Class, c.Var) }

func (c Constraint) Apply(s Subst) Constraint {
	t, ok := s[c.Var]
	if !ok {
		return c
	}
	if tv, ok := t.(TVar); ok {
		return Constraint{Class: c.Class, Var: tv.Name}
	}
	// The variable was resolved to a concrete type; the constraint is
	// either discharged or a NoInstance error by the caller (classenv),
	// not representable as a Constraint any more. Callers that reach
	// here are expected to have already run entailment.
	return c
}

// Scheme (polytype, §3.2) is a qualified type universally quantified over
// a set of variable names.
type Scheme struct {
	Vars        []string
	Constraints []Constraint
	Type        Type
}

// Apply substitutes free (non-quantified) variables.
func (sc Scheme) Apply(s Subst) Scheme {
	inner := make(Subst, len(s))
	for k, v := range s {
		if !contains(sc.Vars, k) {
			inner[k] = v
		}
	}
	newConstraints := make([]Constraint, len(sc.Constraints))
	for i, c := range sc.Constraints {
		newConstraints[i] = c.Apply(inner)
	}
	return Scheme{Vars: sc.Vars, Constraints: newConstraints, Type: sc.Type.Apply(inner)}
}

// FreeTypeVariables returns the variables free in the qualified type but
// not bound by Vars.
func (sc Scheme) FreeTypeVariables() []string {
	bound := make(map[string]bool, len(sc.Vars))
	for _, v := range sc.Vars {
		bound[v] = true
	}
	var out []string
	for _, v := range sc.Type.FreeTypeVariables() {
		if !bound[v] {
			out = append(out, v)
		}
	}
	return uniq(out)
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

// Mono wraps a monotype with no quantifiers and no constraints — the
// scheme of a lambda-bound or pattern-bound variable.
func Mono(t Type) Scheme { return Scheme{Type: t} }
