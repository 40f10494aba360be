// Package analyzer implements Algorithm W with constraint collection —
// §4.4. Grounded on the teacher's analyzer.InferenceContext: a fresh-id
// counter plus a big per-node-kind dispatch, split across files the same
// way the teacher splits inference_literals.go / inference_ops.go /
// inference_calls.go / inference_control.go / inference_decl.go. Unlike
// the teacher (which threads a TypeMap keyed by AST node so later passes
// can recover every subexpression's type), this inferencer returns a
// type/substitution/constraint triple directly from each call — the one
// node kind that does get annotated in place is Hole, whose display type
// evaluation needs (see Context.ResolveHoles).
package analyzer

import (
	"fmt"
	"strings"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/classenv"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// Context carries the inferencer's mutable state: the monotonically
// increasing fresh-variable counter and the class registry constraints
// are checked against. There is no accumulating substitution field here
// (unlike the teacher) — each infer call returns its own substitution and
// the caller composes explicitly, which keeps every function's threading
// visible at the call site instead of hidden in shared state. The one
// exception is holes: a Hole's display type is only knowable once the
// top-level substitution is fully composed, so the context records each
// occurrence as it's inferred and resolves them all in ResolveHoles once
// its caller reaches that point.
type Context struct {
	fresh   int
	Classes *classenv.Registry
	holes   []holeOccurrence
}

type holeOccurrence struct {
	node *ast.Hole
	v    typesystem.TVar
}

// NewContext creates an inference context over classes, which should
// already have every program `data` declaration registered via
// DeclareDataType before inference of any expression that uses it.
func NewContext(classes *classenv.Registry) *Context {
	return &Context{Classes: classes}
}

// FreshVar allocates a new type variable guaranteed distinct from every
// other variable this context has produced.
func (c *Context) FreshVar() typesystem.TVar {
	c.fresh++
	return typesystem.TVar{Name: fmt.Sprintf("t%d", c.fresh)}
}

// recordHole remembers that h was given the fresh variable v, so its
// final type can be filled in once the caller's substitution is final.
func (c *Context) recordHole(h *ast.Hole, v typesystem.TVar) {
	c.holes = append(c.holes, holeOccurrence{node: h, v: v})
}

// ResolveHoles fills in the display Type of every hole this context
// inferred, using the top-level substitution s and the final reduced
// constraint set — the same inputs a caller already has in hand once
// its own Infer call returns. Must run before any evaluation of the
// expression that contains these holes, so UserHole can report a real
// type instead of a placeholder. This always shows the residual,
// un-defaulted scheme (e.g. "Num a => a" rather than "Integer") —
// evaluator.Eval has no access to a session's defaulting toggle, so a
// hole's error is the one display that can't honor it; showing the
// true residual constraints instead of silently guessing a default
// keeps it accurate regardless of that toggle's state.
func (c *Context) ResolveHoles(s typesystem.Subst, constraints []typesystem.Constraint) {
	for _, h := range c.holes {
		t := h.v.Apply(s)
		sc := typesystem.Scheme{
			Vars:        t.FreeTypeVariables(),
			Constraints: constraintsForVar(constraints, t),
			Type:        t,
		}
		h.node.Type = FormatScheme(sc)
	}
}

// FormatScheme renders a scheme as `C a => type`, `(C1 a, C2 a) => type`
// or `type` — the
// shared formatting driver.ShowScheme also uses (after its own,
// optional defaulting pass), so there is exactly one place this shape
// is produced. Variables are canonicalized to `a, b, c, ...` first
// (`canonicalizeScheme`), so a displayed scheme never leaks an internal
// gensym name like `t7`.
func FormatScheme(sc typesystem.Scheme) string {
	sc = canonicalizeScheme(sc)
	if len(sc.Constraints) == 0 {
		return sc.Type.String()
	}
	parts := make([]string, len(sc.Constraints))
	for i, ct := range sc.Constraints {
		parts[i] = ct.String()
	}
	head := parts[0]
	if len(parts) > 1 {
		head = "(" + strings.Join(parts, ", ") + ")"
	}
	return head + " => " + sc.Type.String()
}

// Instantiate replaces a scheme's quantified variables with fresh ones
// throughout both its type and its constraints — §4.4 "var: ... instantiate
// with fresh variables; attach the scheme's constraints ... to the
// running constraint set."
func (c *Context) Instantiate(sc typesystem.Scheme) (typesystem.Type, []typesystem.Constraint) {
	s := make(typesystem.Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		s[v] = c.FreshVar()
	}
	constraints := make([]typesystem.Constraint, len(sc.Constraints))
	for i, ct := range sc.Constraints {
		constraints[i] = ct.Apply(s)
	}
	return sc.Type.Apply(s), constraints
}

// Generalize quantifies every variable free in t and its constraints but
// not free in env, producing a scheme — §3.2's generalization rule. t and
// constraints must already have the caller's accumulated substitution
// applied.
func Generalize(env *typesystem.Env, t typesystem.Type, constraints []typesystem.Constraint) typesystem.Scheme {
	envFree := make(map[string]bool)
	for _, v := range env.FreeTypeVariables() {
		envFree[v] = true
	}
	var quant []string
	seen := make(map[string]bool)
	for _, v := range t.FreeTypeVariables() {
		if !envFree[v] && !seen[v] {
			seen[v] = true
			quant = append(quant, v)
		}
	}
	for _, c := range constraints {
		if !envFree[c.Var] && !seen[c.Var] {
			seen[c.Var] = true
			quant = append(quant, c.Var)
		}
	}
	return typesystem.Scheme{Vars: quant, Constraints: constraints, Type: t}
}

// constraintHead resolves a constraint's variable to its substituted
// type, reporting the head name classenv.Entails needs: a TCon name, "[]"
// for a list, "(,)" for a tuple, or isVar=true when it is still a bare
// variable.
func constraintHead(s typesystem.Subst, varName string) (headName string, isVar bool) {
	t := typesystem.TVar{Name: varName}.Apply(s)
	switch tt := t.(type) {
	case typesystem.TVar:
		return "", true
	case typesystem.TCon:
		return tt.Name, false
	case typesystem.TList:
		return "[]", false
	case typesystem.TTuple:
		return "(,)", false
	default:
		return "", true
	}
}

// ReduceConstraints resolves each constraint's variable under s (so a
// constraint on a var that substitution has since pinned to a sibling var
// tracks that sibling) and runs entailment, per §4.4's "Constraint
// entailment" paragraph.
func (c *Context) ReduceConstraints(s typesystem.Subst, constraints []typesystem.Constraint) ([]typesystem.Constraint, error) {
	applied := make([]typesystem.Constraint, len(constraints))
	for i, ct := range constraints {
		v := ct.Var
		if tv, ok := (typesystem.TVar{Name: v}).Apply(s).(typesystem.TVar); ok {
			v = tv.Name
		}
		applied[i] = typesystem.Constraint{Class: ct.Class, Var: v}
	}
	return c.Classes.Entails(applied, func(varName string) (string, bool) {
		return constraintHead(s, varName)
	})
}
