// Package classenv is the closed type-class registry (§2 item 5, §4.4's
// "Constraint entailment" paragraph). Unlike the teacher's funxy, which
// lets user code declare new traits and instances, this language has a
// fixed class table (§1 Non-goals: "no user-definable type classes or
// instances"); classenv hardcodes it the same way the teacher expresses
// its own fixed tables as Go literals in internal/config/operators.go,
// rather than as something loaded from a file. The superclass/
// implementation registry shape is grounded on the *structure* of the
// teacher's symbols.SymbolTable trait registries (traitSuperTraits,
// implementations), reduced to a closed set.
package classenv

import (
	"sort"

	"github.com/sin4auto/typelang-hm/internal/diagnostics"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// Class names.
const (
	Eq         = "Eq"
	Ord        = "Ord"
	Show       = "Show"
	Num        = "Num"
	Fractional = "Fractional"
	Integral   = "Integral"
	Functor    = "Functor"
	Foldable   = "Foldable"
)

// superclasses records, for each class, the classes it requires.
var superclasses = map[string][]string{
	Ord:        {Eq},
	Fractional: {Num},
	Integral:   {Num},
}

// groundInstances lists the type-constructor heads with a ground instance
// of each class. List and tuple instances are structural (they hold
// whenever their element types do) and are checked specially in
// hasInstance rather than listed here.
var groundInstances = map[string]map[string]bool{
	Eq:         {"Int": true, "Double": true, "Bool": true, "Char": true},
	Ord:        {"Int": true, "Double": true, "Bool": true, "Char": true},
	Show:       {"Int": true, "Double": true, "Bool": true, "Char": true},
	Num:        {"Int": true, "Double": true},
	Fractional: {"Double": true},
	Integral:   {"Int": true},
	Functor:    {},
	Foldable:   {},
}

// Registry holds the user-defined type heads (adtHeads), populated by the
// analyzer from the program's `data` declarations, and grants Eq/Ord/Show
// to every such head, the way a `deriving`-free language that still
// wants case/show-ability for ADTs typically does. Only the head is
// checked: registry membership alone stops `NoInstance` from firing, and
// the constructors' argument types are not checked against the class.
type Registry struct {
	adtHeads map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{adtHeads: make(map[string]bool)}
}

func (r *Registry) DeclareDataType(name string) {
	r.adtHeads[name] = true
}

// HasInstance reports whether class has a ground instance whose head is
// headName (a TCon name, "[]" for lists, or "(,)" for tuples).
func (r *Registry) HasInstance(class, headName string) bool {
	if groundInstances[class][headName] {
		return true
	}
	if headName == "[]" || headName == "(,)" {
		// List/tuple instances hold structurally; component types are
		// checked by the caller (Entails) against their own element
		// constraints. Functor/Foldable always hold for lists.
		switch class {
		case Eq, Ord, Show, Functor, Foldable:
			return true
		}
		return false
	}
	if r.adtHeads[headName] {
		switch class {
		case Eq, Ord, Show:
			return true
		}
	}
	return false
}

// Superclasses returns the classes that class directly requires.
func Superclasses(class string) []string { return superclasses[class] }

// Entails reduces a residual constraint set against this registry,
// implementing the three-way split from §4.4: constraints on a concrete
// head are discharged (or fail NoInstance), constraints on a bare
// variable are kept (they become part of the caller's generalized
// scheme), and superclass closure is applied (an Ord instance implies Eq).
//
// headOf resolves a constraint's type variable (under the caller's
// current substitution) to its constructor head name; isVar is true when
// the variable is still unresolved (the constraint is then kept,
// unreduced, to become part of the generalized scheme).
func (r *Registry) Entails(constraints []typesystem.Constraint, headOf func(varName string) (headName string, isVar bool)) ([]typesystem.Constraint, error) {
	var residual []typesystem.Constraint
	seen := make(map[typesystem.Constraint]bool)

	for _, c := range constraints {
		if seen[c] {
			continue
		}
		seen[c] = true

		name, isVar := headOf(c.Var)
		if isVar {
			residual = append(residual, c)
			continue
		}
		if !r.HasInstance(c.Class, name) {
			return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrNoInstance, diagnostics.Span{}, c.Class, name)
		}
	}

	residual = dropRedundantSuperclasses(residual)

	sort.Slice(residual, func(i, j int) bool {
		if residual[i].Var != residual[j].Var {
			return residual[i].Var < residual[j].Var
		}
		return residual[i].Class < residual[j].Class
	})
	return residual, nil
}

// dropRedundantSuperclasses removes a constraint `C1 a` when some other
// kept constraint `C2 a` already implies it (e.g. `Ord a` implies `Eq a`,
// `Integral a` implies `Num a`), so a scheme never displays both a class
// and its own superclass for the same variable.
func dropRedundantSuperclasses(cs []typesystem.Constraint) []typesystem.Constraint {
	implied := make(map[typesystem.Constraint]bool)
	for _, c := range cs {
		for _, sup := range transitiveSuperclasses(c.Class) {
			implied[typesystem.Constraint{Class: sup, Var: c.Var}] = true
		}
	}
	out := make([]typesystem.Constraint, 0, len(cs))
	for _, c := range cs {
		if !implied[c] {
			out = append(out, c)
		}
	}
	return out
}

// transitiveSuperclasses returns every class class's own instance
// requires, directly or indirectly (e.g. Integral -> Num).
func transitiveSuperclasses(class string) []string {
	var out []string
	seen := map[string]bool{class: true}
	var walk func(string)
	walk = func(c string) {
		for _, sup := range Superclasses(c) {
			if !seen[sup] {
				seen[sup] = true
				out = append(out, sup)
				walk(sup)
			}
		}
	}
	walk(class)
	return out
}

// Satisfies reports whether Eq/Ord/Show hold for a fully concrete type,
// recursing structurally into list/tuple element types. Neither the
// analyzer nor the evaluator calls it.
func (r *Registry) Satisfies(class string, t typesystem.Type) bool {
	switch tt := t.(type) {
	case typesystem.TCon:
		return r.HasInstance(class, tt.Name)
	case typesystem.TList:
		return r.HasInstance(class, "[]") && r.Satisfies(class, tt.Elem)
	case typesystem.TTuple:
		if !r.HasInstance(class, "(,)") {
			return false
		}
		for _, e := range tt.Elements {
			if !r.Satisfies(class, e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
