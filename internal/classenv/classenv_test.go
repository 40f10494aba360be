package classenv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/classenv"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

func headOfConcrete(name string) func(string) (string, bool) {
	return func(string) (string, bool) { return name, false }
}

func TestHasInstanceGroundTypes(t *testing.T) {
	r := classenv.NewRegistry()
	require.True(t, r.HasInstance(classenv.Num, "Int"))
	require.True(t, r.HasInstance(classenv.Num, "Double"))
	require.False(t, r.HasInstance(classenv.Num, "Bool"))
	require.True(t, r.HasInstance(classenv.Fractional, "Double"))
	require.False(t, r.HasInstance(classenv.Fractional, "Int"))
	require.True(t, r.HasInstance(classenv.Integral, "Int"))
}

func TestHasInstanceListsAndTuplesAreStructural(t *testing.T) {
	r := classenv.NewRegistry()
	require.True(t, r.HasInstance(classenv.Eq, "[]"))
	require.True(t, r.HasInstance(classenv.Show, "[]"))
	require.True(t, r.HasInstance(classenv.Functor, "[]"))
	require.False(t, r.HasInstance(classenv.Num, "[]"))
	require.True(t, r.HasInstance(classenv.Eq, "(,)"))
	require.False(t, r.HasInstance(classenv.Num, "(,)"))
}

func TestHasInstanceADTGetsEqOrdShowNotNum(t *testing.T) {
	r := classenv.NewRegistry()
	r.DeclareDataType("Maybe")
	require.True(t, r.HasInstance(classenv.Eq, "Maybe"))
	require.True(t, r.HasInstance(classenv.Ord, "Maybe"))
	require.True(t, r.HasInstance(classenv.Show, "Maybe"))
	require.False(t, r.HasInstance(classenv.Num, "Maybe"))
	require.False(t, r.HasInstance(classenv.Eq, "Unknown"))
}

func TestSatisfiesRecursesIntoListsAndTuples(t *testing.T) {
	r := classenv.NewRegistry()
	require.True(t, r.Satisfies(classenv.Eq, typesystem.TList{Elem: typesystem.TCon{Name: "Int"}}))
	require.False(t, r.Satisfies(classenv.Eq, typesystem.TList{Elem: typesystem.TVar{Name: "a"}}))
	require.True(t, r.Satisfies(classenv.Ord, typesystem.TTuple{Elements: []typesystem.Type{
		typesystem.TCon{Name: "Int"}, typesystem.TCon{Name: "Char"},
	}}))
	require.False(t, r.Satisfies(classenv.Num, typesystem.TTuple{Elements: []typesystem.Type{
		typesystem.TCon{Name: "Int"}, typesystem.TCon{Name: "Int"},
	}}))
}

func TestEntailsDischargesOnConcreteHead(t *testing.T) {
	r := classenv.NewRegistry()
	residual, err := r.Entails(
		[]typesystem.Constraint{{Class: classenv.Num, Var: "a"}},
		headOfConcrete("Int"),
	)
	require.NoError(t, err)
	require.Empty(t, residual)
}

func TestEntailsFailsNoInstance(t *testing.T) {
	r := classenv.NewRegistry()
	_, err := r.Entails(
		[]typesystem.Constraint{{Class: classenv.Num, Var: "a"}},
		headOfConcrete("Bool"),
	)
	require.Error(t, err)
}

func TestEntailsKeepsConstraintsOnBareVariables(t *testing.T) {
	r := classenv.NewRegistry()
	residual, err := r.Entails(
		[]typesystem.Constraint{{Class: classenv.Fractional, Var: "a"}},
		func(string) (string, bool) { return "", true },
	)
	require.NoError(t, err)
	require.Equal(t, []typesystem.Constraint{{Class: classenv.Fractional, Var: "a"}}, residual)
}

// Entails must drop a constraint subsumed by another class's superclass
// closure for the same variable: `Ord a` already implies `Eq a`, so a
// residual set containing both collapses to just `Ord a`.
func TestEntailsDropsRedundantSuperclassConstraint(t *testing.T) {
	r := classenv.NewRegistry()
	residual, err := r.Entails(
		[]typesystem.Constraint{
			{Class: classenv.Eq, Var: "a"},
			{Class: classenv.Ord, Var: "a"},
		},
		func(string) (string, bool) { return "", true },
	)
	require.NoError(t, err)
	require.Equal(t, []typesystem.Constraint{{Class: classenv.Ord, Var: "a"}}, residual)
}

func TestEntailsUnrelatedConstraintsOnSameVarBothSurvive(t *testing.T) {
	r := classenv.NewRegistry()
	residual, err := r.Entails(
		[]typesystem.Constraint{
			{Class: classenv.Show, Var: "a"},
			{Class: classenv.Num, Var: "a"},
		},
		func(string) (string, bool) { return "", true },
	)
	require.NoError(t, err)
	require.Len(t, residual, 2)
}
