package typesystem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifySoundness(t *testing.T) {
	a := TArrow{From: TVar{Name: "a"}, To: TCon{Name: "Int"}}
	b := TArrow{From: TCon{Name: "Bool"}, To: TVar{Name: "b"}}

	s, err := Unify(a, b)
	require.NoError(t, err)
	require.Equal(t, a.Apply(s).String(), b.Apply(s).String())
}

func TestUnifyOccursCheck(t *testing.T) {
	v := TVar{Name: "a"}
	listOfA := TList{Elem: v}

	_, err := Unify(v, listOfA)
	require.Error(t, err)
}

func TestUnifyConstantMismatch(t *testing.T) {
	_, err := Unify(TCon{Name: "Int"}, TCon{Name: "Bool"})
	require.Error(t, err)
}

func TestUnifyTuples(t *testing.T) {
	a := TTuple{Elements: []Type{TVar{Name: "a"}, TCon{Name: "Char"}}}
	b := TTuple{Elements: []Type{TCon{Name: "Int"}, TVar{Name: "b"}}}

	s, err := Unify(a, b)
	require.NoError(t, err)
	require.Equal(t, "(Int, Char)", a.Apply(s).String())
}

func TestComposeIsIdempotentOrdering(t *testing.T) {
	s1 := Subst{"a": TCon{Name: "Int"}}
	s2 := Subst{"b": TVar{Name: "a"}}

	composed := s1.Compose(s2)
	require.Equal(t, "Int", TVar{Name: "b"}.Apply(composed).String())
}
