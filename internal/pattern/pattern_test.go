package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/pattern"
	"github.com/sin4auto/typelang-hm/internal/token"
)

func pvar(name string) *ast.PVar {
	return &ast.PVar{Token: token.Token{Type: token.IDENT, Lexeme: name}, Name: name}
}

func TestVariablesCollectsInOrder(t *testing.T) {
	p := &ast.PTuple{Elements: []ast.Pattern{
		pvar("x"),
		&ast.PCon{Token: token.Token{Type: token.CONIDENT}, Name: "Just", Args: []ast.Pattern{pvar("y")}},
	}}
	require.Equal(t, []string{"x", "y"}, pattern.Variables(p))
}

func TestVariablesIncludesAsPatternBinder(t *testing.T) {
	p := &ast.PAs{Token: token.Token{Type: token.IDENT}, Name: "whole", Pattern: pvar("x")}
	require.Equal(t, []string{"whole", "x"}, pattern.Variables(p))
}

func TestVariablesIgnoresWildcardAndLiteral(t *testing.T) {
	p := &ast.PList{Elements: []ast.Pattern{
		&ast.PWildcard{},
		ast.PInt(token.Token{Type: token.INT}, nil),
	}}
	require.Empty(t, pattern.Variables(p))
}

// A cons pattern `(y : ys)` is represented as PCon{Name: ":"}, so its
// binders are already collected by the generic PCon case.
func TestVariablesCollectsConsPatternBinders(t *testing.T) {
	p := &ast.PCon{Token: token.Token{Type: token.COLON}, Name: ":", Args: []ast.Pattern{pvar("y"), pvar("ys")}}
	require.Equal(t, []string{"y", "ys"}, pattern.Variables(p))
}

func TestCheckNoDuplicateBindersAcceptsDistinctNames(t *testing.T) {
	p := &ast.PTuple{Elements: []ast.Pattern{pvar("x"), pvar("y")}}
	require.NoError(t, pattern.CheckNoDuplicateBinders(p))
}

func TestCheckNoDuplicateBindersRejectsRepeatedName(t *testing.T) {
	p := &ast.PTuple{Elements: []ast.Pattern{pvar("x"), pvar("x")}}
	require.Error(t, pattern.CheckNoDuplicateBinders(p))
}

func TestCheckNoDuplicateBindersRejectsAsShadowingInner(t *testing.T) {
	p := &ast.PAs{Name: "x", Pattern: pvar("x")}
	require.Error(t, pattern.CheckNoDuplicateBinders(p))
}

func TestCheckNoDuplicateBindersRejectsRepeatedNameInConsPattern(t *testing.T) {
	p := &ast.PCon{Name: ":", Args: []ast.Pattern{pvar("x"), pvar("x")}}
	require.Error(t, pattern.CheckNoDuplicateBinders(p))
}
