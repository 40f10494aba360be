package evaluator_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/evaluator"
	"github.com/sin4auto/typelang-hm/internal/lexer"
	"github.com/sin4auto/typelang-hm/internal/parser"
)

// evalSrc lexes and parses a single expression and evaluates it against
// env, the way driver.EvalExpr does — kept local rather than importing
// internal/driver so this package's tests exercise Eval directly.
func evalSrc(t *testing.T, env *evaluator.Environment, src string) evaluator.Value {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	v, err := evaluator.Eval(env, expr)
	require.NoError(t, err)
	return v
}

func TestEvalArithmeticUsesArbitraryPrecisionInt(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "2 + 3 * 4")
	iv, ok := v.(*evaluator.IntValue)
	require.True(t, ok)
	require.Equal(t, big.NewInt(14), iv.Value)
}

func TestEvalIfBranchesStrictly(t *testing.T) {
	env := evaluator.PreludeEnv()
	require.Equal(t, "1", evaluator.Show(evalSrc(t, env, "if True then 1 else 0")))
	require.Equal(t, "0", evaluator.Show(evalSrc(t, env, "if False then 1 else 0")))
}

func TestEvalLambdaCurriesPartialApplication(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, `(\x y -> x + y) 1 2`)
	require.Equal(t, "3", evaluator.Show(v))
}

func TestEvalLetSupportsSelfRecursion(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "let count n = if n <= 0 then 0 else 1 + count (n - 1) in count 5")
	require.Equal(t, "5", evaluator.Show(v))
}

func TestEvalConsBuildsListFromPrelude(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "1 : 2 : [3]")
	require.Equal(t, "[1, 2, 3]", evaluator.Show(v))
}

func TestEvalAppendConcatenatesLists(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "[1,2] ++ [3,4]")
	require.Equal(t, "[1, 2, 3, 4]", evaluator.Show(v))
}

func TestEvalCaseMatchesConsPattern(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "case [1,2,3] of { [] -> 0 ; (y : ys) -> y }")
	require.Equal(t, "1", evaluator.Show(v))
}

func TestEvalCaseFallsThroughToEmptyListAlternative(t *testing.T) {
	env := evaluator.PreludeEnv()
	v := evalSrc(t, env, "case [] of { [] -> 1 ; (y : ys) -> 0 }")
	require.Equal(t, "1", evaluator.Show(v))
}

func TestEvalDivModSignConventions(t *testing.T) {
	env := evaluator.PreludeEnv()
	require.Equal(t, "2", evaluator.Show(evalSrc(t, env, "div 7 3")))
	require.Equal(t, "2", evaluator.Show(evalSrc(t, env, "mod (-7) 3")))
	require.Equal(t, "-2", evaluator.Show(evalSrc(t, env, "quot (-7) 3")))
	require.Equal(t, "-1", evaluator.Show(evalSrc(t, env, "rem (-7) 3")))
}

func TestEvalDivideByZeroErrors(t *testing.T) {
	env := evaluator.PreludeEnv()
	toks, err := lexer.Tokenize("div 1 0")
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	_, err = evaluator.Eval(env, expr)
	require.Error(t, err)
}

func TestEnvironmentReserveFillSupportsForwardCapture(t *testing.T) {
	env := evaluator.NewEnvironment()
	child := env.Child()
	child.Reserve("self")
	_, ready := child.Lookup("self")
	require.False(t, ready)
	child.Fill("self", evaluator.NewIntInt64(42))
	v, ready := child.Lookup("self")
	require.True(t, ready)
	require.Equal(t, "42", evaluator.Show(v))
}

func TestShowRendersTuplesCharsAndStrings(t *testing.T) {
	env := evaluator.PreludeEnv()
	require.Equal(t, `(1, 'c')`, evaluator.Show(evalSrc(t, env, "(1, 'c')")))
	require.Equal(t, `"hi"`, evaluator.Show(evalSrc(t, env, `"hi"`)))
}
