package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/analyzer"
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/classenv"
	"github.com/sin4auto/typelang-hm/internal/lexer"
	"github.com/sin4auto/typelang-hm/internal/parser"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

func inferExpr(t *testing.T, env *typesystem.Env, classes *classenv.Registry, src string) typesystem.Scheme {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	sc, err := analyzer.InferExprScheme(env, classes, expr)
	require.NoError(t, err)
	return sc
}

func showScheme(sc typesystem.Scheme, defaulting bool) string {
	if defaulting {
		sc = analyzer.DefaultScheme(sc)
	}
	return analyzer.FormatScheme(sc)
}

func TestInferLiteralsGetExpectedGroundTypes(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	require.Equal(t, "Double", showScheme(inferExpr(t, env, classes, "3.14"), true))
	require.Equal(t, "Bool", showScheme(inferExpr(t, env, classes, "True"), true))
	require.Equal(t, "Char", showScheme(inferExpr(t, env, classes, "'x'"), true))
	require.Equal(t, "[Char]", showScheme(inferExpr(t, env, classes, `"hi"`), true))
}

func TestInferIntLiteralDefaultsToInteger(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	require.Equal(t, "Integer", showScheme(inferExpr(t, env, classes, "5"), true))
}

func TestInferLetGeneralizesLambdaBinding(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, `let id = \x -> x in id`)
	require.Len(t, sc.Vars, 1)
}

func TestInferConsOperatorScheme(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, `\x xs -> x : xs`)
	require.Equal(t, "a -> [a] -> [a]", showScheme(sc, false))
}

func TestInferAppendOperatorScheme(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, `\xs ys -> xs ++ ys`)
	require.Equal(t, "[a] -> [a] -> [a]", showScheme(sc, false))
}

func TestInferConsExpressionBuildsListType(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, "1 : [2, 3]")
	require.Equal(t, "[Integer]", showScheme(sc, true))
}

// A parameterized nested let-binding must keep its Num constraint when
// generalized, not just a bare-TVar binding — `sq x = x * x` resolves to
// a TArrow, and that arrow's own free variable still carries `Num a`.
func TestInferNestedLetGeneralizesParameterizedBindingWithConstraint(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, `let sq x = x * x in sq`)
	require.Equal(t, "Num a => a -> a", showScheme(sc, false))
}

// Without the fix, `sq` generalized as unconstrained `a -> a`, so
// `sq True` wrongly typechecked.
func TestInferNestedLetRejectsNonNumArgumentToParameterizedBinding(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	toks, err := lexer.Tokenize(`let sq x = x * x in sq True`)
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	_, err = analyzer.InferExprScheme(env, classes, expr)
	require.Error(t, err)
}

func TestOccursCheckRejectsSelfApplication(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	toks, err := lexer.Tokenize(`\x -> x x`)
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	_, err = analyzer.InferExprScheme(env, classes, expr)
	require.Error(t, err)
}

func TestElaborateProgramRegistersDataConstructorsAndCaseOverThem(t *testing.T) {
	toks, err := lexer.Tokenize("data Maybe a = Nothing | Just a")
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)

	classes := classenv.NewRegistry()
	env, err := analyzer.ElaborateProgram(prog, analyzer.PreludeEnv(), classes)
	require.NoError(t, err)

	sc, ok := env.Lookup("Just")
	require.True(t, ok)
	require.Equal(t, "a -> Maybe a", sc.Type.String())

	caseSc := inferExpr(t, env, classes, "case Just 3 of { Nothing -> 0 ; Just x -> x }")
	require.Equal(t, "Integer", showScheme(caseSc, true))
}

func TestElaborateProgramStopsOnFirstFailingDeclaration(t *testing.T) {
	toks, err := lexer.Tokenize("let good x = x + 1\nlet bad = 1 + True")
	require.NoError(t, err)
	prog, err := parser.New(toks).ParseProgram()
	require.NoError(t, err)

	env, err := analyzer.ElaborateProgram(prog, analyzer.PreludeEnv(), classenv.NewRegistry())
	require.Error(t, err)
	_, hasGood := env.Lookup("good")
	require.True(t, hasGood)
	_, hasBad := env.Lookup("bad")
	require.False(t, hasBad)
}

// A hole's AST node gets its resolved display type filled in as a side
// effect of inference, for evaluation's UserHole error to report.
func TestInferHoleAnnotatesNodeWithResolvedType(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	toks, err := lexer.Tokenize(`?todo + 1`)
	require.NoError(t, err)
	expr, err := parser.New(toks).ParseExpression()
	require.NoError(t, err)
	_, err = analyzer.InferExprScheme(env, classes, expr)
	require.NoError(t, err)

	app, ok := expr.(*ast.App)
	require.True(t, ok)
	hole, ok := app.Args[0].(*ast.Hole)
	require.True(t, ok)
	require.Equal(t, "Num a => a", hole.Type)
}

func TestDefaultSchemeFractionalPicksDouble(t *testing.T) {
	env, classes := analyzer.PreludeEnv(), classenv.NewRegistry()
	sc := inferExpr(t, env, classes, `\x -> x ** 2`)
	require.Equal(t, "Double -> Double", showScheme(sc, true))
	require.Equal(t, "Fractional a => a -> a", showScheme(sc, false))
}
