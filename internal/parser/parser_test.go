package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/lexer"
)

func parseExprString(t *testing.T, src string) ast.Expression {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	p := New(toks)
	e, err := p.ParseExpression()
	require.NoError(t, err)
	return e
}

// showInfix renders just enough structure to assert precedence/assoc
// shape without a full evaluator.
func showInfix(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.App:
		if v, ok := n.Fn.(*ast.Var); ok && len(n.Args) == 2 {
			return "(" + showInfix(n.Args[0]) + v.Name + showInfix(n.Args[1]) + ")"
		}
		s := showInfix(n.Fn)
		for _, a := range n.Args {
			s += " " + showInfix(a)
		}
		return s
	case *ast.Var:
		return n.Name
	case *ast.IntLit:
		return n.Value.String()
	default:
		return "?"
	}
}

func TestParserPrecedenceAddMulPow(t *testing.T) {
	e := parseExprString(t, "a + b * c ^ d")
	require.Equal(t, "(a+(b*(c^d)))", showInfix(e))
}

func TestParserSubtractIsLeftAssociative(t *testing.T) {
	e := parseExprString(t, "a - b - c")
	require.Equal(t, "((a-b)-c)", showInfix(e))
}

func TestParserApplicationIsLeftAssociative(t *testing.T) {
	e := parseExprString(t, "f g h x")
	require.Equal(t, "f g h x", showInfix(e))
	app, ok := e.(*ast.App)
	require.True(t, ok)
	require.Len(t, app.Args, 3)
}

func TestParserPowerIsRightAssociative(t *testing.T) {
	e := parseExprString(t, "a ^ b ^ c")
	require.Equal(t, "(a^(b^c))", showInfix(e))
}

func TestParserLambdaMultipleParams(t *testing.T) {
	e := parseExprString(t, `\x y -> x + y`)
	lam, ok := e.(*ast.Lambda)
	require.True(t, ok)
	require.Equal(t, []string{"x", "y"}, lam.Params)
}

func TestParserLetRecursiveByUsage(t *testing.T) {
	e := parseExprString(t, "let fact n = if n == 0 then 1 else n * fact (n - 1) in fact 5")
	let, ok := e.(*ast.Let)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	require.Equal(t, "fact", let.Bindings[0].Name)
}

func TestParserLetPatternDestructuring(t *testing.T) {
	e := parseExprString(t, "let (a, b) = pair in a")
	let, ok := e.(*ast.Let)
	require.True(t, ok)
	_, isTuple := let.Bindings[0].Pattern.(*ast.PTuple)
	require.True(t, isTuple)
}

func TestParserCaseRequiresAlternative(t *testing.T) {
	_, err := (func() (ast.Expression, error) {
		toks, err := lexer.Tokenize("case x of { }")
		require.NoError(t, err)
		return New(toks).ParseExpression()
	})()
	require.Error(t, err)
}

func TestParserCaseWithConstructorPatterns(t *testing.T) {
	e := parseExprString(t, "case m of { Nothing -> 0 ; Just x -> x }")
	c, ok := e.(*ast.Case)
	require.True(t, ok)
	require.Len(t, c.Alts, 2)
	pcon, ok := c.Alts[1].Pattern.(*ast.PCon)
	require.True(t, ok)
	require.Equal(t, "Just", pcon.Name)
}

func TestParserAnnotation(t *testing.T) {
	e := parseExprString(t, "1 :: Int")
	annot, ok := e.(*ast.Annot)
	require.True(t, ok)
	tc, ok := annot.Type.(*ast.TypeCon)
	require.True(t, ok)
	require.Equal(t, "Int", tc.Name)
}

func TestParserQualifiedTypeSignature(t *testing.T) {
	toks, err := lexer.Tokenize("eq :: Eq a => a -> a -> Bool\nlet eq x y = x == y")
	require.NoError(t, err)
	p := New(toks)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, prog.Decls, 2)
	sig, ok := prog.Decls[0].(*ast.Signature)
	require.True(t, ok)
	qt, ok := sig.Type.(*ast.QualifiedType)
	require.True(t, ok)
	require.Len(t, qt.Constraints, 1)
	require.Equal(t, "Eq", qt.Constraints[0].Class)
}

func TestParserTopLevelDataDecl(t *testing.T) {
	toks, err := lexer.Tokenize("data Maybe a = Nothing | Just a")
	require.NoError(t, err)
	prog, err := New(toks).ParseProgram()
	require.NoError(t, err)
	require.Len(t, prog.Decls, 1)
	dd, ok := prog.Decls[0].(*ast.DataDecl)
	require.True(t, ok)
	require.Equal(t, "Maybe", dd.TypeName)
	require.Len(t, dd.Constructors, 2)
	require.Equal(t, "Just", dd.Constructors[1].Name)
}
