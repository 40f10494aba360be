package driver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sin4auto/typelang-hm/internal/driver"
)

// typeOf is a small helper: run a bare expression through the session's
// bare-expression query (EvalQuery, which infers and then evaluates) and
// display its scheme with whatever defaulting setting the session has.
func typeOf(t *testing.T, sess *driver.Session, src string) string {
	t.Helper()
	scheme, _, err := sess.EvalQuery(src)
	require.NoError(t, err)
	return driver.ShowScheme(scheme, sess.Defaulting)
}

func valueOf(t *testing.T, sess *driver.Session, src string) string {
	t.Helper()
	_, v, err := sess.EvalQuery(src)
	require.NoError(t, err)
	return driver.ShowValue(v)
}

// §8 scenario 1: `\x -> x ** 2` defaults to `Double -> Double`, and with
// defaulting off shows the residual Fractional constraint.
func TestScenarioPowerDefaulting(t *testing.T) {
	sess := driver.NewSession()
	sess.Defaulting = true
	require.Equal(t, "Double -> Double", typeOf(t, sess, `\x -> x ** 2`))

	sess.Defaulting = false
	require.Equal(t, "Fractional a => a -> a", typeOf(t, sess, `\x -> x ** 2`))
}

// §8 scenario 2: factorial, `fact 5 = 120`, scheme `Num a => a -> a`.
func TestScenarioFactorial(t *testing.T) {
	sess := driver.NewSession()
	err := sess.LoadText("let fact n = if n <= 1 then 1 else n * fact (n - 1)")
	require.NoError(t, err)

	sess.Defaulting = false
	sc, ok := sess.TypeEnv.Lookup("fact")
	require.True(t, ok)
	require.Equal(t, "Num a => a -> a", driver.ShowScheme(sc, false))

	require.Equal(t, "120", valueOf(t, sess, "fact 5"))
}

// §8 scenario 3: div/mod/quot/rem sign conventions.
func TestScenarioIntegerDivision(t *testing.T) {
	sess := driver.NewSession()
	require.Equal(t, "2", valueOf(t, sess, "div 7 3"))
	require.Equal(t, "1", valueOf(t, sess, "mod 7 3"))
	require.Equal(t, "2", valueOf(t, sess, "mod (-7) 3"))
	require.Equal(t, "-2", valueOf(t, sess, "quot (-7) 3"))
	require.Equal(t, "-1", valueOf(t, sess, "rem (-7) 3"))
}

// §8 scenario 4: `^` vs `**`.
func TestScenarioExponents(t *testing.T) {
	sess := driver.NewSession()
	require.Equal(t, "1024", valueOf(t, sess, "2 ^ 10"))
	require.Equal(t, "0.5", valueOf(t, sess, "2 ^ (-1)"))
	require.Equal(t, "1.4142135623730951", valueOf(t, sess, "2 ** 0.5"))
}

// §8 scenario 5: ADTs and case.
func TestScenarioMaybeCase(t *testing.T) {
	sess := driver.NewSession()
	err := sess.LoadText("data Maybe a = Nothing | Just a")
	require.NoError(t, err)

	require.Equal(t, "4", valueOf(t, sess, "case Just 3 of { Nothing -> 0 ; Just x -> x + 1 }"))
	require.Equal(t, "0", valueOf(t, sess, "case Nothing of { Nothing -> 0 ; Just x -> x + 1 }"))
}

// §8 scenario 6: map/foldl/foldr over lists, loaded from a file-shaped
// multi-declaration program, per §6's "load file" contract.
func TestScenarioListPrelude(t *testing.T) {
	sess := driver.NewSession()
	err := sess.LoadText(`
let map f xs = case xs of { [] -> [] ; (y : ys) -> f y : map f ys }
let foldl f z xs = case xs of { [] -> z ; (y : ys) -> foldl f (f z y) ys }
let foldr f z xs = case xs of { [] -> z ; (y : ys) -> f y (foldr f z ys) }
`)
	require.NoError(t, err)

	require.Equal(t, "[2, 3, 4]", valueOf(t, sess, "map (\\x -> x + 1) [1,2,3]"))
	require.Equal(t, "10", valueOf(t, sess, "foldl (\\a x -> a + x) 0 [1,2,3,4]"))
	require.Equal(t, "[1, 2, 3]", valueOf(t, sess, "foldr (\\x a -> x : a) [] [1,2,3]"))
}

// §8's occurs-check property: `\x -> x x` fails with OccursCheck.
func TestScenarioOccursCheckSelfApplication(t *testing.T) {
	sess := driver.NewSession()
	_, _, err := sess.EvalQuery(`\x -> x x`)
	require.Error(t, err)
}

// §8's generalization-correctness property.
func TestScenarioLetGeneralizationVsLambda(t *testing.T) {
	sess := driver.NewSession()
	_, v, err := sess.EvalQuery(`let id = \x -> x in (id 1, id 'c')`)
	require.NoError(t, err)
	require.Equal(t, "(1, 'c')", driver.ShowValue(v))

	_, _, err = sess.EvalQuery(`(\id -> (id 1, id 'c')) (\x -> x)`)
	require.Error(t, err)
}

// §4.6/§4.7: a case with no matching alternative raises
// NonExhaustiveCase at evaluation time, not at inference time.
func TestNonExhaustiveCaseAtRuntime(t *testing.T) {
	sess := driver.NewSession()
	err := sess.LoadText("data Maybe a = Nothing | Just a")
	require.NoError(t, err)

	_, _, err = sess.EvalQuery("case Nothing of { Just x -> x }")
	require.Error(t, err)
}

// §4.6: division by zero on Int raises DivideByZero.
func TestDivideByZero(t *testing.T) {
	sess := driver.NewSession()
	_, _, err := sess.EvalQuery("div 1 0")
	require.Error(t, err)
}

// §4.7 guarantee (1): a failed inference leaves the type environment
// unchanged.
func TestFailedLoadLeavesEnvironmentUnchanged(t *testing.T) {
	sess := driver.NewSession()
	err := sess.LoadText("let good x = x + 1")
	require.NoError(t, err)
	_, hadGood := sess.TypeEnv.Lookup("good")
	require.True(t, hadGood)

	err = sess.LoadText("let bad = 1 + True")
	require.Error(t, err)

	_, stillHasGood := sess.TypeEnv.Lookup("good")
	require.True(t, stillHasGood)
	_, hasBad := sess.TypeEnv.Lookup("bad")
	require.False(t, hasBad)
}

// §4.7: forcing a hole raises UserHole carrying its resolved type.
func TestHoleRaisesUserHole(t *testing.T) {
	sess := driver.NewSession()
	_, _, err := sess.EvalQuery("?todo + 1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Num a => a")
}

// §9: `:type` infers without evaluating, so a hole's residual type is
// displayed instead of always raising UserHole the way running the
// expression would.
func TestTypeQueryOnHoleShowsResidualTypeWithoutRaising(t *testing.T) {
	sess := driver.NewSession()
	sc, err := sess.TypeQuery("?todo + 1")
	require.NoError(t, err)
	require.Equal(t, "Integer", driver.ShowScheme(sc, sess.Defaulting))
}

// §3.6/§9: strings behave observably as lists of Char.
func TestStringIsListOfChar(t *testing.T) {
	sess := driver.NewSession()
	require.Equal(t, `"ab"`, valueOf(t, sess, `"a" ++ "b"`))
}
