// Package driver wires lexer, parser, analyzer, and evaluator into the
// five functions §6 specifies the interactive front-end consumes
// (ParseModule, InferModule, EvalExpr, ShowScheme, ShowValue), plus the
// thin Session state a REPL needs on top of them. Grounded on the
// teacher's cmd/funxy/main.go, which performs exactly this wiring
// inline for its own CLI — this package promotes that wiring into a
// reusable, test-friendly unit so both cmd/tlrepl and package tests
// call one pipeline instead of duplicating it.
package driver

import (
	"fmt"

	"github.com/sin4auto/typelang-hm/internal/analyzer"
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/classenv"
	"github.com/sin4auto/typelang-hm/internal/evaluator"
	"github.com/sin4auto/typelang-hm/internal/lexer"
	"github.com/sin4auto/typelang-hm/internal/parser"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// ParseModule lexes and parses text into a Program (§6's `parseModule`).
func ParseModule(text string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	p := parser.New(toks)
	return p.ParseProgram()
}

// ParseExpr lexes and parses a single free-standing expression, for the
// REPL's `:type EXPR`/bare-expression queries, which have no top-level
// binding to parse as a declaration.
func ParseExpr(text string) (ast.Expression, error) {
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return parser.New(toks).ParseExpression()
}

// InferModule elaborates prog's declarations against typeEnv, returning
// the extended type environment (§6's `inferModule`). classes is shared
// across every call in a Session so `data` declarations accumulate.
func InferModule(prog *ast.Program, typeEnv *typesystem.Env, classes *classenv.Registry) (*typesystem.Env, error) {
	return analyzer.ElaborateProgram(prog, typeEnv, classes)
}

// EvalExpr evaluates a single expression under valueEnv (§6's
// `evalExpr`). Callers must run inference over the same expr value
// first — analyzer.InferExprScheme/InferModule fill in each Hole node's
// display type in place as a side effect of inference, and EvalExpr's
// UserHole error depends on that having already happened (see
// DESIGN.md).
func EvalExpr(valueEnv *evaluator.Environment, expr ast.Expression) (evaluator.Value, error) {
	return evaluator.Eval(valueEnv, expr)
}

// ShowScheme renders a scheme for display (§6's `showScheme`), applying
// §4.4's display-only numeric defaulting when withDefaulting is set.
func ShowScheme(sc typesystem.Scheme, withDefaulting bool) string {
	if withDefaulting {
		sc = analyzer.DefaultScheme(sc)
	}
	return analyzer.FormatScheme(sc)
}

// ShowValue renders a value for display (§6's `showValue`).
func ShowValue(v evaluator.Value) string {
	return evaluator.Show(v)
}

// Session is the mutable state a REPL needs across commands: the
// current type and value environments (extended as declarations load),
// the shared class registry, the last-loaded file path (for `:reload`),
// and the display-defaulting toggle (§4.4/§6). Grounded on the shape of
// the teacher's own per-module environment pairing in cmd/funxy/main.go,
// generalized from "one module's env" to "one REPL session's env".
type Session struct {
	TypeEnv    *typesystem.Env
	ValueEnv   *evaluator.Environment
	Classes    *classenv.Registry
	LastFile   string
	Defaulting bool
}

// NewSession builds a Session with the prelude already bound into both
// environments — the value-level and type-level counterparts agree on
// every name a program can reference before its own declarations run.
func NewSession() *Session {
	return &Session{
		TypeEnv:    analyzer.PreludeEnv(),
		ValueEnv:   evaluator.PreludeEnv(),
		Classes:    classenv.NewRegistry(),
		Defaulting: true,
	}
}

// LoadText parses and elaborates text, extending the session's type
// environment first and, only if that succeeds, evaluating each
// declaration's value into the value environment in source order (§6's
// "on the first error, loading halts and the partial environment is
// discarded" file-load rule: the type environment is never updated past
// the first failing declaration, and no value is evaluated until the
// whole file has typechecked).
func (s *Session) LoadText(text string) error {
	prog, err := ParseModule(text)
	if err != nil {
		return err
	}
	newTypeEnv, err := InferModule(prog, s.TypeEnv, s.Classes)
	if err != nil {
		return err
	}
	newValueEnv, err := evalDecls(prog, s.ValueEnv)
	if err != nil {
		return err
	}
	s.TypeEnv = newTypeEnv
	s.ValueEnv = newValueEnv
	return nil
}

// evalDecls runs a program's LetDecl/DataDecl sequence against a value
// environment, in source order, per §5's "evaluation order of top-level
// definitions is source order" rule. Signatures carry no runtime value
// and are skipped.
func evalDecls(prog *ast.Program, env *evaluator.Environment) (*evaluator.Environment, error) {
	cur := env
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.LetDecl:
			next := cur.Child()
			next.Reserve(d.Name)
			value := d.Value
			if len(d.Params) > 0 {
				value = &ast.Lambda{Token: d.Token, Params: d.Params, Body: d.Value}
			}
			v, err := evaluator.Eval(next, value)
			if err != nil {
				return env, err
			}
			if cl, ok := v.(*evaluator.ClosureValue); ok && cl.Name == "" {
				cl.Name = d.Name
			}
			next.Fill(d.Name, v)
			cur = next

		case *ast.DataDecl:
			cur = evaluator.BindDataDecl(cur, d)
		}
	}
	return cur, nil
}

// TypeQuery infers a single expression's scheme without evaluating it
// (§6's `:type EXPR`): a hole's residual type is displayed here exactly
// as §9 describes, rather than always raising UserHole the way running
// the expression would.
func (s *Session) TypeQuery(text string) (typesystem.Scheme, error) {
	expr, err := ParseExpr(text)
	if err != nil {
		return typesystem.Scheme{}, err
	}
	return analyzer.InferExprScheme(s.TypeEnv, s.Classes, expr)
}

// EvalQuery infers and evaluates a single expression without mutating
// the session: inference and evaluation run against the session's own
// environments but bind only into child scopes they create themselves,
// so a REPL's bare-expression queries never leak state into the session
// the way `:let` deliberately does.
func (s *Session) EvalQuery(text string) (typesystem.Scheme, evaluator.Value, error) {
	expr, err := ParseExpr(text)
	if err != nil {
		return typesystem.Scheme{}, nil, err
	}
	scheme, err := analyzer.InferExprScheme(s.TypeEnv, s.Classes, expr)
	if err != nil {
		return typesystem.Scheme{}, nil, err
	}
	v, err := EvalExpr(s.ValueEnv, expr)
	if err != nil {
		return typesystem.Scheme{}, nil, err
	}
	return scheme, v, nil
}

// FormatError renders any error the driver surfaces the way a CLI
// session would print it — diagnostics.Error already carries a span, so
// this just forwards Error(); kept as a single seam in case a future
// presentation layer wants more (color, source-line excerpts).
func FormatError(err error) string {
	return fmt.Sprintf("error: %s", err.Error())
}
