// Package pattern holds the pattern-shape logic shared between the
// analyzer (which elaborates a pattern against an expected type) and the
// evaluator (which matches a pattern against a runtime value) — §4.5.
// This mirrors how the teacher keeps pattern *parsing* (parser/patterns.go)
// and pattern *type-checking* (analyzer/patterns.go) as separate files
// that share syntax but not logic: here the shared part is exactly the
// syntax-only analysis — variable collection and the duplicate-binder
// check — while type elaboration lives in internal/analyzer and runtime
// matching lives in internal/evaluator.
package pattern

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
)

// Variables returns every variable name bound by p, in left-to-right
// syntactic order (duplicates included — use CheckNoDuplicateBinders to
// validate before trusting this list for scoping).
func Variables(p ast.Pattern) []string {
	var out []string
	collect(p, &out)
	return out
}

func collect(p ast.Pattern, out *[]string) {
	switch pt := p.(type) {
	case *ast.PWildcard, *ast.PLit:
		// no bindings
	case *ast.PVar:
		*out = append(*out, pt.Name)
	case *ast.PCon:
		for _, a := range pt.Args {
			collect(a, out)
		}
	case *ast.PList:
		for _, e := range pt.Elements {
			collect(e, out)
		}
	case *ast.PTuple:
		for _, e := range pt.Elements {
			collect(e, out)
		}
	case *ast.PAs:
		*out = append(*out, pt.Name)
		collect(pt.Pattern, out)
	}
}

// CheckNoDuplicateBinders enforces the §3.4 invariant that a pattern
// binds each variable at most once; it is run once at elaboration time,
// before the analyzer extends the environment with the pattern's
// bindings.
func CheckNoDuplicateBinders(p ast.Pattern) error {
	seen := make(map[string]bool)
	var walk func(ast.Pattern) error
	walk = func(p ast.Pattern) error {
		switch pt := p.(type) {
		case *ast.PVar:
			if seen[pt.Name] {
				return diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrDuplicateBinder, spanOf(p), pt.Name)
			}
			seen[pt.Name] = true
		case *ast.PAs:
			if seen[pt.Name] {
				return diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrDuplicateBinder, spanOf(p), pt.Name)
			}
			seen[pt.Name] = true
			return walk(pt.Pattern)
		case *ast.PCon:
			for _, a := range pt.Args {
				if err := walk(a); err != nil {
					return err
				}
			}
		case *ast.PList:
			for _, e := range pt.Elements {
				if err := walk(e); err != nil {
					return err
				}
			}
		case *ast.PTuple:
			for _, e := range pt.Elements {
				if err := walk(e); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(p)
}

func spanOf(p ast.Pattern) diagnostics.Span {
	tok := p.GetToken()
	return diagnostics.Span{Line: tok.Line, Column: tok.Column, Start: tok.Start, End: tok.End}
}
