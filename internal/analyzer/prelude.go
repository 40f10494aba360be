package analyzer

import "github.com/sin4auto/typelang-hm/internal/typesystem"

// PreludeEnv builds the initial type environment the program's
// declarations elaborate against — the operator schemes of §4.6's
// "Primitive semantics" paragraph. Because the parser desugars every
// binary and unary operator into an ordinary `App{Fn: Var{Name: sym}}`
// node (see internal/parser/expressions.go), operators need no special
// case anywhere in Infer: they are just names bound to polymorphic
// schemes here, exactly like any other variable.
func PreludeEnv() *typesystem.Env {
	env := typesystem.NewEnv()

	a := typesystem.TVar{Name: "a"}
	b := typesystem.TVar{Name: "b"}

	numBinOp := typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Num", Var: "a"}},
		Type:        arrow(a, a, a),
	}
	for _, name := range []string{"+", "-", "*"} {
		env.Bind(name, numBinOp)
	}

	env.Bind("/", typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Fractional", Var: "a"}},
		Type:        arrow(a, a, a),
	})

	integralBinOp := typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Integral", Var: "a"}},
		Type:        arrow(a, a, a),
	}
	for _, name := range []string{"div", "mod", "quot", "rem"} {
		env.Bind(name, integralBinOp)
	}

	// `^`: base may be any Num type, but the exponent must statically be
	// an Integral type (§4.6) — a negative exponent falls back to
	// double-precision computation at evaluation time without changing
	// this static scheme (see DESIGN.md's "Notes on specific
	// correctness-sensitive choices").
	env.Bind("^", typesystem.Scheme{
		Vars: []string{"a", "b"},
		Constraints: []typesystem.Constraint{
			{Class: "Num", Var: "a"},
			{Class: "Integral", Var: "b"},
		},
		Type: arrow(a, b, a),
	})

	// `**`: statically Fractional-constrained like `/`, not pinned to
	// Double — Double is this language's only Fractional ground instance
	// (classenv.groundInstances), so "always floating point" (§4.6) holds
	// after defaulting without needing a monomorphic scheme; a
	// monomorphic Double scheme would instead produce the unconstrained,
	// undefaultable `Double -> Double` this example's "off" case rules
	// out (§8 example 1: `\x -> x ** 2` displays as `Fractional a => a ->
	// a` with defaulting off).
	env.Bind("**", typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Fractional", Var: "a"}},
		Type:        arrow(a, a, a),
	})

	ordConstrainedBoolOp := func() typesystem.Scheme {
		return typesystem.Scheme{
			Vars:        []string{"a"},
			Constraints: []typesystem.Constraint{{Class: "Ord", Var: "a"}},
			Type:        arrow(a, a, typesystem.TCon{Name: "Bool"}),
		}
	}
	for _, name := range []string{"<", "<=", ">", ">="} {
		env.Bind(name, ordConstrainedBoolOp())
	}

	eqConstrainedBoolOp := func() typesystem.Scheme {
		return typesystem.Scheme{
			Vars:        []string{"a"},
			Constraints: []typesystem.Constraint{{Class: "Eq", Var: "a"}},
			Type:        arrow(a, a, typesystem.TCon{Name: "Bool"}),
		}
	}
	for _, name := range []string{"==", "/="} {
		env.Bind(name, eqConstrainedBoolOp())
	}

	// `&&`/`||`: monomorphic and strict (§4.6 — no lazy short-circuit in
	// this language, so both evaluate the same as any other App).
	boolVal := typesystem.TCon{Name: "Bool"}
	logicBinOp := typesystem.Mono(arrow(boolVal, boolVal, boolVal))
	env.Bind("&&", logicBinOp)
	env.Bind("||", logicBinOp)

	// `:` prepends an element to a list; `++` concatenates two lists of
	// the same element type — both desugar the same way every other
	// binary operator does, via parser/expressions.go's parseBinary-style
	// App{Fn: Var{":" | "++"}}.
	listElem := typesystem.TList{Elem: a}
	env.Bind(":", typesystem.Scheme{
		Vars: []string{"a"},
		Type: arrow(a, listElem, listElem),
	})
	env.Bind("++", typesystem.Scheme{
		Vars: []string{"a"},
		Type: arrow(listElem, listElem, listElem),
	})

	env.Bind("negate", numBinOp1())

	env.Bind("show", typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Show", Var: "a"}},
		Type:        typesystem.TArrow{From: a, To: typesystem.TList{Elem: typesystem.TCon{Name: "Char"}}},
	})

	return env
}

func numBinOp1() typesystem.Scheme {
	a := typesystem.TVar{Name: "a"}
	return typesystem.Scheme{
		Vars:        []string{"a"},
		Constraints: []typesystem.Constraint{{Class: "Num", Var: "a"}},
		Type:        typesystem.TArrow{From: a, To: a},
	}
}

func arrow(from, to1, to2 typesystem.Type) typesystem.Type {
	return typesystem.TArrow{From: from, To: typesystem.TArrow{From: to1, To: to2}}
}
