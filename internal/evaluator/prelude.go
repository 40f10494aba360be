package evaluator

import (
	"math"
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/diagnostics"
)

// PreludeEnv builds the initial value environment: one PrimitiveValue per
// operator bound in analyzer.PreludeEnv, so a program's type environment
// and value environment agree on every name available before its own
// declarations run — grounded on §4.6's "Primitive semantics" paragraph.
func PreludeEnv() *Environment {
	env := NewEnvironment()

	bind2 := func(name string, fn func(a, b Value) (Value, error)) {
		env.Bind(name, &PrimitiveValue{Name: name, Arity: 2, Fn: func(args []Value) (Value, error) {
			return fn(args[0], args[1])
		}})
	}
	bind1 := func(name string, fn func(a Value) (Value, error)) {
		env.Bind(name, &PrimitiveValue{Name: name, Arity: 1, Fn: func(args []Value) (Value, error) {
			return fn(args[0])
		}})
	}

	bind2("+", numOp(func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }, func(a, b float64) float64 { return a + b }))
	bind2("-", numOp(func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }, func(a, b float64) float64 { return a - b }))
	bind2("*", numOp(func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }, func(a, b float64) float64 { return a * b }))

	bind2("/", func(a, b Value) (Value, error) {
		bd := b.(*DoubleValue).Value
		return &DoubleValue{Value: a.(*DoubleValue).Value / bd}, nil
	})

	bind2("div", integralOp(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, errDivZero()
		}
		q, m := new(big.Int).QuoRem(a, b, new(big.Int))
		if m.Sign() != 0 && (m.Sign() < 0) != (b.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		}
		return q, nil
	}))
	bind2("mod", integralOp(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, errDivZero()
		}
		m := new(big.Int).Mod(a, b)
		if m.Sign() != 0 && b.Sign() < 0 {
			m.Add(m, b)
		}
		return m, nil
	}))
	bind2("quot", integralOp(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, errDivZero()
		}
		return new(big.Int).Quo(a, b), nil
	}))
	bind2("rem", integralOp(func(a, b *big.Int) (*big.Int, error) {
		if b.Sign() == 0 {
			return nil, errDivZero()
		}
		return new(big.Int).Rem(a, b), nil
	}))

	bind2("^", evalPow)
	bind2("**", func(a, b Value) (Value, error) {
		toDouble := func(v Value) float64 {
			if iv, ok := v.(*IntValue); ok {
				f, _ := new(big.Float).SetInt(iv.Value).Float64()
				return f
			}
			return v.(*DoubleValue).Value
		}
		return &DoubleValue{Value: math.Pow(toDouble(a), toDouble(b))}, nil
	})

	bind2("==", func(a, b Value) (Value, error) { return BoolFor(valuesEqual(a, b)), nil })
	bind2("/=", func(a, b Value) (Value, error) { return BoolFor(!valuesEqual(a, b)), nil })
	bind2("<", func(a, b Value) (Value, error) { return BoolFor(compareValues(a, b) < 0), nil })
	bind2("<=", func(a, b Value) (Value, error) { return BoolFor(compareValues(a, b) <= 0), nil })
	bind2(">", func(a, b Value) (Value, error) { return BoolFor(compareValues(a, b) > 0), nil })
	bind2(">=", func(a, b Value) (Value, error) { return BoolFor(compareValues(a, b) >= 0), nil })

	bind2("&&", func(a, b Value) (Value, error) {
		return BoolFor(a.(*BoolValue).Value && b.(*BoolValue).Value), nil
	})
	bind2("||", func(a, b Value) (Value, error) {
		return BoolFor(a.(*BoolValue).Value || b.(*BoolValue).Value), nil
	})

	bind2(":", func(a, b Value) (Value, error) {
		tail := b.(*ListValue).Elements
		elems := make([]Value, 0, len(tail)+1)
		elems = append(elems, a)
		elems = append(elems, tail...)
		return &ListValue{Elements: elems}, nil
	})
	bind2("++", func(a, b Value) (Value, error) {
		left, right := a.(*ListValue).Elements, b.(*ListValue).Elements
		elems := make([]Value, 0, len(left)+len(right))
		elems = append(elems, left...)
		elems = append(elems, right...)
		return &ListValue{Elements: elems}, nil
	})

	bind1("negate", func(a Value) (Value, error) {
		switch v := a.(type) {
		case *IntValue:
			return &IntValue{Value: new(big.Int).Neg(v.Value)}, nil
		case *DoubleValue:
			return &DoubleValue{Value: -v.Value}, nil
		}
		panic("evaluator: negate on a non-Num value")
	})

	bind1("show", func(a Value) (Value, error) { return StringToListValue(Show(a)), nil })

	return env
}

// numOp builds a binary primitive for `+ - *`, dispatching on the
// runtime representation of its first argument — the analyzer has
// already unified both operands to the same Num-instance type.
func numOp(intOp func(a, b *big.Int) *big.Int, doubleOp func(a, b float64) float64) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		switch av := a.(type) {
		case *IntValue:
			return &IntValue{Value: intOp(av.Value, b.(*IntValue).Value)}, nil
		case *DoubleValue:
			return &DoubleValue{Value: doubleOp(av.Value, b.(*DoubleValue).Value)}, nil
		}
		panic("evaluator: numeric op on a non-Num value")
	}
}

// integralOp builds a binary primitive constrained to Integral, whose
// only ground instance is Int (§2 item 5), so both operands are always
// IntValue.
func integralOp(op func(a, b *big.Int) (*big.Int, error)) func(a, b Value) (Value, error) {
	return func(a, b Value) (Value, error) {
		r, err := op(a.(*IntValue).Value, b.(*IntValue).Value)
		if err != nil {
			return nil, err
		}
		return &IntValue{Value: r}, nil
	}
}

// evalPow implements §4.6's `^`: base may be Int or Double; the exponent
// is always Int (Integral). A non-negative integer exponent on an
// integer base is computed by repeated squaring and stays integral; a
// negative exponent falls back to double-precision computation, which
// means the result value's runtime representation can differ from its
// statically inferred type's ground instance — an intentional, spec-
// mandated exception (§4.6 example 4: `2 ^ (-1)` => `0.5`), documented
// further in DESIGN.md.
func evalPow(base, exp Value) (Value, error) {
	expInt := exp.(*IntValue).Value

	switch b := base.(type) {
	case *DoubleValue:
		e, _ := new(big.Float).SetInt(expInt).Float64()
		return &DoubleValue{Value: math.Pow(b.Value, e)}, nil

	case *IntValue:
		if expInt.Sign() >= 0 {
			return &IntValue{Value: new(big.Int).Exp(b.Value, expInt, nil)}, nil
		}
		bf, _ := new(big.Float).SetInt(b.Value).Float64()
		ef, _ := new(big.Float).SetInt(expInt).Float64()
		return &DoubleValue{Value: math.Pow(bf, ef)}, nil
	}
	panic("evaluator: ^ on a non-Num base")
}

func errDivZero() error {
	return diagnostics.New(diagnostics.PhaseEval, diagnostics.ErrDivideByZero, diagnostics.Span{})
}
