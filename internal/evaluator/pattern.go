package evaluator

import (
	"math/big"

	"github.com/sin4auto/typelang-hm/internal/ast"
)

// match implements §4.5's runtime matching rules against a concrete
// Value, returning the bindings a successful match introduces. A nil,
// false result means this pattern does not match v; the caller tries
// the next case alternative or, for a let's irrefutable destructuring,
// raises NonExhaustiveCase.
func match(pat ast.Pattern, v Value) (map[string]Value, bool) {
	switch p := pat.(type) {
	case *ast.PWildcard:
		return map[string]Value{}, true

	case *ast.PVar:
		return map[string]Value{p.Name: v}, true

	case *ast.PAs:
		inner, ok := match(p.Pattern, v)
		if !ok {
			return nil, false
		}
		inner[p.Name] = v
		return inner, true

	case *ast.PLit:
		return map[string]Value{}, literalMatches(p.Value, v)

	case *ast.PList:
		lv, ok := v.(*ListValue)
		if !ok || len(lv.Elements) != len(p.Elements) {
			return nil, false
		}
		out := map[string]Value{}
		for i, sub := range p.Elements {
			b, ok := match(sub, lv.Elements[i])
			if !ok {
				return nil, false
			}
			mergeInto(out, b)
		}
		return out, true

	case *ast.PTuple:
		tv, ok := v.(*TupleValue)
		if !ok || len(tv.Elements) != len(p.Elements) {
			return nil, false
		}
		out := map[string]Value{}
		for i, sub := range p.Elements {
			b, ok := match(sub, tv.Elements[i])
			if !ok {
				return nil, false
			}
			mergeInto(out, b)
		}
		return out, true

	case *ast.PCon:
		if p.Name == ":" {
			lv, ok := v.(*ListValue)
			if !ok || len(lv.Elements) == 0 {
				return nil, false
			}
			out := map[string]Value{}
			head, ok := match(p.Args[0], lv.Elements[0])
			if !ok {
				return nil, false
			}
			mergeInto(out, head)
			tail, ok := match(p.Args[1], &ListValue{Elements: lv.Elements[1:]})
			if !ok {
				return nil, false
			}
			mergeInto(out, tail)
			return out, true
		}
		dv, ok := v.(*DataValue)
		if !ok || dv.Constructor != p.Name || len(dv.Fields) != len(p.Args) {
			return nil, false
		}
		out := map[string]Value{}
		for i, sub := range p.Args {
			b, ok := match(sub, dv.Fields[i])
			if !ok {
				return nil, false
			}
			mergeInto(out, b)
		}
		return out, true

	default:
		return nil, false
	}
}

func mergeInto(dst, src map[string]Value) {
	for k, v := range src {
		dst[k] = v
	}
}

func literalMatches(lit interface{}, v Value) bool {
	switch want := lit.(type) {
	case *big.Int:
		switch got := v.(type) {
		case *IntValue:
			return got.Value.Cmp(want) == 0
		case *DoubleValue:
			f, _ := new(big.Float).SetInt(want).Float64()
			return got.Value == f
		}
		return false
	case float64:
		got, ok := v.(*DoubleValue)
		return ok && got.Value == want
	case rune:
		got, ok := v.(*CharValue)
		return ok && got.Value == want
	case string:
		got, ok := v.(*ListValue)
		if !ok {
			return false
		}
		wantRunes := []rune(want)
		if len(wantRunes) != len(got.Elements) {
			return false
		}
		for i, r := range wantRunes {
			cv, ok := got.Elements[i].(*CharValue)
			if !ok || cv.Value != r {
				return false
			}
		}
		return true
	case bool:
		got, ok := v.(*BoolValue)
		return ok && got.Value == want
	default:
		return false
	}
}

// matchPatternInto matches pat against v and binds every captured name
// directly into env (used by `let` destructuring, which has no sibling
// alternative to fall back to on a failed match).
func matchPatternInto(env *Environment, pat ast.Pattern, v Value) error {
	bindings, ok := match(pat, v)
	if !ok {
		return nonExhaustive(pat)
	}
	for name, val := range bindings {
		env.Bind(name, val)
	}
	return nil
}
