package analyzer

import (
	"github.com/sin4auto/typelang-hm/internal/ast"
	"github.com/sin4auto/typelang-hm/internal/typesystem"
)

// elaborateType converts the parser's surface ast.Type into the
// inferencer's typesystem.Type, peeling off a QualifiedType's constraints
// into the returned slice. Surface type variables keep their written
// name directly (no freshening) since an annotation's variables are
// either already bound in an enclosing signature's scheme or denote the
// type itself being checked for quantifier-equivalence — see
// inferAnnot.
func elaborateType(t ast.Type) (typesystem.Type, []typesystem.Constraint) {
	switch tt := t.(type) {
	case *ast.QualifiedType:
		inner, _ := elaborateType(tt.Type)
		constraints := make([]typesystem.Constraint, len(tt.Constraints))
		for i, c := range tt.Constraints {
			constraints[i] = typesystem.Constraint{Class: c.Class, Var: c.Var}
		}
		return inner, constraints
	case *ast.TypeVar:
		return typesystem.TVar{Name: tt.Name}, nil
	case *ast.TypeCon:
		return typesystem.TCon{Name: tt.Name}, nil
	case *ast.TypeApp:
		fn, _ := elaborateType(tt.Fn)
		arg, _ := elaborateType(tt.Arg)
		return typesystem.TApp{Fn: fn, Arg: arg}, nil
	case *ast.TypeArrow:
		from, _ := elaborateType(tt.From)
		to, _ := elaborateType(tt.To)
		return typesystem.TArrow{From: from, To: to}, nil
	case *ast.TypeTuple:
		els := make([]typesystem.Type, len(tt.Elements))
		for i, e := range tt.Elements {
			els[i], _ = elaborateType(e)
		}
		return typesystem.TTuple{Elements: els}, nil
	case *ast.TypeList:
		elem, _ := elaborateType(tt.Elem)
		return typesystem.TList{Elem: elem}, nil
	default:
		return typesystem.TCon{Name: "?"}, nil
	}
}

// canonicalizeScheme returns sc with every type variable renamed to
// `a, b, c, ...` in the order the variables are first reached by a
// structural traversal of the type. Used by the annotation α-equivalence
// check to compare two schemes up to consistent quantifier renaming, and
// by FormatScheme before display.
func canonicalizeScheme(sc typesystem.Scheme) typesystem.Scheme {
	mapping := make(map[string]string)
	counter := 0
	var rename func(typesystem.Type) typesystem.Type
	rename = func(t typesystem.Type) typesystem.Type {
		switch tt := t.(type) {
		case typesystem.TVar:
			if _, ok := mapping[tt.Name]; !ok {
				mapping[tt.Name] = canonicalName(counter)
				counter++
			}
			return typesystem.TVar{Name: mapping[tt.Name]}
		case typesystem.TCon:
			return tt
		case typesystem.TApp:
			return typesystem.TApp{Fn: rename(tt.Fn), Arg: rename(tt.Arg)}
		case typesystem.TArrow:
			return typesystem.TArrow{From: rename(tt.From), To: rename(tt.To)}
		case typesystem.TTuple:
			els := make([]typesystem.Type, len(tt.Elements))
			for i, e := range tt.Elements {
				els[i] = rename(e)
			}
			return typesystem.TTuple{Elements: els}
		case typesystem.TList:
			return typesystem.TList{Elem: rename(tt.Elem)}
		default:
			return t
		}
	}
	newType := rename(sc.Type)
	newConstraints := make([]typesystem.Constraint, len(sc.Constraints))
	for i, c := range sc.Constraints {
		v := c.Var
		if mapped, ok := mapping[v]; ok {
			v = mapped
		}
		newConstraints[i] = typesystem.Constraint{Class: c.Class, Var: v}
	}
	newVars := make([]string, len(sc.Vars))
	for i, v := range sc.Vars {
		if mapped, ok := mapping[v]; ok {
			newVars[i] = mapped
		} else {
			newVars[i] = v
		}
	}
	return typesystem.Scheme{Vars: newVars, Constraints: sortConstraints(newConstraints), Type: newType}
}

func canonicalName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	if i < 26 {
		return string(letters[i])
	}
	return string(letters[i%26]) + itoa(i/26)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

func sortConstraints(cs []typesystem.Constraint) []typesystem.Constraint {
	out := make([]typesystem.Constraint, len(cs))
	copy(out, cs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && (out[j-1].Var > out[j].Var || (out[j-1].Var == out[j].Var && out[j-1].Class > out[j].Class)); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// schemesEquivalent reports whether a and b denote the same polytype up
// to consistent renaming of quantified variables, used by inferAnnot's
// quantified-annotation check.
func schemesEquivalent(a, b typesystem.Scheme) bool {
	ca, cb := canonicalizeScheme(a), canonicalizeScheme(b)
	return ca.Type.String() == cb.Type.String() && constraintsEqual(ca.Constraints, cb.Constraints)
}

func constraintsEqual(a, b []typesystem.Constraint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
