package analyzer

import "github.com/sin4auto/typelang-hm/internal/typesystem"

// DefaultScheme implements §4.4's "Defaulting (display only)" rule: a
// scheme's variables that are constrained ONLY by the numeric hierarchy
// (Num, optionally Fractional/Integral, with no other class attached)
// are replaced in a display copy — `Integer` if only Num/Integral
// constraints are present, `Double` if Fractional is present. Any
// variable that also carries a non-numeric constraint (Eq, Ord, Show,
// Functor, Foldable) is left quantified, since defaulting it would
// silently narrow a genuinely polymorphic scheme. The scheme passed to
// evaluation and further inference is never touched by this function —
// callers must call it only when building a string for display.
func DefaultScheme(sc typesystem.Scheme) typesystem.Scheme {
	numeric := map[string]bool{"Num": true, "Fractional": true, "Integral": true}

	perVar := make(map[string][]typesystem.Constraint)
	for _, ct := range sc.Constraints {
		perVar[ct.Var] = append(perVar[ct.Var], ct)
	}

	subst := typesystem.Subst{}
	var remainingVars []string
	var remainingConstraints []typesystem.Constraint

	for _, v := range sc.Vars {
		cts := perVar[v]
		if len(cts) == 0 {
			remainingVars = append(remainingVars, v)
			continue
		}
		onlyNumeric := true
		hasFractional := false
		for _, ct := range cts {
			if !numeric[ct.Class] {
				onlyNumeric = false
				break
			}
			if ct.Class == "Fractional" {
				hasFractional = true
			}
		}
		if !onlyNumeric {
			remainingVars = append(remainingVars, v)
			remainingConstraints = append(remainingConstraints, cts...)
			continue
		}
		if hasFractional {
			subst[v] = typesystem.TCon{Name: "Double"}
		} else {
			subst[v] = typesystem.TCon{Name: "Integer"}
		}
	}

	return typesystem.Scheme{
		Vars:        remainingVars,
		Constraints: remainingConstraints,
		Type:        sc.Type.Apply(subst),
	}
}
