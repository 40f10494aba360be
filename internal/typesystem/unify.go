package typesystem

import (
	"github.com/sin4auto/typelang-hm/internal/diagnostics"
)

// Unify finds the most general substitution making a and b syntactically
// equal, per §4.3. It is total, deterministic, and recursive: arrow,
// application, tuple, and list forms are matched structurally and their
// components unified left to right, threading the accumulated
// substitution, exactly as the teacher's typesystem.Unify does for the
// forms this language shares with funxy.
func Unify(a, b Type) (Subst, error) {
	return unify(a, b, diagnostics.Span{})
}

// UnifyAt is Unify but tags any failure with span for diagnostics.
func UnifyAt(a, b Type, span diagnostics.Span) (Subst, error) {
	return unify(a, b, span)
}

func unify(a, b Type, span diagnostics.Span) (Subst, error) {
	switch at := a.(type) {
	case TVar:
		return bind(at, b, span)
	case TCon:
		if bt, ok := b.(TCon); ok {
			if at.Name == bt.Name {
				return Subst{}, nil
			}
			return nil, mismatch(at, bt, span)
		}
		if bv, ok := b.(TVar); ok {
			return bind(bv, at, span)
		}
		return nil, mismatch(at, b, span)
	case TApp:
		if bv, ok := b.(TVar); ok {
			return bind(bv, at, span)
		}
		bt, ok := b.(TApp)
		if !ok {
			return nil, mismatch(at, b, span)
		}
		s1, err := unify(at.Fn, bt.Fn, span)
		if err != nil {
			return nil, err
		}
		s2, err := unify(at.Arg.Apply(s1), bt.Arg.Apply(s1), span)
		if err != nil {
			return nil, err
		}
		return s2.Compose(s1), nil
	case TArrow:
		if bv, ok := b.(TVar); ok {
			return bind(bv, at, span)
		}
		bt, ok := b.(TArrow)
		if !ok {
			return nil, mismatch(at, b, span)
		}
		s1, err := unify(at.From, bt.From, span)
		if err != nil {
			return nil, err
		}
		s2, err := unify(at.To.Apply(s1), bt.To.Apply(s1), span)
		if err != nil {
			return nil, err
		}
		return s2.Compose(s1), nil
	case TTuple:
		if bv, ok := b.(TVar); ok {
			return bind(bv, at, span)
		}
		bt, ok := b.(TTuple)
		if !ok || len(bt.Elements) != len(at.Elements) {
			return nil, mismatch(at, b, span)
		}
		s := Subst{}
		for i := range at.Elements {
			si, err := unify(at.Elements[i].Apply(s), bt.Elements[i].Apply(s), span)
			if err != nil {
				return nil, err
			}
			s = si.Compose(s)
		}
		return s, nil
	case TList:
		if bv, ok := b.(TVar); ok {
			return bind(bv, at, span)
		}
		bt, ok := b.(TList)
		if !ok {
			return nil, mismatch(at, b, span)
		}
		return unify(at.Elem, bt.Elem, span)
	default:
		return nil, mismatch(a, b, span)
	}
}

// bind binds a type variable to a type, performing the occurs check. If
// the type is itself the same variable, the empty substitution suffices.
func bind(v TVar, t Type, span diagnostics.Span) (Subst, error) {
	if tv, ok := t.(TVar); ok && tv.Name == v.Name {
		return Subst{}, nil
	}
	if occurs(v.Name, t) {
		return nil, diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrOccursCheck, span, v.String(), t.String())
	}
	return Subst{v.Name: t}, nil
}

func occurs(name string, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v == name {
			return true
		}
	}
	return false
}

func mismatch(a, b Type, span diagnostics.Span) error {
	return diagnostics.New(diagnostics.PhaseAnalyzer, diagnostics.ErrTypeMismatch, span, a.String(), b.String())
}
