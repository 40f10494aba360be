package evaluator

// compareValues returns -1, 0, or 1 for any two values drawn from an
// Eq/Ord-instance head (§4.6: "lists and tuples compare
// lexicographically; strings compare by code-point sequence"). The
// analyzer has already proven both operands share one instance-bearing
// type before this runs, so each branch asserts rather than checks the
// other operand's kind — trusting that guarantee the way the rest of
// this evaluator trusts a successfully elaborated program.
func compareValues(a, b Value) int {
	switch av := a.(type) {
	case *IntValue:
		return av.Value.Cmp(b.(*IntValue).Value)
	case *DoubleValue:
		bv := b.(*DoubleValue).Value
		switch {
		case av.Value < bv:
			return -1
		case av.Value > bv:
			return 1
		default:
			return 0
		}
	case *BoolValue:
		bv := b.(*BoolValue).Value
		if av.Value == bv {
			return 0
		}
		if !av.Value {
			return -1
		}
		return 1
	case *CharValue:
		bv := b.(*CharValue).Value
		switch {
		case av.Value < bv:
			return -1
		case av.Value > bv:
			return 1
		default:
			return 0
		}
	case *ListValue:
		bv := b.(*ListValue)
		n := len(av.Elements)
		if len(bv.Elements) < n {
			n = len(bv.Elements)
		}
		for i := 0; i < n; i++ {
			if c := compareValues(av.Elements[i], bv.Elements[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(av.Elements) < len(bv.Elements):
			return -1
		case len(av.Elements) > len(bv.Elements):
			return 1
		default:
			return 0
		}
	case *TupleValue:
		bv := b.(*TupleValue)
		for i := range av.Elements {
			if c := compareValues(av.Elements[i], bv.Elements[i]); c != 0 {
				return c
			}
		}
		return 0
	case *DataValue:
		bv := b.(*DataValue)
		if av.Constructor != bv.Constructor {
			if av.Constructor < bv.Constructor {
				return -1
			}
			return 1
		}
		for i := range av.Fields {
			if c := compareValues(av.Fields[i], bv.Fields[i]); c != 0 {
				return c
			}
		}
		return 0
	default:
		panic("evaluator: compareValues on a value with no Eq/Ord instance")
	}
}

func valuesEqual(a, b Value) bool {
	return compareValues(a, b) == 0
}
