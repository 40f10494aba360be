package evaluator

import (
	"strconv"
	"strings"
)

// Show renders a value the way the `show` primitive does (§4.6):
// integers decimal, doubles via the shortest round-trippable decimal,
// chars single-quoted with escapes, strings (all-Char lists) double-
// quoted with escapes, other lists as `[a, b, …]`, tuples as
// `(a, b, …)`, constructors applied with minimal parentheses — the same
// heuristic the teacher's List.Inspect uses to decide whether a list of
// Char prints as a quoted string.
func Show(v Value) string {
	switch val := v.(type) {
	case *IntValue:
		return val.Value.String()
	case *DoubleValue:
		return strconv.FormatFloat(val.Value, 'g', -1, 64)
	case *BoolValue:
		if val.Value {
			return "True"
		}
		return "False"
	case *CharValue:
		return "'" + escapeRune(val.Value) + "'"
	case *ListValue:
		if isCharList(val) {
			var sb strings.Builder
			sb.WriteByte('"')
			for _, el := range val.Elements {
				sb.WriteString(escapeStringRune(el.(*CharValue).Value))
			}
			sb.WriteByte('"')
			return sb.String()
		}
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = Show(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *TupleValue:
		parts := make([]string, len(val.Elements))
		for i, el := range val.Elements {
			parts[i] = Show(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *DataValue:
		if len(val.Fields) == 0 {
			return val.Constructor
		}
		parts := make([]string, len(val.Fields))
		for i, f := range val.Fields {
			parts[i] = showAtom(f)
		}
		return val.Constructor + " " + strings.Join(parts, " ")
	default:
		return "<function>"
	}
}

// showAtom parenthesizes a constructor-argument's rendering when it
// would otherwise be ambiguous (a nested application or negative
// number), matching "constructors applied with minimal parentheses".
func showAtom(v Value) string {
	s := Show(v)
	switch val := v.(type) {
	case *DataValue:
		if len(val.Fields) > 0 {
			return "(" + s + ")"
		}
	case *IntValue:
		if val.Value.Sign() < 0 {
			return "(" + s + ")"
		}
	case *DoubleValue:
		if val.Value < 0 {
			return "(" + s + ")"
		}
	}
	return s
}

func isCharList(l *ListValue) bool {
	if len(l.Elements) == 0 {
		return false
	}
	for _, el := range l.Elements {
		if _, ok := el.(*CharValue); !ok {
			return false
		}
	}
	return true
}

func escapeRune(r rune) string {
	switch r {
	case '\\':
		return "\\\\"
	case '\'':
		return "\\'"
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	default:
		return string(r)
	}
}

func escapeStringRune(r rune) string {
	switch r {
	case '\\':
		return "\\\\"
	case '"':
		return "\\\""
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	default:
		return string(r)
	}
}
