package evaluator

import "github.com/sin4auto/typelang-hm/internal/ast"

// BindDataDecl registers a `data` declaration's constructors as runtime
// values in a child of env, mirroring analyzer.elaborateDataDecl's
// type-level binding on the value side (§3.5: "each constructor becomes
// a value-level function of the appropriate arity in the value
// environment"). A nullary constructor is bound directly as its own
// DataValue rather than a zero-arity ConstructorValue, so pattern
// matching and Show never need to special-case "a constructor with no
// arguments left to supply."
func BindDataDecl(env *Environment, d *ast.DataDecl) *Environment {
	next := env.Child()
	for _, ctor := range d.Constructors {
		if len(ctor.Fields) == 0 {
			next.Bind(ctor.Name, &DataValue{Constructor: ctor.Name})
			continue
		}
		next.Bind(ctor.Name, &ConstructorValue{Name: ctor.Name, Arity: len(ctor.Fields)})
	}
	return next
}
