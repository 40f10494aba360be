package typesystem

// Env is the type environment (§3.7): a mapping from name to scheme,
// chained to an outer scope the way the teacher's symbols.SymbolTable
// chains to its `outer` table, generalized here to the one thing this
// language's environment needs to track.
type Env struct {
	vars  map[string]Scheme
	outer *Env
}

// NewEnv creates a fresh, empty top-level environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Scheme)}
}

// Child creates a new scope nested inside e.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]Scheme), outer: e}
}

// Bind adds or replaces a binding in this scope (not outer scopes).
func (e *Env) Bind(name string, sc Scheme) {
	e.vars[name] = sc
}

// Lookup searches this scope and, failing that, outer scopes.
func (e *Env) Lookup(name string) (Scheme, bool) {
	for env := e; env != nil; env = env.outer {
		if sc, ok := env.vars[name]; ok {
			return sc, true
		}
	}
	return Scheme{}, false
}

// FreeTypeVariables returns the free variables of every scheme reachable
// from e (used by generalization to decide what must stay bound).
func (e *Env) FreeTypeVariables() []string {
	var out []string
	for env := e; env != nil; env = env.outer {
		for _, sc := range env.vars {
			out = append(out, sc.FreeTypeVariables()...)
		}
	}
	return uniq(out)
}

// mapSchemes returns a structurally identical environment chain with f
// applied to every scheme; used by ApplyToEnv.
func (e *Env) mapSchemes(f func(Scheme) Scheme) *Env {
	if e == nil {
		return nil
	}
	out := &Env{vars: make(map[string]Scheme, len(e.vars)), outer: e.outer.mapSchemes(f)}
	for k, v := range e.vars {
		out.vars[k] = f(v)
	}
	return out
}

// Names returns every name bound in this scope (not outer scopes), in
// no particular order, for the driver's `:bindings` command.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}

// Remove deletes a binding from this scope only.
func (e *Env) Remove(name string) {
	delete(e.vars, name)
}
