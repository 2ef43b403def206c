package tile

import (
	"maps"
	"slices"
)

// Scope holds the names visible to marker expressions.
//
// Go code cannot inspect its caller's variables, so the bindings a
// template refers to are passed explicitly. Locals shadow Globals, and
// both shadow builtins. Render never modifies either map.
type Scope struct {
	Locals  map[string]any
	Globals map[string]any
}

// NewScope returns a Scope over the given bindings. Either may be nil.
func NewScope(locals, globals map[string]any) Scope {
	return Scope{Locals: locals, Globals: globals}
}

// Vars returns a Scope with only local bindings.
func Vars(locals map[string]any) Scope {
	return Scope{Locals: locals}
}

// Lookup resolves name, preferring Locals.
func (s Scope) Lookup(name string) (any, bool) {
	if v, ok := s.Locals[name]; ok {
		return v, true
	}

	v, ok := s.Globals[name]

	return v, ok
}

// Names returns the sorted, de-duplicated names bound in s.
func (s Scope) Names() []string {
	names := slices.Collect(maps.Keys(s.Globals))
	names = slices.AppendSeq(names, maps.Keys(s.Locals))
	slices.Sort(names)

	return slices.Compact(names)
}

// With returns a Scope whose Locals are the receiver's Locals overlaid
// with bindings. The receiver is not modified.
func (s Scope) With(bindings map[string]any) Scope {
	locals := make(map[string]any, len(s.Locals)+len(bindings))
	maps.Copy(locals, s.Locals)
	maps.Copy(locals, bindings)

	return Scope{Locals: locals, Globals: s.Globals}
}

// env flattens the scope over base into a fresh map for the evaluator.
func (s Scope) env(base map[string]any) map[string]any {
	env := make(map[string]any, len(base)+len(s.Globals)+len(s.Locals))
	maps.Copy(env, base)
	maps.Copy(env, s.Globals)
	maps.Copy(env, s.Locals)

	return env
}
