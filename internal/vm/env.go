package vm

// Env is a persistent list of lexical bindings, innermost first.
// Closures snapshot an *Env; Push never mutates existing nodes, so a
// snapshot is immune to later extensions by other call paths.
type Env struct {
	value Value
	next  *Env
	size  int
}

// Push returns a new environment with v as the innermost binding.
// Pushing onto a nil *Env is valid and yields a one-entry environment.
func (e *Env) Push(v Value) *Env {
	return &Env{value: v, next: e, size: e.Len() + 1}
}

// Lookup returns the binding at idx (0 = innermost). The second result
// is false when idx is outside the environment.
func (e *Env) Lookup(idx int) (Value, bool) {
	if idx < 0 {
		return Value{}, false
	}
	for node := e; node != nil; node = node.next {
		if idx == 0 {
			return node.value, true
		}
		idx--
	}
	return Value{}, false
}

// Len returns the number of bindings.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.size
}

// NewEnv builds an environment from values in declaration order: the
// last value becomes the innermost binding, matching the indices the
// resolver assigns to declared free identifiers.
func NewEnv(values ...Value) *Env {
	var env *Env
	for _, v := range values {
		env = env.Push(v)
	}
	return env
}
