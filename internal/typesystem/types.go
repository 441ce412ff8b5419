// Package typesystem implements the monomorphic type language and its
// unification-based inference: type variables, arrows, and named
// constants, with substitutions applied by transitive chasing.
package typesystem

import "fmt"

// Type is the interface for all types in the system.
type Type interface {
	String() string
	Apply(Subst) Type
}

// TVar is a type variable identified by a unique id from a TVarGen.
type TVar struct {
	ID int
}

func (t TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

func (t TVar) Apply(s Subst) Type {
	return applyChased(t, s, make(map[int]bool))
}

// TArrow is a function type From -> To.
type TArrow struct {
	From Type
	To   Type
}

func (t TArrow) String() string {
	// Parenthesize a higher-order domain so the rendering re-parses.
	if _, ok := t.From.(TArrow); ok {
		return fmt.Sprintf("(%s) -> %s", t.From, t.To)
	}
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

func (t TArrow) Apply(s Subst) Type {
	return TArrow{From: t.From.Apply(s), To: t.To.Apply(s)}
}

// TCon is a named type constant (Int, Bool, ...).
type TCon struct {
	Name string
}

func (t TCon) String() string     { return t.Name }
func (t TCon) Apply(s Subst) Type { return t }

// Subst maps type-variable ids to types. It is built incrementally by
// Unify and read out by chasing: a variable's entry may itself be a
// variable with its own entry.
type Subst map[int]Type

// applyChased follows substitutions to a fixed point. The visited set
// guards against a malformed cyclic substitution; Unify's occurs check
// never lets one through, but a hand-built Subst could carry one.
func applyChased(t Type, s Subst, visited map[int]bool) Type {
	tv, ok := t.(TVar)
	if !ok {
		return t.Apply(s)
	}
	if visited[tv.ID] {
		return tv
	}
	replacement, ok := s[tv.ID]
	if !ok {
		return tv
	}
	visited[tv.ID] = true
	return applyChased(replacement, s, visited)
}

// TVarGen allocates fresh type-variable ids. Each independent inference
// run owns its generator (or resets a shared one), so runs stay
// deterministic and comparable.
type TVarGen struct {
	counter int
}

// NewTVarGen returns a generator starting at id 0.
func NewTVarGen() *TVarGen {
	return &TVarGen{}
}

// Fresh returns a type variable with the next id.
func (g *TVarGen) Fresh() TVar {
	id := g.counter
	g.counter++
	return TVar{ID: id}
}

// Reset rewinds the counter so the next Fresh yields t0 again.
func (g *TVarGen) Reset() {
	g.counter = 0
}

// Common type constants.
var (
	IntType  = TCon{Name: "Int"}
	BoolType = TCon{Name: "Bool"}
)
