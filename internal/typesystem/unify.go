package typesystem

import "fmt"

// MismatchError reports that two types could not be made equal. Both
// sides are kept in rendered-comparable form for diagnostics.
type MismatchError struct {
	Left    Type
	Right   Type
	Context string
}

func (e *MismatchError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("cannot unify %s with %s (%s)", e.Left, e.Right, e.Context)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Unify makes t1 and t2 equal by extending subs, or returns a
// *MismatchError if no extension can. Both sides are chased through the
// existing substitution before case analysis, so earlier bindings are
// always visible.
func Unify(t1, t2 Type, subs Subst) error {
	t1 = t1.Apply(subs)
	t2 = t2.Apply(subs)

	switch t1 := t1.(type) {
	case TVar:
		return bind(t1, t2, subs)

	case TArrow:
		switch t2 := t2.(type) {
		case TVar:
			return bind(t2, t1, subs)
		case TArrow:
			if err := Unify(t1.From, t2.From, subs); err != nil {
				return err
			}
			return Unify(t1.To, t2.To, subs)
		default:
			return &MismatchError{Left: t1, Right: t2}
		}

	case TCon:
		switch t2 := t2.(type) {
		case TVar:
			return bind(t2, t1, subs)
		case TCon:
			if t1.Name == t2.Name {
				return nil
			}
			return &MismatchError{Left: t1, Right: t2, Context: "type constant mismatch"}
		default:
			return &MismatchError{Left: t1, Right: t2}
		}

	default:
		return &MismatchError{Left: t1, Right: t2}
	}
}

// bind records tv := t. A variable unifies with anything, including
// another variable, except a type containing tv itself: a binding like
// t0 := t0 -> t1 would make chasing t0 non-terminating, so it is
// rejected as an infinite type.
func bind(tv TVar, t Type, subs Subst) error {
	if other, ok := t.(TVar); ok && other.ID == tv.ID {
		return nil
	}
	if occurs(tv, t, subs) {
		return &MismatchError{Left: tv, Right: t, Context: "infinite type"}
	}
	subs[tv.ID] = t
	return nil
}

// occurs reports whether tv appears in t once t is chased through subs.
// bind keeps subs acyclic, so the chase terminates.
func occurs(tv TVar, t Type, subs Subst) bool {
	switch t := t.Apply(subs).(type) {
	case TVar:
		return t.ID == tv.ID
	case TArrow:
		return occurs(tv, t.From, subs) || occurs(tv, t.To, subs)
	default:
		return false
	}
}
