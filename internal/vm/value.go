package vm

import "fmt"

// ValueType identifies the kind of value stored in the Value struct.
type ValueType uint8

const (
	ValInt ValueType = iota
	ValClosure
)

// Value is a stack-allocated tagged union. Integers live in Data;
// closures are heap objects referenced by Closure.
type Value struct {
	Type    ValueType
	Data    uint64
	Closure *Closure
}

// Closure pairs a body entry point with the environment captured when
// the closure value was constructed. Immutable once created.
type Closure struct {
	Entry int // byte offset of the body's first instruction (its GRAB)
	Env   *Env
}

func IntVal(v int64) Value {
	return Value{Type: ValInt, Data: uint64(v)}
}

func ClosureVal(c *Closure) Value {
	return Value{Type: ValClosure, Closure: c}
}

func (v Value) AsInt() int64 { return int64(v.Data) }

func (v Value) IsInt() bool     { return v.Type == ValInt }
func (v Value) IsClosure() bool { return v.Type == ValClosure }

func (v Value) String() string {
	switch v.Type {
	case ValInt:
		return fmt.Sprintf("%d", v.AsInt())
	case ValClosure:
		return fmt.Sprintf("<closure@%04d>", v.Closure.Entry)
	default:
		return "<invalid>"
	}
}

// Equals compares two values. Closures compare by identity.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.Type == ValClosure {
		return v.Closure == other.Closure
	}
	return v.Data == other.Data
}
