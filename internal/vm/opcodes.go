// Package vm implements the bytecode compiler and the categorical
// abstract machine that executes it: an operand stack, an environment
// of lexical bindings, and a dump of saved return states.
package vm

// Opcode represents a single machine instruction.
type Opcode byte

const (
	OP_CONST   Opcode = iota // u16 pool index: push integer literal
	OP_ACCESS                // u16 env index: push environment[idx], 0 = innermost
	OP_CLOSURE               // u16 body length: push closure over current env, skip body
	OP_GRAB                  // pop operand, bind as innermost environment entry
	OP_APPLY                 // pop argument then callable, enter the closure
	OP_RETURN                // pop result, restore the saved state (or halt)
	OP_ADD                   // pop two ints, push sum
	OP_MUL                   // pop two ints, push product
)

func (op Opcode) String() string {
	switch op {
	case OP_CONST:
		return "CONST"
	case OP_ACCESS:
		return "ACCESS"
	case OP_CLOSURE:
		return "CLOSURE"
	case OP_GRAB:
		return "GRAB"
	case OP_APPLY:
		return "APPLY"
	case OP_RETURN:
		return "RETURN"
	case OP_ADD:
		return "ADD"
	case OP_MUL:
		return "MUL"
	default:
		return "UNKNOWN"
	}
}
