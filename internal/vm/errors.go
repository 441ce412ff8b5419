package vm

import "fmt"

// VariableAccessError reports an ACCESS index outside the current
// environment. Always fatal; the machine never clamps the index.
type VariableAccessError struct {
	Index   int
	EnvSize int
}

func (e *VariableAccessError) Error() string {
	return fmt.Sprintf("variable access out of range: index %d, environment size %d", e.Index, e.EnvSize)
}

// NotCallableError reports an APPLY whose callee is not a closure.
type NotCallableError struct {
	Value Value
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("value %s is not callable", e.Value)
}

// StackUnderflowError reports an instruction that needed more operands
// than the stack held. This signals a compiler or machine bug, not a
// user error.
type StackUnderflowError struct {
	Op Opcode
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow in %s", e.Op)
}

// ArithmeticTypeError reports ADD/MUL over a non-integer operand.
type ArithmeticTypeError struct {
	Op    Opcode
	Value Value
}

func (e *ArithmeticTypeError) Error() string {
	return fmt.Sprintf("%s requires integer operands, got %s", e.Op, e.Value)
}

// InvalidHaltError reports a machine that stopped with other than
// exactly one value on the operand stack.
type InvalidHaltError struct {
	StackSize int
}

func (e *InvalidHaltError) Error() string {
	return fmt.Sprintf("invalid final stack state: %d values", e.StackSize)
}

// StepLimitError reports that a configured step budget ran out. The
// budget is a debugging aid for the trace tool, not part of the
// machine's contract.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}
