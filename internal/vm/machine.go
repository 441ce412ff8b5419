package vm

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// frame is one saved return state on the dump.
type frame struct {
	retIP int
	env   *Env
}

const initialStackSize = 256
const initialDumpSize = 64

// Machine executes a Chunk. State is the classic CAM quadruple:
// remaining code (chunk + ip), operand stack, environment, dump. The
// dump and operand stack are heap-backed slices, so call depth is
// bounded by memory, not by the host stack.
type Machine struct {
	chunk *Chunk
	ip    int

	stack []Value
	env   *Env
	dump  []frame

	// StepLimit aborts a run after that many transitions when > 0.
	// Debugging aid only; a well-typed term needs no fuel.
	StepLimit int

	trace io.Writer
}

// New creates a machine with no trace output.
func New() *Machine {
	return &Machine{
		stack: make([]Value, 0, initialStackSize),
		dump:  make([]frame, 0, initialDumpSize),
	}
}

// SetTrace makes the machine emit one line per transition to w.
func (m *Machine) SetTrace(w io.Writer) {
	m.trace = w
}

// Run executes chunk with the environment pre-seeded from initialEnv
// (bindings for declared free identifiers; nil for a closed term). At a
// normal halt the operand stack holds exactly one value, the result.
func (m *Machine) Run(chunk *Chunk, initialEnv *Env) (Value, error) {
	m.chunk = chunk
	m.ip = 0
	m.stack = m.stack[:0]
	m.dump = m.dump[:0]
	m.env = initialEnv

	if m.trace != nil {
		fmt.Fprintf(m.trace, "== run %s ==\n", uuid.NewString())
	}

	code := chunk.Code
	steps := 0
	halted := false

	for !halted && m.ip < len(code) {
		steps++
		if m.StepLimit > 0 && steps > m.StepLimit {
			return Value{}, &StepLimitError{Limit: m.StepLimit}
		}
		if m.trace != nil {
			m.traceStep(steps)
		}

		op := Opcode(code[m.ip])
		m.ip++

		switch op {
		case OP_CONST:
			idx := chunk.ReadU16(m.ip)
			m.ip += 2
			m.push(IntVal(chunk.Consts[idx]))

		case OP_ACCESS:
			idx := chunk.ReadU16(m.ip)
			m.ip += 2
			v, ok := m.env.Lookup(idx)
			if !ok {
				return Value{}, &VariableAccessError{Index: idx, EnvSize: m.env.Len()}
			}
			m.push(v)

		case OP_CLOSURE:
			bodyLen := chunk.ReadU16(m.ip)
			m.ip += 2
			// Capture happens here, at the point the value is
			// constructed, not at the later call site.
			m.push(ClosureVal(&Closure{Entry: m.ip, Env: m.env}))
			m.ip += bodyLen

		case OP_GRAB:
			v, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			m.env = m.env.Push(v)

		case OP_APPLY:
			arg, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			callee, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			if !callee.IsClosure() {
				return Value{}, &NotCallableError{Value: callee}
			}
			m.dump = append(m.dump, frame{retIP: m.ip, env: m.env})
			m.env = callee.Closure.Env
			// The body's leading GRAB moves the argument into the
			// environment: net effect, captured env extended by one.
			m.push(arg)
			m.ip = callee.Closure.Entry

		case OP_RETURN:
			result, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			if len(m.dump) == 0 {
				m.push(result)
				halted = true
				break
			}
			f := m.dump[len(m.dump)-1]
			m.dump = m.dump[:len(m.dump)-1]
			m.ip = f.retIP
			m.env = f.env
			m.push(result)

		case OP_ADD, OP_MUL:
			right, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			left, err := m.pop(op)
			if err != nil {
				return Value{}, err
			}
			if !left.IsInt() {
				return Value{}, &ArithmeticTypeError{Op: op, Value: left}
			}
			if !right.IsInt() {
				return Value{}, &ArithmeticTypeError{Op: op, Value: right}
			}
			if op == OP_ADD {
				m.push(IntVal(left.AsInt() + right.AsInt()))
			} else {
				m.push(IntVal(left.AsInt() * right.AsInt()))
			}

		default:
			return Value{}, fmt.Errorf("unknown opcode %d at offset %d", byte(op), m.ip-1)
		}
	}

	if len(m.stack) != 1 {
		return Value{}, &InvalidHaltError{StackSize: len(m.stack)}
	}
	return m.stack[0], nil
}

func (m *Machine) push(v Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop(op Opcode) (Value, error) {
	if len(m.stack) == 0 {
		return Value{}, &StackUnderflowError{Op: op}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}
