package vm

import (
	"fmt"
	"strings"
)

// traceStep writes one line describing the machine state before the
// next transition: step number, offset, instruction, operand stack and
// environment depth.
func (m *Machine) traceStep(step int) {
	op := Opcode(m.chunk.Code[m.ip])

	var instr string
	switch op {
	case OP_CONST:
		instr = fmt.Sprintf("%s %d", op, m.chunk.Consts[m.chunk.ReadU16(m.ip+1)])
	case OP_ACCESS, OP_CLOSURE:
		instr = fmt.Sprintf("%s %d", op, m.chunk.ReadU16(m.ip+1))
	default:
		instr = op.String()
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range m.stack {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("]")

	fmt.Fprintf(m.trace, "%4d | %04d %-12s | stack=%-24s | env=%d dump=%d\n",
		step, m.ip, instr, sb.String(), m.env.Len(), len(m.dump))
}
