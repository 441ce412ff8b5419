package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of the bytecode.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("== %s ==\n", name))

	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&sb, chunk, offset)
	}

	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	sb.WriteString(fmt.Sprintf("%04d ", offset))

	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		sb.WriteString("   | ")
	} else {
		sb.WriteString(fmt.Sprintf("%4d ", chunk.Lines[offset]))
	}

	op := Opcode(chunk.Code[offset])

	switch op {
	case OP_CONST:
		idx := chunk.ReadU16(offset + 1)
		sb.WriteString(fmt.Sprintf("%-10s %4d  ; %d\n", op, idx, chunk.Consts[idx]))
		return offset + 3
	case OP_ACCESS:
		sb.WriteString(fmt.Sprintf("%-10s %4d\n", op, chunk.ReadU16(offset+1)))
		return offset + 3
	case OP_CLOSURE:
		bodyLen := chunk.ReadU16(offset + 1)
		sb.WriteString(fmt.Sprintf("%-10s %4d  ; body %04d..%04d\n", op, bodyLen, offset+3, offset+3+bodyLen-1))
		return offset + 3
	case OP_GRAB, OP_APPLY, OP_RETURN, OP_ADD, OP_MUL:
		sb.WriteString(op.String() + "\n")
		return offset + 1
	default:
		sb.WriteString(fmt.Sprintf("UNKNOWN %d\n", chunk.Code[offset]))
		return offset + 1
	}
}
