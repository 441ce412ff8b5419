package vm

// Chunk is a compiled program: a flat byte sequence plus a constant
// pool of integer literals. Closure bodies are laid out inline after
// their OP_CLOSURE instruction.
type Chunk struct {
	// Code is the bytecode instructions
	Code []byte

	// Consts is the integer literal pool
	Consts []int64

	// Lines maps bytecode offset to source line number (for errors)
	Lines []int

	// File is the source file name
	File string
}

// NewChunk creates a new empty chunk.
func NewChunk() *Chunk {
	return &Chunk{
		Code:   make([]byte, 0, 64),
		Consts: make([]int64, 0, 8),
		Lines:  make([]int, 0, 64),
	}
}

// Write adds a byte to the chunk with line info.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp writes an opcode to the chunk.
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.Write(byte(op), line)
}

// WriteU16 writes a 2-byte big-endian operand.
func (c *Chunk) WriteU16(v int, line int) {
	c.Write(byte(v>>8), line)
	c.Write(byte(v), line)
}

// PatchU16 overwrites a previously written 2-byte operand at offset.
func (c *Chunk) PatchU16(offset, v int) {
	c.Code[offset] = byte(v >> 8)
	c.Code[offset+1] = byte(v)
}

// AddConstant adds a literal to the pool and returns its index.
func (c *Chunk) AddConstant(value int64) int {
	c.Consts = append(c.Consts, value)
	return len(c.Consts) - 1
}

// ReadU16 reads a 2-byte big-endian operand at offset.
func (c *Chunk) ReadU16(offset int) int {
	return int(c.Code[offset])<<8 | int(c.Code[offset+1])
}

// Len returns the number of bytes in the chunk.
func (c *Chunk) Len() int {
	return len(c.Code)
}
