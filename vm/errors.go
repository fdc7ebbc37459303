package vm16

import "fmt"

// ByteRange marks a span of the original source text, end-exclusive. The
// assembler always sets it to span an offending line including its
// trailing newline, so the caller can underline it directly.
type ByteRange struct {
	Start int
	End   int
}

// CompileError pairs a source range with the diagnostic raised there.
// Compilation never stops at the first error - every line that can be
// diagnosed independently is. They come back as pass-1 label-definition
// errors, then pass-2 errors in source order, then pass-3 label errors in
// mention order.
type CompileError struct {
	Range ByteRange
	Err   error
}

func (e CompileError) Error() string {
	return e.Err.Error()
}

// Compile-time diagnostics. Line is zero-based internally and rendered
// one-based in Error() strings, matching spec's "line is 1-based in user
// output" convention.

type CompileUnknownInstruction struct {
	Line int
	Name string
}

func (e CompileUnknownInstruction) Error() string {
	return fmt.Sprintf("line %d: unknown instruction %q", e.Line+1, e.Name)
}

type CompileInvalidLabelName struct {
	Line int
	Name string
}

func (e CompileInvalidLabelName) Error() string {
	return fmt.Sprintf("line %d: invalid label name %q", e.Line+1, e.Name)
}

type CompileLabelAlreadyExists struct {
	Line int
	Name string
}

func (e CompileLabelAlreadyExists) Error() string {
	return fmt.Sprintf("line %d: label %q already exists", e.Line+1, e.Name)
}

type CompileNoLabelWithSuchName struct {
	Line int
	Name string
}

func (e CompileNoLabelWithSuchName) Error() string {
	return fmt.Sprintf("line %d: no label named %q", e.Line+1, e.Name)
}

type CompileInvalidOperand struct {
	Line int
	Text string
}

func (e CompileInvalidOperand) Error() string {
	return fmt.Sprintf("line %d: invalid operand %q", e.Line+1, e.Text)
}

type CompileWrongNumberOfOperands struct {
	Line     int
	Expected int
	Found    int
}

func (e CompileWrongNumberOfOperands) Error() string {
	return fmt.Sprintf("line %d: expected %d operand(s), found %d", e.Line+1, e.Expected, e.Found)
}

type CompileWrongOperandType struct {
	Line     int
	Expected string
	Found    string
}

func (e CompileWrongOperandType) Error() string {
	return fmt.Sprintf("line %d: expected %s, found %s", e.Line+1, e.Expected, e.Found)
}

type CompileOutOfMemory struct {
	Line int
}

func (e CompileOutOfMemory) Error() string {
	return fmt.Sprintf("line %d: program exceeds %d bytes", e.Line+1, MaxProgramSize)
}

// Runtime faults. Addr is the instruction address active when the fault
// was raised.

type RuntimeInvalidInstruction struct {
	Addr   uint16
	Opcode uint8
}

func (e RuntimeInvalidInstruction) Error() string {
	return fmt.Sprintf("%#04x: invalid instruction (opcode %#02x)", e.Addr, e.Opcode)
}

type RuntimeInvalidOperand struct {
	Addr   uint16
	Nibble uint8
}

func (e RuntimeInvalidOperand) Error() string {
	return fmt.Sprintf("%#04x: invalid operand (nibble %#x)", e.Addr, e.Nibble)
}

type RuntimeInvalidAddress struct {
	Addr   uint16
	Target int
}

func (e RuntimeInvalidAddress) Error() string {
	return fmt.Sprintf("%#04x: invalid address %#04x", e.Addr, e.Target)
}

type RuntimeDivisionByZero struct {
	Addr uint16
}

func (e RuntimeDivisionByZero) Error() string {
	return fmt.Sprintf("%#04x: division by zero", e.Addr)
}
