package vm16

/*
	The instruction-set table is the shared source of truth: for every
	mnemonic it records the accepted operand-type pair (used by the
	assembler to validate operands and build the "expected" error string,
	and by the executor to disambiguate the overlapping nibble space) and
	an executor thunk that knows how to read its operands, do the work, and
	write results back.

	Opcode 0 is reserved for nop - a freshly zeroed 4KiB image decodes
	entirely as a do-nothing program, matching the "safe default" called
	out in the data model.

	Current instruction set (each row lists the operands the instruction
	takes; nop and stop take none, not and jmp take one):

		nop              no operation
		mov  dst, src    dst <- src
		add  dst, src    dst <- wrapping(dst + src)
		sub  dst, src    dst <- wrapping(dst - src)
		mul  dst, src    dst <- wrapping(dst * src)
		div  dst, src    dst <- wrapping(dst / src); faults on src == 0
		and  dst, src    dst <- dst & src
		or   dst, src    dst <- dst | src
		xor  dst, src    dst <- dst ^ src
		not  dst         dst <- ^dst
		jmp  src         pc <- src (no auto-advance)
		wrt  port, src   display[port] <- src
		read dst, port   dst <- display[port]
		stop             has_finished <- true

	The opcode index IS the numeric encoding, so the order below is fixed:
	appending new mnemonics is safe, reordering existing ones breaks every
	previously assembled image.
*/

// execFn performs one instruction's effect given its already-decoded
// operands. PC advancement for the common case (size bytes) is handled by
// the caller in Step; jmp is the only instruction that moves PC itself,
// signalled by InstructionInfo.NoAutoAdvance.
type execFn func(e *Executor, ops []Operand) error

// InstructionInfo is one row of the ISA table.
type InstructionInfo struct {
	Mnemonic      string
	Accepted      AcceptedOperandTypes
	NoAutoAdvance bool
	Exec          execFn
}

const (
	regAddrAddrInc         = MaskReg | MaskAddr | MaskAddrInc
	regAddrAddrIncOrNumber = regAddrAddrInc | MaskNumber
)

func movLike(e *Executor, ops []Operand) error {
	src, err := e.readOperand(ops[1])
	if err != nil {
		return err
	}
	return e.writeOperand(ops[0], src)
}

func arithLike(op func(a, b uint16) uint16) execFn {
	return func(e *Executor, ops []Operand) error {
		a, err := e.readOperand(ops[0])
		if err != nil {
			return err
		}
		b, err := e.readOperand(ops[1])
		if err != nil {
			return err
		}
		return e.writeOperand(ops[0], op(a, b))
	}
}

func divLike(e *Executor, ops []Operand) error {
	a, err := e.readOperand(ops[0])
	if err != nil {
		return err
	}
	b, err := e.readOperand(ops[1])
	if err != nil {
		return err
	}
	if b == 0 {
		return RuntimeDivisionByZero{Addr: e.CurrAddr}
	}
	return e.writeOperand(ops[0], a/b)
}

func notLike(e *Executor, ops []Operand) error {
	a, err := e.readOperand(ops[0])
	if err != nil {
		return err
	}
	return e.writeOperand(ops[0], ^a)
}

func jmpLike(e *Executor, ops []Operand) error {
	target, err := e.readOperand(ops[0])
	if err != nil {
		return err
	}
	if int(target) >= MaxProgramSize {
		return RuntimeInvalidAddress{Addr: e.CurrAddr, Target: int(target)}
	}
	e.CurrAddr = target
	return nil
}

func nopLike(e *Executor, ops []Operand) error {
	return nil
}

func stopLike(e *Executor, ops []Operand) error {
	e.HasFinished = true
	return nil
}

// instructionSet is indexed by opcode. Index 0 must remain nop.
var instructionSet = [...]InstructionInfo{
	{Mnemonic: "nop", Accepted: AcceptedOperandTypes{0, 0}, Exec: nopLike},
	{Mnemonic: "mov", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: movLike},
	{Mnemonic: "add", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a + b })},
	{Mnemonic: "sub", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a - b })},
	{Mnemonic: "mul", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a * b })},
	{Mnemonic: "div", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: divLike},
	{Mnemonic: "and", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a & b })},
	{Mnemonic: "or", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a | b })},
	{Mnemonic: "xor", Accepted: AcceptedOperandTypes{regAddrAddrInc, regAddrAddrIncOrNumber}, Exec: arithLike(func(a, b uint16) uint16 { return a ^ b })},
	{Mnemonic: "not", Accepted: AcceptedOperandTypes{regAddrAddrInc, 0}, Exec: notLike},
	{Mnemonic: "jmp", Accepted: AcceptedOperandTypes{regAddrAddrIncOrNumber, 0}, NoAutoAdvance: true, Exec: jmpLike},
	{Mnemonic: "wrt", Accepted: AcceptedOperandTypes{MaskPort, regAddrAddrIncOrNumber}, Exec: movLike},
	{Mnemonic: "read", Accepted: AcceptedOperandTypes{regAddrAddrInc, MaskPort}, Exec: movLike},
	{Mnemonic: "stop", Accepted: AcceptedOperandTypes{0, 0}, Exec: stopLike},
}

// mnemonicToOpcode maps lowercase mnemonic -> opcode, built once at init
// from instructionSet so the two never drift apart.
var mnemonicToOpcode map[string]uint8

func init() {
	mnemonicToOpcode = make(map[string]uint8, len(instructionSet))
	for i, instr := range instructionSet {
		mnemonicToOpcode[instr.Mnemonic] = uint8(i)
	}
}

// lookupInstruction returns the ISA row for a mnemonic, case already
// lowercased by the caller (source is lowercased wholesale per §4.3).
func lookupInstruction(mnemonic string) (uint8, InstructionInfo, bool) {
	opcode, ok := mnemonicToOpcode[mnemonic]
	if !ok {
		return 0, InstructionInfo{}, false
	}
	return opcode, instructionSet[opcode], true
}
