package vm16

import "encoding/binary"

// MaxProgramSize is the fixed size of the program image in bytes. Program
// counter advancement wraps modulo this size; memory accesses and jump
// targets outside it raise RuntimeInvalidAddress.
const MaxProgramSize = 4096

// initialStackPointer is where SP (register index SPIndex) starts after a
// fresh load or reset: the address of the last byte of the image.
const initialStackPointer = MaxProgramSize - 1

// Executor holds the full machine state and steps a loaded program one
// instruction at a time. Zero value is not ready to run; use NewExecutor.
type Executor struct {
	Registers       [NumRegisters]uint16
	ProgramStateReg uint16
	Memory          [MaxProgramSize]byte
	Display         [16]uint16
	CurrAddr        uint16
	HasFinished     bool
	IsInDebugMode   bool
}

// NewExecutor returns an Executor with no program loaded. Call Load before
// the first Step.
func NewExecutor() *Executor {
	e := &Executor{}
	e.Registers[SPIndex] = initialStackPointer
	return e
}

// Load copies a freshly assembled image into memory and resets everything
// Run/Step need to start from address zero: curr_addr, SP, and the halted
// flag. It does not touch R0-R3 or program_state_reg - callers that want a
// truly clean register file should call ClearRegisters too.
func (e *Executor) Load(program [MaxProgramSize]byte) {
	e.Memory = program
	e.CurrAddr = 0
	e.Registers[SPIndex] = initialStackPointer
	e.HasFinished = false
}

// ClearRegisters zeroes R0-R3 and program_state_reg and resets SP, without
// touching memory or curr_addr.
func (e *Executor) ClearRegisters() {
	for i := 0; i < SPIndex; i++ {
		e.Registers[i] = 0
	}
	e.ProgramStateReg = 0
	e.Registers[SPIndex] = initialStackPointer
}

// Step performs one fetch-decode-execute cycle. Once halted, Step is a
// no-op that returns nil forever - halting is sticky.
func (e *Executor) Step() error {
	if e.HasFinished {
		return nil
	}

	addr := int(e.CurrAddr)
	opcodeByte, err := e.byteAt(addr)
	if err != nil {
		e.HasFinished = true
		return err
	}

	if int(opcodeByte) >= len(instructionSet) {
		e.HasFinished = true
		return RuntimeInvalidInstruction{Addr: e.CurrAddr, Opcode: opcodeByte}
	}
	instr := instructionSet[opcodeByte]

	operandByte, err := e.byteAt(addr + 1)
	if err != nil {
		e.HasFinished = true
		return err
	}
	nibbles := [2]uint8{operandByte >> 4, operandByte & 0x0F}

	count := instr.Accepted.Count()
	size := 2
	needsImmediate := false
	if count >= 1 && nibbles[0] == NumberOperandCode && instr.Accepted.First&MaskNumber != 0 {
		needsImmediate = true
	}
	if count >= 2 && nibbles[1] == NumberOperandCode && instr.Accepted.Second&MaskNumber != 0 {
		needsImmediate = true
	}

	var immediate uint16
	if needsImmediate {
		immediate, err = e.readMem16(addr + 2)
		if err != nil {
			e.HasFinished = true
			return err
		}
		size = 4
	}

	ops := make([]Operand, 0, count)
	masks := [2]uint8{instr.Accepted.First, instr.Accepted.Second}
	for i := 0; i < count; i++ {
		op, ok := decodeOperandNibble(nibbles[i], masks[i], immediate)
		if !ok {
			e.HasFinished = true
			return RuntimeInvalidOperand{Addr: e.CurrAddr, Nibble: nibbles[i]}
		}
		ops = append(ops, op)
	}

	if err := instr.Exec(e, ops); err != nil {
		e.HasFinished = true
		return err
	}

	if !instr.NoAutoAdvance {
		e.CurrAddr = uint16((int(e.CurrAddr) + size) % MaxProgramSize)
	}
	return nil
}

// Run steps until the program halts or a fault is raised.
func (e *Executor) Run() error {
	for !e.HasFinished {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// readOperand implements the read-from semantics of §4.4: Reg reads the
// register directly, Addr/AddrInc dereference through a register value as a
// memory address (AddrInc then advances the register by 2), Port reads the
// display array, and Number returns its literal value.
func (e *Executor) readOperand(op Operand) (uint16, error) {
	switch op.Kind {
	case KindReg:
		return e.Registers[op.Reg], nil
	case KindAddr:
		return e.readMem16(int(e.Registers[op.Reg]))
	case KindAddrInc:
		v, err := e.readMem16(int(e.Registers[op.Reg]))
		if err != nil {
			return 0, err
		}
		e.Registers[op.Reg] += 2
		return v, nil
	case KindPort:
		return e.Display[op.Port], nil
	case KindNumber:
		return op.Value, nil
	default:
		return 0, nil
	}
}

// writeOperand implements the write-to semantics of §4.4, symmetric with
// readOperand: AddrInc writes first, then increments.
func (e *Executor) writeOperand(op Operand, value uint16) error {
	switch op.Kind {
	case KindReg:
		e.Registers[op.Reg] = value
		return nil
	case KindAddr:
		return e.writeMem16(int(e.Registers[op.Reg]), value)
	case KindAddrInc:
		if err := e.writeMem16(int(e.Registers[op.Reg]), value); err != nil {
			return err
		}
		e.Registers[op.Reg] += 2
		return nil
	case KindPort:
		e.Display[op.Port] = value
		return nil
	default:
		return nil
	}
}

func (e *Executor) byteAt(addr int) (byte, error) {
	if addr < 0 || addr >= MaxProgramSize {
		return 0, RuntimeInvalidAddress{Addr: e.CurrAddr, Target: addr}
	}
	return e.Memory[addr], nil
}

func (e *Executor) readMem16(addr int) (uint16, error) {
	if addr < 0 || addr+1 >= MaxProgramSize {
		return 0, RuntimeInvalidAddress{Addr: e.CurrAddr, Target: addr}
	}
	return binary.BigEndian.Uint16(e.Memory[addr : addr+2]), nil
}

func (e *Executor) writeMem16(addr int, value uint16) error {
	if addr < 0 || addr+1 >= MaxProgramSize {
		return RuntimeInvalidAddress{Addr: e.CurrAddr, Target: addr}
	}
	binary.BigEndian.PutUint16(e.Memory[addr:addr+2], value)
	return nil
}
