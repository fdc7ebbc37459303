package vm16

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleRoundTripsMnemonics(t *testing.T) {
	program, errs := Compile("mov r0, 1\nadd r0, r1\nstop\n")
	require.Empty(t, errs)

	var out strings.Builder
	Disassemble(program, &out)

	text := out.String()
	assert.Contains(t, text, "mov r0, 0x0001")
	assert.Contains(t, text, "add r0, r1")
	assert.Contains(t, text, "stop")
}

func TestDisassembleMarksIllegalOpcodeAsByte(t *testing.T) {
	var program [MaxProgramSize]byte
	program[0] = 255

	var out strings.Builder
	Disassemble(program, &out)

	assert.Contains(t, out.String(), ".byte 0xff")
}
