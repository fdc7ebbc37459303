package vm16

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSmallestImage(t *testing.T) {
	program, errs := Compile("stop\n")
	require.Empty(t, errs)
	assert.Equal(t, byte(13), program[0])
	for i := 1; i < MaxProgramSize; i++ {
		assert.Zerof(t, program[i], "byte %d should be zero", i)
	}
}

func TestCompileImmediateLoad(t *testing.T) {
	program, errs := Compile("mov r0, 1\n")
	require.Empty(t, errs)
	assert.Equal(t, []byte{1, 0x0F, 0x00, 0x01}, program[:4])
}

func TestCompileBackwardLabelLoop(t *testing.T) {
	source := "mov r0, -1\na:\nadd r0, 1\njmp @a\nstop\n"
	program, errs := Compile(source)
	require.Empty(t, errs)

	e := NewExecutor()
	e.Load(program)

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(0xFFFF), e.Registers[0])
	assert.Equal(t, uint16(4), e.CurrAddr)

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(0), e.Registers[0])

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(4), e.CurrAddr)

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(1), e.Registers[0])
}

func TestCompilePostIncrementCopy(t *testing.T) {
	program, errs := Compile("mov (r0), (r1)+\n")
	require.Empty(t, errs)

	e := NewExecutor()
	e.Load(program)
	e.Registers[0] = 0x100
	e.Registers[1] = 0x200
	e.Memory[0x200] = 0xAB
	e.Memory[0x201] = 0xCD

	require.NoError(t, e.Step())
	assert.Equal(t, byte(0xAB), e.Memory[0x100])
	assert.Equal(t, byte(0xCD), e.Memory[0x101])
	assert.Equal(t, uint16(0x202), e.Registers[1])
	assert.Equal(t, uint16(0x100), e.Registers[0])
}

func TestCompileLabelNotFound(t *testing.T) {
	_, errs := Compile("jmp @nowhere\n")
	require.Len(t, errs, 1)
	assert.Equal(t, CompileNoLabelWithSuchName{Line: 0, Name: "nowhere"}, errs[0].Err)
}

func TestCompileOutOfMemory(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 2049; i++ {
		b.WriteString("nop\n")
	}

	_, errs := Compile(b.String())
	require.Len(t, errs, 1)
	assert.Equal(t, CompileOutOfMemory{Line: 2048}, errs[0].Err)
}

func TestCompilePortWriteThenRead(t *testing.T) {
	program, errs := Compile("wrt p3, 0xFFFF\nread r0, p3\n")
	require.Empty(t, errs)

	e := NewExecutor()
	e.Load(program)

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(0xFFFF), e.Display[3])

	require.NoError(t, e.Step())
	assert.Equal(t, uint16(0xFFFF), e.Registers[0])
}

func TestCompileUnknownInstruction(t *testing.T) {
	_, errs := Compile("frobnicate r0\n")
	require.Len(t, errs, 1)
	assert.Equal(t, CompileUnknownInstruction{Line: 0, Name: "frobnicate"}, errs[0].Err)
}

func TestCompileInvalidLabelName(t *testing.T) {
	_, errs := Compile("1 bad label:\nstop\n")
	require.Len(t, errs, 1)
	_, ok := errs[0].Err.(CompileInvalidLabelName)
	assert.True(t, ok)
}

func TestCompileLabelAlreadyExists(t *testing.T) {
	_, errs := Compile("a:\nstop\na:\nstop\n")
	require.Len(t, errs, 1)
	assert.Equal(t, CompileLabelAlreadyExists{Line: 2, Name: "a"}, errs[0].Err)
}

func TestCompileWrongNumberOfOperands(t *testing.T) {
	_, errs := Compile("mov r0\n")
	require.Len(t, errs, 1)
	assert.Equal(t, CompileWrongNumberOfOperands{Line: 0, Expected: 2, Found: 1}, errs[0].Err)
}

func TestCompileWrongOperandType(t *testing.T) {
	_, errs := Compile("mov 5, r0\n")
	require.Len(t, errs, 1)
	_, ok := errs[0].Err.(CompileWrongOperandType)
	assert.True(t, ok)
}

func TestCompileInvalidOperand(t *testing.T) {
	_, errs := Compile("mov r0, $$$\n")
	require.Len(t, errs, 1)
	assert.Equal(t, CompileInvalidOperand{Line: 0, Text: "$$$"}, errs[0].Err)
}

func TestCompileIsDeterministic(t *testing.T) {
	source := "mov r0, 1\nadd r0, r1\nstop\n"
	p1, e1 := Compile(source)
	p2, e2 := Compile(source)
	assert.Equal(t, p1, p2)
	assert.Equal(t, e1, e2)
}

func TestCompileCommentsAreTransparent(t *testing.T) {
	plain, errs1 := Compile("mov r0, 1\nstop\n")
	commented, errs2 := Compile("mov r0, 1\nstop ; halt now\n")
	require.Empty(t, errs1)
	require.Empty(t, errs2)
	assert.Equal(t, plain, commented)
}

func TestCompileIsCaseInsensitive(t *testing.T) {
	lower, errs1 := Compile("mov r0, 1\nstop\n")
	upper, errs2 := Compile("MOV R0, 1\nSTOP\n")
	require.Empty(t, errs1)
	require.Empty(t, errs2)
	assert.Equal(t, lower, upper)
}

func TestWrapLawForAdd(t *testing.T) {
	for _, a := range []uint16{0, 1, 0x7FFF, 0xFFFF, 0x8000} {
		for _, b := range []uint16{0, 1, 2, 0xFFFF} {
			program, errs := Compile(fmt.Sprintf("mov r0, %d\nadd r0, %d\n", int32(a), int32(b)))
			require.Empty(t, errs)

			e := NewExecutor()
			e.Load(program)
			require.NoError(t, e.Step())
			require.NoError(t, e.Step())
			assert.Equal(t, a+b, e.Registers[0])
		}
	}
}
