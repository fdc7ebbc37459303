package vm16

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperandSyntaxRegisters(t *testing.T) {
	for text, reg := range map[string]uint8{"r0": 0, "r1": 1, "r2": 2, "r3": 3, "sp": 4} {
		op, pending, ok := parseOperandSyntax(text)
		assert.True(t, ok)
		assert.Nil(t, pending)
		assert.Equal(t, Operand{Kind: KindReg, Reg: reg}, op)
	}
}

func TestParseOperandSyntaxAddrAndAddrInc(t *testing.T) {
	op, _, ok := parseOperandSyntax("(r2)")
	assert.True(t, ok)
	assert.Equal(t, Operand{Kind: KindAddr, Reg: 2}, op)

	op, _, ok = parseOperandSyntax("(sp)+")
	assert.True(t, ok)
	assert.Equal(t, Operand{Kind: KindAddrInc, Reg: 4}, op)
}

func TestParseOperandSyntaxPort(t *testing.T) {
	op, _, ok := parseOperandSyntax("p15")
	assert.True(t, ok)
	assert.Equal(t, Operand{Kind: KindPort, Port: 15}, op)

	_, _, ok = parseOperandSyntax("p16")
	assert.False(t, ok)
}

func TestParseOperandSyntaxLabel(t *testing.T) {
	op, pending, ok := parseOperandSyntax("@loop")
	assert.True(t, ok)
	assert.Equal(t, Operand{Kind: KindNumber, Value: 0}, op)
	assert.Equal(t, "loop", pending.name)
}

func TestParseOperandSyntaxNumber(t *testing.T) {
	op, pending, ok := parseOperandSyntax("-1")
	assert.True(t, ok)
	assert.Nil(t, pending)
	assert.Equal(t, Operand{Kind: KindNumber, Value: 0xFFFF}, op)
}

func TestParseOperandSyntaxRejectsGarbage(t *testing.T) {
	_, _, ok := parseOperandSyntax("r4")
	assert.False(t, ok)
}

func TestEncodeDecodeNibbleRoundTrip(t *testing.T) {
	accepted := MaskReg | MaskAddr | MaskAddrInc | MaskNumber

	cases := []Operand{
		{Kind: KindReg, Reg: 3},
		{Kind: KindAddr, Reg: 1},
		{Kind: KindAddrInc, Reg: 4},
		{Kind: KindNumber, Value: 0xBEEF},
	}

	for _, op := range cases {
		nibble := encodeOperandNibble(op)
		decoded, ok := decodeOperandNibble(nibble, accepted, op.Value)
		assert.True(t, ok)
		assert.Equal(t, op, decoded)
	}
}

func TestDecodeOperandNibblePortExclusive(t *testing.T) {
	op, ok := decodeOperandNibble(7, MaskPort, 0)
	assert.True(t, ok)
	assert.Equal(t, Operand{Kind: KindPort, Port: 7}, op)
}

func TestDecodeOperandNibbleRejectsNumberWhenNotAccepted(t *testing.T) {
	_, ok := decodeOperandNibble(NumberOperandCode, MaskReg|MaskAddr|MaskAddrInc, 0x1234)
	assert.False(t, ok)
}

func TestDescribeMaskFixedOrder(t *testing.T) {
	full := MaskReg | MaskAddr | MaskAddrInc | MaskPort | MaskNumber
	assert.Equal(t, "register, address, address++, port or number", describeMask(full))
	assert.Equal(t, "register", describeMask(MaskReg))
	assert.Equal(t, "nothing", describeMask(0))
}
