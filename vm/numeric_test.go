package vm16

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberDecimal(t *testing.T) {
	n, ok := ParseNumber("42")
	assert.True(t, ok)
	assert.Equal(t, uint16(42), n)
}

func TestParseNumberHex(t *testing.T) {
	n, ok := ParseNumber("0x2a")
	assert.True(t, ok)
	assert.Equal(t, uint16(42), n)
}

func TestParseNumberNegativeMatchesHexWraparound(t *testing.T) {
	neg, ok := ParseNumber("-1")
	assert.True(t, ok)

	hex, ok := ParseNumber("0xffff")
	assert.True(t, ok)

	assert.Equal(t, hex, neg)
	assert.Equal(t, uint16(0xFFFF), neg)
}

func TestParseNumberNegativeHex(t *testing.T) {
	n, ok := ParseNumber("-0x1")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xFFFF), n)
}

func TestParseNumberOverflowWraps(t *testing.T) {
	n, ok := ParseNumber("65537")
	assert.True(t, ok)
	assert.Equal(t, uint16(1), n)
}

func TestParseNumberRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "-", "0x", "r0", "12g", "0xzz"} {
		_, ok := ParseNumber(text)
		assert.Falsef(t, ok, "expected %q to be rejected", text)
	}
}
