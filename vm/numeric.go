package vm16

import "strings"

// ParseNumber converts a trimmed numeric literal into its 16-bit wrapped
// representation. It accepts decimal and "0x"-prefixed hexadecimal digits
// with an optional leading '-'. Overflow wraps the same way for a plain
// decimal literal as it does for the equivalent hex literal, so "-1" and
// "0xffff" parse to the same word.
//
// The accumulation happens in a signed 32-bit accumulator using wrapping
// multiply/add, then the sign is applied and the result is narrowed modulo
// 2^16 - this mirrors the highlighter's number detector so that lexing and
// assembly never disagree about what counts as a number.
func ParseNumber(text string) (uint16, bool) {
	sign := int32(1)
	if strings.HasPrefix(text, "-") {
		sign = -1
		text = text[1:]
	}

	base := int32(10)
	if strings.HasPrefix(text, "0x") {
		base = 16
		text = text[2:]
	}

	if text == "" {
		return 0, false
	}

	var acc int32
	for _, c := range text {
		digit, ok := hexDigitValue(c)
		if !ok || int32(digit) >= base {
			return 0, false
		}
		acc = acc*base + int32(digit)
	}

	return uint16(acc * sign), true
}

func hexDigitValue(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
