package vm16

import (
	"regexp"
	"strings"
)

/*
	Compile turns source text into a 4096-byte program image plus every
	diagnostic the source produced, in three strictly sequential passes:

	  1. validate-labels  - collect label names, rejecting invalid \w+
	                         names and duplicates, without knowing addresses
	                         yet.
	  2. emit-with-placeholders - walk the source again, this time tracking
	                         the address cursor. Instructions are encoded to
	                         bytes; label definitions record their address;
	                         label references are emitted as Number(0) and
	                         remembered as a "mention" (name, patch address,
	                         line) for pass 3.
	  3. back-patch       - for every mention, resolve the name against the
	                         label table built in pass 2 and overwrite the
	                         placeholder word, or emit NoLabelWithSuchName.

	A failing line never stops the run: Compile collects every error it
	can and always returns a full (possibly garbage-on-error) program image
	alongside them.
*/

var labelNameRegex = regexp.MustCompile(`^\w+$`)

// mention records a pending label reference found during pass 2: the name
// to resolve, the byte offset of its 2-byte placeholder in the image, and
// the source line it came from (for NoLabelWithSuchName).
type mention struct {
	name      string
	patchAddr int
	line      int
}

// sourceLine is one physical line of source, with its byte range in the
// original text (end-exclusive, including the trailing newline) and its raw
// text; stripCommentAndTrim produces the content each pass works on.
type sourceLine struct {
	start, end int
	text       string
}

func splitSourceLines(source string) []sourceLine {
	var lines []sourceLine
	offset := 0
	for offset <= len(source) {
		rest := source[offset:]
		nl := strings.IndexByte(rest, '\n')
		var raw string
		var next int
		if nl == -1 {
			raw = rest
			next = len(source)
		} else {
			raw = rest[:nl+1]
			next = offset + nl + 1
		}
		lines = append(lines, sourceLine{start: offset, end: next, text: raw})
		if nl == -1 {
			break
		}
		offset = next
	}
	return lines
}

// stripCommentAndTrim lowercases the line, cuts it at the first ';', and
// trims surrounding whitespace.
func stripCommentAndTrim(raw string) string {
	lowered := strings.ToLower(raw)
	if i := strings.IndexByte(lowered, ';'); i != -1 {
		lowered = lowered[:i]
	}
	return strings.TrimSpace(lowered)
}

// Compile assembles source text into a program image and the full list of
// diagnostics raised along the way. It is a pure function of source: equal
// input always yields an equal image and an equal (ordered) error list.
func Compile(source string) ([MaxProgramSize]byte, []CompileError) {
	lines := splitSourceLines(source)
	var errs []CompileError

	// Pass 1: validate-labels.
	confirmedLabels := make(map[string]bool)
	seenLabels := make(map[string]bool)
	for i, ln := range lines {
		content := stripCommentAndTrim(ln.text)
		if content == "" || !strings.HasSuffix(content, ":") {
			continue
		}
		name := content[:len(content)-1]
		if !labelNameRegex.MatchString(name) {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: ln.start, End: ln.end},
				Err:   CompileInvalidLabelName{Line: i, Name: name},
			})
			continue
		}
		if seenLabels[name] {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: ln.start, End: ln.end},
				Err:   CompileLabelAlreadyExists{Line: i, Name: name},
			})
			continue
		}
		seenLabels[name] = true
		confirmedLabels[name] = true
	}

	// Pass 2: emit-with-placeholders.
	var program [MaxProgramSize]byte
	labelAddrs := make(map[string]uint16)
	var mentions []mention
	addr := 0

	for i, ln := range lines {
		content := stripCommentAndTrim(ln.text)
		if content == "" {
			continue
		}

		if strings.HasSuffix(content, ":") {
			name := content[:len(content)-1]
			if confirmedLabels[name] {
				if _, already := labelAddrs[name]; !already {
					labelAddrs[name] = uint16(addr)
				}
			}
			continue
		}

		fields := strings.Fields(content)
		mnemonicEnd := strings.IndexAny(content, " \t")
		var mnemonic, rest string
		if mnemonicEnd == -1 {
			mnemonic = content
			rest = ""
		} else {
			mnemonic = fields[0]
			rest = strings.TrimSpace(content[mnemonicEnd+1:])
		}

		opcode, instr, ok := lookupInstruction(mnemonic)
		if !ok {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: ln.start, End: ln.end},
				Err:   CompileUnknownInstruction{Line: i, Name: mnemonic},
			})
			continue
		}

		var operandTexts []string
		if rest != "" {
			for _, part := range strings.Split(rest, ",") {
				part = strings.TrimSpace(part)
				if part != "" {
					operandTexts = append(operandTexts, part)
				}
			}
		}

		expected := instr.Accepted.Count()
		if len(operandTexts) != expected {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: ln.start, End: ln.end},
				Err:   CompileWrongNumberOfOperands{Line: i, Expected: expected, Found: len(operandTexts)},
			})
			continue
		}

		masks := [2]uint8{instr.Accepted.First, instr.Accepted.Second}
		ops := make([]Operand, 0, expected)
		var lineMentions []mention
		lineOK := true

		for slot, text := range operandTexts {
			op, pending, matched := parseOperandSyntax(text)
			if !matched {
				errs = append(errs, CompileError{
					Range: ByteRange{Start: ln.start, End: ln.end},
					Err:   CompileInvalidOperand{Line: i, Text: text},
				})
				lineOK = false
				continue
			}
			if op.Kind.mask()&masks[slot] == 0 {
				errs = append(errs, CompileError{
					Range: ByteRange{Start: ln.start, End: ln.end},
					Err: CompileWrongOperandType{
						Line:     i,
						Expected: describeMask(masks[slot]),
						Found:    describeMask(op.Kind.mask()),
					},
				})
				lineOK = false
				continue
			}
			ops = append(ops, op)
			if pending != nil {
				lineMentions = append(lineMentions, mention{name: pending.name, line: i})
			} else {
				lineMentions = append(lineMentions, mention{name: ""})
			}
		}

		if !lineOK {
			continue
		}

		size := 2
		for _, op := range ops {
			if op.Kind == KindNumber {
				size = 4
				break
			}
		}

		if addr+size > MaxProgramSize {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: ln.start, End: ln.end},
				Err:   CompileOutOfMemory{Line: i},
			})
			continue
		}

		program[addr] = opcode
		var op1Nibble, op2Nibble uint8
		if len(ops) >= 1 {
			op1Nibble = encodeOperandNibble(ops[0])
		}
		if len(ops) >= 2 {
			op2Nibble = encodeOperandNibble(ops[1])
		}
		program[addr+1] = (op1Nibble << 4) | op2Nibble

		if size == 4 {
			immAddr := addr + 2
			for slot, op := range ops {
				if op.Kind != KindNumber {
					continue
				}
				program[immAddr] = byte(op.Value >> 8)
				program[immAddr+1] = byte(op.Value)
				if lineMentions[slot].name != "" {
					mentions = append(mentions, mention{
						name:      lineMentions[slot].name,
						patchAddr: immAddr,
						line:      i,
					})
				}
			}
		}

		addr += size
	}

	// Pass 3: back-patch.
	for _, m := range mentions {
		target, ok := labelAddrs[m.name]
		if !ok {
			errs = append(errs, CompileError{
				Range: ByteRange{Start: lines[m.line].start, End: lines[m.line].end},
				Err:   CompileNoLabelWithSuchName{Line: m.line, Name: m.name},
			})
			continue
		}
		program[m.patchAddr] = byte(target >> 8)
		program[m.patchAddr+1] = byte(target)
	}

	return program, errs
}
