package vm16

import (
	"bufio"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
	"strings"
)

// Run steps the executor to completion with the garbage collector disabled.
// The previous GC setting is restored before Run returns, success or fault.
func Run(e *Executor) error {
	gcPercent := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gcPercent)

	return e.Run()
}

// RunInteractive drives the executor from a line-oriented command stream:
//
//	n, next                execute one instruction
//	r, run                 free-run until a breakpoint or halt
//	b <addr>, break <addr> toggle a breakpoint at a program address
//
// It prints the executor's state after each step taken while waiting for
// input, and again whenever a breakpoint is hit during a free run.
func RunInteractive(e *Executor, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "commands: n(ext), r(un), b(reak) <addr>")
	printState(out, e)

	reader := bufio.NewReader(in)
	breakpoints := make(map[uint16]struct{})
	waitForInput := true
	lastBreak := uint16(0xFFFF)

	for {
		line := ""
		if waitForInput {
			fmt.Fprint(out, "\n-> ")
			raw, err := reader.ReadString('\n')
			if err != nil && raw == "" {
				return nil
			}
			line = strings.ToLower(strings.TrimSpace(raw))
		} else if _, hit := breakpoints[e.CurrAddr]; hit && e.CurrAddr != lastBreak {
			fmt.Fprintln(out, "breakpoint")
			printState(out, e)
			waitForInput = true
			lastBreak = e.CurrAddr
			continue
		}

		switch {
		case !waitForInput || line == "n" || line == "next":
			lastBreak = 0xFFFF
			err := e.Step()
			if waitForInput {
				printState(out, e)
			}
			if err != nil {
				fmt.Fprintln(out, err)
				return err
			}
			if e.HasFinished {
				return nil
			}
		case line == "r" || line == "run":
			waitForInput = false
		case strings.HasPrefix(line, "b"):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: b <addr>")
				continue
			}
			addr, err := strconv.ParseUint(fields[1], 0, 16)
			if err != nil {
				fmt.Fprintln(out, "bad address:", err)
				continue
			}
			if _, ok := breakpoints[uint16(addr)]; ok {
				delete(breakpoints, uint16(addr))
			} else {
				breakpoints[uint16(addr)] = struct{}{}
			}
		}
	}
}

func printState(out io.Writer, e *Executor) {
	fmt.Fprintf(out, "pc=%#04x halted=%v registers=%v flags=%#04x\n",
		e.CurrAddr, e.HasFinished, e.Registers, e.ProgramStateReg)
}
