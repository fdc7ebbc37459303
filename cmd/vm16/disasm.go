package main

import (
	"os"

	vm16 "vm16/vm"

	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:     "disasm <source.vm16|image.bin>",
	GroupID: "core",
	Short:   "Disassemble a program image back into assembly text",
	Run: func(cmd *cobra.Command, args []string) {
		program, err := loadImage(cmd, args)
		if err != nil {
			cmd.PrintErrln("Error:", err)
			os.Exit(1)
		}

		vm16.Disassemble(program, cmd.OutOrStdout())
	},
}
