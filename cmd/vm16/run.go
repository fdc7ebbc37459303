package main

import (
	"os"

	vm16 "vm16/vm"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run <source.vm16|image.bin>",
	GroupID: "core",
	Short:   "Assemble (if needed) and run a program to completion",
	Run: func(cmd *cobra.Command, args []string) {
		program, err := loadImage(cmd, args)
		if err != nil {
			cmd.PrintErrln("Error:", err)
			os.Exit(1)
		}

		e := vm16.NewExecutor()
		e.Load(program)

		if err := vm16.Run(e); err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		cmd.Printf("halted at pc=%#04x registers=%v display=%v\n", e.CurrAddr, e.Registers, e.Display)
	},
}
