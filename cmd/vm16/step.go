package main

import (
	"os"

	vm16 "vm16/vm"

	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:     "step <source.vm16|image.bin>",
	GroupID: "core",
	Short:   "Interactively single-step a program (n/r/b <addr>)",
	Run: func(cmd *cobra.Command, args []string) {
		program, err := loadImage(cmd, args)
		if err != nil {
			cmd.PrintErrln("Error:", err)
			os.Exit(1)
		}

		e := vm16.NewExecutor()
		e.Load(program)
		e.IsInDebugMode = true

		if err := vm16.RunInteractive(e, os.Stdin, os.Stdout); err != nil {
			os.Exit(1)
		}
	},
}
