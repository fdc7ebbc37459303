package main

import (
	"fmt"
	"os"
	"path/filepath"

	vm16 "vm16/vm"

	"github.com/spf13/cobra"
)

// resolveSourcePath validates the CLI args and returns the absolute path to
// the source file to assemble.
func resolveSourcePath(args []string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", fmt.Errorf("no source file provided")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current working directory: %w", err)
	}

	fullPath := filepath.Join(cwd, args[0])
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return "", fmt.Errorf("source file does not exist at path: %s", fullPath)
	}
	return fullPath, nil
}

// assembleFile reads and compiles a source file, printing every diagnostic
// it collects. It returns the image and whether compilation was clean.
func assembleFile(cmd *cobra.Command, path string) ([vm16.MaxProgramSize]byte, bool) {
	var program [vm16.MaxProgramSize]byte

	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return program, false
	}

	program, errs := vm16.Compile(string(sourceBytes))
	for _, e := range errs {
		cmd.PrintErrln(e.Error())
	}
	return program, len(errs) == 0
}
