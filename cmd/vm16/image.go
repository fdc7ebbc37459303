package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vm16 "vm16/vm"

	"github.com/spf13/cobra"
)

// loadImage produces a program image from either a pre-assembled .bin file
// or a source file, assembling the latter and surfacing any diagnostics.
func loadImage(cmd *cobra.Command, args []string) ([vm16.MaxProgramSize]byte, error) {
	var program [vm16.MaxProgramSize]byte

	if len(args) < 1 || args[0] == "" {
		return program, fmt.Errorf("no input file provided")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return program, fmt.Errorf("unable to get current working directory: %w", err)
	}
	fullPath := filepath.Join(cwd, args[0])

	if strings.HasSuffix(fullPath, ".bin") {
		raw, err := os.ReadFile(fullPath)
		if err != nil {
			return program, fmt.Errorf("failed to read image: %w", err)
		}
		if len(raw) != vm16.MaxProgramSize {
			return program, fmt.Errorf("image must be exactly %d bytes, got %d", vm16.MaxProgramSize, len(raw))
		}
		copy(program[:], raw)
		return program, nil
	}

	assembled, ok := assembleFile(cmd, fullPath)
	if !ok {
		return program, fmt.Errorf("assembly failed")
	}
	return assembled, nil
}
