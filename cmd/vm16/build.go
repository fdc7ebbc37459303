package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var buildOutputPath string

var buildCmd = &cobra.Command{
	Use:     "build <source.vm16>",
	GroupID: "core",
	Short:   "Assemble a source file into a 4096-byte program image",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBuild(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputPath, "output", "o", "", "output binary path (defaults to the config's output_path, else <source>.bin)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, err := resolveSourcePath(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfigIfSet()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := buildOutputPath
	if out == "" {
		out = cfg.OutputPath
	}
	if out == "" {
		out = path + ".bin"
	}

	program, ok := assembleFile(cmd, path)
	if !ok {
		return fmt.Errorf("assembly failed")
	}

	if err := os.WriteFile(out, program[:], 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	cmd.Printf("wrote %d bytes to %s\n", len(program), out)
	return nil
}
