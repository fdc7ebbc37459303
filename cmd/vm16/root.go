package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vm16",
	Short: "Assembler and executor for the vm16 instruction set",
	Long: `vm16 assembles source programs for a small 16-bit register machine
and steps them through its fetch-decode-execute executor, standing in for
the graphical front-end's Build/Run/Step controls and hex viewer.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core commands"})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional TOML config file")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(disasmCmd)
}

func loadConfigIfSet() (Config, error) {
	if configPath == "" {
		return Config{}, nil
	}
	return loadConfig(configPath)
}
