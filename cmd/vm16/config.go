package main

import "github.com/BurntSushi/toml"

// Config holds the optional on-disk defaults loaded from --config. A missing
// --config flag leaves every field at its zero value. Only the build command
// reads the config, and only OutputPath (an empty value means "use the
// built-in default"); TicksPerSecond and DebugMode are decoded but no command
// uses them.
type Config struct {
	TicksPerSecond int    `toml:"ticks_per_second"`
	DebugMode      bool   `toml:"debug_mode"`
	OutputPath     string `toml:"output_path"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
