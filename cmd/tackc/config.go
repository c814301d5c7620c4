// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/tack-lang/engine"
)

// Config carries the tool settings a user can put in a TOML file.
type Config struct {
	// CacheSize bounds the engine's verified-script cache.
	CacheSize int

	// HistoryFile is where the REPL persists its input history.
	HistoryFile string

	// Prompt is the REPL input prompt.
	Prompt string
}

func defaultConfig() Config {
	return Config{
		CacheSize:   engine.DefaultCacheSize,
		HistoryFile: ".tack_history",
		Prompt:      "tack> ",
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// loadConfig returns the defaults overlaid with the file named by the
// global --config flag, when present.  A bad config file aborts the tool.
func loadConfig(ctx *cli.Context) Config {
	cfg := defaultConfig()
	path := ctx.GlobalString(configFileFlag.Name)
	if path == "" {
		return cfg
	}
	if err := loadConfigFile(path, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	return nil
}
