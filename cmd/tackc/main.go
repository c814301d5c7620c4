// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command tackc is the TACK language front end.
//
// Usage:
//
//	tackc [--config file.toml] check  <source.tack>
//	tackc [--config file.toml] run    <source.tack>
//	tackc [--config file.toml] tokens <source.tack>
//	tackc [--config file.toml] repl
package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/tack-lang/engine"
	"github.com/probechain/tack-lang/lang/lexer"
	"github.com/probechain/tack-lang/lang/token"
	"github.com/probechain/tack-lang/lang/types"
)

const version = "0.1.0"

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}

	checkCommand = cli.Command{
		Action:    checkSource,
		Name:      "check",
		Usage:     "Parse and type-check a source file without running it",
		ArgsUsage: "<source.tack>",
	}
	runCommand = cli.Command{
		Action:    runSource,
		Name:      "run",
		Usage:     "Check and execute a source file",
		ArgsUsage: "<source.tack>",
	}
	tokensCommand = cli.Command{
		Action:    dumpTokens,
		Name:      "tokens",
		Usage:     "Dump the token stream of a source file",
		ArgsUsage: "<source.tack>",
	}
	replCommand = cli.Command{
		Action: runRepl,
		Name:   "repl",
		Usage:  "Start an interactive session",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "tackc"
	app.Usage = "the TACK language front end"
	app.Version = version
	app.Flags = []cli.Flag{configFileFlag}
	app.Commands = []cli.Command{
		checkCommand,
		runCommand,
		tokensCommand,
		replCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fireError(err)
		os.Exit(1)
	}
}

// readSourceArg loads the single source-file argument of a command.
func readSourceArg(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() < 1 {
		return "", "", fmt.Errorf("missing source file argument")
	}
	filename := ctx.Args().First()
	src, err := ioutil.ReadFile(filename)
	if err != nil {
		return "", "", err
	}
	return filename, string(src), nil
}

func checkSource(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	filename, src, err := readSourceArg(ctx)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg.CacheSize)
	if err != nil {
		return err
	}
	if _, err := eng.Check(filename, src); err != nil {
		return err
	}
	color.Green("%s: ok", filename)
	return nil
}

func runSource(ctx *cli.Context) error {
	cfg := loadConfig(ctx)
	filename, src, err := readSourceArg(ctx)
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg.CacheSize)
	if err != nil {
		return err
	}
	return eng.Run(filename, src, os.Stdin, os.Stdout)
}

func dumpTokens(ctx *cli.Context) error {
	filename, src, err := readSourceArg(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Position", "Type", "Literal"})
	for _, tok := range lexer.New(filename, src).Tokenize() {
		if tok.Type == token.EOF {
			break
		}
		table.Append([]string{tok.Pos.String(), tok.Type.String(), tok.Literal})
	}
	table.Render()
	return nil
}

// fireError renders a diagnostic for the user.  Structured errors carry
// their own position; the class decides the label.
func fireError(err error) {
	var diag *types.Error
	if errors.As(err, &diag) {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "%s error: ", diag.Class)
		fmt.Fprintf(os.Stderr, "%s\n", diag)
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
}
