// Copyright 2025 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/tack-lang/lang/lexer"
	"github.com/probechain/tack-lang/lang/parser"
	"github.com/probechain/tack-lang/lang/stdlib"
	"github.com/probechain/tack-lang/lang/types"
	"github.com/probechain/tack-lang/lang/verifier"
	"github.com/probechain/tack-lang/lang/vm"
)

const replHelp = `REPL commands:
  :stack   Show the current stack depth and top value
  :help    Show this help
  :quit    Exit the REPL
`

// runRepl drives an interactive session.  The function table and the value
// stack persist across lines, so functions declared earlier stay callable
// and values stay on the stack.  Each line is parsed and verified before it
// runs; verification starts from the type currently on top of the live
// stack.
func runRepl(ctx *cli.Context) error {
	cfg := loadConfig(ctx)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := filepath.Join(os.TempDir(), cfg.HistoryFile)
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("TACK %s REPL — Ctrl+D or :quit to exit\n", version)

	table := stdlib.NewTable()
	machine := vm.New(table)

	for {
		input, err := line.Prompt(cfg.Prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case ":quit":
			return nil
		case ":help":
			fmt.Print(replHelp)
			continue
		case ":stack":
			if top, ok := machine.Top(); ok {
				fmt.Printf("depth %d, top %s (%s)\n", machine.Depth(), top, top.T)
			} else {
				fmt.Println("stack empty")
			}
			continue
		}
		line.AppendHistory(input)

		evalLine(table, machine, input)
	}
}

// evalLine checks and runs one line of input against the live session.
func evalLine(table *types.Table, machine *vm.VM, input string) {
	toks := lexer.New("repl", input).Tokenize()

	prog, declared, err := parser.Parse(toks, table)
	if err != nil {
		fireError(err)
		return
	}
	if err := verifier.Verify(prog, table, declared,
		verifier.WithRootType(machine.TopType())); err != nil {
		fireError(err)
		return
	}
	if err := machine.Run(prog); err != nil {
		fireError(err)
		return
	}

	if top, ok := machine.Top(); ok {
		color.Cyan("%s  (%s)", top, top.T)
	}
}
