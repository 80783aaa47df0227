// rigscribe - chat transcript rendering and export.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/rigscribe/internal/cli"
	"github.com/jeranaias/rigscribe/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Config load failures fall back to defaults with a warning rather
	// than blocking commands that may not need config at all.
	if cfg, err := config.Load(); err != nil || cfg == nil {
		if !args.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: using default configuration: %v\n", err)
		}
		config.SetGlobal(config.Default())
	} else {
		config.SetGlobal(cfg)
	}

	var err error
	switch cmd {
	case cli.CmdList:
		err = cli.HandleList(args)
	case cli.CmdRecord:
		err = cli.HandleRecord(args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdSummary:
		err = cli.HandleSummary(args)
	case cli.CmdPreview:
		err = cli.HandlePreview(args)
	case cli.CmdSearch:
		err = cli.HandleSearch(args)
	case cli.CmdIndex:
		err = cli.HandleIndex(args)
	case cli.CmdWatch:
		err = cli.HandleWatch(args)
	case cli.CmdDelete:
		err = cli.HandleDelete(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
