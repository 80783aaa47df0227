// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command: show and initialize configuration.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/rigscribe/internal/config"
)

// HandleConfig shows the effective configuration, or writes a starter
// config file with `config init`.
//
// Usage: rigscribe config [init] [--path]
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return &CommandError{Command: "config", Reason: "locate config directory", Err: err}
	}

	if parser.BoolFlag("path") {
		fmt.Println(tomlPath)
		return nil
	}

	if parser.Subcommand() == "init" {
		if _, err := os.Stat(tomlPath); err == nil {
			return &CommandError{Command: "config", Reason: fmt.Sprintf("config already exists at %s", tomlPath)}
		}
		if err := config.Save(config.Default()); err != nil {
			return &CommandError{Command: "config", Reason: "write config file", Err: err}
		}
		if !args.Quiet {
			fmt.Printf("%s %s\n", SuccessStyle.Render("Created:"), tomlPath)
		}
		return nil
	}

	cfg := config.Global()
	fmt.Println(HeaderStyle.Render("rigscribe configuration"))
	fmt.Println(MutedStyle.Render(tomlPath))
	fmt.Println()
	fmt.Printf("export.format          = %s\n", cfg.Export.Format)
	fmt.Printf("export.output_dir      = %s\n", displayValue(cfg.Export.OutputDir, "(current directory)"))
	fmt.Printf("export.open_after      = %t\n", cfg.Export.OpenAfterExport)
	fmt.Printf("export.summary_budget  = %d\n", cfg.Export.SummaryBudget)
	fmt.Printf("theme.name             = %s\n", cfg.Theme.Name)
	fmt.Printf("storage.base_dir       = %s\n", displayValue(cfg.Storage.BaseDir, "(default)"))
	fmt.Printf("storage.max_transcripts= %d\n", cfg.Storage.MaxTranscripts)
	fmt.Printf("storage.auto_save      = %t\n", cfg.Storage.AutoSave)
	fmt.Printf("index.enabled          = %t\n", cfg.Index.Enabled)
	fmt.Printf("index.path             = %s\n", displayValue(cfg.Index.Path, "(default)"))
	fmt.Printf("index.watch_debounce_ms= %d\n", cfg.Index.WatchDebounceMs)
	return nil
}

func displayValue(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
