// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the rigscribe command-line interface: argument
// parsing, command dispatch, terminal capability detection, and the
// handlers for every subcommand.
//
// Commands return errors rather than exiting; main maps errors to exit
// codes through GetExitCode so behavior stays testable.
package cli
