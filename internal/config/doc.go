// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates rigscribe configuration.
//
// Configuration lives in ~/.rigscribe/config.toml (TOML preferred, JSON
// accepted), with built-in defaults underneath and RIGSCRIBE_* environment
// variables layered on top. The [export] table controls the default export
// format and output location, [theme] the HTML/preview palette, [storage]
// the transcript directory and retention cap, and [index] the SQLite search
// index.
//
// A process-wide instance is available through Global; commands that only
// read configuration should prefer it over loading their own copy.
package config
