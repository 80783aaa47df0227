// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders transcripts into their external representations.
//
// Three renderers share the same entry sequence and the same display-metadata
// lookup, but differ in truncation, inclusion, and escaping rules:
//
//   - PlainText: lossless, line-oriented, no HTML escaping
//   - CompressedSummary: size-bounded, lossy, meant for re-injection as
//     conversation context under a character budget
//   - HTMLDocument: self-contained styled HTML with embedded CSS pulled
//     from a semantic Theme
//
// All three are total functions: malformed content degrades gracefully and
// never produces an error. The file-writing wrapper (Exporter, ExportToFile)
// follows the same shape as the rest of the tooling: timestamped sanitized
// filenames, optional open-after-export.
package export
