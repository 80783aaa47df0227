// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders the markdown subset produced by chat agents to HTML.
//
// The renderer is a single forward pass over the input: a small block state
// machine tracks code fences, tables and lists line by line, and everything
// that is not verbatim code is handed to an inline formatter that handles
// code spans, links, bare URLs, bold emphasis and file references.
//
// # Key Functions
//
//   - ToHTML: render a text blob to an HTML fragment
//   - ToHTMLWithResolver: same, with file-reference linkification
//
// # File Links
//
// When a Resolver is supplied, recognized file references become anchors with
// an openfile:// URL:
//
//	openfile:///abs/path/to/file.go
//	openfile:///abs/path/to/file.go:42
//
// The embedding application is responsible for handling the scheme. Without a
// resolver (or when resolution fails) the reference renders as plain escaped
// text; resolution failure is never an error.
//
// # Guarantees
//
// Rendering is total: malformed input (unterminated fences, ragged tables)
// degrades gracefully and open blocks are force-closed at end of input. All
// content text is HTML-escaped, so untrusted input cannot inject markup.
package markdown
