// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the active recording session.
//
// A Manager owns one transcript at a time. Entries flow through Append so
// dirty tracking stays accurate; Save and the periodic Check auto-save
// persist through the storage layer. Resuming a stored transcript inserts a
// session separator entry so the boundary survives into every export format.
package session
