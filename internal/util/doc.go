// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the ragchat packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth: display-width aware truncation (CJK, emoji)
//   - JoinTruncated: joins a list and truncates the result to a width
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	chip := util.JoinTruncated(sources, ", ", 60)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
