// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across vicas.
//
// Display width helpers count terminal columns with go-runewidth, so the
// accented pt-BR labels ("Água Subt.", "Residêncial") and the clipboard
// glyph line up in table cells. AtomicWriteFile writes configuration and
// reference snapshots without exposing partial files.
package util
