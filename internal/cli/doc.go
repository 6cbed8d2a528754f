// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of vicas.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global flags plus the raw arguments of the command
//   - ArgParser: flag and positional parsing for one command
//   - JSONResponse: the envelope printed by every --json command
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdLookup:
//	    err = cli.HandleLookup(args)
//	case cli.CmdServe:
//	    err = cli.HandleServe(args)
//	}
//	cli.HandleErrorAndExit(err, args.JSON)
//
// # Commands
//
//   - lookup: one-shot CAS lookup, table, column export, markdown or JSON
//   - repl: line-by-line lookups with history
//   - serve: reference data HTTP service
//   - convert: JSON document to SQLite snapshot and back
//   - config: show, path, init, get, set, keys
//   - version, help
//
// Errors map to exit codes through GetExitCode.
package cli
