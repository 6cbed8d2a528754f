// vicas - intervention value lookup by CAS number, in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vicas-tui/internal/cli"
	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/ui/search"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
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

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdLookup:
		err = cli.HandleLookup(args)
	case cli.CmdRepl:
		err = cli.HandleRepl(args)
	case cli.CmdServe:
		err = cli.HandleServe(args)
	case cli.CmdConvert:
		err = cli.HandleConvert(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	default:
		cli.PrintUsage()
	}

	cli.HandleErrorAndExit(err, args.JSON)
}

// setupLogging sends the standard logger to the configured file. The TUI
// owns the terminal, so without a file log output is dropped.
func setupLogging(cfg *config.Config, verbose bool) (io.Closer, error) {
	if cfg.Log.File == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(cfg.Log.File, "vicas")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if verbose || cfg.Log.Verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	return f, nil
}

func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	config.SetGlobal(cfg)

	closer, err := setupLogging(cfg, args.Verbose)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	p := cli.NewArgParser(args.Raw)
	repo, err := cli.OpenRepository(cfg, args, p)
	if err != nil {
		return err
	}
	if c, ok := repo.(io.Closer); ok {
		defer c.Close()
	}
	log.Printf("STARTUP | version=%s source=%s", Version, repo.Describe())

	m := search.New(repo, search.Options{
		Theme:             styles.NewTheme(cfg.UI.Theme),
		HighlightDuration: time.Duration(cfg.UI.HighlightMS) * time.Millisecond,
		ToastDuration:     time.Duration(cfg.UI.ToastSeconds) * time.Second,
		Mouse:             cfg.UI.Mouse,
	})

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(search.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("error running vicas: %w", err)
	}
	return nil
}
