// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/server"
)

// serverConfig applies the serve flags on top of the [server] section.
func serverConfig(cfg *config.Config, p *ArgParser) config.ServerConfig {
	sc := cfg.Server
	sc.CORSOrigins = slices.Clone(cfg.Server.CORSOrigins)

	if addr := p.FlagAny("addr", "a"); addr != "" {
		sc.Addr = addr
	}
	if f := p.Flag("file"); f != "" {
		sc.File = f
		sc.SQLite = ""
	}
	if s := p.Flag("sqlite"); s != "" {
		sc.SQLite = s
	}
	if p.BoolFlag("watch") {
		sc.Watch = true
	}
	if p.BoolFlag("no-watch") {
		sc.Watch = false
	}
	if p.HasFlag("rate-limit") {
		sc.RateLimit = p.FlagIntOrDefault("rate-limit", sc.RateLimit)
	}
	return sc
}

// HandleServe handles "vicas serve".
func HandleServe(args Args) error {
	p := NewArgParser(args.Raw, "watch", "no-watch")

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	sc := serverConfig(cfg, p)

	repo, err := server.OpenSource(sc)
	if err != nil {
		return &ValidationError{Field: "server source", Reason: err.Error(), Example: "vicas serve --file vi.json"}
	}
	defer closeRepository(repo)

	server.Version = Version
	logger := log.New(os.Stderr, "", log.LstdFlags)
	srv := server.New(sc, repo).WithLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stderr, "%s %s (%s)\n", SuccessStyle.Render("vicas serve"), "http://"+srv.Addr(), repo.Describe())
	if err := srv.Start(ctx); err != nil {
		return NewCommandError("serve", "start", sc.Addr, err)
	}
	return nil
}
