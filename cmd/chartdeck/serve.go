package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelin/chartdeck"
	"github.com/avelin/chartdeck/internal/config"
	"github.com/avelin/chartdeck/internal/deck"
	"github.com/avelin/chartdeck/internal/server"
)

// shutdownTimeout bounds how long in-flight requests get on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

func runServe(args []string) int {
	flags, err := parseServeFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	log := newLogger(flags.verbose, flags.quiet, flags.dev)

	cfg, err := config.Load(flags.config)
	if err != nil {
		log.Error().Err(err).Msg("loading configuration")
		return exitError
	}

	// Flags win over config file and environment.
	if flags.port != 0 {
		cfg.Server.Port = flags.port
	}
	if flags.host != "" {
		cfg.Server.Host = flags.host
	}
	if len(flags.dirs) > 0 {
		cfg.Assets.SearchDirs = flags.dirs
	}
	if flags.deck != "" {
		cfg.Deck.File = flags.deck
	}

	var d *deck.Deck
	if cfg.Deck.File != "" {
		d, err = deck.Load(cfg.Deck.File)
	} else {
		d, err = deck.LoadDefault()
	}
	if err != nil {
		log.Error().Err(err).Msg("loading deck")
		return exitError
	}

	embedder, err := chartdeck.NewEmbedder(
		chartdeck.WithSearchDirs(cfg.Assets.SearchDirs...),
	)
	if err != nil {
		log.Error().Err(err).Msg("creating embedder")
		return exitError
	}
	defer func() { _ = embedder.Close() }()

	srv, err := server.New(server.Config{
		Addr:     cfg.Addr(),
		Log:      log,
		Embedder: embedder,
		Deck:     d,
		Render: server.RenderDefaults{
			Height:        cfg.Render.DefaultHeight,
			Width:         cfg.Render.DefaultWidth,
			FrameDuration: cfg.Render.FrameDuration,
		},
		DevMode: flags.dev,
	})
	if err != nil {
		log.Error().Err(err).Msg("creating server")
		return exitError
	}

	log.Info().
		Str("deck", d.Title).
		Strs("searchDirs", cfg.Assets.SearchDirs).
		Msg("starting chartdeck")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			return exitError
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			return exitError
		}
	}

	return exitSuccess
}
