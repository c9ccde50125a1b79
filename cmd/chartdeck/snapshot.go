package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avelin/chartdeck"
)

// snapshotTimeout bounds one headless-Chrome render.
const snapshotTimeout = 2 * time.Minute

func runSnapshot(args []string) int {
	flags, err := parseSnapshotFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	log := newLogger(flags.verbose, false, true)

	dirs := flags.dirs
	if len(dirs) == 0 {
		dirs = chartdeck.DefaultSearchDirs()
	}

	embedder, err := chartdeck.NewEmbedder(
		chartdeck.WithSearchDirs(dirs...),
		chartdeck.WithTimeout(snapshotTimeout),
	)
	if err != nil {
		log.Error().Err(err).Msg("creating embedder")
		return exitError
	}
	defer func() { _ = embedder.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	png, err := embedder.Snapshot(ctx, flags.chart, chartdeck.RenderConfig{
		Height:        flags.height,
		Width:         flags.width,
		FrameDuration: flags.frame,
	})
	if err != nil {
		log.Error().Err(err).Str("chart", flags.chart).Msg("snapshot failed")
		return exitError
	}

	out := flags.out
	if out == "" {
		base := filepath.Base(flags.chart)
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}

	if err := os.WriteFile(out, png, 0o644); err != nil {
		log.Error().Err(err).Str("path", out).Msg("writing snapshot")
		return exitError
	}

	log.Info().Str("path", out).Int("bytes", len(png)).Msg("snapshot written")
	return exitSuccess
}
