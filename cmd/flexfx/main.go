// Command flexfx queues and performs composite sound effects from the
// command line. It loads the effect catalog (builtins plus any YAML files
// named in the config), scales each named effect to the requested pitch,
// volume and duration, and plays the resulting queue through a logging
// renderer in strict FIFO order.
//
// Usage:
//
//	flexfx -list
//	flexfx ting
//	flexfx -pitch 12 -volume 50 -duration 1500 siren whale
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrWong99/flexfx/internal/catalog"
	"github.com/MrWong99/flexfx/internal/config"
	"github.com/MrWong99/flexfx/internal/health"
	"github.com/MrWong99/flexfx/internal/observe"
	"github.com/MrWong99/flexfx/pkg/flexfx"
	"github.com/MrWong99/flexfx/pkg/flexfx/player"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	pitch := flag.Float64("pitch", 0, "overall pitch shift in semitones (±12 = one octave)")
	volume := flag.Float64("volume", 0, "volume ceiling 0-100 (0 = config default)")
	duration := flag.Float64("duration", 0, "total performance length in ms (0 = template's own)")
	gap := flag.Duration("gap", 0, "silence inserted between queued effects")
	list := flag.Bool("list", false, "list the available effects and exit")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "flexfx: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "flexfx"})
	if err != nil {
		slog.Error("telemetry init failed", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Effect catalog ────────────────────────────────────────────────────────
	store := flexfx.NewStore()
	if cfg.Catalog.Builtins {
		catalog.Builtins(store)
	}
	for _, path := range cfg.Catalog.Paths {
		n, err := catalog.LoadPath(store, path)
		if err != nil {
			slog.Error("catalog load failed", "path", path, "err", err)
			return 1
		}
		slog.Info("effects imported", "path", path, "count", n)
	}

	if *list {
		for _, id := range store.List() {
			fx, err := store.Get(id)
			if err != nil {
				continue
			}
			fmt.Printf("%-12s %2d segment(s), %5.0f ms, peak volume %3.0f\n",
				id, fx.PartCount(), fx.TotalDuration(), fx.PeakVolume())
		}
		return 0
	}

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "flexfx: no effects named — try -list to see what is available")
		return 2
	}

	// ── Player ────────────────────────────────────────────────────────────────
	p := player.New(
		&logRenderer{log: logger},
		player.WithLogger(logger),
		player.WithMetrics(observe.NewPlayerMetrics(observe.DefaultMetrics())),
	)
	defer p.Close()

	// ── Metrics & health endpoint ─────────────────────────────────────────────
	if addr := cfg.Server.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		health.New(
			health.CatalogChecker(store, 1),
			health.PlayerChecker(p),
		).Register(mux)
		go func() {
			slog.Info("metrics endpoint listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Warn("metrics server stopped", "err", err)
			}
		}()
	}

	ceiling := cfg.Perform.VolumeCeiling
	if *volume > 0 {
		ceiling = *volume
	}

	for i, name := range names {
		fx, err := store.Get(name)
		if err != nil {
			slog.Error("unknown effect", "id", name)
			return 1
		}

		target := fx.TotalDuration()
		if *duration > 0 {
			target = *duration
		} else if cfg.Perform.DurationMs > 0 {
			target = cfg.Perform.DurationMs
		}

		if err := p.PlayEffect(store, name, *pitch+cfg.Perform.PitchSteps, ceiling, target); err != nil {
			slog.Error("queueing failed", "id", name, "err", err)
			return 1
		}
		if *gap > 0 && i < len(names)-1 {
			p.PlaySilence(*gap)
		}
	}

	slog.Info("performance queued", "effects", len(names))
	if err := p.AwaitAllFinished(ctx); err != nil {
		slog.Warn("performance interrupted", "err", err)
		return 1
	}
	slog.Info("all played")
	return 0
}

// logRenderer is the demo renderer: it reports every segment it is handed and
// occupies real time for the play's total duration, so queue timing behaves
// as it would against a hardware sound channel.
type logRenderer struct {
	log *slog.Logger
}

func (r *logRenderer) Render(ctx context.Context, segments []flexfx.Segment) error {
	var total float64
	for _, seg := range segments {
		r.log.Info("segment",
			"wave", seg.Wave,
			"pitch", fmt.Sprintf("%.0f→%.0f", seg.StartPitch, seg.EndPitch),
			"volume", fmt.Sprintf("%.0f→%.0f", seg.StartVolume, seg.EndVolume),
			"ms", seg.Duration,
			"curve", seg.Curve,
			"effect", seg.Effect,
		)
		total += seg.Duration
	}

	t := time.NewTimer(time.Duration(total * float64(time.Millisecond)))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
