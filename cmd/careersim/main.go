// Command careersim runs the football career simulation service.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talgya/pitchside/internal/api"
	"github.com/talgya/pitchside/internal/config"
	"github.com/talgya/pitchside/internal/engine"
	"github.com/talgya/pitchside/internal/game"
	"github.com/talgya/pitchside/internal/monitor"
	"github.com/talgya/pitchside/internal/narrative"
	"github.com/talgya/pitchside/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Database.Path)

	// ── Narrative Client ──────────────────────────────────────────────
	apiKey := cfg.Narrative.AnthropicAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	var gen narrative.TextGenerator
	if client := narrative.NewClient(apiKey); client != nil {
		gen = client
		slog.Info("narrative client enabled (Haiku)")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — match summaries will use fallback text")
	}

	// ── Engine ────────────────────────────────────────────────────────
	metrics := monitor.NewMetrics("careersim")
	eng := engine.New(seed, gen, metrics, logger)

	// ── Load or Create Career ─────────────────────────────────────────
	state, err := db.LoadLatest()
	switch {
	case errors.Is(err, persistence.ErrNoSave):
		slog.Info("no saved career found, starting a new one", "seed", seed)
		state = eng.NewGame(nil)
		if saveErr := db.SaveState(state); saveErr != nil {
			slog.Error("initial save failed", "error", saveErr)
		}
	case err != nil:
		slog.Error("failed to load saved career", "error", err)
		os.Exit(1)
	default:
		slog.Info("career restored",
			"season", state.League.CurrentSeason,
			"week", state.League.CurrentWeek,
		)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.Server.AdminToken == "" {
		slog.Warn("admin token not set — command endpoints will be disabled")
	}
	srv := api.NewServer(eng, db, cfg.Server.HTTPAddress, cfg.Server.AdminToken, state)
	srv.Start()

	fmt.Printf("Career simulation ready: season %d, week %d of %d.\n",
		state.League.CurrentSeason, state.League.CurrentWeek, game.WeeksPerSeason)
	fmt.Printf("API: http://localhost%s/api/v1/status\n", cfg.Server.HTTPAddress)

	// ── Run ───────────────────────────────────────────────────────────
	if cfg.Sim.AutoAdvance {
		loop := engine.NewLoop(time.Duration(cfg.Sim.WeekIntervalSec)*time.Second, func() {
			srv.Advance()
		})

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig)
			loop.Stop()
		}()

		fmt.Println("Auto-advance enabled... (Ctrl+C to stop)")
		loop.Run()
	} else {
		fmt.Println("Waiting for commands... (Ctrl+C to stop)")
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
	}

	// Final save on shutdown.
	if err := db.SaveState(srv.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Simulation stopped. Career saved.")
}
