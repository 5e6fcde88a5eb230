// Command empired runs the daily empire game server.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/talgya/daily-empire/internal/api"
	"github.com/talgya/daily-empire/internal/clock"
	"github.com/talgya/daily-empire/internal/config"
	"github.com/talgya/daily-empire/internal/engine"
	"github.com/talgya/daily-empire/internal/persistence"
	"github.com/talgya/daily-empire/internal/state"
)

func main() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Parse()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath, "slot", cfg.SaveSlot)

	// ── Game Engine ──────────────────────────────────────────────────
	store := state.NewStore(db.Slot(cfg.SaveSlot))
	eng := engine.New(store, clock.System{})

	store.OnCommit(func(s *state.SimulationState, message string) {
		slog.Debug("state committed", "day", s.Day, "message", message)
	})

	if err := eng.Bootstrap(); err != nil {
		slog.Error("failed to bootstrap game state", "error", err)
		os.Exit(1)
	}
	s := store.State()
	slog.Info("empire ready",
		"day", s.Day,
		"action_points", s.ActionPoints,
		"subordinates", len(s.Subordinates),
		"scenario", s.CurrentScenarioID,
	)

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("EMPIRED_ADMIN_KEY not set — reset endpoint will be disabled")
	}

	apiServer := &api.Server{
		Eng:         eng,
		Port:        cfg.Port,
		AdminKey:    cfg.AdminKey,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
	}
	apiServer.Start()

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down")
}
