// cmd/ai-service/main.go
//
// Curriculum AI Service – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (defaults → YAML → .env → environment).
//
//  2. Start the logger (tees to console when running in a TTY).
//
//  3. Resolve `vault:` references, if any, through Vault.
//
//  4. Validate required secrets.  A missing OPENAI_API_KEY is fatal; the
//     process exits before binding the port.
//
//  5. Build lazy Postgres and Redis handles for /health/ready.
//
//  6. Build the HTTP application and serve until SIGINT or SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanizio/curriculum-ai/internal/config"
	"github.com/yanizio/curriculum-ai/internal/database"
	"github.com/yanizio/curriculum-ai/internal/logger"
	"github.com/yanizio/curriculum-ai/internal/redis"
	"github.com/yanizio/curriculum-ai/internal/server"
	"github.com/yanizio/curriculum-ai/internal/vault"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ai-service:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Configuration ──────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	//
	// ── 2.  Logger ─────────────────────────────────────────────────────
	//
	log, err := logger.New(cfg.Log, runningInTTY())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 3.  Vault references ───────────────────────────────────────────
	//
	if cfg.HasSecretRefs() {
		vc, err := vault.New(ctx, log)
		if err != nil {
			return fmt.Errorf("vault: %w", err)
		}
		if cfg, err = cfg.ResolveSecrets(ctx, vc); err != nil {
			return err
		}
		log.Infow("vault references resolved")
	}

	//
	// ── 4.  Required secrets ───────────────────────────────────────────
	//
	if err := cfg.Validate(); err != nil {
		log.Errorw("configuration invalid", "err", err)
		return err
	}

	//
	// ── 5.  Backing stores (lazy, readiness only) ──────────────────────
	//
	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := redis.NewClient(cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	//
	// ── 6.  HTTP application ───────────────────────────────────────────
	//
	srv := server.New(cfg, log,
		server.HealthCheck{Name: "postgres", Check: database.Ping(db)},
		server.HealthCheck{Name: "redis", Check: rdb.Ping},
	)
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Errorw("http server", "err", err)
		return err
	}
	log.Infow("stopped")
	return nil
}
