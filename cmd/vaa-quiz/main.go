// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/cliparse"
	"github.com/danielhkuo/mat-e-voto/db"
	"github.com/danielhkuo/mat-e-voto/session"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
)

func main() {
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	snap, err := catalog.LoadSnapshot(ctx, catalog.NewSQLStore(dbConn))
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	q := &quiz{
		snap:      snap,
		store:     store,
		publicURL: cfg.PublicURL,
		in:        os.Stdin,
		out:       os.Stdout,
	}
	if err := q.run(ctx); err != nil {
		slog.Error("questionnaire failed", "error", err)
		os.Exit(1)
	}
}

// openStore picks Redis when configured, so a questionnaire can be resumed
// from another terminal within the TTL. Otherwise progress lives in memory.
func openStore(ctx context.Context, cfg cliparse.Config) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	key := cfg.SessionKey
	if key == "" {
		key, err = sharetoken.NewSessionKey()
		if err != nil {
			client.Close()
			return nil, nil, err
		}
	}
	slog.Info("Session storage ready", "backend", "redis", "resume_with", "-session "+key, "ttl", cfg.SessionTTL)

	return session.NewRedisStore(client, key, cfg.SessionTTL), func() { client.Close() }, nil
}
