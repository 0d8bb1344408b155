package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	userspostgres "github.com/brewlabs/coffee-store-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/brewlabs/coffee-store-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge refresh tokens")
	}

	store := userspostgres.NewTokenStore(db)
	purged, err := store.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("failed to purge refresh tokens: %v", err)
	}
	log.Printf("refresh token purge completed, removed %d tokens", purged)
}
