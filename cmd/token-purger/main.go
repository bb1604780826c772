package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	userpostgres "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-travel-orders/internal/platform/postgres"
	"github.com/Apurer/go-gin-travel-orders/internal/platform/scheduler"
)

func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; nothing to purge")
	}
	db, cleanup, err := platformpostgres.Open(ctx, dsn, logger)
	if err != nil {
		log.Fatalf("failed to open postgres: %v", err)
	}
	defer cleanup()

	job := scheduler.NewTokenPurgeJob(userpostgres.NewRevocationStore(db), "", logger)
	purged, err := job.Run(ctx)
	if err != nil {
		log.Fatalf("failed to purge revoked tokens: %v", err)
	}
	log.Printf("token purge completed, %d revocations removed", purged)
}
