package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/foreveruup/fifa-bot/internal/db"
	"github.com/foreveruup/fifa-bot/internal/wizard"
)

const defaultWizardTTL = 15 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbPath := os.Getenv("LEAGUE_DB")
	if dbPath == "" {
		dbPath = "league.db"
	}
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		log.Println("ADMIN_TOKEN not set, admin operations are disabled")
	}
	legacySingle := os.Getenv("LEGACY_SINGLE_TOURNAMENT") == "true"

	wizardTTL := defaultWizardTTL
	if ttlStr := os.Getenv("WIZARD_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			log.Fatalf("Invalid WIZARD_TTL %q: %v", ttlStr, err)
		}
		wizardTTL = ttl
	}

	database := db.InitDB(dbPath)
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	sessions := wizard.NewSessionStore(wizardTTL)
	router := newRouter(database, sessions, adminToken, legacySingle)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
