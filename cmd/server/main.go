/*
main.go - Application entry point

PURPOSE:
  Starts the wage-calculation API server. Handles configuration,
  dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load optional .env
  2. Parse command-line flags
  3. Initialize SQLite ledger store
  4. Load rate tables (defaults, optionally overlaid from -rates JSON)
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: lonberegner.db)
           Use ":memory:" for an in-memory database
  -rates   Optional JSON rate document overriding the built-in tables

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the store.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/IIVroomVroomII/lonberegner-sub001/api"
	"github.com/IIVroomVroomII/lonberegner-sub001/factory"
	"github.com/IIVroomVroomII/lonberegner-sub001/store/sqlite"
)

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("DB_PATH", "lonberegner.db"), "SQLite database path")
	ratesPath := flag.String("rates", os.Getenv("RATES_PATH"), "JSON rate document (optional)")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	rates := factory.DefaultRateTables()
	if *ratesPath != "" {
		data, err := os.ReadFile(*ratesPath)
		if err != nil {
			log.Fatalf("Failed to read rates document: %v", err)
		}
		rates, err = factory.ParseRates(data)
		if err != nil {
			log.Fatalf("Failed to parse rates document: %v", err)
		}
		log.Printf("Loaded rate overrides from %s", *ratesPath)
	}

	handler := api.NewHandler(store, rates)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}
