package main // Entry point package

import (
	"context"   // bounded startup work
	"errors"    // distinguishes a clean shutdown from a failure
	"log"       // Logging library
	"net/http"  // http.ErrServerClosed
	"os"        // signal source
	"os/signal" // graceful shutdown on interrupt
	"syscall"
	"time"

	"github.com/iliyamo/task-manager/internal/config"   // Internal config loader
	"github.com/iliyamo/task-manager/internal/database" // Storage bootstrap
	"github.com/iliyamo/task-manager/internal/router"   // Internal router setup
)

func main() {
	cfg := config.Load() // Load environment config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()
	if err := store.Init(ctx); err != nil { // create tables that do not exist yet
		log.Fatal(err)
	}

	rdb := config.NewRedisClient() // nil disables rate limiting
	if rdb != nil {
		defer rdb.Close()
	}
	e := router.New(cfg, store, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdown); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
