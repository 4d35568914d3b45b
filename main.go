package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vitracka/concierge/internal/adapter/nutrition"
	"github.com/vitracka/concierge/internal/adapter/progress"
	"github.com/vitracka/concierge/internal/agents"
	"github.com/vitracka/concierge/internal/config"
	"github.com/vitracka/concierge/internal/hub"
	"github.com/vitracka/concierge/internal/orchestrator"
	"github.com/vitracka/concierge/internal/repository"
	"github.com/vitracka/concierge/internal/safety"
	"github.com/vitracka/concierge/internal/session"
	transport "github.com/vitracka/concierge/internal/transport/http"
	v1 "github.com/vitracka/concierge/internal/transport/http/v1"
	"github.com/vitracka/concierge/policy"
)

func main() {
	// Load .env if present, then configuration
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}
	cfg := config.Load()

	log.Printf("Starting concierge...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Session TTL: %s", cfg.SessionTTL)

	// Initialize repository
	repo, err := repository.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	// Initialize reply policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultReplyPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize safety sentinel
	sentinel, err := safety.NewSentinel(repo, policyEngine)
	if err != nil {
		log.Fatalf("Failed to initialize safety sentinel: %v", err)
	}

	// Initialize specialist agents and data collaborators
	nutritionClient := nutrition.NewClient(cfg.AgentTimeout)
	progressClient := progress.NewClient()
	registry := agents.NewRegistry(nutritionClient, progressClient)

	// Initialize session store with TTL eviction
	sessions := session.NewMemoryStore(cfg.SessionTTL)
	stop := make(chan struct{})
	defer close(stop)
	sessions.StartSweeper(cfg.SweepInterval, stop)

	// Initialize event hub
	eventHub := hub.NewHub()
	go eventHub.Run()

	// Initialize concierge orchestrator
	concierge, err := orchestrator.New(sentinel, registry, sessions, repo, eventHub, cfg.AgentTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize concierge: %v", err)
	}

	// Initialize HTTP server
	handler := v1.NewHandler(concierge, repo, eventHub)
	server := transport.NewServer(handler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Concierge API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down concierge...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Concierge stopped")
}
