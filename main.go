package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"trigger-provider/internal/authz"
	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/config"
	"trigger-provider/internal/handlers"
	"trigger-provider/internal/middleware"
	"trigger-provider/internal/provisioner"
	"trigger-provider/internal/scheduler"
	"trigger-provider/internal/storage"
	"trigger-provider/internal/validation"

	_ "trigger-provider/internal/storage/postgres"
	_ "trigger-provider/internal/storage/redis"
	_ "trigger-provider/internal/storage/sqlite"
)

func main() {
	_ = godotenv.Load()

	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logging.InitGlobalLogger()
	defer logging.MustSync()

	// Initialize the trigger store
	store, err := storage.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize trigger store: %v", err)
	}
	defer store.Close()

	// Initialize the scheduling engine and the authorization probe
	engine := scheduler.NewCronEngine(nil)
	defer engine.Stop()

	authorizer := authz.New(cfg.RouterHost)
	validator := validation.New(cfg.TriggerFireLimit)

	p := provisioner.New(validator, authorizer, engine, store)
	h := handlers.New(p, store)

	// Set up routes
	router := mux.NewRouter()
	router.Use(middleware.Logging)
	router.HandleFunc("/triggers", h.CreateTrigger).Methods("POST")
	router.HandleFunc("/triggers/{id}", h.GetTrigger).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logging.Info("trigger provider starting",
			logging.String("port", cfg.Port),
			logging.String("database", cfg.DatabaseType),
			logging.Int("defaultFireLimit", cfg.TriggerFireLimit),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
