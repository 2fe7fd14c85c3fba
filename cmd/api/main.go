package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phd13/vue-infinite-scroll/internal/config"
	"github.com/phd13/vue-infinite-scroll/internal/db"
	"github.com/phd13/vue-infinite-scroll/internal/domain"
	httpHandler "github.com/phd13/vue-infinite-scroll/internal/handler/http"
	"github.com/phd13/vue-infinite-scroll/internal/randomuser"
	postgresRepo "github.com/phd13/vue-infinite-scroll/internal/repository/postgres"
	"github.com/phd13/vue-infinite-scroll/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize fetch history database, if configured
	var fetchLogRepo domain.FetchLogRepository
	if cfg.DB.Enabled() {
		initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		var dbConn *sql.DB
		dbConn, err = db.Init(initCtx, cfg.DB)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer dbConn.Close()
		fetchLogRepo = postgresRepo.NewFetchLogRepository(dbConn)
	} else {
		log.Println("DB_HOST not set, fetch history disabled")
	}

	// Initialize random user client
	userClient, err := randomuser.NewClient(randomuser.Config{
		BaseURL: cfg.RandomUser.BaseURL,
		Timeout: cfg.RandomUser.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to initialize random user client: %v", err)
	}

	// Initialize services
	userSvc := service.NewUserService(userClient, fetchLogRepo, nil)

	// Create HTTP server
	r := mux.NewRouter()

	// Create handler
	handler := httpHandler.NewUsersHandler(userSvc, cfg.CORSAllowedOrigins)
	handler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server is running on http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv.SetKeepAlivesEnabled(false)
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Could not gracefully shutdown the server: %v\n", err)
	}

	log.Println("Server stopped")
}
