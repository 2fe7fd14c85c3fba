package db

import (
	"context"
	"database/sql"

	"github.com/phd13/vue-infinite-scroll/internal/config"
	postgresRepo "github.com/phd13/vue-infinite-scroll/internal/repository/postgres"
)

// Init initializes the database connection and returns a *sql.DB instance
func Init(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	// Test the database connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Create tables if they don't exist
	fetchLogRepo := postgresRepo.NewFetchLogRepository(db)
	if err := fetchLogRepo.CreateTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
