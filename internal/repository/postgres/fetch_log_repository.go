package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phd13/vue-infinite-scroll/internal/domain"
)

type fetchLogRepository struct {
	db *sql.DB
}

func NewFetchLogRepository(db *sql.DB) domain.FetchLogRepository {
	return &fetchLogRepository{db: db}
}

func (r *fetchLogRepository) Create(ctx context.Context, entry *domain.FetchLog) error {
	query := `
		INSERT INTO fetch_logs (id, requested, returned, outcome, error_kind, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Requested,
		entry.Returned,
		entry.Outcome,
		entry.ErrorKind,
		entry.Duration.Milliseconds(),
		entry.CreatedAt,
	)
	return err
}

func (r *fetchLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FetchLog, error) {
	query := `
		SELECT id, requested, returned, outcome, error_kind, duration_ms, created_at
		FROM fetch_logs
		WHERE id = $1
	`

	entry, err := scanFetchLog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFetchLogNotFound
		}
		return nil, err
	}

	return entry, nil
}

func (r *fetchLogRepository) ListRecent(ctx context.Context, limit int) ([]*domain.FetchLog, error) {
	query := `
		SELECT id, requested, returned, outcome, error_kind, duration_ms, created_at
		FROM fetch_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.FetchLog, 0, limit)
	for rows.Next() {
		entry, err := scanFetchLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFetchLog(row rowScanner) (*domain.FetchLog, error) {
	var (
		entry      domain.FetchLog
		durationMS int64
	)
	err := row.Scan(
		&entry.ID,
		&entry.Requested,
		&entry.Returned,
		&entry.Outcome,
		&entry.ErrorKind,
		&durationMS,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Duration = time.Duration(durationMS) * time.Millisecond
	return &entry, nil
}

// CreateTables creates the necessary database tables
func (r *fetchLogRepository) CreateTables(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS fetch_logs (
			id UUID PRIMARY KEY,
			requested INTEGER NOT NULL,
			returned INTEGER NOT NULL,
			outcome VARCHAR(32) NOT NULL,
			error_kind VARCHAR(32) NOT NULL DEFAULT '',
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_fetch_logs_created_at ON fetch_logs(created_at DESC);
	`

	_, err := r.db.ExecContext(ctx, query)
	return err
}
