package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFetchLogNotFound = errors.New("fetch log not found")
)

// Fetch outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Error kinds recorded with failed fetches
const (
	ErrorKindTransport = "transport"
	ErrorKindMalformed = "malformed_response"
	ErrorKindOther     = "other"
)

// FetchLog records the metadata of one upstream fetch. User records are never stored.
type FetchLog struct {
	ID        uuid.UUID     `json:"id"`
	Requested int           `json:"requested"`
	Returned  int           `json:"returned"`
	Outcome   string        `json:"outcome"`
	ErrorKind string        `json:"error_kind,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// ErrorKindOf classifies err for the fetch history
func ErrorKindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTransportFailure):
		return ErrorKindTransport
	case errors.Is(err, ErrMalformedResponse):
		return ErrorKindMalformed
	default:
		return ErrorKindOther
	}
}

// FetchLogRepository defines the interface for fetch history persistence
type FetchLogRepository interface {
	Create(ctx context.Context, entry *FetchLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*FetchLog, error)
	ListRecent(ctx context.Context, limit int) ([]*FetchLog, error)
	CreateTables(ctx context.Context) error
}
