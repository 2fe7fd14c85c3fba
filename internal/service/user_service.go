package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/phd13/vue-infinite-scroll/internal/domain"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

var (
	ErrHistoryDisabled = errors.New("fetch history is not enabled")
)

// Ensure UserService implements domain.UserService
var _ domain.UserService = (*UserService)(nil)

type UserService struct {
	fetcher   domain.UserFetcher
	fetchLogs domain.FetchLogRepository
	logger    *log.Logger
	now       func() time.Time
}

// NewUserService creates the user feed service. fetchLogs may be nil, in
// which case no history is kept.
func NewUserService(fetcher domain.UserFetcher, fetchLogs domain.FetchLogRepository, logger *log.Logger) *UserService {
	if logger == nil {
		logger = log.Default()
	}
	return &UserService{
		fetcher:   fetcher,
		fetchLogs: fetchLogs,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *UserService) HistoryEnabled() bool {
	return s.fetchLogs != nil
}

// ListUsers fetches count users (DefaultUserCount when zero). Fetch errors
// are returned unchanged; they have already been logged by the fetcher.
func (s *UserService) ListUsers(ctx context.Context, count int) (*domain.UserBatch, error) {
	if count < 0 {
		return nil, domain.ErrInvalidCount
	}
	if count == 0 {
		count = domain.DefaultUserCount
	}

	requestID := uuid.New()
	started := s.now()
	users, err := s.fetcher.FetchUsers(ctx, count)
	elapsed := s.now().Sub(started)

	s.record(ctx, requestID, count, len(users), started, elapsed, err)
	if err != nil {
		return nil, err
	}

	if len(users) < count {
		s.logger.Printf("request %s: requested %d users, received %d", requestID, count, len(users))
	}

	return &domain.UserBatch{
		RequestID: requestID,
		Requested: count,
		Users:     users,
	}, nil
}

func (s *UserService) record(ctx context.Context, id uuid.UUID, requested, returned int, startedAt time.Time, elapsed time.Duration, fetchErr error) {
	if s.fetchLogs == nil {
		return
	}

	entry := &domain.FetchLog{
		ID:        id,
		Requested: requested,
		Returned:  returned,
		Outcome:   domain.OutcomeSuccess,
		Duration:  elapsed,
		CreatedAt: startedAt.UTC(),
	}
	if fetchErr != nil {
		entry.Outcome = domain.OutcomeFailure
		entry.ErrorKind = domain.ErrorKindOf(fetchErr)
	}

	// History must not fail a fetch that already happened
	if err := s.fetchLogs.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Printf("request %s: failed to record fetch: %v", id, err)
	}
}

// RecentFetches returns the latest fetch history entries, newest first
func (s *UserService) RecentFetches(ctx context.Context, limit int) ([]*domain.FetchLog, error) {
	if s.fetchLogs == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.fetchLogs.ListRecent(ctx, limit)
}

func (s *UserService) GetFetch(ctx context.Context, id uuid.UUID) (*domain.FetchLog, error) {
	if s.fetchLogs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.fetchLogs.FindByID(ctx, id)
}
