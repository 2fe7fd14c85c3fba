package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// DefaultUserCount is the number of users requested when the caller omits a count
const DefaultUserCount = 15

// Common errors
var (
	ErrInvalidCount      = errors.New("user count must not be negative")
	ErrTransportFailure  = errors.New("user service request failed")
	ErrMalformedResponse = errors.New("user service returned a malformed response")
)

// RawUser is a user record as returned by the random user API.
// Pointer fields let an absent field be told apart from an empty one.
type RawUser struct {
	Name *struct {
		First *string `json:"first"`
		Last  *string `json:"last"`
	} `json:"name"`
	Picture *struct {
		Large *string `json:"large"`
	} `json:"picture"`
	Email *string `json:"email"`
}

// User is the display-ready user record consumed by the UI
type User struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// MissingField returns the path of the first required field absent from r,
// or an empty string when r is complete.
func (r RawUser) MissingField() string {
	switch {
	case r.Name == nil:
		return "name"
	case r.Name.First == nil:
		return "name.first"
	case r.Name.Last == nil:
		return "name.last"
	case r.Picture == nil:
		return "picture"
	case r.Picture.Large == nil:
		return "picture.large"
	case r.Email == nil:
		return "email"
	}
	return ""
}

// Normalize maps r to a User. r must be complete (see MissingField).
func (r RawUser) Normalize() User {
	return User{
		Name:    *r.Name.First + " " + *r.Name.Last,
		Picture: *r.Picture.Large,
		Email:   *r.Email,
	}
}

// UserBatch is the result of one fetch
type UserBatch struct {
	RequestID uuid.UUID `json:"request_id"`
	Requested int       `json:"requested"`
	Users     []User    `json:"users"`
}

// UserFetcher retrieves normalized users from the upstream service
type UserFetcher interface {
	FetchUsers(ctx context.Context, count int) ([]User, error)
}

// UserService defines the interface for user feed business logic
type UserService interface {
	ListUsers(ctx context.Context, count int) (*UserBatch, error)
	RecentFetches(ctx context.Context, limit int) ([]*FetchLog, error)
	GetFetch(ctx context.Context, id uuid.UUID) (*FetchLog, error)
	HistoryEnabled() bool
}
