package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Store bundles the repositories of one backing database together with its
// lifecycle.
type Store interface {
	Users() UserRepository
	Favorites() FavoriteRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
