package repository

import (
	"context"

	"recipebox/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	// Create stores the user and assigns its ID. Returns ErrDuplicate when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (string, error)
	// GetByEmail expects an already normalized email. Returns ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
