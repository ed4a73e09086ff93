package repository

import (
	"context"

	"recipebox/internal/domain"
)

// FavoriteRepository persists (user, recipe) favorites.
type FavoriteRepository interface {
	// Create stores the favorite and assigns its ID. Returns ErrDuplicate when the
	// (UserID, RecipeID) pair already exists.
	Create(ctx context.Context, fav *domain.Favorite) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}
