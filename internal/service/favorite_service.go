package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

// FavoriteService records and lists recipe favorites per user.
type FavoriteService interface {
	AddFavorite(ctx context.Context, fav domain.Favorite) (*domain.Favorite, error)
	ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favorites: favorites}
}

// AddFavorite relies on the store's unique (user, recipe) constraint rather
// than a lookup, so concurrent adds of the same pair cannot both succeed.
func (s *favoriteService) AddFavorite(ctx context.Context, fav domain.Favorite) (*domain.Favorite, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"userId", fav.UserID},
		{"recipeId", fav.RecipeID},
		{"title", fav.Title},
		{"image", fav.Image},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if _, err := s.favorites.Create(ctx, &fav); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return &fav, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return favorites, nil
}
