package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) (string, error) {
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO favorites (id, user_id, recipe_id, title, image)
VALUES (?, ?, ?, ?, ?)`,
		id,
		fav.UserID,
		fav.RecipeID,
		fav.Title,
		fav.Image,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert favorite %s/%s: %w", fav.UserID, fav.RecipeID, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert favorite: %w", err)
	}

	fav.ID = id
	return id, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, recipe_id, title, image
FROM favorites
WHERE user_id = ?
ORDER BY rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []domain.Favorite{}
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.RecipeID, &fav.Title, &fav.Image); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}
