package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES (?, ?, ?, ?)`,
		id,
		user.Email,
		user.PasswordHash,
		user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert user %s: %w", user.Email, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = ?`,
		email,
	)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
