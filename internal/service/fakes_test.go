package service

import (
	"context"
	"fmt"
	"sync"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	creates int
	getErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byEmail[user.Email]; ok {
		return "", fmt.Errorf("insert user: %w", repository.ErrDuplicate)
	}
	user.ID = fmt.Sprintf("user-%d", len(f.byEmail)+1)
	f.byEmail[user.Email] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites []domain.Favorite
	createErr error
	listErr   error
}

func (f *fakeFavoriteRepo) Create(_ context.Context, fav *domain.Favorite) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	for _, existing := range f.favorites {
		if existing.UserID == fav.UserID && existing.RecipeID == fav.RecipeID {
			return "", fmt.Errorf("insert favorite: %w", repository.ErrDuplicate)
		}
	}
	fav.ID = fmt.Sprintf("fav-%d", len(f.favorites)+1)
	f.favorites = append(f.favorites, *fav)
	return fav.ID, nil
}

func (f *fakeFavoriteRepo) ListByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

// countingHasher wraps a real hasher and records Verify calls.
type countingHasher struct {
	PasswordHasher
	verifies int
}

func (c *countingHasher) Verify(plain, hash string) bool {
	c.verifies++
	return c.PasswordHasher.Verify(plain, hash)
}
