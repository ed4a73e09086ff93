package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func TestOpen_RunsMigrationsIdempotently(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipebox.db")

	first, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second, err := Open(ctx, path, nil)
	require.NoError(t, err)
	defer second.Close(ctx)

	assert.NoError(t, second.Ping(ctx))
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := openTestStore(t).Users()

	user := &domain.User{Email: "cook@example.com", PasswordHash: "hash"}
	id, err := users.Create(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := users.GetByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := openTestStore(t).Users()

	_, err := users.Create(ctx, &domain.User{Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Email: "A@X.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_GetMissing(t *testing.T) {
	_, err := openTestStore(t).Users().GetByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFavoriteRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	favorites := openTestStore(t).Favorites()

	for _, recipe := range []string{"r1", "r2"} {
		_, err := favorites.Create(ctx, &domain.Favorite{UserID: "u1", RecipeID: recipe, Title: "Soup", Image: "soup.png"})
		require.NoError(t, err)
	}
	_, err := favorites.Create(ctx, &domain.Favorite{UserID: "u2", RecipeID: "r1", Title: "Soup", Image: "soup.png"})
	require.NoError(t, err)

	list, err := favorites.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r1", list[0].RecipeID)
	assert.Equal(t, "r2", list[1].RecipeID)
	assert.Equal(t, "Soup", list[0].Title)
	assert.Equal(t, "soup.png", list[0].Image)
}

func TestFavoriteRepository_DuplicatePair(t *testing.T) {
	ctx := context.Background()
	favorites := openTestStore(t).Favorites()

	fav := domain.Favorite{UserID: "u1", RecipeID: "r1", Title: "Soup", Image: "soup.png"}
	_, err := favorites.Create(ctx, &fav)
	require.NoError(t, err)

	again := fav
	_, err = favorites.Create(ctx, &again)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := favorites.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFavoriteRepository_ListEmpty(t *testing.T) {
	list, err := openTestStore(t).Favorites().ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, created_at) VALUES ('u1', 'a@x.com', 'h', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = store.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, created_at) VALUES ('u2', 'a@x.com', 'h', CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "duplicate email")

	_, err = store.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, created_at) VALUES ('u1', 'b@x.com', 'h', CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "duplicate primary key")

	_, err = store.db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, created_at) VALUES ('u3', NULL, 'h', CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err), "not null is not a duplicate")

	assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
}
