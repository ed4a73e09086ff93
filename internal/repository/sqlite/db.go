package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"recipebox/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the embedded sqlite implementation of repository.Store.
type Store struct {
	db        *sql.DB
	users     repository.UserRepository
	favorites repository.FavoriteRepository
}

var _ repository.Store = (*Store)(nil)

// Open opens (or creates) a sqlite database at the given path, ensures its
// directory exists and applies pending migrations.
func Open(ctx context.Context, path string, logger goose.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		users:     NewUserRepository(db),
		favorites: NewFavoriteRepository(db),
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, logger goose.Logger) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if logger == nil {
		logger = goose.NopLogger()
	}
	goose.SetLogger(logger)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Favorites() repository.FavoriteRepository { return s.favorites }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
