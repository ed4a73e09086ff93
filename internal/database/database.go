package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"recipebox/internal/repository"
	"recipebox/internal/repository/mongodb"
	"recipebox/internal/repository/sqlite"
)

const sqliteScheme = "sqlite://"

// Open picks the store implementation from the scheme of uri: mongodb:// and
// mongodb+srv:// connect to MongoDB, sqlite:// opens an embedded database file.
func Open(ctx context.Context, uri, defaultDatabase string, logger logrus.FieldLogger) (repository.Store, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, fmt.Errorf("database uri is required")
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		store, err := mongodb.Open(ctx, uri, defaultDatabase)
		if err != nil {
			return nil, err
		}
		logger.Infof("connected to mongodb (database %s)", store.DatabaseName())
		return store, nil
	case strings.HasPrefix(uri, sqliteScheme):
		path := strings.TrimPrefix(uri, sqliteScheme)
		if path == "" {
			return nil, fmt.Errorf("sqlite database path is required")
		}
		store, err := sqlite.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		logger.Infof("opened sqlite database %s", path)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database uri scheme in %q", redact(uri))
	}
}

// redact drops credentials so the uri can be logged or returned in errors.
func redact(uri string) string {
	scheme := strings.Index(uri, "://")
	at := strings.LastIndex(uri, "@")
	if scheme < 0 || at < scheme {
		return uri
	}
	return uri[:scheme+3] + "***" + uri[at:]
}
