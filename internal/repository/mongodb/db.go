package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"recipebox/internal/repository"
)

const (
	usersCollection     = "users"
	favoritesCollection = "favorites"
)

// Store is the MongoDB implementation of repository.Store.
type Store struct {
	client    *mongo.Client
	dbName    string
	users     *UserRepository
	favorites *FavoriteRepository
}

var _ repository.Store = (*Store)(nil)

// Open connects to the deployment behind uri, verifies it is reachable and
// makes sure the unique indexes backing the duplicate checks exist. The
// database named in the URI wins over defaultDatabase.
func Open(ctx context.Context, uri, defaultDatabase string) (*Store, error) {
	dbName, err := resolveDatabase(uri, defaultDatabase)
	if err != nil {
		return nil, err
	}
	return connect(ctx, uri, dbName)
}

func resolveDatabase(uri, defaultDatabase string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	if defaultDatabase == "" {
		return "", fmt.Errorf("mongo database name is required")
	}
	return defaultDatabase, nil
}

func connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	store := &Store{
		client:    client,
		dbName:    dbName,
		users:     &UserRepository{coll: db.Collection(usersCollection)},
		favorites: &FavoriteRepository{coll: db.Collection(favoritesCollection)},
	}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = s.favorites.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recipeId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_recipe"),
	})
	if err != nil {
		return fmt.Errorf("create favorites user/recipe index: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Favorites() repository.FavoriteRepository { return s.favorites }

// DatabaseName is the database the store reads and writes.
func (s *Store) DatabaseName() string { return s.dbName }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// userRef stores user ids that look like ObjectIDs as ObjectIDs, the way
// existing favorites documents reference their users.
func userRef(id string) any {
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func idString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
