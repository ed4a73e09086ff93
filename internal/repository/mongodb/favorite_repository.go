package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"recipebox/internal/domain"
	"recipebox/internal/repository"
)

type favoriteDocument struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	UserID   any           `bson:"userId"`
	RecipeID string        `bson:"recipeId"`
	Title    string        `bson:"title"`
	Image    string        `bson:"image"`
}

type FavoriteRepository struct {
	coll *mongo.Collection
}

func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) (string, error) {
	doc := favoriteDocument{
		ID:       bson.NewObjectID(),
		UserID:   userRef(fav.UserID),
		RecipeID: fav.RecipeID,
		Title:    fav.Title,
		Image:    fav.Image,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("insert favorite %s/%s: %w", fav.UserID, fav.RecipeID, repository.ErrDuplicate)
		}
		return "", fmt.Errorf("insert favorite: %w", err)
	}

	fav.ID = doc.ID.Hex()
	return fav.ID, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": userRef(userID)})
	if err != nil {
		return nil, fmt.Errorf("find favorites: %w", err)
	}

	var docs []favoriteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(docs))
	for _, doc := range docs {
		favorites = append(favorites, domain.Favorite{
			ID:       doc.ID.Hex(),
			UserID:   idString(doc.UserID),
			RecipeID: doc.RecipeID,
			Title:    doc.Title,
			Image:    doc.Image,
		})
	}
	return favorites, nil
}
