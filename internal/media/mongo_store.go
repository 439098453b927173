package media

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-feed/internal/models"
)

const queryTimeout = 5 * time.Second

// MongoStore lee los registros de medios desde una colección indexada por medusa_id
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

// QueryByExternalIDs hace un único Find con $in sobre los IDs pedidos
func (s *MongoStore) QueryByExternalIDs(ctx context.Context, ids []string) ([]models.MediaRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"medusa_id": bson.M{"$in": ids}}
	findOptions := options.Find().SetProjection(bson.M{
		"medusa_id":       1,
		"title":           1,
		"hero_image":      1,
		"wear_test_media": 1,
	})

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find media records")
	}
	defer cursor.Close(ctx)

	var records []models.MediaRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "decode media records")
	}
	return records, nil
}
