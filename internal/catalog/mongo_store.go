package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-feed/internal/models"
)

const listTimeout = 10 * time.Second

// MongoStore lee el catálogo desde una colección de MongoDB
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{
		collection: collection,
	}
}

// List lista productos con paginación por offset y proyección
func (s *MongoStore) List(ctx context.Context, q ListQuery) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	filter := bson.M{"is_deleted": bson.M{"$ne": true}}

	findOptions := options.Find().
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	if projection := projectionFor(q.Fields); len(projection) > 0 {
		findOptions.SetProjection(projection)
	}

	cursor, err := s.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0, q.Limit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

// projectionFor traduce los campos de la API a claves de documento
func projectionFor(fields []string) bson.M {
	projection := bson.M{}
	for _, field := range fields {
		if field == "id" {
			field = "_id"
		}
		projection[field] = 1
	}
	return projection
}
