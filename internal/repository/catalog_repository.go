// Package repository escribe el catálogo y los registros de medios en MongoDB
// con el formato que leen catalog.MongoStore y media.MongoStore.
package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"product-feed/internal/models"
)

const writeTimeout = 5 * time.Second

var ErrNotFound = errors.New("document not found")

// UpsertResult cuenta documentos nuevos y actualizados
type UpsertResult struct {
	Inserted int64 `json:"inserted"`
	Updated  int64 `json:"updated"`
}

type CatalogRepository struct {
	products *mongo.Collection
	media    *mongo.Collection
	now      func() time.Time
}

func NewCatalogRepository(products, media *mongo.Collection) *CatalogRepository {
	return &CatalogRepository{
		products: products,
		media:    media,
		now:      time.Now,
	}
}

// UpsertProducts guarda los productos por _id. created_at decrece con la
// posición para que el listado (created_at desc) conserve el orden recibido.
func (r *CatalogRepository) UpsertProducts(ctx context.Context, products []models.Product) (UpsertResult, error) {
	var res UpsertResult
	base := r.now()

	for i, p := range products {
		doc, err := toDocument(p)
		if err != nil {
			return res, errors.Wrapf(err, "encode product %q", p.ID)
		}
		now := base.Add(-time.Duration(i) * time.Millisecond)
		doc["updated_at"] = now
		doc["is_deleted"] = false

		update := bson.M{
			"$set":         doc,
			"$setOnInsert": bson.M{"created_at": now},
		}
		if err := r.upsert(ctx, r.products, bson.M{"_id": p.ID}, update, &res); err != nil {
			return res, errors.Wrapf(err, "upsert product %q", p.ID)
		}
	}
	return res, nil
}

// UpsertMedia guarda registros de medios por medusa_id
func (r *CatalogRepository) UpsertMedia(ctx context.Context, records []models.MediaRecord) (UpsertResult, error) {
	var res UpsertResult
	for _, rec := range records {
		if rec.ExternalID == "" {
			continue
		}
		doc, err := toDocument(rec)
		if err != nil {
			return res, errors.Wrapf(err, "encode media %q", rec.ExternalID)
		}
		doc["updated_at"] = r.now()

		filter := bson.M{"medusa_id": rec.ExternalID}
		if err := r.upsert(ctx, r.media, filter, bson.M{"$set": doc}, &res); err != nil {
			return res, errors.Wrapf(err, "upsert media %q", rec.ExternalID)
		}
	}
	return res, nil
}

// SoftDelete oculta un producto del feed sin borrarlo
func (r *CatalogRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{
		"_id":        id,
		"is_deleted": bson.M{"$ne": true},
	}
	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": r.now(),
		},
	}

	result, err := r.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrapf(err, "soft delete product %q", id)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) upsert(ctx context.Context, coll *mongo.Collection, filter, update bson.M, res *UpsertResult) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.UpsertedCount > 0 {
		res.Inserted++
	} else {
		res.Updated++
	}
	return nil
}

// toDocument convierte v a un documento sin _id para usarlo en $set
func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}
