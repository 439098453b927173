// Package app arma los proveedores del feed a partir de la configuración.
package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"product-feed/internal/catalog"
	"product-feed/internal/config"
	"product-feed/internal/database"
	"product-feed/internal/feed"
	"product-feed/internal/fixture"
	"product-feed/internal/imageurl"
	"product-feed/internal/media"
)

const (
	ProductsCollection = "products"
	MediaCollection    = "product_media"

	// menor que la expiración de las URLs prefirmadas
	resolvedURLTTL = 30 * time.Minute
)

// Stack agrupa lo construido y cómo liberarlo
type Stack struct {
	Aggregator *feed.Aggregator
	Catalog    catalog.Provider
	Media      media.Provider
	Resolver   imageurl.Resolver

	client *mongo.Client
}

func (s *Stack) Close() {
	database.Disconnect(s.client)
}

// Build conecta solo las fuentes que la configuración pide
func Build(ctx context.Context, cfg *config.Config) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Stack{}
	var db *mongo.Database
	if cfg.NeedsMongo() {
		client, err := database.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		s.client = client
		db = client.Database(cfg.MongoDB)
	}

	var ds *fixture.Dataset
	if cfg.CatalogSource == config.SourceFixture || cfg.MediaSource == config.SourceFixture {
		loaded, err := fixture.Load(cfg.FixturePath)
		if err != nil {
			s.Close()
			return nil, err
		}
		ds = loaded
	}

	switch cfg.CatalogSource {
	case config.SourceMedusa:
		s.Catalog = catalog.NewStoreClient(cfg.MedusaURL, cfg.MedusaPublishableKey,
			catalog.WithMaxRetries(cfg.MedusaMaxRetries))
	case config.SourceMongo:
		s.Catalog = catalog.NewMongoStore(db.Collection(ProductsCollection))
	case config.SourceFixture:
		s.Catalog = ds.Catalog()
	default:
		s.Close()
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}

	switch cfg.MediaSource {
	case config.SourceCMS:
		s.Media = media.NewGraphQLClient(cfg.CMSGraphQLURL, cfg.CMSToken)
	case config.SourceMongo:
		s.Media = media.NewMongoStore(db.Collection(MediaCollection))
	case config.SourceFixture:
		s.Media = ds.MediaStore()
	default:
		s.Close()
		return nil, fmt.Errorf("unknown media source %q", cfg.MediaSource)
	}

	var base imageurl.Resolver
	switch cfg.ImageResolver {
	case config.ResolverS3:
		r, err := imageurl.NewS3Resolver(ctx, cfg.AWSRegion, cfg.AWSBucket)
		if err != nil {
			s.Close()
			return nil, err
		}
		base = r
	default:
		base = imageurl.NewCDNResolver(cfg.SanityProjectID, cfg.SanityDataset)
	}
	s.Resolver = imageurl.NewMemo(base, resolvedURLTTL)

	s.Aggregator = feed.NewAggregator(s.Catalog, s.Media, s.Resolver)
	return s, nil
}
