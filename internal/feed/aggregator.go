package feed

import (
	"context"
	"fmt"
	"log"

	"product-feed/internal/catalog"
	"product-feed/internal/imageurl"
	"product-feed/internal/media"
	"product-feed/internal/models"
)

// Aggregator arma páginas del feed. Los clientes se inyectan una sola vez.
type Aggregator struct {
	catalog  catalog.Provider
	media    media.Provider
	resolver imageurl.Resolver
	fields   []string
}

func NewAggregator(c catalog.Provider, m media.Provider, r imageurl.Resolver) *Aggregator {
	return &Aggregator{
		catalog:  c,
		media:    m,
		resolver: r,
		fields:   catalog.DefaultFields,
	}
}

// FetchPage nunca falla: cualquier error se registra y se retorna una página vacía.
// Quien llama debe tratar vacío como "no hay más / no disponible".
func (a *Aggregator) FetchPage(ctx context.Context, pageIndex, pageSize int) []models.FeedItem {
	items, err := a.FetchPageE(ctx, pageIndex, pageSize)
	if err != nil {
		log.Printf("[feed] page=%d size=%d unavailable: %v", pageIndex, pageSize, err)
		return []models.FeedItem{}
	}
	return items
}

// FetchPageE aplica el mismo algoritmo pero distingue una falla de fuente
// (SourceError) de una página legítimamente vacía.
func (a *Aggregator) FetchPageE(ctx context.Context, pageIndex, pageSize int) (items []models.FeedItem, err error) {
	if pageIndex < 0 || pageSize <= 0 {
		return nil, fmt.Errorf("%w: page=%d size=%d", ErrInvalidPage, pageIndex, pageSize)
	}

	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = &SourceError{Kind: SourceUnavailable, Source: "aggregator", Page: pageIndex, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	products, err := a.catalog.List(ctx, catalog.ListQuery{
		Limit:  pageSize,
		Offset: pageIndex * pageSize,
		Fields: a.fields,
	})
	if err != nil {
		return nil, &SourceError{Kind: SourceUnavailable, Source: "catalog", Page: pageIndex, Err: err}
	}
	if len(products) == 0 {
		return []models.FeedItem{}, nil
	}

	records := a.lookupMedia(ctx, pageIndex, products)
	return a.merge(ctx, products, records), nil
}

// lookupMedia hace la consulta en lote; una falla degrada a "sin registros"
func (a *Aggregator) lookupMedia(ctx context.Context, pageIndex int, products []models.Product) map[string]*models.MediaRecord {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	records, err := a.media.QueryByExternalIDs(ctx, ids)
	if err != nil {
		log.Printf("[feed] page=%d media lookup failed, using catalog thumbnails: %v", pageIndex, err)
		return map[string]*models.MediaRecord{}
	}
	return media.Index(records)
}

func (a *Aggregator) merge(ctx context.Context, products []models.Product, records map[string]*models.MediaRecord) []models.FeedItem {
	items := make([]models.FeedItem, 0, len(products))

	for i := range products {
		product := &products[i]
		record, found := records[product.ID]
		emitted := len(items)

		var supplemental []models.FeedItem
		if found {
			supplemental = a.supplementalItems(ctx, product, record)
		}

		switch {
		case found && record.Hero != nil:
			if u, ok := a.resolve(ctx, product.ID, *record.Hero); ok {
				items = append(items, heroItem(product, u))
			}
		case !found:
			if product.Thumbnail != nil && *product.Thumbnail != "" {
				items = append(items, heroItem(product, *product.Thumbnail))
			}
		}

		items = append(items, supplemental...)

		if len(items) == emitted {
			log.Printf("[feed] product %q produced no feed items (media record found=%t), dropped", product.ID, found)
		}
	}
	return items
}

// supplementalItems adjunta las imágenes al producto compartido y arma sus items
func (a *Aggregator) supplementalItems(ctx context.Context, product *models.Product, record *models.MediaRecord) []models.FeedItem {
	var items []models.FeedItem
	var urls []string

	for idx, ref := range record.Supplemental {
		if !ref.IsImage() {
			continue
		}
		u, ok := a.resolve(ctx, product.ID, ref)
		if !ok {
			continue
		}
		urls = append(urls, u)
		items = append(items, models.FeedItem{
			ID:        models.SupplementalItemID(product.ID, idx),
			Kind:      models.KindSupplementalMedia,
			MediaURL:  u,
			MediaType: models.MediaTypeImage,
			Product:   product,
		})
	}

	if len(urls) > 0 {
		product.SupplementalMedia = urls
	}
	return items
}

func (a *Aggregator) resolve(ctx context.Context, productID string, ref models.MediaRef) (string, bool) {
	u, err := a.resolver.Resolve(ctx, ref)
	if err != nil {
		log.Printf("[feed] product %q: skipping media %q: %v", productID, ref.AssetRef, err)
		return "", false
	}
	return u, true
}

func heroItem(product *models.Product, mediaURL string) models.FeedItem {
	return models.FeedItem{
		ID:        models.HeroItemID(product.ID),
		Kind:      models.KindHeroMedia,
		MediaURL:  mediaURL,
		MediaType: models.MediaTypeImage,
		Product:   product,
	}
}

// PageFetcher adapta el agregador a la firma que usa el controlador de ventana
func (a *Aggregator) PageFetcher(pageSize int) func(ctx context.Context, page int) ([]models.FeedItem, error) {
	return func(ctx context.Context, page int) ([]models.FeedItem, error) {
		return a.FetchPageE(ctx, page, pageSize)
	}
}
