// Package catalog define el proveedor del catálogo de productos y sus implementaciones
// (API de tienda del backend de comercio y colección de MongoDB).
package catalog

import (
	"context"

	"product-feed/internal/models"
)

// DefaultFields es la proyección mínima que necesita el feed
var DefaultFields = []string{
	"id",
	"title",
	"thumbnail",
	"options",
	"variants.id",
	"variants.title",
	"variants.prices",
	"variants.options",
	"variants.inventory_quantity",
}

// ListQuery pide una página del catálogo
type ListQuery struct {
	Limit  int
	Offset int
	Fields []string
}

//go:generate mockgen -destination=../mocks/catalog_provider.go -package=mocks -mock_names=Provider=MockCatalogProvider product-feed/internal/catalog Provider

// Provider lista productos del catálogo en orden de origen
type Provider interface {
	List(ctx context.Context, q ListQuery) ([]models.Product, error)
}
