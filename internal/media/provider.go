// Package media define el proveedor de assets de medios (CMS) indexado por el ID
// del producto en el catálogo. Toda consulta es un solo lote por conjunto de IDs.
package media

import (
	"context"

	"product-feed/internal/models"
)

//go:generate mockgen -destination=../mocks/media_provider.go -package=mocks -mock_names=Provider=MockMediaProvider product-feed/internal/media Provider

// Provider resuelve registros de medios para un conjunto de IDs de catálogo en una sola llamada
type Provider interface {
	QueryByExternalIDs(ctx context.Context, ids []string) ([]models.MediaRecord, error)
}

// Index agrupa registros por ID externo; el primero gana si hay duplicados
func Index(records []models.MediaRecord) map[string]*models.MediaRecord {
	out := make(map[string]*models.MediaRecord, len(records))
	for i := range records {
		id := records[i].ExternalID
		if id == "" {
			continue
		}
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = &records[i]
	}
	return out
}
