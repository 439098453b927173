// Package fixture carga un catálogo y registros de medios desde un archivo YAML.
// Implementa los mismos proveedores que las fuentes reales; se usa en desarrollo local,
// en la CLI y en tests.
package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"product-feed/internal/catalog"
	"product-feed/internal/models"
)

// Dataset es el contenido del archivo de fixtures
type Dataset struct {
	Products []models.Product     `yaml:"products"`
	Media    []models.MediaRecord `yaml:"media"`
}

// Load lee y decodifica un archivo de fixtures
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &ds, nil
}

// Catalog sirve productos del dataset en orden de archivo
type Catalog struct {
	products []models.Product
}

func (d *Dataset) Catalog() *Catalog {
	return &Catalog{products: d.Products}
}

func (c *Catalog) List(ctx context.Context, q catalog.ListQuery) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Offset >= len(c.products) || q.Limit <= 0 {
		return []models.Product{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(c.products) {
		end = len(c.products)
	}
	out := make([]models.Product, end-q.Offset)
	copy(out, c.products[q.Offset:end])
	return out, nil
}

// Media sirve los registros de medios del dataset
type Media struct {
	records []models.MediaRecord
}

func (d *Dataset) MediaStore() *Media {
	return &Media{records: d.Media}
}

func (m *Media) QueryByExternalIDs(ctx context.Context, ids []string) ([]models.MediaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var out []models.MediaRecord
	for _, r := range m.records {
		if _, ok := wanted[r.ExternalID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
