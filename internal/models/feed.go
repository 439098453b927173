package models

import "strconv"

type FeedItemKind string

const (
	KindHeroMedia         FeedItemKind = "product_hero"
	KindSupplementalMedia FeedItemKind = "wear_test"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// FeedItem es una entrada renderizable del feed. Product es una referencia
// compartida: varios items de un mismo producto apuntan al mismo valor.
type FeedItem struct {
	ID        string       `json:"id"`
	Kind      FeedItemKind `json:"type"`
	MediaURL  string       `json:"media_url"`
	MediaType MediaType    `json:"media_type"`
	Product   *Product     `json:"product"`
}

// HeroItemID genera el ID estable del item principal de un producto
func HeroItemID(productID string) string {
	return productID + "_hero"
}

// SupplementalItemID genera el ID estable de un item suplementario
func SupplementalItemID(productID string, index int) string {
	return productID + "_wear_" + strconv.Itoa(index)
}

type MediaRefType string

const (
	MediaRefImage MediaRefType = "image"
	MediaRefFile  MediaRefType = "file"
)

// MediaRef referencia un asset del CMS (p.ej. "image-abc123-1200x1600-jpg")
type MediaRef struct {
	Type     MediaRefType `json:"_type" bson:"type" yaml:"type"`
	Key      string       `json:"_key,omitempty" bson:"key,omitempty" yaml:"key"`
	AssetRef string       `json:"asset_ref" bson:"asset_ref" yaml:"asset_ref"`
	Alt      string       `json:"alt,omitempty" bson:"alt,omitempty" yaml:"alt"`
}

func (r MediaRef) IsImage() bool {
	return r.Type == MediaRefImage
}

// MediaRecord es el registro del almacén de assets para un producto del catálogo
type MediaRecord struct {
	ExternalID   string     `json:"medusa_id" bson:"medusa_id" yaml:"medusa_id"`
	Title        string     `json:"title,omitempty" bson:"title,omitempty" yaml:"title"`
	Hero         *MediaRef  `json:"hero_image,omitempty" bson:"hero_image,omitempty" yaml:"hero_image"`
	Supplemental []MediaRef `json:"wear_test_media,omitempty" bson:"wear_test_media,omitempty" yaml:"wear_test_media"`
}
