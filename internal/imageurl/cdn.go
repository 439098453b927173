package imageurl

import (
	"context"
	"fmt"
	"strings"

	"product-feed/internal/models"
)

const defaultCDNBase = "https://cdn.sanity.io"

// CDNResolver arma URLs del CDN de imágenes del CMS
type CDNResolver struct {
	base      string
	projectID string
	dataset   string
}

func NewCDNResolver(projectID, dataset string) *CDNResolver {
	return &CDNResolver{
		base:      defaultCDNBase,
		projectID: projectID,
		dataset:   dataset,
	}
}

// WithBase cambia el host del CDN
func (r *CDNResolver) WithBase(base string) *CDNResolver {
	r.base = strings.TrimRight(base, "/")
	return r
}

func (r *CDNResolver) Resolve(_ context.Context, ref models.MediaRef) (string, error) {
	if isAbsoluteURL(ref.AssetRef) {
		return ref.AssetRef, nil
	}

	asset, err := ParseAssetRef(ref.AssetRef)
	if err != nil {
		return "", err
	}

	folder := "images"
	if asset.Kind == models.MediaRefFile {
		folder = "files"
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", r.base, folder, r.projectID, r.dataset, asset.Path()), nil
}
