// Package imageurl convierte referencias de assets del CMS en URLs completas.
package imageurl

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"product-feed/internal/models"
)

// Resolver convierte una referencia de medio en una URL absoluta
type Resolver interface {
	Resolve(ctx context.Context, ref models.MediaRef) (string, error)
}

// Asset es una referencia de asset ya descompuesta
type Asset struct {
	Kind       models.MediaRefType
	ID         string
	Dimensions string
	Extension  string
}

// Path retorna el nombre de archivo del asset en el CDN
func (a Asset) Path() string {
	if a.Dimensions == "" {
		return a.ID + "." + a.Extension
	}
	return a.ID + "-" + a.Dimensions + "." + a.Extension
}

var (
	imageRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)
	fileRefPattern  = regexp.MustCompile(`^file-([A-Za-z0-9]+)-([a-z0-9]+)$`)
)

// ParseAssetRef descompone "image-<id>-<WxH>-<ext>" o "file-<id>-<ext>"
func ParseAssetRef(ref string) (Asset, error) {
	ref = strings.TrimSpace(ref)
	if m := imageRefPattern.FindStringSubmatch(ref); m != nil {
		return Asset{Kind: models.MediaRefImage, ID: m[1], Dimensions: m[2], Extension: m[3]}, nil
	}
	if m := fileRefPattern.FindStringSubmatch(ref); m != nil {
		return Asset{Kind: models.MediaRefFile, ID: m[1], Extension: m[2]}, nil
	}
	return Asset{}, fmt.Errorf("malformed asset reference %q", ref)
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
