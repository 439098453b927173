package imageurl

import (
	"context"
	"time"

	"product-feed/internal/cache"
	"product-feed/internal/models"
)

// Memo memoriza las URLs resueltas por referencia de asset
type Memo struct {
	next  Resolver
	cache *cache.Cache[string]
}

// NewMemo envuelve un resolver; ttl debe ser menor a la expiración de URLs prefirmadas
func NewMemo(next Resolver, ttl time.Duration) *Memo {
	return &Memo{
		next:  next,
		cache: cache.New[string](ttl),
	}
}

func (m *Memo) Resolve(ctx context.Context, ref models.MediaRef) (string, error) {
	key := ref.AssetRef
	if u, ok := m.cache.GetValue(key); ok {
		return u, nil
	}

	u, err := m.next.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	m.cache.Set(key, u)
	return u, nil
}

func (m *Memo) Size() int {
	return m.cache.Size()
}
