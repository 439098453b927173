// Package session guarda un controlador de ventana por vista de feed abierta.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"product-feed/internal/cache"
	"product-feed/internal/feed"
	"product-feed/internal/models"
	"product-feed/internal/variant"
	"product-feed/internal/window"
)

const (
	DefaultTTL      = 30 * time.Minute
	DefaultPageSize = 20
)

var (
	ErrNotFound         = errors.New("session not found")
	ErrProductNotLoaded = errors.New("product not loaded in session")
)

// Pager es la parte del agregador que usan las sesiones
type Pager interface {
	FetchPageE(ctx context.Context, pageIndex, pageSize int) ([]models.FeedItem, error)
}

// Selection es un par opción/valor aplicado en orden sobre el resolver
type Selection struct {
	OptionID string `json:"option_id" binding:"required"`
	Value    string `json:"value"`
}

type Session struct {
	ID        string
	CreatedAt time.Time
	Window    *window.Controller

	cancel   context.CancelFunc
	mu       sync.Mutex
	resolver *variant.Resolver
}

// FindProduct busca el producto entre los items ya cargados
func (s *Session) FindProduct(productID string) (*models.Product, bool) {
	for _, item := range s.Window.Items() {
		if item.Product != nil && item.Product.ID == productID {
			return item.Product, true
		}
	}
	return nil, false
}

// SelectVariant enlaza el producto (si cambió) y aplica las selecciones en orden.
// Sin selecciones retorna la selección por defecto o la actual.
func (s *Session) SelectVariant(productID string, selections []Selection) (variant.View, error) {
	product, ok := s.FindProduct(productID)
	if !ok {
		return variant.View{}, ErrProductNotLoaded
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolver == nil {
		s.resolver = variant.Bind(product)
	} else if s.resolver.Product() != product {
		s.resolver.Bind(product)
	}

	for _, sel := range selections {
		if err := s.resolver.SelectOption(sel.OptionID, sel.Value); err != nil {
			return s.resolver.View(), err
		}
	}
	return s.resolver.View(), nil
}

func (s *Session) close() {
	s.cancel()
	s.Window.Dispose()
}

type Option func(*Registry)

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) { r.ttl = ttl }
}

func WithPageSize(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

func WithEndReachedThreshold(n int) Option {
	return func(r *Registry) { r.threshold = n }
}

// WithCleanupInterval activa la limpieza periódica de sesiones inactivas
func WithCleanupInterval(every time.Duration) Option {
	return func(r *Registry) { r.cleanup = every }
}

// WithClock reemplaza el reloj (tests)
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// Registry es seguro para uso concurrente. Las sesiones no comparten estado.
type Registry struct {
	pages     Pager
	pageSize  int
	threshold int
	ttl       time.Duration
	cleanup   time.Duration
	now       func() time.Time

	sessions *cache.Cache[*Session]
}

func NewRegistry(pages Pager, opts ...Option) *Registry {
	r := &Registry{
		pages:     pages,
		pageSize:  DefaultPageSize,
		threshold: window.DefaultEndReachedThreshold,
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.sessions = cache.New(r.ttl,
		cache.WithClock[*Session](r.now),
		cache.WithCleanupInterval[*Session](r.cleanup),
		cache.WithEvictHook(func(id string, s *Session) {
			log.Printf("[session] closing %q", id)
			s.close()
		}),
	)
	return r
}

// Create carga la página 0 y abre una sesión nueva. Una falla de la primera
// página deja la sesión vacía para que la vista ofrezca recargar.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	items, err := r.pages.FetchPageE(ctx, 0, r.pageSize)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidPage) {
			return nil, err
		}
		log.Printf("[session] first page unavailable: %v", err)
		items = nil
	}

	id := uuid.NewString()
	// el contexto de la sesión vive hasta que se cierra, no hasta que termina la petición
	sctx, cancel := context.WithCancel(context.Background())

	pageSize := r.pageSize
	ctrl := window.New(items, func(ctx context.Context, page int) ([]models.FeedItem, error) {
		return r.pages.FetchPageE(ctx, page, pageSize)
	},
		window.WithContext(sctx),
		window.WithEndReachedThreshold(r.threshold),
		window.WithFirstPage(1),
	)
	ctrl.OnEndReached(func(page int) {
		log.Printf("[session] %q loading page %d", id, page)
	})

	s := &Session{
		ID:        id,
		CreatedAt: r.now(),
		Window:    ctrl,
		cancel:    cancel,
	}
	r.sessions.Set(id, s)
	log.Printf("[session] opened %q with %d items", id, len(items))
	return s, nil
}

// Get retorna la sesión y renueva su TTL
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.sessions.Touch(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete cierra la sesión y cancela cualquier página en vuelo
func (r *Registry) Delete(id string) error {
	if _, ok := r.sessions.GetValue(id); !ok {
		return ErrNotFound
	}
	r.sessions.Delete(id)
	return nil
}

// Prune cierra las sesiones inactivas por más del TTL
func (r *Registry) Prune() {
	r.sessions.DeleteExpired()
}

func (r *Registry) Len() int {
	return r.sessions.Size()
}

// Close cierra todas las sesiones y detiene la limpieza
func (r *Registry) Close() {
	r.sessions.Close()
	r.sessions.Clear()
}
