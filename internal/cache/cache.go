package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	expiration int64
}

// Cache es un caché en memoria con TTL por entrada. Es seguro para uso concurrente.
type Cache[V any] struct {
	items   map[string]entry[V]
	mu      sync.RWMutex
	ttl     time.Duration
	onEvict func(key string, value V)
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type Option[V any] func(*Cache[V])

// WithEvictHook se llama fuera del lock cuando una entrada expira o se elimina
func WithEvictHook[V any](fn func(key string, value V)) Option[V] {
	return func(c *Cache[V]) { c.onEvict = fn }
}

// WithCleanupInterval arranca la limpieza periódica de entradas expiradas
func WithCleanupInterval[V any](every time.Duration) Option[V] {
	return func(c *Cache[V]) {
		if every > 0 {
			go c.cleanupExpired(every)
		}
	}
}

// WithClock reemplaza el reloj (tests)
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) { c.now = now }
}

// New crea un caché con TTL por defecto. Un TTL <= 0 significa sin expiración.
func New[V any](defaultTTL time.Duration, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]entry[V]),
		ttl:   defaultTTL,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[V]) expiresAt(ttl []time.Duration) int64 {
	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}
	if duration <= 0 {
		return 0
	}
	return c.now().Add(duration).UnixNano()
}

func (c *Cache[V]) expired(e entry[V], now int64) bool {
	return e.expiration > 0 && now > e.expiration
}

// Set guarda un valor en caché
func (c *Cache[V]) Set(key string, value V, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{
		value:      value,
		expiration: c.expiresAt(ttl),
	}
}

// GetValue obtiene un valor del caché
func (c *Cache[V]) GetValue(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	item, found := c.items[key]
	if !found || c.expired(item, c.now().UnixNano()) {
		return zero, false
	}
	return item.value, true
}

// Touch renueva el TTL de una entrada existente y la retorna
func (c *Cache[V]) Touch(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, found := c.items[key]
	if !found || c.expired(item, c.now().UnixNano()) {
		return zero, false
	}
	item.expiration = c.expiresAt(nil)
	c.items[key] = item
	return item.value, true
}

// Delete elimina un valor del caché
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	item, found := c.items[key]
	delete(c.items, key)
	c.mu.Unlock()

	if found && c.onEvict != nil {
		c.onEvict(key, item.value)
	}
}

// DeleteByPrefix elimina todas las claves que empiecen con un prefijo
func (c *Cache[V]) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	evicted := make(map[string]V)
	for key, item := range c.items {
		if strings.HasPrefix(key, prefix) {
			evicted[key] = item.value
			delete(c.items, key)
		}
	}
	c.mu.Unlock()

	c.notify(evicted)
}

// Clear limpia todo el caché
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	evicted := make(map[string]V, len(c.items))
	for key, item := range c.items {
		evicted[key] = item.value
	}
	c.items = make(map[string]entry[V])
	c.mu.Unlock()

	c.notify(evicted)
}

// DeleteExpired elimina las entradas vencidas
func (c *Cache[V]) DeleteExpired() {
	c.mu.Lock()
	now := c.now().UnixNano()
	evicted := make(map[string]V)
	for key, item := range c.items {
		if c.expired(item, now) {
			evicted[key] = item.value
			delete(c.items, key)
		}
	}
	c.mu.Unlock()

	c.notify(evicted)
}

func (c *Cache[V]) notify(evicted map[string]V) {
	if c.onEvict == nil {
		return
	}
	for key, value := range evicted {
		c.onEvict(key, value)
	}
}

// cleanupExpired limpia items expirados periódicamente
func (c *Cache[V]) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}

// Close detiene la limpieza periódica
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Size retorna el número de items en caché
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
