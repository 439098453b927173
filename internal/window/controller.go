// Package window mantiene la ventana visible sobre una lista de items del feed y
// dispara la paginación perezosa cuando el usuario se acerca al final.
//
// El controlador no depende de ningún framework de UI. La superficie de render le
// informa visibilidad (RegisterVisibility/ReportVisibility) o navegación explícita
// (SetCurrentIndex) y consulta ShouldRenderItem para decidir qué materializar.
//
// Solo puede haber una página en vuelo a la vez. Las demás transiciones son
// sincrónicas y se aplican bajo el mutex del controlador.
package window

import (
	"context"
	"fmt"
	"log"
	"sync"

	"product-feed/internal/models"
)

// Fetcher trae la página indicada. Una página vacía significa que no hay más.
type Fetcher func(ctx context.Context, page int) ([]models.FeedItem, error)

type Option func(*Controller)

// WithEndReachedThreshold fija a cuántos items del final se pide la siguiente página
func WithEndReachedThreshold(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.threshold = n
		}
	}
}

// WithFirstPage fija el número de la primera página a pedir (por defecto 1)
func WithFirstPage(page int) Option {
	return func(c *Controller) {
		if page >= 0 {
			c.page = page
		}
	}
}

// WithContext fija el contexto usado para las páginas pedidas
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

type Controller struct {
	mu sync.Mutex

	items        []models.FeedItem
	seen         map[string]struct{}
	currentIndex int
	direction    Direction
	fetching     bool
	hasMore      bool
	page         int
	err          error
	disposed     bool

	threshold    int
	fetch        Fetcher
	ctx          context.Context
	onEndReached []func(page int)

	handles map[string]int
	visible map[string]bool

	wg sync.WaitGroup
}

// New crea un controlador con la primera página ya cargada
func New(initial []models.FeedItem, fetch Fetcher, opts ...Option) *Controller {
	c := &Controller{
		seen:      make(map[string]struct{}, len(initial)),
		direction: Forward,
		hasMore:   fetch != nil,
		page:      1,
		threshold: DefaultEndReachedThreshold,
		fetch:     fetch,
		ctx:       context.Background(),
		handles:   make(map[string]int),
		visible:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.appendLocked(initial)
	return c
}

// OnEndReached registra un callback que se llama cada vez que se dispara la paginación
func (c *Controller) OnEndReached(fn func(page int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEndReached = append(c.onEndReached, fn)
}

// SetCurrentIndex mueve el item actual. Índices fuera de rango o repetidos no cambian
// nada. Retorna true si el estado cambió.
func (c *Controller) SetCurrentIndex(index int) bool {
	c.mu.Lock()

	if c.disposed || index < 0 || index >= len(c.items) || index == c.currentIndex {
		c.mu.Unlock()
		return false
	}

	prev := c.currentIndex
	c.currentIndex = index
	if index >= prev {
		c.direction = Forward
	} else {
		c.direction = Backward
	}

	page, trigger := c.shouldPaginateLocked(prev, index)
	var callbacks []func(int)
	if trigger {
		c.fetching = true
		c.wg.Add(1)
		callbacks = append(callbacks, c.onEndReached...)
	}
	c.mu.Unlock()

	if trigger {
		for _, fn := range callbacks {
			fn(page)
		}
		go c.load(page)
	}
	return true
}

func (c *Controller) shouldPaginateLocked(prev, index int) (int, bool) {
	if c.fetch == nil || !c.hasMore || c.fetching {
		return 0, false
	}
	if index <= prev || index < len(c.items)-c.threshold {
		return 0, false
	}
	return c.page, true
}

// load corre fuera del mutex y aplica el resultado al terminar
func (c *Controller) load(page int) {
	defer c.wg.Done()

	items, err := c.safeFetch(page)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetching = false
	if c.disposed {
		log.Printf("[window] discarding page %d result for disposed view", page)
		return
	}

	if err != nil {
		log.Printf("[window] page %d failed: %v", page, err)
		c.err = &FetchError{Page: page, Err: err}
		return
	}

	if len(items) == 0 {
		c.hasMore = false
		return
	}

	added := c.appendLocked(items)
	if added < len(items) {
		log.Printf("[window] page %d: skipped %d already loaded items", page, len(items)-added)
	}
	c.page = page + 1
	c.err = nil
}

func (c *Controller) safeFetch(page int) (items []models.FeedItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("panic while fetching page %d: %v", page, r)
		}
	}()
	return c.fetch(c.ctx, page)
}

// appendLocked agrega items ignorando IDs ya cargados
func (c *Controller) appendLocked(items []models.FeedItem) int {
	added := 0
	for _, it := range items {
		if _, dup := c.seen[it.ID]; dup {
			continue
		}
		c.seen[it.ID] = struct{}{}
		c.items = append(c.items, it)
		added++
	}
	return added
}

// ShouldRenderItem es true solo para el item actual y sus vecinos inmediatos
func (c *Controller) ShouldRenderItem(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return index >= c.currentIndex-1 && index <= c.currentIndex+1
}

// Window retorna los índices cargados que deben materializarse
func (c *Controller) Window() []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]int, 0, 3)
	for i := c.currentIndex - 1; i <= c.currentIndex+1; i++ {
		if i >= 0 && i < len(c.items) {
			out = append(out, i)
		}
	}
	return out
}

// CurrentIndex retorna el índice actual
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// Items retorna una copia de la lista cargada
func (c *Controller) Items() []models.FeedItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.FeedItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item retorna el item en index
func (c *Controller) Item(index int) (models.FeedItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return models.FeedItem{}, false
	}
	return c.items[index], true
}

// State retorna una foto del estado actual
func (c *Controller) State() WindowState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return WindowState{
		CurrentIndex:    c.currentIndex,
		Direction:       c.direction,
		LoadedItemCount: len(c.items),
		IsFetchingMore:  c.fetching,
		HasMore:         c.hasMore,
		Page:            c.page,
		Err:             c.err,
	}
}

// DismissError descarta el mensaje de error visible
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

// Dispose marca la vista como desmontada. Una página en vuelo se descarta al llegar.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disposed = true
	c.handles = make(map[string]int)
	c.visible = make(map[string]bool)
}

// Disposed indica si la vista fue desmontada
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Wait bloquea hasta que termine la página en vuelo, si la hay
func (c *Controller) Wait() {
	c.wg.Wait()
}
