package window

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-feed/internal/models"
)

func makeItems(prefix string, n int) []models.FeedItem {
	product := &models.Product{ID: prefix}
	items := make([]models.FeedItem, n)
	for i := range items {
		items[i] = models.FeedItem{
			ID:        fmt.Sprintf("%s_%d", prefix, i),
			Kind:      models.KindHeroMedia,
			MediaType: models.MediaTypeImage,
			Product:   product,
		}
	}
	return items
}

// gatedFetcher bloquea cada llamada hasta que el test la libere
type gatedFetcher struct {
	mu      sync.Mutex
	calls   []int
	release chan struct{}
	respond func(page int) ([]models.FeedItem, error)
}

func newGatedFetcher(respond func(page int) ([]models.FeedItem, error)) *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{}), respond: respond}
}

func (g *gatedFetcher) Fetch(_ context.Context, page int) ([]models.FeedItem, error) {
	g.mu.Lock()
	g.calls = append(g.calls, page)
	g.mu.Unlock()

	<-g.release
	return g.respond(page)
}

func (g *gatedFetcher) Calls() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int(nil), g.calls...)
}

// Release libera la llamada en vuelo y espera a que el controlador la aplique
func (g *gatedFetcher) Release(c *Controller) {
	g.release <- struct{}{}
	c.Wait()
}

func pageOf(n int) func(page int) ([]models.FeedItem, error) {
	return func(page int) ([]models.FeedItem, error) {
		return makeItems(fmt.Sprintf("p%d", page), n), nil
	}
}

func TestShouldRenderItem_WindowOfThree(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		c := New(makeItems("p0", n), nil)
		for i := 0; i < n; i++ {
			c.SetCurrentIndex(i)
			for j := -2; j < n+2; j++ {
				want := j >= i-1 && j <= i+1
				assert.Equal(t, want, c.ShouldRenderItem(j), "n=%d current=%d j=%d", n, i, j)
			}
		}
	}
}

func TestWindow(t *testing.T) {
	c := New(makeItems("p0", 5), nil)
	assert.Equal(t, []int{0, 1}, c.Window())

	c.SetCurrentIndex(2)
	assert.Equal(t, []int{1, 2, 3}, c.Window())

	c.SetCurrentIndex(4)
	assert.Equal(t, []int{3, 4}, c.Window())
}

func TestSetCurrentIndex_Direction(t *testing.T) {
	c := New(makeItems("p0", 10), nil)

	require.True(t, c.SetCurrentIndex(4))
	assert.Equal(t, Forward, c.State().Direction)

	require.True(t, c.SetCurrentIndex(2))
	assert.Equal(t, Backward, c.State().Direction)
	assert.Equal(t, 2, c.CurrentIndex())
}

func TestSetCurrentIndex_Idempotent(t *testing.T) {
	f := newGatedFetcher(pageOf(5))
	c := New(makeItems("p0", 10), f.Fetch)

	triggers := 0
	c.OnEndReached(func(int) { triggers++ })

	require.True(t, c.SetCurrentIndex(8))
	first := c.State()

	assert.False(t, c.SetCurrentIndex(8))
	second := c.State()

	assert.Equal(t, first.Direction, second.Direction)
	assert.Equal(t, first.CurrentIndex, second.CurrentIndex)
	assert.Equal(t, 1, triggers)

	f.Release(c)
	assert.Equal(t, []int{1}, f.Calls())
}

func TestSetCurrentIndex_OutOfRange(t *testing.T) {
	c := New(makeItems("p0", 5), nil)
	c.SetCurrentIndex(3)
	before := c.State()

	for _, idx := range []int{-1, 5, 100} {
		assert.False(t, c.SetCurrentIndex(idx), "index %d", idx)
		assert.Equal(t, before, c.State())
	}

	empty := New(nil, nil)
	assert.False(t, empty.SetCurrentIndex(0))
	assert.True(t, empty.State().Empty())
}

func TestPagination_SingleFetchWhileInFlight(t *testing.T) {
	f := newGatedFetcher(pageOf(5))
	c := New(makeItems("p0", 10), f.Fetch)

	var triggered []int
	c.OnEndReached(func(page int) { triggered = append(triggered, page) })

	c.SetCurrentIndex(6)
	assert.False(t, c.State().IsFetchingMore, "index 6 of 10 is outside the threshold")

	c.SetCurrentIndex(7)
	c.SetCurrentIndex(8)
	c.SetCurrentIndex(9)
	assert.True(t, c.State().IsFetchingMore)
	assert.Equal(t, []int{1}, triggered)

	f.Release(c)
	assert.Equal(t, []int{1}, f.Calls())

	state := c.State()
	assert.False(t, state.IsFetchingMore)
	assert.Equal(t, 15, state.LoadedItemCount)
	assert.Equal(t, 2, state.Page)
	assert.True(t, state.HasMore)

	// re-armed: the next forward crossing asks for page 2
	c.SetCurrentIndex(12)
	f.Release(c)
	assert.Equal(t, []int{1, 2}, f.Calls())
	assert.Equal(t, 20, c.State().LoadedItemCount)
	assert.Equal(t, []int{1, 2}, triggered)
}

func TestPagination_BackwardMovesNeverTrigger(t *testing.T) {
	f := newGatedFetcher(func(int) ([]models.FeedItem, error) { return nil, errors.New("offline") })
	c := New(makeItems("p0", 10), f.Fetch)

	c.SetCurrentIndex(9)
	f.Release(c)
	require.Equal(t, []int{1}, f.Calls())

	// inside the threshold but moving backward
	c.SetCurrentIndex(8)
	assert.False(t, c.State().IsFetchingMore)
	c.SetCurrentIndex(7)
	assert.False(t, c.State().IsFetchingMore)

	// forward again retries
	c.SetCurrentIndex(8)
	assert.True(t, c.State().IsFetchingMore)
	f.Release(c)
	assert.Equal(t, []int{1, 1}, f.Calls())
}

func TestPagination_Exhausted(t *testing.T) {
	f := newGatedFetcher(func(int) ([]models.FeedItem, error) { return nil, nil })
	c := New(makeItems("p0", 5), f.Fetch)

	c.SetCurrentIndex(3)
	f.Release(c)

	state := c.State()
	assert.False(t, state.HasMore)
	assert.NoError(t, state.Err, "exhaustion is not an error")
	assert.Equal(t, "", state.ErrorMessage())

	c.SetCurrentIndex(4)
	c.SetCurrentIndex(2)
	c.SetCurrentIndex(4)
	assert.False(t, c.State().IsFetchingMore, "no fetch after exhaustion")
	assert.Equal(t, []int{1}, f.Calls())
}

func TestPagination_ErrorIsRetryable(t *testing.T) {
	fail := true
	f := newGatedFetcher(func(page int) ([]models.FeedItem, error) {
		if fail {
			return nil, errors.New("catalog unavailable")
		}
		return makeItems(fmt.Sprintf("p%d", page), 3), nil
	})
	c := New(makeItems("p0", 5), f.Fetch)

	c.SetCurrentIndex(3)
	f.Release(c)

	state := c.State()
	require.Error(t, state.Err)
	var fe *FetchError
	require.ErrorAs(t, state.Err, &fe)
	assert.True(t, fe.Retryable())
	assert.Equal(t, 1, fe.Page)
	assert.True(t, state.HasMore, "failure must not be confused with exhaustion")
	assert.False(t, state.IsFetchingMore)
	assert.Equal(t, RetryMessage, state.ErrorMessage())
	assert.Equal(t, 5, state.LoadedItemCount, "loaded items are preserved")

	fail = false
	c.SetCurrentIndex(4)
	f.Release(c)

	state = c.State()
	assert.Equal(t, []int{1, 1}, f.Calls(), "the same page is retried")
	assert.NoError(t, state.Err)
	assert.Equal(t, 8, state.LoadedItemCount)
	assert.Equal(t, 2, state.Page)
}

func TestDismissError(t *testing.T) {
	f := newGatedFetcher(func(int) ([]models.FeedItem, error) { return nil, errors.New("boom") })
	c := New(makeItems("p0", 4), f.Fetch)

	c.SetCurrentIndex(2)
	f.Release(c)
	require.Error(t, c.State().Err)

	c.DismissError()
	assert.NoError(t, c.State().Err)
}

func TestPagination_PanicRecovered(t *testing.T) {
	f := newGatedFetcher(func(int) ([]models.FeedItem, error) { panic("bad payload") })
	c := New(makeItems("p0", 4), f.Fetch)

	c.SetCurrentIndex(2)
	f.Release(c)

	state := c.State()
	require.Error(t, state.Err)
	assert.Contains(t, state.Err.Error(), "bad payload")
	assert.False(t, state.IsFetchingMore)
}

func TestDispose_DiscardsStaleCompletion(t *testing.T) {
	f := newGatedFetcher(pageOf(5))
	c := New(makeItems("p0", 4), f.Fetch)

	c.SetCurrentIndex(2)
	c.Dispose()
	assert.NotPanics(t, func() { f.Release(c) })

	assert.True(t, c.Disposed())
	assert.Equal(t, 4, c.State().LoadedItemCount)
	assert.False(t, c.SetCurrentIndex(3))
}

func TestPagination_SkipsDuplicateIDs(t *testing.T) {
	f := newGatedFetcher(func(int) ([]models.FeedItem, error) {
		return append(makeItems("p0", 2), makeItems("p1", 2)...), nil
	})
	c := New(makeItems("p0", 4), f.Fetch)

	c.SetCurrentIndex(2)
	f.Release(c)

	items := c.Items()
	require.Len(t, items, 6)
	assert.Equal(t, "p1_0", items[4].ID)
	assert.Equal(t, 2, c.State().Page)
}

func TestPagination_CustomThresholdAndFirstPage(t *testing.T) {
	f := newGatedFetcher(pageOf(2))
	c := New(makeItems("p0", 10), f.Fetch, WithEndReachedThreshold(1), WithFirstPage(5))

	c.SetCurrentIndex(8)
	assert.False(t, c.State().IsFetchingMore)

	c.SetCurrentIndex(9)
	require.True(t, c.State().IsFetchingMore)
	f.Release(c)
	assert.Equal(t, []int{5}, f.Calls())
	assert.Equal(t, 6, c.State().Page)
}

func TestNilFetcherNeverPaginates(t *testing.T) {
	c := New(makeItems("p0", 3), nil)
	c.SetCurrentIndex(2)

	state := c.State()
	assert.False(t, state.HasMore)
	assert.False(t, state.IsFetchingMore)
}

func TestItem(t *testing.T) {
	c := New(makeItems("p0", 2), nil)

	it, ok := c.Item(1)
	require.True(t, ok)
	assert.Equal(t, "p0_1", it.ID)

	_, ok = c.Item(2)
	assert.False(t, ok)
}
