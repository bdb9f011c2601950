package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"golden-elegance/models"
	"golden-elegance/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	repositories.CartStorage
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newTestCartService(t *testing.T) (*CartService, *repositories.MemoryCartStorage) {
	t.Helper()
	storage := repositories.NewMemoryCartStorage()
	return NewCartService(newTestCatalog(t), storage, nil), storage
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "queenOrangeCart", CartKey(""))
	assert.Equal(t, "queenOrangeCart:abc", CartKey("abc"))
}

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	view, err := svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, models.CartItem{
		ProductID: 1,
		Name:      "Elegant Cotton Full Nighty",
		Price:     899,
		Image:     view.Items[0].Image,
		Size:      "M",
		Quantity:  1,
		Category:  "full-nighty",
	}, view.Items[0])
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, 899, view.Total)
	assert.Equal(t, models.Badge{Text: "1", Visible: true}, view.Badge)

	// same product and size accumulates
	view, err = svc.AddToCart(ctx, "s1", 1, "M", 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	// a different size is a separate line
	view, err = svc.AddToCart(ctx, "s1", 1, "L", 1)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 4, view.Count)
	assert.Equal(t, 4*899, view.Total)

	// persisted under the namespaced key
	data, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)
	var stored []models.CartItem
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, view.Items, stored)
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "s1", 999, "M", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AddToCart(ctx, "s1", 1, "  ", 1)
	assert.ErrorIs(t, err, ErrSizeRequired)

	_, err = svc.AddToCart(ctx, "s1", 1, "3Y", 1)
	assert.ErrorIs(t, err, ErrSizeUnavailable)

	data, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCartService_AddToCart_NormalizesQuantity(t *testing.T) {
	svc, _ := newTestCartService(t)

	view, err := svc.AddToCart(context.Background(), "s1", 2, "S", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartService_QuantityIsCapped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	view, err := svc.AddToCart(ctx, "s1", 1, "M", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, MaxCartQuantity, view.Items[0].Quantity)

	view, err = svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	assert.Equal(t, MaxCartQuantity, view.Items[0].Quantity)
	assert.Equal(t, MaxCartQuantity*899, view.Total)

	view, err = svc.AddToCart(ctx, "s1", 2, "S", 7)
	require.NoError(t, err)
	view, err = svc.AddToCart(ctx, "s1", 2, "S", 7)
	require.NoError(t, err)
	assert.Equal(t, MaxCartQuantity, view.Items[1].Quantity)

	view, err = svc.UpdateQuantity(ctx, "s1", 1, "M", 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxCartQuantity, view.Items[0].Quantity)
}

func TestCartService_AddToCart_SaveFailure(t *testing.T) {
	svc := NewCartService(newTestCatalog(t), failingStorage{repositories.NewMemoryCartStorage()}, nil)

	_, err := svc.AddToCart(context.Background(), "s1", 1, "M", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "a", 1, "M", 1)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, models.Badge{Text: "0", Visible: false}, view.Badge)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 2, "S", 2)
	require.NoError(t, err)

	view, err := svc.RemoveFromCart(ctx, "s1", 1, "M")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].ProductID)

	// absent line is a no-op
	view, err = svc.RemoveFromCart(ctx, "s1", 1, "XL")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "s1", 1, "M", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)
	assert.Equal(t, 5*899, view.Total)

	view, err = svc.UpdateQuantity(ctx, "s1", 1, "L", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)

	view, err = svc.UpdateQuantity(ctx, "s1", 1, "M", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.False(t, view.Badge.Visible)
}

func TestCartService_UpdateQuantity_ZeroTwice(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "s1", 1, "M", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 2, "S", 1)
	require.NoError(t, err)

	first, err := svc.UpdateQuantity(ctx, "s1", 1, "M", 0)
	require.NoError(t, err)
	stored, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)

	second, err := svc.UpdateQuantity(ctx, "s1", 1, "M", 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 2, second.Items[0].ProductID)

	again, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestCartService_TotalsAndClear(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "s1", 1, "M", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 2, "S", 1)
	require.NoError(t, err)

	total, err := svc.GetCartTotal(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2*899+749, total)

	count, err := svc.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	view, err := svc.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.Total)

	data, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCartService_CorruptCartIsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)
	require.NoError(t, storage.Set(ctx, "queenOrangeCart:s1", []byte("{not json")))

	view, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestCartService_SnapshotSurvivesCatalogChange(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryCartStorage()
	svc := NewCartService(newTestCatalog(t), storage, nil)

	_, err := svc.AddToCart(ctx, "s1", 1, "M", 1)
	require.NoError(t, err)

	raw := []byte(`
categories: [{ id: full-nighty, name: Full Nighty, slug: full-nighty }]
products:
  - { id: 1, name: Renamed, category: full-nighty, price: 10, image: a.jpg, sizes: [M] }
`)
	catalog, err := repositories.NewCatalogRepository(raw, nil)
	require.NoError(t, err)
	reloaded := NewCartService(catalog, storage, nil)

	view, err := reloaded.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Elegant Cotton Full Nighty", view.Items[0].Name)
	assert.Equal(t, 899, view.Items[0].Price)
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	sizes := []string{"M", "L"}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(size string) {
			defer wg.Done()
			_, _ = svc.AddToCart(ctx, "s1", 1, size, 1)
		}(sizes[i%2])
	}
	wg.Wait()

	count, err := svc.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestCartService_MergeCarts(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	_, err := svc.AddToCart(ctx, "user:a@b.co", 1, "M", 8)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 1, "M", 5)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 2, "S", 2)
	require.NoError(t, err)

	view, err := svc.MergeCarts(ctx, "s1", "user:a@b.co")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, MaxCartQuantity, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Items[1].ProductID)
	assert.Equal(t, 2, view.Items[1].Quantity)
	assert.Equal(t, MaxCartQuantity+2, view.Count)

	// the session cart is consumed
	data, err := storage.Get(ctx, "queenOrangeCart:s1")
	require.NoError(t, err)
	assert.Nil(t, data)

	// merging again changes nothing
	again, err := svc.MergeCarts(ctx, "s1", "user:a@b.co")
	require.NoError(t, err)
	assert.Equal(t, view, again)
}

func TestCartService_MergeCarts_EmptySource(t *testing.T) {
	ctx := context.Background()
	svc, storage := newTestCartService(t)

	view, err := svc.MergeCarts(ctx, "s1", "user:a@b.co")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	data, err := storage.Get(ctx, "queenOrangeCart:user:a@b.co")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = svc.AddToCart(ctx, "user:a@b.co", 1, "M", 1)
	require.NoError(t, err)
	view, err = svc.MergeCarts(ctx, "user:a@b.co", "user:a@b.co")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Count)
}

func TestCartService_CheckoutCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t)

	err := svc.CheckoutCart(ctx, "s1", func([]models.CartItem) error { return nil })
	assert.ErrorIs(t, err, ErrCartEmpty)

	_, err = svc.AddToCart(ctx, "s1", 1, "M", 2)
	require.NoError(t, err)

	err = svc.CheckoutCart(ctx, "s1", func([]models.CartItem) error { return errors.New("rejected") })
	assert.EqualError(t, err, "rejected")
	count, err := svc.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var got []models.CartItem
	err = svc.CheckoutCart(ctx, "s1", func(items []models.CartItem) error {
		got = items
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)

	count, err = svc.GetCartCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
