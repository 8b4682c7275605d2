package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/idgen"
)

var fixedNow = time.Date(2024, 6, 11, 9, 30, 0, 0, time.UTC)

type failingRecorder struct{ err error }

func (r failingRecorder) OrderPlaced(context.Context, domain.Order) error { return r.err }

func (r failingRecorder) SampleSubmitted(context.Context, domain.SampleSubmission) error {
	return r.err
}

type brokenIDs struct{}

func (brokenIDs) Next(context.Context, string) (string, error) {
	return "", errors.New("counter unavailable")
}

func newTestContainer(opts ...ContainerOption) *Container {
	opts = append([]ContainerOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewContainer(Owner{UserID: "2", Role: "client"}, domain.NewCatalog(domain.SeedProducts()), idgen.NewSequence(), opts...)
}

func mustProduct(t *testing.T, c *Container, id string) domain.Product {
	t.Helper()
	p, ok := c.Product(id)
	require.True(t, ok, "product %s", id)
	return p
}

func TestContainer_StartsEmpty(t *testing.T) {
	c := newTestContainer()

	assert.Len(t, c.Products(), 6)
	assert.Empty(t, c.Cart().Items)
	assert.True(t, c.Cart().Total.IsZero())
	assert.Empty(t, c.Favorites())
	assert.Empty(t, c.Orders())
	assert.Empty(t, c.Samples())
}

func TestContainer_CheckoutCreatesPendingOrder(t *testing.T) {
	c := newTestContainer()
	p := mustProduct(t, c, "1")
	c.AddToCart(p)
	c.AddToCart(p)

	order, ok, err := c.Checkout(context.Background(), "farmerX")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "ORD-1001", order.ID)
	assert.Equal(t, "2024-06-11", order.Date)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, "farmerX", order.FarmerID)
	assert.Equal(t, "2", order.ClientID)
	assert.True(t, decimal.RequireFromString("25.98").Equal(order.Total), order.Total.String())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].CartQuantity)

	assert.Empty(t, c.Cart().Items)
	assert.False(t, c.IsInCart("1"))
	require.Len(t, c.Orders(), 1)
	assert.Equal(t, "ORD-1001", c.Orders()[0].ID)
}

func TestContainer_CheckoutPrependsAndNumbersSequentially(t *testing.T) {
	c := newTestContainer()
	ctx := context.Background()

	c.AddToCart(mustProduct(t, c, "1"))
	_, _, err := c.Checkout(ctx, "farmer1")
	require.NoError(t, err)

	c.AddToCart(mustProduct(t, c, "2"))
	_, _, err = c.Checkout(ctx, "farmer2")
	require.NoError(t, err)

	orders := c.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1002", orders[0].ID)
	assert.Equal(t, "ORD-1001", orders[1].ID)

	mine := c.FarmerOrders("farmer1")
	require.Len(t, mine, 1)
	assert.Equal(t, "ORD-1001", mine[0].ID)
	assert.Empty(t, c.FarmerOrders("nobody"))
}

func TestContainer_CheckoutDefaultsToFirstLineFarmer(t *testing.T) {
	c := newTestContainer()
	c.AddToCart(mustProduct(t, c, "4"))
	c.AddToCart(mustProduct(t, c, "1"))

	order, ok, err := c.Checkout(context.Background(), "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "farmer4", order.FarmerID)
}

func TestContainer_CheckoutEmptyCartIsNoop(t *testing.T) {
	c := newTestContainer()

	_, ok, err := c.Checkout(context.Background(), "farmerX")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, c.Orders())

	c.AddToCart(mustProduct(t, c, "3"))
	order, ok, err := c.Checkout(context.Background(), "farmerX")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ORD-1001", order.ID)
}

func TestContainer_CheckoutFailureLeavesStateUntouched(t *testing.T) {
	t.Run("recorder", func(t *testing.T) {
		c := newTestContainer(WithRecorder(failingRecorder{err: errors.New("db down")}))
		c.AddToCart(mustProduct(t, c, "1"))

		_, ok, err := c.Checkout(context.Background(), "farmerX")
		require.EqualError(t, err, "db down")
		assert.False(t, ok)
		assert.True(t, c.IsInCart("1"))
		assert.Empty(t, c.Orders())
	})

	t.Run("ids", func(t *testing.T) {
		c := NewContainer(Owner{UserID: "2"}, domain.NewCatalog(domain.SeedProducts()), brokenIDs{})
		c.AddToCart(mustProduct(t, c, "1"))

		_, ok, err := c.Checkout(context.Background(), "farmerX")
		require.ErrorContains(t, err, "allocate order id")
		assert.False(t, ok)
		assert.True(t, c.IsInCart("1"))
		assert.Empty(t, c.Orders())
	})
}

func TestContainer_OrderIsSnapshotOfCart(t *testing.T) {
	c := newTestContainer()
	c.AddToCart(mustProduct(t, c, "1"))

	order, _, err := c.Checkout(context.Background(), "farmerX")
	require.NoError(t, err)

	c.AddToCart(mustProduct(t, c, "1"))
	c.UpdateCartQuantity("1", 9)

	stored := c.Orders()[0]
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 1, stored.Items[0].CartQuantity)
	assert.True(t, order.Total.Equal(stored.Total))
}

func TestContainer_CartOperations(t *testing.T) {
	c := newTestContainer()
	c.AddToCart(mustProduct(t, c, "1"))
	c.AddToCart(mustProduct(t, c, "2"))

	c.UpdateCartQuantity("2", 3)
	view := c.Cart()
	require.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Items[1].CartQuantity)
	assert.True(t, decimal.RequireFromString("60.96").Equal(view.Total), view.Total.String())

	c.UpdateCartQuantity("2", 0)
	assert.False(t, c.IsInCart("2"))

	c.UpdateCartQuantity("missing", 4)
	assert.Len(t, c.Cart().Items, 1)

	c.RemoveFromCart("1")
	assert.Empty(t, c.Cart().Items)
}

func TestContainer_Favorites(t *testing.T) {
	c := newTestContainer()
	p := mustProduct(t, c, "4")

	c.AddToFavorites(p)
	c.AddToFavorites(p)
	assert.True(t, c.IsFavorite("4"))
	assert.Len(t, c.Favorites(), 1)

	c.RemoveFromFavorites("4")
	assert.False(t, c.IsFavorite("4"))

	c.RemoveFromFavorites("4")
	assert.Empty(t, c.Favorites())
}

func TestContainer_Browse(t *testing.T) {
	c := newTestContainer()

	got := c.Browse(domain.ProductFilter{Regions: []string{"Central Province"}})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "5", got[1].ID)
}

func sampleDraft(farmerID string) domain.SampleDraft {
	return domain.SampleDraft{
		HoneyType:      "Wildflower",
		HarvestDate:    "2024-05-20",
		Quantity:       "2kg",
		Address:        "12 Hive Lane",
		CollectionDate: "2024-06-15",
		ContactPref:    "phone",
		FarmerID:       farmerID,
	}
}

func TestContainer_SampleLifecycle(t *testing.T) {
	c := newTestContainer()
	ctx := context.Background()

	first, err := c.SubmitSample(ctx, sampleDraft("1"))
	require.NoError(t, err)
	assert.Equal(t, "SMP-1001", first.ID)
	assert.Equal(t, domain.SampleWaitingForCollection, first.Status)
	assert.Equal(t, "2024-06-11", first.SubmittedAt)

	second, err := c.SubmitSample(ctx, sampleDraft("7"))
	require.NoError(t, err)
	assert.Equal(t, "SMP-1002", second.ID)

	samples := c.Samples()
	require.Len(t, samples, 2)
	assert.Equal(t, second.ID, samples[0].ID)

	assert.True(t, c.UpdateSampleStatus(first.ID, domain.SampleVerified))
	got, ok := c.Sample(first.ID)
	require.True(t, ok)
	assert.Equal(t, domain.SampleVerified, got.Status)

	other, ok := c.Sample(second.ID)
	require.True(t, ok)
	assert.Equal(t, domain.SampleWaitingForCollection, other.Status)

	assert.False(t, c.UpdateSampleStatus("SMP-9999", domain.SampleRejected))
	assert.Len(t, c.FarmerSamples("1"), 1)
	assert.Len(t, c.FarmerSamples("7"), 1)
}

func TestContainer_SubmitSampleRecorderFailure(t *testing.T) {
	c := newTestContainer(WithRecorder(failingRecorder{err: errors.New("db down")}))

	_, err := c.SubmitSample(context.Background(), sampleDraft("1"))
	require.Error(t, err)
	assert.Empty(t, c.Samples())
}

func TestContainer_ConcurrentAddToCart(t *testing.T) {
	c := newTestContainer()
	p := mustProduct(t, c, "1")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddToCart(p)
		}()
	}
	wg.Wait()

	items := c.Cart().Items
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].CartQuantity)
}
