package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trustabee/honey-marketplace/internal/shop/domain"
	"github.com/trustabee/honey-marketplace/pkg/idgen"
)

// Owner identifies whoever a container belongs to.
type Owner struct {
	UserID string
	Role   string
}

// Container is the shop state of one session: catalog, cart, favorites,
// orders and samples. All methods are safe for concurrent use; each call is a
// single step under the container lock.
type Container struct {
	mu        sync.Mutex
	owner     Owner
	catalog   *domain.Catalog
	cart      domain.Cart
	favorites domain.Favorites
	orders    domain.OrderLedger
	samples   domain.SampleLedger
	ids       idgen.Generator
	recorder  Recorder
	now       func() time.Time
}

type ContainerOption func(*Container)

func WithRecorder(r Recorder) ContainerOption {
	return func(c *Container) { c.recorder = r }
}

func WithClock(now func() time.Time) ContainerOption {
	return func(c *Container) { c.now = now }
}

func NewContainer(owner Owner, catalog *domain.Catalog, ids idgen.Generator, opts ...ContainerOption) *Container {
	c := &Container{
		owner:    owner,
		catalog:  catalog,
		ids:      ids,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) Owner() Owner { return c.owner }

func (c *Container) Products() []domain.Product { return c.catalog.Products() }

func (c *Container) Product(id string) (domain.Product, bool) { return c.catalog.Find(id) }

func (c *Container) Browse(f domain.ProductFilter) []domain.Product { return c.catalog.Filter(f) }

func (c *Container) AddToCart(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Add(p)
}

func (c *Container) RemoveFromCart(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Remove(productID)
}

// UpdateCartQuantity sets the quantity of a line; quantity < 1 removes it.
func (c *Container) UpdateCartQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.SetQuantity(productID, quantity)
}

func (c *Container) IsInCart(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Contains(productID)
}

type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func (c *Container) Cart() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartView{Items: c.cart.Items(), Total: c.cart.Total()}
}

func (c *Container) AddToFavorites(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favorites.Add(p)
}

func (c *Container) RemoveFromFavorites(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favorites.Remove(productID)
}

func (c *Container) IsFavorite(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.favorites.Contains(productID)
}

func (c *Container) Favorites() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.favorites.Products()
}

// Checkout turns the cart into a Pending order and empties the cart. It
// reports false without touching anything when the cart is empty. If id
// allocation or the recorder fails, the cart and the ledger are unchanged.
// An empty farmerID attributes the order to the farmer of the first line.
func (c *Container) Checkout(ctx context.Context, farmerID string) (domain.Order, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cart.Len() == 0 {
		return domain.Order{}, false, nil
	}
	if farmerID == "" {
		farmerID = c.cart.Items()[0].FarmerID
	}
	id, err := c.ids.Next(ctx, idgen.OrderPrefix)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("allocate order id: %w", err)
	}
	order := domain.NewOrder(id, farmerID, c.owner.UserID, c.cart.Items(), c.now())
	if err := c.recorder.OrderPlaced(ctx, order); err != nil {
		return domain.Order{}, false, err
	}
	c.orders.Prepend(order)
	c.cart.Clear()
	return order, true, nil
}

func (c *Container) Orders() []domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders.All()
}

func (c *Container) FarmerOrders(farmerID string) []domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders.ByFarmer(farmerID)
}

func (c *Container) SubmitSample(ctx context.Context, draft domain.SampleDraft) (domain.SampleSubmission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.ids.Next(ctx, idgen.SamplePrefix)
	if err != nil {
		return domain.SampleSubmission{}, fmt.Errorf("allocate sample id: %w", err)
	}
	sample := domain.NewSample(id, draft, c.now())
	if err := c.recorder.SampleSubmitted(ctx, sample); err != nil {
		return domain.SampleSubmission{}, err
	}
	c.samples.Prepend(sample)
	return sample, nil
}

// UpdateSampleStatus overwrites the status of a sample held by this
// container and reports whether it was found.
func (c *Container) UpdateSampleStatus(sampleID string, status domain.SampleStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples.UpdateStatus(sampleID, status)
}

func (c *Container) Sample(sampleID string) (domain.SampleSubmission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples.Find(sampleID)
}

func (c *Container) Samples() []domain.SampleSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples.All()
}

func (c *Container) FarmerSamples(farmerID string) []domain.SampleSubmission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples.ByFarmer(farmerID)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(context.Context, domain.Order) error { return nil }

func (nopRecorder) SampleSubmitted(context.Context, domain.SampleSubmission) error { return nil }
