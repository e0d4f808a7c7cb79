package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/repositories"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 4, 2, 11, 0, 0, 0, time.UTC)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]models.Product
	calls    int
}

func newFakeProductRepo() *fakeProductRepo {
	cards := models.Product{
		ID: "business-cards", Slug: "business-cards", Name: "Business Cards", Category: "stationery",
		BasePrice: decimal.NewFromInt(1500),
		Variants: []models.ProductVariant{
			{ID: "matte-500", ProductID: "business-cards", Name: "Matte, 500 pcs", Price: decimal.NewFromInt(1500)},
			{ID: "gloss-1000", ProductID: "business-cards", Name: "Gloss, 1000 pcs", Price: decimal.NewFromInt(2600)},
		},
	}
	mug := models.Product{
		ID: "branded-mug", Slug: "branded-mug", Name: "Branded Mug", Category: "merchandise",
		BasePrice: decimal.RequireFromString("649.99"),
		Variants: []models.ProductVariant{
			{ID: "white-11oz", ProductID: "branded-mug", Name: "White 11oz", Price: decimal.RequireFromString("649.99")},
		},
	}
	return &fakeProductRepo{products: map[string]models.Product{cards.ID: cards, mug.ID: mug}}
}

func (r *fakeProductRepo) setPrice(productID, variantID string, price decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[productID]
	variants := append([]models.ProductVariant(nil), p.Variants...)
	for i := range variants {
		if variants[i].ID == variantID {
			variants[i].Price = price
		}
	}
	p.Variants = variants
	r.products[productID] = p
}

func (r *fakeProductRepo) remove(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, productID)
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrProductNotFound, id)
	}
	return &p, nil
}

func (r *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.GetByID(ctx, slug)
}

func (r *fakeProductRepo) List(context.Context, string, int, int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) Categories(context.Context) ([]repositories.CategoryCount, error) {
	return nil, nil
}

func (r *fakeProductRepo) Search(context.Context, string, int, int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

type failingStore struct {
	repositories.CartStore
	saveErr   error
	loadErr   error
	deleteErr error
}

func (s failingStore) Load(ctx context.Context, key string) (*models.CartState, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.CartStore.Load(ctx, key)
}

func (s failingStore) Save(ctx context.Context, key string, state models.CartState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.CartStore.Save(ctx, key, state)
}

func (s failingStore) Delete(ctx context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.CartStore.Delete(ctx, key)
}

func newTestCartService(store repositories.CartStore, repo repositories.ProductRepository) *CartService {
	s := NewCartService(store, repo, nil)
	s.now = func() time.Time { return testNow }
	return s
}
