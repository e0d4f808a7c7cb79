package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-scientist/brandson/app/cart"
	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/repositories"
	"go.uber.org/zap"
)

// CartService loads a cart by session key, applies one engine operation and
// saves the result. Calls for the same key never interleave within a process.
type CartService struct {
	store       repositories.CartStore
	productRepo repositories.ProductRepository
	logger      *zap.Logger
	locks       *keyedMutex
	now         cart.Clock
}

// NewCartService wires a cart service. productRepo may be nil, in which case
// stored prices are used as-is.
func NewCartService(store repositories.CartStore, productRepo repositories.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
		locks:       newKeyedMutex(),
		now:         time.Now,
	}
}

func (s *CartService) GetCart(ctx context.Context, key string) (models.CartState, error) {
	var state models.CartState
	err := s.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		state = e.State()
		return false, nil
	})
	return state, err
}

func (s *CartService) AddItem(ctx context.Context, key, productID, variantID string, qty int) (models.CartState, error) {
	if qty <= 0 {
		return models.CartState{}, fmt.Errorf("add item: %w", cart.ErrInvalidQuantity)
	}
	if s.productRepo == nil {
		return models.CartState{}, fmt.Errorf("add item: %w", repositories.ErrProductNotFound)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return models.CartState{}, fmt.Errorf("add item: %w", err)
	}
	variant, ok := product.Variant(variantID)
	if !ok {
		return models.CartState{}, fmt.Errorf("add item: %w: %s/%s", ErrVariantNotFound, productID, variantID)
	}

	return s.mutate(ctx, key, func(e *cart.Engine) error {
		return e.AddItem(*product, variant, qty)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, key, lineID string) (models.CartState, error) {
	return s.mutate(ctx, key, func(e *cart.Engine) error {
		e.RemoveItem(lineID)
		return nil
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, key, lineID string, qty int) (models.CartState, error) {
	return s.mutate(ctx, key, func(e *cart.Engine) error {
		e.UpdateQuantity(lineID, qty)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, key string) (models.CartState, error) {
	return s.mutate(ctx, key, func(e *cart.Engine) error {
		e.Clear()
		return nil
	})
}

// SetShipping rejects unknown methods; the engine itself never sees them.
func (s *CartService) SetShipping(ctx context.Context, key, method string) (models.CartState, error) {
	info, ok := models.FindShippingOption(method)
	if !ok {
		return models.CartState{}, fmt.Errorf("set shipping: %w: %q", ErrUnknownShippingMethod, method)
	}
	return s.mutate(ctx, key, func(e *cart.Engine) error {
		e.SetShipping(info)
		return nil
	})
}

func (s *CartService) IsInCart(ctx context.Context, key, productID, variantID string) (bool, error) {
	var in bool
	err := s.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		in = e.IsInCart(productID, variantID)
		return false, nil
	})
	return in, err
}

func (s *CartService) ItemQuantity(ctx context.Context, key, productID, variantID string) (int, error) {
	var qty int
	err := s.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		qty = e.ItemQuantity(productID, variantID)
		return false, nil
	})
	return qty, err
}

func (s *CartService) ShippingOptions() []models.ShippingInfo {
	return models.ShippingOptions()
}

func (s *CartService) mutate(ctx context.Context, key string, op func(e *cart.Engine) error) (models.CartState, error) {
	var state models.CartState
	err := s.withCart(ctx, key, func(e *cart.Engine) (bool, error) {
		if err := op(e); err != nil {
			return false, err
		}
		state = e.State()
		return true, nil
	})
	if err != nil {
		return models.CartState{}, err
	}
	return state, nil
}

// withCart holds the key's lock while fn runs against the loaded engine. The
// state is saved when fn reports a change.
func (s *CartService) withCart(ctx context.Context, key string, fn func(e *cart.Engine) (bool, error)) error {
	unlock, err := s.locks.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("wait for cart: %w", err)
	}
	defer unlock()

	e, err := s.load(ctx, key)
	if err != nil {
		return err
	}

	changed, err := fn(e)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.store.Save(ctx, key, e.State()); err != nil {
		s.logger.Error("failed to save cart", zap.String("cart_key", key), zap.Error(err))
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartService) load(ctx context.Context, key string) (*cart.Engine, error) {
	stored, err := s.store.Load(ctx, key)
	switch {
	case errors.Is(err, repositories.ErrCorruptCart):
		s.logger.Warn("discarding corrupt cart", zap.String("cart_key", key), zap.Error(err))
		return cart.New(s.now), nil
	case err != nil:
		return nil, fmt.Errorf("load cart: %w", err)
	case stored == nil:
		return cart.New(s.now), nil
	}

	e := cart.Restore(*stored, s.now)
	if s.productRepo != nil {
		if stale := e.Reprice(s.lookup(ctx)); len(stale) > 0 {
			s.logger.Warn("cart lines kept at stored price",
				zap.String("cart_key", key),
				zap.Strings("line_ids", stale))
		}
	}
	return e, nil
}

// lookup resolves catalog entries, fetching each product at most once.
func (s *CartService) lookup(ctx context.Context) cart.Lookup {
	cache := map[string]*models.Product{}
	return func(productID, variantID string) (models.Product, models.ProductVariant, bool) {
		product, seen := cache[productID]
		if !seen {
			p, err := s.productRepo.GetByID(ctx, productID)
			if err != nil && !errors.Is(err, repositories.ErrProductNotFound) {
				s.logger.Warn("catalog lookup failed", zap.String("product_id", productID), zap.Error(err))
			}
			cache[productID] = p
			product = p
		}
		if product == nil {
			return models.Product{}, models.ProductVariant{}, false
		}
		variant, ok := product.Variant(variantID)
		return *product, variant, ok
	}
}
