package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-scientist/brandson/app/models"
)

var ErrCorruptCart = errors.New("cart store: corrupt cart payload")

// CartStore persists cart state by session key. Load returns (nil, nil) when
// nothing is stored under the key.
type CartStore interface {
	Load(ctx context.Context, key string) (*models.CartState, error)
	Save(ctx context.Context, key string, state models.CartState) error
	Delete(ctx context.Context, key string) error
}

func encodeCart(state models.CartState) ([]byte, error) {
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return payload, nil
}

func decodeCart(key string, payload []byte) (*models.CartState, error) {
	var state models.CartState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorruptCart, key, err)
	}
	if state.Items == nil {
		state.Items = []models.CartItem{}
	}
	return &state, nil
}
