package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-scientist/brandson/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCartStore struct {
	db *gorm.DB
}

// NewGormCartStore keeps carts in the cart_snapshots table.
func NewGormCartStore(db *gorm.DB) CartStore {
	return &gormCartStore{db}
}

func (s *gormCartStore) Load(ctx context.Context, key string) (*models.CartState, error) {
	var snap models.CartSnapshot
	err := s.db.WithContext(ctx).Where("cart_key = ?", key).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %q: %w", key, err)
	}
	return decodeCart(key, snap.Payload)
}

func (s *gormCartStore) Save(ctx context.Context, key string, state models.CartState) error {
	payload, err := encodeCart(state)
	if err != nil {
		return err
	}

	snap := models.CartSnapshot{Key: key, Payload: payload, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
	if err != nil {
		return fmt.Errorf("save cart %q: %w", key, err)
	}
	return nil
}

func (s *gormCartStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("cart_key = ?", key).Delete(&models.CartSnapshot{}).Error; err != nil {
		return fmt.Errorf("delete cart %q: %w", key, err)
	}
	return nil
}
