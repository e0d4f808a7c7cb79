package repositories

import (
	"path/filepath"
	"testing"

	"github.com/de-scientist/brandson/app/models"
	"github.com/de-scientist/brandson/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brandson.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func sampleState() models.CartState {
	variant := models.ProductVariant{
		ID:         "a5-100",
		ProductID:  "flyers",
		Name:       "A5, 100 pcs",
		Price:      decimal.NewFromInt(1200),
		Attributes: map[string]string{"size": "A5"},
	}
	return models.CartState{
		Items: []models.CartItem{{
			ID:       "flyers-a5-100",
			Product:  models.Product{ID: "flyers", Name: "Flyers", Variants: []models.ProductVariant{variant}},
			Variant:  variant,
			Quantity: 2,
		}},
		Subtotal:  decimal.NewFromInt(2400),
		Tax:       decimal.NewFromInt(384),
		Shipping:  decimal.NewFromInt(350),
		Total:     decimal.NewFromInt(3134),
		ItemCount: 2,
	}
}
