package migrations

import (
	"github.com/de-scientist/brandson/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.CartSnapshot{})
}
