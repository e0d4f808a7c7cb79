package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. CreatedAt, UpdatedAt and DeletedAt are row
// metadata and stay out of JSON, so a product embedded in a stored cart
// round-trips its catalog fields only.
type Product struct {
	ID               string           `gorm:"size:64;not null;primaryKey" json:"id"`
	Slug             string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Name             string           `gorm:"size:255;not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description"`
	Category         string           `gorm:"size:100;index" json:"category"`
	Subcategory      string           `gorm:"size:100" json:"subcategory,omitempty"`
	Variants         []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	BasePrice        decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"basePrice"`
	Features         []string         `gorm:"serializer:json" json:"features,omitempty"`
	Rating           float64          `json:"rating"`
	ReviewCount      int              `json:"reviewCount"`
	MinOrderQuantity int              `gorm:"default:1" json:"minOrderQuantity"`
	MaxOrderQuantity int              `json:"maxOrderQuantity,omitempty"`
	TurnaroundTime   string           `gorm:"size:100" json:"turnaroundTime,omitempty"`
	CreatedAt        time.Time        `json:"-"`
	UpdatedAt        time.Time        `json:"-"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is one purchasable configuration of a product. Its ID is
// unique only within the parent product.
type ProductVariant struct {
	ID         string            `gorm:"size:64;primaryKey" json:"id"`
	ProductID  string            `gorm:"size:64;primaryKey" json:"productId,omitempty"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	Price      decimal.Decimal   `gorm:"type:decimal(16,2);not null" json:"price"`
	Stock      int               `gorm:"not null;default:0" json:"stock"`
	Attributes map[string]string `gorm:"serializer:json" json:"attributes,omitempty"`
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}
