package seeders

import (
	"context"
	"fmt"

	"github.com/de-scientist/brandson/app/models"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type variantSeed struct {
	name       string
	price      string
	stock      int
	attributes map[string]string
}

type productSeed struct {
	name        string
	description string
	category    string
	subcategory string
	turnaround  string
	features    []string
	minQty      int
	rating      float64
	reviews     int
	variants    []variantSeed
}

var catalog = []productSeed{
	{
		name:        "Business Cards",
		description: "Full colour business cards on 350gsm board.",
		category:    "stationery",
		subcategory: "cards",
		turnaround:  "2 business days",
		features:    []string{"350gsm board", "Double sided", "Free design check"},
		minQty:      1,
		rating:      4.8,
		reviews:     126,
		variants: []variantSeed{
			{name: "Matte, 500 pcs", price: "1500", stock: 200, attributes: map[string]string{"finish": "matte", "quantity": "500"}},
			{name: "Gloss, 1000 pcs", price: "2600", stock: 150, attributes: map[string]string{"finish": "gloss", "quantity": "1000"}},
			{name: "Spot UV, 500 pcs", price: "3200", stock: 80, attributes: map[string]string{"finish": "spot-uv", "quantity": "500"}},
		},
	},
	{
		name:        "Flyers",
		description: "Promotional flyers on 130gsm gloss paper.",
		category:    "marketing",
		subcategory: "flyers",
		turnaround:  "3 business days",
		features:    []string{"130gsm gloss", "Single or double sided"},
		minQty:      1,
		rating:      4.6,
		reviews:     88,
		variants: []variantSeed{
			{name: "A5, 100 pcs", price: "1200", stock: 300, attributes: map[string]string{"size": "A5", "quantity": "100"}},
			{name: "A5, 500 pcs", price: "4500", stock: 120, attributes: map[string]string{"size": "A5", "quantity": "500"}},
			{name: "A4, 250 pcs", price: "5200", stock: 90, attributes: map[string]string{"size": "A4", "quantity": "250"}},
		},
	},
	{
		name:        "Roll-up Banner",
		description: "Pull-up banner with aluminium stand and carry bag.",
		category:    "large-format",
		subcategory: "banners",
		turnaround:  "2 business days",
		features:    []string{"Aluminium stand", "Carry bag included"},
		minQty:      1,
		rating:      4.7,
		reviews:     54,
		variants: []variantSeed{
			{name: "85 x 200 cm", price: "7500", stock: 40, attributes: map[string]string{"width": "85cm", "height": "200cm"}},
			{name: "100 x 200 cm", price: "8900", stock: 25, attributes: map[string]string{"width": "100cm", "height": "200cm"}},
		},
	},
	{
		name:        "PVC Vinyl Banner",
		description: "Weatherproof outdoor banner with eyelets.",
		category:    "large-format",
		subcategory: "banners",
		turnaround:  "3 business days",
		features:    []string{"440gsm PVC", "Eyelets every 50cm"},
		minQty:      1,
		rating:      4.5,
		reviews:     31,
		variants: []variantSeed{
			{name: "2 x 1 m", price: "4250.50", stock: 60, attributes: map[string]string{"width": "2m", "height": "1m"}},
			{name: "3 x 1 m", price: "6100", stock: 45, attributes: map[string]string{"width": "3m", "height": "1m"}},
		},
	},
	{
		name:        "Branded T-Shirt",
		description: "Cotton t-shirts printed with your logo.",
		category:    "apparel",
		subcategory: "t-shirts",
		turnaround:  "5 business days",
		features:    []string{"100% cotton", "Sizes S to XXL"},
		minQty:      10,
		rating:      4.4,
		reviews:     67,
		variants: []variantSeed{
			{name: "White, Screen print", price: "850", stock: 500, attributes: map[string]string{"colour": "white", "method": "screen"}},
			{name: "Black, Screen print", price: "950", stock: 400, attributes: map[string]string{"colour": "black", "method": "screen"}},
			{name: "Heat press, Full colour", price: "1200", stock: 250, attributes: map[string]string{"method": "heat-press"}},
		},
	},
	{
		name:        "Branded Mug",
		description: "Ceramic mugs printed with sublimation inks.",
		category:    "apparel",
		subcategory: "merchandise",
		turnaround:  "4 business days",
		features:    []string{"Dishwasher safe"},
		minQty:      6,
		rating:      4.6,
		reviews:     42,
		variants: []variantSeed{
			{name: "White 11oz", price: "649.99", stock: 300, attributes: map[string]string{"colour": "white", "size": "11oz"}},
			{name: "Magic mug 11oz", price: "1100", stock: 120, attributes: map[string]string{"colour": "black", "size": "11oz"}},
		},
	},
}

// Catalog builds the printing catalog. Product and variant ids are slugs of
// their names so seeding is repeatable.
func Catalog() []models.Product {
	products := make([]models.Product, 0, len(catalog))
	for _, seed := range catalog {
		id := slug.Make(seed.name)
		product := models.Product{
			ID:               id,
			Slug:             id,
			Name:             seed.name,
			Description:      seed.description,
			Category:         seed.category,
			Subcategory:      seed.subcategory,
			Features:         seed.features,
			Rating:           seed.rating,
			ReviewCount:      seed.reviews,
			MinOrderQuantity: seed.minQty,
			TurnaroundTime:   seed.turnaround,
		}
		for i, v := range seed.variants {
			price := decimal.RequireFromString(v.price)
			if i == 0 || price.LessThan(product.BasePrice) {
				product.BasePrice = price
			}
			product.Variants = append(product.Variants, models.ProductVariant{
				ID:         slug.Make(v.name),
				ProductID:  id,
				Name:       v.name,
				Price:      price,
				Stock:      v.stock,
				Attributes: v.attributes,
			})
		}
		products = append(products, product)
	}
	return products
}

// DBSeed upserts the catalog and returns the number of products written.
func DBSeed(ctx context.Context, db *gorm.DB) (int, error) {
	products := Catalog()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range products {
			variants := p.Variants
			p.Variants = nil
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit(clause.Associations).Create(&p).Error; err != nil {
				return fmt.Errorf("seed product %s: %w", p.ID, err)
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}, {Name: "product_id"}},
				UpdateAll: true,
			}).Create(&variants).Error; err != nil {
				return fmt.Errorf("seed variants of %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
