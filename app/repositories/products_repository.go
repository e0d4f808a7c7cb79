package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-scientist/brandson/app/models"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, category string, limit, offset int) ([]models.Product, int64, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}

type CategoryCount struct {
	Category string `json:"category"`
	Products int64  `json:"products"`
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db}
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return p.first(ctx, "id = ?", id)
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return p.first(ctx, "slug = ?", slug)
}

func (p *productRepository) first(ctx context.Context, cond string, arg string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("price ASC") }).
		Where(cond, arg).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, arg)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List pages through the catalog, optionally filtered by category.
func (p *productRepository) List(ctx context.Context, category string, limit, offset int) ([]models.Product, int64, error) {
	query := p.db.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	return p.page(query, limit, offset)
}

func (p *productRepository) Search(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error) {
	searchKeyword := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	query := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			searchKeyword, searchKeyword, searchKeyword)
	return p.page(query, limit, offset)
}

// page counts and fetches one page of query. A limit of zero or less returns
// every row.
func (p *productRepository) page(query *gorm.DB, limit, offset int) ([]models.Product, int64, error) {
	query = query.Session(&gorm.Session{})
	if limit <= 0 {
		limit = -1
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("price ASC") }).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, total, err
}

// Categories lists every category that has at least one product.
func (p *productRepository) Categories(ctx context.Context) ([]CategoryCount, error) {
	var categories []CategoryCount
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category, COUNT(*) AS products").
		Where("category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
