package repository

import (
	"context"

	"github.com/wheelmaster/tireshop/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// Create inserts a new product; the server assigns the ID
	Create(ctx context.Context, product *domain.Product) error

	// GetByName retrieves a product by its exact name
	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// List retrieves all products ordered by ID
	List(ctx context.Context) ([]*domain.Product, error)

	// Count returns the number of product rows
	Count(ctx context.Context) (int64, error)

	// DeleteDuplicates keeps the lowest ID for every name and removes the rest
	DeleteDuplicates(ctx context.Context) (int64, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return Classify(r.db.WithContext(ctx).Create(product).Error)
}

func (r *GormProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&product).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, Classify(err)
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, Classify(err)
}

func (r *GormProductRepository) DeleteDuplicates(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	keep := db.Model(&domain.Product{}).Select("MIN(id)").Group("name")
	result := db.Where("id NOT IN (?)", keep).Delete(&domain.Product{})
	if result.Error != nil {
		return 0, Classify(result.Error)
	}
	return result.RowsAffected, nil
}
