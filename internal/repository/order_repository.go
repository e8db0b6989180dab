package repository

import (
	"context"
	"time"

	"github.com/wheelmaster/tireshop/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository handles database operations for customer orders
type OrderRepository interface {
	// Create inserts a new order. The referenced product must already exist.
	Create(ctx context.Context, order *domain.Order) error

	// Count returns the number of order rows
	Count(ctx context.Context) (int64, error)

	// ListLines retrieves orders joined with their product, newest first.
	// A zero since returns every order.
	ListLines(ctx context.Context, since time.Time) ([]domain.OrderLine, error)
}

// GormOrderRepository is the GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return Classify(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error)
}

func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&total).Error
	return total, Classify(err)
}

func (r *GormOrderRepository) ListLines(ctx context.Context, since time.Time) ([]domain.OrderLine, error) {
	query := r.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id, o.created_at, o.customer_name, o.phone, o.email, p.name AS product_name, o.quantity, p.price").
		Joins("JOIN products AS p ON o.product_id = p.id")
	if !since.IsZero() {
		query = query.Where("o.created_at >= ?", since)
	}

	var lines []domain.OrderLine
	err := query.Order("o.created_at DESC").Order("o.id DESC").Scan(&lines).Error
	return lines, Classify(err)
}
