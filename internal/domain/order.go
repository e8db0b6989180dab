package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a single customer purchase request. Rows are written once and
// never updated or deleted.
type Order struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64     `gorm:"not null;index" json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
	Quantity     int       `json:"quantity"`
	CustomerName string    `gorm:"size:100" json:"customer_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	Email        string    `gorm:"size:100" json:"email"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderLine is an order joined with the product it references.
type OrderLine struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Total returns quantity times unit price.
func (l OrderLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
