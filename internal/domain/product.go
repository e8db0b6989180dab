package domain

import "github.com/shopspring/decimal"

// Product is one tire model in the catalog
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"` // UAH
	Width       int             `json:"width"`                           // tire width, mm
	ImageURL    string          `gorm:"type:text" json:"image_url"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
