package models

import (
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest value the numeric(12,2) money columns hold.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// Product is a sellable inventory item. Name is unique and immutable; stock is
// mutated only by the sales transaction.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;not null;uniqueIndex"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null"`
	ExpiryDate  *string         `gorm:"column:expiry_date"`
	BatchNumber *string         `gorm:"column:batch_number"`
}

func (Product) TableName() string { return "products" }
