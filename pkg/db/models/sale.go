package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records one committed sale. Rows are never updated or deleted.
type Sale struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64           `gorm:"column:product_id;not null"`
	Quantity   int             `gorm:"column:quantity;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	SaleDate   time.Time       `gorm:"column:sale_date;not null"`
}

func (Sale) TableName() string { return "sales" }
