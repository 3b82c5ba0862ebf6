package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/models"
)

// Receipt summarizes a committed sale.
type Receipt struct {
	SaleID         int64           `json:"sale_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	RemainingStock int             `json:"remaining_stock"`
}

// SaleDTO is the sale history projection.
type SaleDTO struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SaleDate   time.Time       `json:"sale_date"`
}

func newSaleDTOs(rows []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, SaleDTO{
			ID:         row.ID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			TotalPrice: row.TotalPrice,
			SaleDate:   row.SaleDate.UTC(),
		})
	}
	return out
}
