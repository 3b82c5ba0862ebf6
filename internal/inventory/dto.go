package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/models"
)

// ProductDTO is the product projection returned to callers, all columns included.
type ProductDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ExpiryDate  *string         `json:"expiry_date"`
	BatchNumber *string         `json:"batch_number"`
}

// NewProductDTO maps a product row into its DTO.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		ExpiryDate:  p.ExpiryDate,
		BatchNumber: p.BatchNumber,
	}
}

// NewProductDTOs maps rows in order.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}
