package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/models"
)

const decrementStockSQL = `UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ? RETURNING stock`

type stockRow struct {
	Stock int `gorm:"column:stock"`
}

// Repository reads products and writes sales. Construct it from a transaction
// handle when the calls must share one unit of work.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProduct loads the product being sold.
func (r *Repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock subtracts quantity only while enough stock remains. It
// reports false when no row qualified.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, quantity int) (int, bool, error) {
	var rows []stockRow
	err := r.db.WithContext(ctx).
		Raw(decrementStockSQL, quantity, productID, quantity).
		Scan(&rows).
		Error
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return rows[0].Stock, true, nil
}

// CurrentStock reads the stock level of a product.
func (r *Repository) CurrentStock(ctx context.Context, productID int64) (int, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("stock").
		First(&product, "id = ?", productID).
		Error
	return product.Stock, err
}

// CreateSale appends a sale row and fills in its id.
func (r *Repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// ListSales returns sales ordered by ascending id, optionally for one product.
func (r *Repository) ListSales(ctx context.Context, productID *int64) ([]models.Sale, error) {
	query := r.db.WithContext(ctx).Model(&models.Sale{})
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	var rows []models.Sale
	err := query.Order("id ASC").Find(&rows).Error
	return rows, err
}
