package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/metrics"
)

// Service records sales against product stock.
type Service interface {
	MakeSale(ctx context.Context, input MakeSaleInput) (*Receipt, error)
	ListSales(ctx context.Context, filter ListSalesFilter) ([]SaleDTO, error)
}

// MakeSaleInput identifies the product and how many units to sell.
type MakeSaleInput struct {
	ProductID int64
	Quantity  int
}

// ListSalesFilter narrows the sale history. A nil ProductID lists every sale.
type ListSalesFilter struct {
	ProductID *int64
}

// Recorder observes sale outcomes.
type Recorder interface {
	ObserveSale(outcome string, units int, elapsed time.Duration)
}

// saleStore is the slice of Repository the sale transaction uses.
type saleStore interface {
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) (int, bool, error)
	CurrentStock(ctx context.Context, productID int64) (int, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the sales service dependencies.
type ServiceParams struct {
	Repo    *Repository
	Tx      txRunner
	Metrics Recorder
	Logger  *logger.Logger
	Clock   func() time.Time
}

type service struct {
	repo    *Repository
	bind    func(tx *gorm.DB) saleStore
	tx      txRunner
	metrics Recorder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the sales service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.Metrics == nil {
		params.Metrics = (*metrics.SalesMetrics)(nil)
	}
	repo := params.Repo
	return &service{
		repo:    repo,
		bind:    func(tx *gorm.DB) saleStore { return repo.WithTx(tx) },
		tx:      params.Tx,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     params.Clock,
	}, nil
}

// MakeSale checks stock, decrements it and records the sale in one
// transaction. Nothing is written unless every step succeeds.
func (s *service) MakeSale(ctx context.Context, input MakeSaleInput) (*Receipt, error) {
	started := time.Now()
	receipt, err := s.makeSale(ctx, input)

	units := 0
	if receipt != nil {
		units = receipt.Quantity
	}
	s.metrics.ObserveSale(outcomeFor(err), units, time.Since(started))

	ctx = s.logg.WithProductID(ctx, input.ProductID)
	switch {
	case err == nil:
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"sale_id":         receipt.SaleID,
			"quantity":        receipt.Quantity,
			"remaining_stock": receipt.RemainingStock,
		}), "sale recorded")
	case pkgerrors.HasCode(err, pkgerrors.CodeStorage):
		s.logg.Error(ctx, "sale failed", err)
	default:
		s.logg.Debug(s.logg.WithField(ctx, "reason", err.Error()), "sale rejected")
	}
	return receipt, err
}

func (s *service) makeSale(ctx context.Context, input MakeSaleInput) (*Receipt, error) {
	if input.ProductID < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be a positive integer")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	var receipt *Receipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.bind(tx)

		product, err := repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if db.IsRecordNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load product")
		}
		if product.Stock < input.Quantity {
			return insufficientStock(product.Name, product.Stock, input.Quantity)
		}

		total := product.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		if total.GreaterThan(models.MaxAmount) {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("total price must not exceed %s", models.MaxAmount.StringFixed(2)),
			).WithDetails(map[string]any{"product_name": product.Name, "requested_quantity": input.Quantity})
		}

		remaining, ok, err := repo.DecrementStock(ctx, product.ID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decrement stock")
		}
		if !ok {
			// stock moved between the read and the conditional update
			available, err := repo.CurrentStock(ctx, product.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "reload stock")
			}
			return insufficientStock(product.Name, available, input.Quantity)
		}

		sale := &models.Sale{
			ProductID:  product.ID,
			Quantity:   input.Quantity,
			TotalPrice: total,
			SaleDate:   s.now().UTC(),
		}
		if err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "insert sale")
		}

		receipt = &Receipt{
			SaleID:         sale.ID,
			ProductName:    product.Name,
			Quantity:       input.Quantity,
			TotalPrice:     total,
			RemainingStock: remaining,
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "commit sale")
		}
		return nil, err
	}
	return receipt, nil
}

// ListSales returns recorded sales ordered by id.
func (s *service) ListSales(ctx context.Context, filter ListSalesFilter) ([]SaleDTO, error) {
	if filter.ProductID != nil && *filter.ProductID < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id must be a positive integer")
	}
	rows, err := s.repo.ListSales(ctx, filter.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list sales")
	}
	return newSaleDTOs(rows), nil
}

func insufficientStock(name string, available, requested int) error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s. Available: %d", name, available),
	).WithDetails(map[string]any{
		"product_name":       name,
		"available_stock":    available,
		"requested_quantity": requested,
	})
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeCommitted
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		return metrics.OutcomeError
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation:
		return metrics.OutcomeInvalid
	case pkgerrors.CodeNotFound:
		return metrics.OutcomeNotFound
	case pkgerrors.CodeInsufficientStock:
		return metrics.OutcomeInsufficientStock
	default:
		return metrics.OutcomeError
	}
}
