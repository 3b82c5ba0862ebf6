package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
)

const (
	maxNameLength        = 255
	maxBatchNumberLength = 64
	expiryDateLayout     = "2006-01-02"
)

// Service exposes product creation and lookup.
type Service interface {
	AddProduct(ctx context.Context, input AddProductInput) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
}

// AddProductInput holds the payload to create a product. Price and Stock are
// pointers so a missing value can be told apart from zero.
type AddProductInput struct {
	Name        string
	Price       *decimal.Decimal
	Stock       *int
	ExpiryDate  *string
	BatchNumber *string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// AddProduct validates and inserts a product. Names are unique; the storage
// constraint is the source of truth for that check.
func (s *service) AddProduct(ctx context.Context, input AddProductInput) (*ProductDTO, error) {
	product, err := input.toModel()
	if err != nil {
		return nil, err
	}

	var created *models.Product
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row, cerr := s.repo.WithTx(tx).CreateProduct(ctx, product)
		if cerr != nil {
			return cerr
		}
		created = row
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("Product with name %q already exists.", product.Name),
			).WithDetails(map[string]any{"name": product.Name})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "insert product")
	}
	return NewProductDTO(created), nil
}

// ListProducts returns every product ordered by id.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products")
	}
	return NewProductDTOs(rows), nil
}

// GetProduct loads a single product by id.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	if id < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (in AddProductInput) toModel() (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	missing := []string{}
	if name == "" {
		missing = append(missing, "name")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Stock == nil {
		missing = append(missing, "stock")
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing required product data (name, price, stock)").
			WithDetails(map[string]any{"missing": missing})
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	if in.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if in.Price.GreaterThan(models.MaxAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("price must not exceed %s", models.MaxAmount.StringFixed(2)))
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must have at most 2 decimal places")
	}
	if *in.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	expiry := normalizeOptional(in.ExpiryDate)
	if expiry != nil {
		if _, err := time.Parse(expiryDateLayout, *expiry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expiry_date must be formatted as YYYY-MM-DD")
		}
	}
	batch := normalizeOptional(in.BatchNumber)
	if batch != nil && utf8.RuneCountInString(*batch) > maxBatchNumberLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("batch_number must be at most %d characters", maxBatchNumberLength))
	}

	return &models.Product{
		Name:        name,
		Price:       *in.Price,
		Stock:       *in.Stock,
		ExpiryDate:  expiry,
		BatchNumber: batch,
	}, nil
}

// normalizeOptional trims the value and maps blanks to nil.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
