package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/pharmacy-pos-backend/api/responses"
	"github.com/angelmondragon/pharmacy-pos-backend/api/validators"
	"github.com/angelmondragon/pharmacy-pos-backend/internal/inventory"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ExpiryDate  *string          `json:"expiry_date"`
	BatchNumber *string          `json:"batch_number"`
}

type createProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}

// CreateProduct handles POST /products.
func CreateProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AddProduct(r.Context(), inventory.AddProductInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Stock:       payload.Stock,
			ExpiryDate:  payload.ExpiryDate,
			BatchNumber: payload.BatchNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createProductResponse{
			Message:   "Product added successfully",
			ProductID: product.ID,
		})
	}
}

// ListProducts handles GET /products.
func ListProducts(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// GetProduct handles GET /products/{productId}.
func GetProduct(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.ParseID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
