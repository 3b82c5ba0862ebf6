package controllers

import (
	"net/http"

	"github.com/angelmondragon/pharmacy-pos-backend/api/responses"
	"github.com/angelmondragon/pharmacy-pos-backend/api/validators"
	"github.com/angelmondragon/pharmacy-pos-backend/internal/sales"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
)

type createSaleRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

type createSaleResponse struct {
	Message string `json:"message"`
	sales.Receipt
}

// CreateSale handles POST /sales.
func CreateSale(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload createSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.MakeSale(r.Context(), sales.MakeSaleInput{
			ProductID: *payload.ProductID,
			Quantity:  *payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createSaleResponse{
			Message: "Sale recorded successfully",
			Receipt: *receipt,
		})
	}
}

// ListSales handles GET /sales with an optional product_id filter.
func ListSales(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		productID, err := validators.OptionalID(r.URL.Query().Get("product_id"), "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.ListSales(r.Context(), sales.ListSalesFilter{ProductID: productID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
