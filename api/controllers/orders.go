package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/api/responses"
	"github.com/luxuryconcept/storefront-backend/api/validators"
	"github.com/luxuryconcept/storefront-backend/internal/orders"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

type orderItemRequest struct {
	ProductID int64            `json:"product_id" validate:"required,gt=0"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type placeOrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount     *decimal.Decimal   `json:"total_amount" validate:"required"`
}

func (p placeOrderRequest) toInput() orders.PlaceOrderInput {
	items := make([]orders.LineItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, orders.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	input := orders.PlaceOrderInput{
		Customer: orders.Customer{
			Name:    p.CustomerName,
			Email:   p.CustomerEmail,
			Phone:   p.CustomerPhone,
			Address: p.CustomerAddress,
		},
		Items: items,
	}
	if p.TotalAmount != nil {
		input.TotalAmount = *p.TotalAmount
	}
	return input
}

type placeOrderResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// PlaceOrder records a checkout atomically and returns the new order id.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := svc.PlaceOrder(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placeOrderResponse{Success: true, OrderID: orderID})
	}
}

// AdminListOrders returns every order with its item summary, newest first.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		summaries, err := svc.ListOrdersWithSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}
