package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/pkg/enums"
)

// Customer holds the buyer contact details captured at checkout.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// LineItemInput is one requested product. UnitPrice is the price the client
// displayed; when present it must match the catalog price.
type LineItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice *decimal.Decimal
}

// PlaceOrderInput is a checkout submission.
type PlaceOrderInput struct {
	Customer    Customer
	Items       []LineItemInput
	TotalAmount decimal.Decimal
}

// OrderSummary is one order header with its human-readable item summary.
type OrderSummary struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          enums.OrderStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	ItemsSummary    string            `json:"items_summary"`
}
