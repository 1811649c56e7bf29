package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
	"github.com/luxuryconcept/storefront-backend/pkg/enums"
)

// Repository persists order headers and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateItems inserts the items one statement per row so their ids follow
// the request order.
func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		if err := r.db.WithContext(ctx).Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// summaryRow is one order/item/product join row.
type summaryRow struct {
	OrderID         int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	TotalAmount     decimal.Decimal
	Status          enums.OrderStatus
	CreatedAt       time.Time
	ProductName     string
	Quantity        int
}

// ListSummaryRows inner-joins orders with their items and the referenced
// products, newest orders first and items in insertion order. Orders with no
// resolvable items produce no rows.
func (r *Repository) ListSummaryRows(ctx context.Context) ([]summaryRow, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id AS order_id, o.customer_name, o.customer_email, o.customer_phone,
			o.customer_address, o.total_amount, o.status, o.created_at,
			p.name AS product_name, oi.quantity`).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Order("o.created_at DESC").
		Order("o.id DESC").
		Order("oi.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
