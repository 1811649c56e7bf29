package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luxuryconcept/storefront-backend/pkg/enums"
)

// Order is the checkout header. It is written once alongside its items and
// never updated afterwards.
type Order struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerEmail   string            `gorm:"column:customer_email;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone"`
	CustomerAddress string            `gorm:"column:customer_address"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          enums.OrderStatus `gorm:"column:status;default:pending"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime;index:orders_created_at_idx"`
}

func (Order) TableName() string { return "orders" }
