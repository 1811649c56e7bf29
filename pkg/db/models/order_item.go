package models

import "github.com/shopspring/decimal"

// OrderItem is a line item; Price is the unit price at the time of purchase.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;index:order_items_order_id_idx"`
	ProductID int64           `gorm:"column:product_id;index:order_items_product_id_idx"`
	Quantity  int             `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
}

func (OrderItem) TableName() string { return "order_items" }
