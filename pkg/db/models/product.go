package models

import "github.com/shopspring/decimal"

// Product is a catalog listing. AdditionalImages holds the comma-delimited
// image list exactly as persisted; callers decode it through the catalog package.
type Product struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string          `gorm:"column:name;not null"`
	Description      string          `gorm:"column:description"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category         string          `gorm:"column:category"`
	ImageURL         string          `gorm:"column:image_url"`
	Dimensions       string          `gorm:"column:dimensions"`
	Materials        string          `gorm:"column:materials"`
	Fabrics          string          `gorm:"column:fabrics"`
	AdditionalImages string          `gorm:"column:additional_images"`
}

func (Product) TableName() string { return "products" }
