package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Category holds the category name.
// OriginalPrice is the undiscounted price; DiscountRate is zero when no
// discount is active.
type Product struct {
	ID            string          `gorm:"primaryKey;size:36"`
	Name          string          `gorm:"not null"`
	Description   string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Category      string          `gorm:"index;not null"`
	SubCategory   string          `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// Discounted reports whether a discount is currently applied.
func (p *Product) Discounted() bool {
	return p.DiscountRate.IsPositive()
}

// ProductFilter narrows product listings. Empty fields match everything.
type ProductFilter struct {
	Category    string
	SubCategory string
}
