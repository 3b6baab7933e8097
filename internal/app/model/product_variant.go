package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is an optional price modifier on a product (e.g. a frame
// color choice). At most one variant per product is the default.
type ProductVariant struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	Description   string          `gorm:"type:varchar(255);not null" json:"description"`
	PriceModifier decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_modifier"`
	IsDefault     bool            `gorm:"not null" json:"is_default"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// VariantPrice is the customer-facing price of a product with one variant applied.
type VariantPrice struct {
	ProductID            uint    `json:"product_id"`
	VariantID            *uint   `json:"variant_id,omitempty"`
	VariantDescription   string  `json:"variant_description,omitempty"`
	CustomerPrice        float64 `json:"customer_price"`
	VariantPriceModifier float64 `json:"variant_price_modifier"`
	Total                float64 `json:"total"`
	MarkupPercentage     float64 `json:"markup_percentage"`
}
