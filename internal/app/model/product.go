package model

import (
	"time"

	"github.com/lensfolio/printshop-backend/pkg/util"
	"github.com/shopspring/decimal"
)

// Product is one orderable SKU: a size of a product type with zero, one or
// two sub-option selections. Size is stored as numeric width/height in inches.
type Product struct {
	ID                    uint                `gorm:"primarykey" json:"id"`
	Name                  string              `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID            uint                `gorm:"index;not null" json:"category_id"`
	ProductTypeID         uint                `gorm:"not null;index:idx_products_natural_key,priority:1" json:"product_type_id"`
	Width                 float64             `gorm:"not null;index:idx_products_natural_key,priority:2" json:"width"`
	Height                float64             `gorm:"not null;index:idx_products_natural_key,priority:3" json:"height"`
	CostPrice             decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	MarkupPercentage      decimal.NullDecimal `gorm:"type:decimal(6,2)" json:"markup_percentage"`
	ProviderCategoryID    string              `gorm:"type:varchar(50)" json:"provider_category_id,omitempty"`
	ProviderSubcategoryID string              `gorm:"type:varchar(50)" json:"provider_subcategory_id,omitempty"`
	ProviderOptionID      string              `gorm:"type:varchar(50)" json:"provider_option_id,omitempty"`
	SubOption1ID          *uint               `gorm:"column:sub_option_1_id;index:idx_products_natural_key,priority:4" json:"sub_option_1_id"`
	SubOption2ID          *uint               `gorm:"column:sub_option_2_id;index:idx_products_natural_key,priority:5" json:"sub_option_2_id"`
	Active                bool                `gorm:"not null" json:"active"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`

	// Relationships
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ProductType *ProductType `gorm:"foreignKey:ProductTypeID" json:"product_type,omitempty"`
	SubOption1  *SubOption   `gorm:"foreignKey:SubOption1ID" json:"sub_option_1,omitempty"`
	SubOption2  *SubOption   `gorm:"foreignKey:SubOption2ID" json:"sub_option_2,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// Size renders the display form of the stored dimensions.
func (p *Product) Size() string {
	return util.FormatSize(p.Width, p.Height)
}

// SubOptionCount returns how many sub-option slots are populated.
func (p *Product) SubOptionCount() int {
	n := 0
	if p.SubOption1ID != nil {
		n++
	}
	if p.SubOption2ID != nil {
		n++
	}
	return n
}

// PricedProduct is the list row returned by the sizes/products endpoint.
type PricedProduct struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Size          string  `json:"size"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	CategoryName  string  `json:"category_name"`
	CostPrice     float64 `json:"cost_price"`
	CustomerPrice float64 `json:"customer_price"`
	SubOption1ID  *uint   `json:"sub_option_1_id,omitempty"`
	SubOption2ID  *uint   `json:"sub_option_2_id,omitempty"`
}

// ProductDetail is a single product with its category, type and sub-option
// display values resolved.
type ProductDetail struct {
	ID                    uint     `json:"id"`
	Name                  string   `json:"name"`
	Size                  string   `json:"size"`
	Width                 float64  `json:"width"`
	Height                float64  `json:"height"`
	CategoryID            uint     `json:"category_id"`
	CategoryName          string   `json:"category_name"`
	ProductTypeID         uint     `json:"product_type_id"`
	ProductTypeName       string   `json:"product_type_name"`
	SubOption1ID          *uint    `json:"sub_option_1_id"`
	SubOption1Name        string   `json:"sub_option_1_name,omitempty"`
	SubOption1Value       string   `json:"sub_option_1_value,omitempty"`
	SubOption2ID          *uint    `json:"sub_option_2_id"`
	SubOption2Name        string   `json:"sub_option_2_name,omitempty"`
	SubOption2Value       string   `json:"sub_option_2_value,omitempty"`
	ProviderCategoryID    string   `json:"provider_category_id,omitempty"`
	ProviderSubcategoryID string   `json:"provider_subcategory_id,omitempty"`
	ProviderOptionID      string   `json:"provider_option_id,omitempty"`
	CostPrice             float64  `json:"cost_price"`
	MarkupPercentage      float64  `json:"markup_percentage"`
	ProductMarkup         *float64 `json:"product_markup_percentage,omitempty"`
	CustomerPrice         float64  `json:"customer_price"`
	Active                bool     `json:"active"`
}
