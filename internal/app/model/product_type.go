package model

import (
	"fmt"
	"time"
)

// MaxSubOptionLevels is the deepest sub-option selection a product type may declare.
const MaxSubOptionLevels = 2

// ProductType is a top-level print medium such as Canvas or Metal.
type ProductType struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Name               string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayOrder       int       `gorm:"not null;default:0" json:"display_order"`
	HasSubOptions      bool      `gorm:"not null" json:"has_sub_options"`
	MaxSubOptionLevels int       `gorm:"not null" json:"max_sub_option_levels"`
	Active             bool      `gorm:"not null" json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (ProductType) TableName() string {
	return "product_types"
}

// Validate checks the declared level count against the flag that exposes it.
func (t *ProductType) Validate() error {
	if t.MaxSubOptionLevels < 0 || t.MaxSubOptionLevels > MaxSubOptionLevels {
		return fmt.Errorf("max_sub_option_levels must be between 0 and %d", MaxSubOptionLevels)
	}
	if t.HasSubOptions != (t.MaxSubOptionLevels > 0) {
		return fmt.Errorf("has_sub_options must be true exactly when max_sub_option_levels > 0")
	}
	return nil
}

// ValidateSlots checks a product's sub-option selections against the levels
// this type declares. A nil option is an empty slot.
func (t *ProductType) ValidateSlots(sub1, sub2 *SubOption) error {
	if sub2 != nil && sub1 == nil {
		return fmt.Errorf("sub_option_2 requires sub_option_1")
	}
	count := 0
	for level, option := range []*SubOption{sub1, sub2} {
		if option == nil {
			continue
		}
		count++
		if option.ProductTypeID != t.ID {
			return fmt.Errorf("sub-option %d belongs to another product type", option.ID)
		}
		if option.Level != level+1 {
			return fmt.Errorf("sub-option %d is level %d, expected level %d", option.ID, option.Level, level+1)
		}
	}
	if count != t.MaxSubOptionLevels {
		return fmt.Errorf("product type %q requires %d sub-option(s), got %d", t.Name, t.MaxSubOptionLevels, count)
	}
	return nil
}
