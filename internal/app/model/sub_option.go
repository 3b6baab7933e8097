package model

import "time"

// SubOption is a selectable value (mounting depth, frame color, mat size...)
// at level 1 or 2 of a product type. Display order is unique per
// (product type, level).
type SubOption struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProductTypeID uint      `gorm:"not null;uniqueIndex:idx_sub_options_type_level_order,priority:1;index:idx_sub_options_type_level_value,priority:1" json:"product_type_id"`
	Level         int       `gorm:"not null;uniqueIndex:idx_sub_options_type_level_order,priority:2;index:idx_sub_options_type_level_value,priority:2" json:"level"`
	OptionType    string    `gorm:"type:varchar(50);not null" json:"option_type"`
	Name          string    `gorm:"type:varchar(150);not null" json:"name"`
	Value         string    `gorm:"type:varchar(150);not null;index:idx_sub_options_type_level_value,priority:3" json:"value"`
	ImagePath     string    `gorm:"type:varchar(255)" json:"image_path,omitempty"`
	DisplayOrder  int       `gorm:"not null;uniqueIndex:idx_sub_options_type_level_order,priority:3" json:"display_order"`
	Active        bool      `gorm:"not null" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SubOption) TableName() string {
	return "sub_options"
}
