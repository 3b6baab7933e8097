package model

import "time"

// Category groups products for display.
type Category struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	ProductTypeID *uint     `gorm:"index" json:"product_type_id,omitempty"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
