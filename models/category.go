package models

import "time"

// Category represents a product category.
// It is global: it does not belong to a collection.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) TableName() string {
	return "categories"
}
