package models

import "time"

// Collection groups products into a themed line (e.g. "Bridal", "Heritage").
type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Photo       string    `gorm:"size:255" json:"photo,omitempty"`
	QuickLink   string    `gorm:"size:200" json:"quick_link,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Collection) TableName() string {
	return "collections"
}
