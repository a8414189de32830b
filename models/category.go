package models

import "time"

// Category groups products under a unique name.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
}

func (c *Category) TableName() string {
	return "categories"
}
