package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"          json:"-"`
	SKU         string    `gorm:"uniqueIndex;size:64;not null"      json:"sku"`
	Name        string    `gorm:"not null"                          json:"name"`
	Brand       string    `gorm:"not null;default:''"               json:"brand"`
	Category    string    `gorm:"index;not null;default:''"         json:"category"`
	Price       float64   `gorm:"not null;check:price >= 0"         json:"price"`
	Quantity    int       `gorm:"not null;check:quantity >= 0"      json:"quantity"`
	IsActive    bool      `gorm:"index;not null"                    json:"isActive"`
	Description string    `gorm:"not null;default:''"               json:"description"`
	ImageURL    string    `gorm:"not null;default:''"               json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
