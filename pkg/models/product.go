package models

import "time"

type Product struct {
	SKU         string     `json:"sku"                 validate:"required"`
	Name        string     `json:"name"`
	Brand       string     `json:"brand"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"               validate:"gte=0"`
	Quantity    int        `json:"quantity"            validate:"gte=0"`
	IsActive    bool       `json:"isActive"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (p Product) InStock() bool { return p.Quantity > 0 }

// ProductForm is the create/edit payload. Price and Quantity are pointers so
// an absent value can be told apart from zero.
type ProductForm struct {
	SKU         string   `json:"sku,omitempty"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

// FormFrom prefills an edit form from an existing product.
func FormFrom(p Product) ProductForm {
	price, qty, active := p.Price, p.Quantity, p.IsActive
	return ProductForm{
		SKU:         p.SKU,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       &price,
		Quantity:    &qty,
		IsActive:    &active,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

// Apply merges the form onto p. SKU is never changed.
func (f ProductForm) Apply(p Product) Product {
	p.Name = f.Name
	p.Brand = f.Brand
	p.Category = f.Category
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Quantity != nil {
		p.Quantity = *f.Quantity
	}
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
	p.Description = f.Description
	p.ImageURL = f.ImageURL
	return p
}
