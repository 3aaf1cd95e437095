package transport

type CreateProductRequest struct {
	SKU         string   `json:"sku"         validate:"required,max=64"`
	Name        string   `json:"name"        validate:"required,max=255"`
	Brand       string   `json:"brand"       validate:"max=255"`
	Category    string   `json:"category"    validate:"max=255"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Quantity    *int     `json:"quantity"    validate:"omitnil,gte=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"    validate:"max=2048"`
}

// UpdateProductRequest merges provided fields onto the stored product. SKU is
// accepted so clients can send the whole product back, but it is never applied.
type UpdateProductRequest struct {
	SKU         *string  `json:"sku"`
	Name        *string  `json:"name"        validate:"omitnil,min=1,max=255"`
	Brand       *string  `json:"brand"       validate:"omitnil,max=255"`
	Category    *string  `json:"category"    validate:"omitnil,max=255"`
	Price       *float64 `json:"price"       validate:"omitnil,gte=0"`
	Quantity    *int     `json:"quantity"    validate:"omitnil,gte=0"`
	IsActive    *bool    `json:"isActive"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"    validate:"omitnil,max=2048"`
}

type DeleteProductResponse struct {
	Success bool `json:"success"`
}
