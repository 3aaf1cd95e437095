package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

var (
	opListProducts  = operation{name: "list products", fallback: "failed to fetch products"}
	opGetProduct    = operation{name: "get product", fallback: "failed to fetch product"}
	opCreateProduct = operation{name: "create product", fallback: "failed to create product"}
	opUpdateProduct = operation{name: "update product", fallback: "failed to update product"}
	opDeleteProduct = operation{name: "delete product", fallback: "failed to delete product"}
)

type createProductRequest struct {
	SKU         string   `json:"sku"                validate:"required"`
	Name        string   `json:"name"               validate:"required"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"              validate:"required,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

type updateProductRequest struct {
	Name        string   `json:"name"               validate:"required"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price,omitempty"    validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

type listEnvelope struct {
	Data []models.Product `json:"data"`
}

// ListProducts returns the full product list. A response without a data
// field yields an empty list.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, opListProducts, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, err
	}

	var items []models.Product
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, opListProducts.err(KindInvalidResponse, http.StatusOK, "malformed product list", fmt.Errorf("decode response: %w", err))
		}
	} else {
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, opListProducts.err(KindInvalidResponse, http.StatusOK, "malformed product list", fmt.Errorf("decode response: %w", err))
		}
		items = env.Data
	}
	if items == nil {
		return []models.Product{}, nil
	}

	for i := range items {
		if err := c.validate.Struct(items[i]); err != nil {
			return nil, opListProducts.err(KindInvalidResponse, http.StatusOK, "malformed product list", fmt.Errorf("product %d: %w", i, err))
		}
	}
	return items, nil
}

func (c *Client) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	return c.productCall(ctx, opGetProduct, http.MethodGet, "/products/"+url.PathEscape(sku), nil)
}

func (c *Client) CreateProduct(ctx context.Context, form models.ProductForm) (*models.Product, error) {
	req := createProductRequest{
		SKU:         form.SKU,
		Name:        form.Name,
		Brand:       form.Brand,
		Category:    form.Category,
		Price:       form.Price,
		Quantity:    form.Quantity,
		IsActive:    form.IsActive,
		Description: form.Description,
		ImageURL:    form.ImageURL,
	}
	if err := c.check(opCreateProduct, req); err != nil {
		return nil, err
	}
	return c.productCall(ctx, opCreateProduct, http.MethodPost, "/products", req)
}

// UpdateProduct replaces the editable fields of the product identified by sku.
// Any sku inside form is ignored.
func (c *Client) UpdateProduct(ctx context.Context, sku string, form models.ProductForm) (*models.Product, error) {
	req := updateProductRequest{
		Name:        form.Name,
		Brand:       form.Brand,
		Category:    form.Category,
		Price:       form.Price,
		Quantity:    form.Quantity,
		IsActive:    form.IsActive,
		Description: form.Description,
		ImageURL:    form.ImageURL,
	}
	if err := c.check(opUpdateProduct, req); err != nil {
		return nil, err
	}
	return c.productCall(ctx, opUpdateProduct, http.MethodPut, "/products/"+url.PathEscape(sku), req)
}

func (c *Client) DeleteProduct(ctx context.Context, sku string) error {
	return c.do(ctx, opDeleteProduct, http.MethodDelete, "/products/"+url.PathEscape(sku), nil, nil)
}

func (c *Client) productCall(ctx context.Context, op operation, method, path string, body any) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, op, method, path, body, &out); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(out); err != nil {
		return nil, op.err(KindInvalidResponse, http.StatusOK, "malformed product", err)
	}
	return &out, nil
}
