package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/validation"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/domain"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/events"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/models"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/transport"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("product not found")
	ErrConflict   = errors.New("product with this sku already exists")
)

// FieldError carries the message shown to the client for a rejected body.
type FieldError struct {
	Reason string
}

func (e *FieldError) Error() string { return e.Reason }
func (e *FieldError) Unwrap() error { return ErrValidation }

const sideEffectTimeout = 5 * time.Second

var validate = validation.New()

type Publisher interface {
	Publish(ctx context.Context, ev events.ProductEvent) error
}

type Indexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	Search(ctx context.Context, query string, activeOnly bool, from, size int) (int64, []models.Product, error)
}

// CatalogService owns product rules. Events and Search are optional.
type CatalogService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Search Indexer
}

func (s *CatalogService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, activeOnly bool, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, activeOnly, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest, actorID string) (*models.Product, error) {
	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)
	if err := check(req); err != nil {
		return nil, err
	}

	prod := models.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       *req.Price,
		IsActive:    true,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Quantity != nil {
		prod.Quantity = *req.Quantity
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		if errors.Is(err, repo.ErrDuplicateSKU) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.afterWrite(ctx, events.ProductCreated, prod, actorID)
	return &prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sku string, req transport.UpdateProductRequest, actorID string) (*models.Product, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	prod, err := s.Repo.UpdateProduct(ctx, sku, func(p *models.Product) { merge(p, req) })
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.afterWrite(ctx, events.ProductUpdated, *prod, actorID)
	return prod, nil
}

// DeleteProduct deactivates the product. Deleting an inactive product succeeds
// again without changing it.
func (s *CatalogService) DeleteProduct(ctx context.Context, sku, actorID string) error {
	prod, err := s.Repo.UpdateProduct(ctx, sku, func(p *models.Product) { p.IsActive = false })
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.afterWrite(ctx, events.ProductDeleted, *prod, actorID)
	return nil
}

// SearchProducts asks the search index first and falls back to the database
// when no index is configured or the index fails.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, activeOnly bool, offset, limit int) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, &FieldError{Reason: "q is required"}
	}

	if s.Search != nil {
		total, items, err := s.Search.Search(ctx, q, activeOnly, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}
	return s.Repo.SearchProducts(ctx, q, activeOnly, offset, limit)
}

// Seed inserts the demo catalog into an empty table.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	n, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, p := range domain.DemoProducts() {
		if err := s.Repo.CreateProduct(ctx, &p); err != nil {
			return created, fmt.Errorf("seed %s: %w", p.SKU, err)
		}
		created++
	}
	return created, nil
}

// Reindex pushes every stored product into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, nil
	}
	_, items, err := s.Repo.GetProducts(ctx, false, 0, -1)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	for i, p := range items {
		if err := s.Search.IndexProduct(ctx, p); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (s *CatalogService) afterWrite(ctx context.Context, typ string, prod models.Product, actorID string) {
	l := logging.FromContext(ctx).With("sku", prod.SKU, "event", typ)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.Events != nil {
		if err := s.Events.Publish(ctx, events.NewProductEvent(typ, prod, actorID)); err != nil {
			l.Error("publish_event_failed", "error", err)
		}
	}
	if s.Search != nil {
		if err := s.Search.IndexProduct(ctx, prod); err != nil {
			l.Error("index_product_failed", "error", err)
		}
	}
}

func merge(p *models.Product, req transport.UpdateProductRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
}

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &FieldError{Reason: validation.Describe(err)}
		}
		return err
	}
	return nil
}
