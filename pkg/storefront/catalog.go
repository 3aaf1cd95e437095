package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/catalogview"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ErrorPanel is what the catalog screen shows instead of the grid when
// loading failed.
type ErrorPanel struct {
	Message  string
	Hint     string
	CanRetry bool
}

// CatalogPage holds the shopper's product snapshot.
type CatalogPage struct {
	gw ProductLister

	mu       sync.Mutex
	snapshot []models.Product
	loaded   bool
	err      error
}

func NewCatalogPage(gw ProductLister) *CatalogPage {
	return &CatalogPage{gw: gw}
}

func (p *CatalogPage) Load(ctx context.Context) error {
	items, err := p.gw.ListProducts(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		logging.FromContext(ctx).Error("catalog_load_failed", "kind", apiclient.KindOf(err).String(), "error", err)
		p.err = err
		return err
	}
	p.snapshot = items
	p.loaded = true
	p.err = nil
	return nil
}

// Retry re-issues the list request after a failure.
func (p *CatalogPage) Retry(ctx context.Context) error {
	return p.Load(ctx)
}

func (p *CatalogPage) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// ErrorPanel returns nil when the last load succeeded.
func (p *CatalogPage) ErrorPanel() *ErrorPanel {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		return nil
	}
	panel := &ErrorPanel{Message: apiclient.Message(p.err), Hint: "Please try again.", CanRetry: true}
	if errors.Is(p.err, apiclient.ErrTransport) {
		panel.Hint = "Check your connection or make sure the backend is running."
	}
	return panel
}

func (p *CatalogPage) Visible(term, category string) []models.Product {
	return catalogview.Filter(p.Snapshot(), catalogview.StoreQuery(term, category))
}

// Categories lists the filter options, starting with AllCategories. Every
// category in the snapshot is offered, including ones that only hold inactive
// products.
func (p *CatalogPage) Categories() []string {
	return append([]string{catalogview.AllCategories}, catalogview.Categories(p.Snapshot())...)
}

func (p *CatalogPage) Snapshot() []models.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Product(nil), p.snapshot...)
}
