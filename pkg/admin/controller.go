package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/catalogview"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	ErrBusy            = errors.New("a submission is already in progress")
	ErrNotEditing      = errors.New("no product form is open")
	ErrUnknownProduct  = errors.New("product is not in the current list")
	ErrNoPendingDelete = errors.New("no delete is awaiting confirmation")
)

type Gateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, form models.ProductForm) (*models.Product, error)
	UpdateProduct(ctx context.Context, sku string, form models.ProductForm) (*models.Product, error)
	DeleteProduct(ctx context.Context, sku string) error
}

// Controller drives the admin product table and its create/edit form.
type Controller struct {
	gw Gateway

	mu            sync.Mutex
	products      []models.Product
	loadErr       error
	state         State
	editing       *models.Product
	submitErr     error
	pendingDelete string
}

func NewController(gw Gateway) *Controller {
	return &Controller{gw: gw}
}

// Load fetches the product list and keeps the active rows; an inactive product
// is a deleted one. On failure the previous list is kept and the error is
// available from LoadError.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.gw.ListProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logging.FromContext(ctx).Error("admin_load_failed", "kind", apiclient.KindOf(err).String(), "error", err)
		c.loadErr = err
		return err
	}
	c.products = activeOnly(items)
	c.loadErr = nil
	return nil
}

func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrBusy
	}
	c.state = StateEditing
	c.editing = nil
	c.submitErr = nil
	return nil
}

func (c *Controller) OpenEdit(sku string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrBusy
	}
	i := c.indexOf(sku)
	if i < 0 {
		return ErrUnknownProduct
	}
	p := c.products[i]
	c.state = StateEditing
	c.editing = &p
	c.submitErr = nil
	return nil
}

func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return
	}
	c.state = StateIdle
	c.editing = nil
	c.submitErr = nil
}

// Form returns the prefilled form for the open editor. isNew is true when
// creating a product.
func (c *Controller) Form() (form models.ProductForm, isNew bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return models.ProductForm{}, false, ErrNotEditing
	}
	if c.editing == nil {
		active := true
		return models.ProductForm{IsActive: &active}, true, nil
	}
	return models.FormFrom(*c.editing), false, nil
}

// Submit sends the open form. Creating re-fetches the whole list; updating
// patches the edited row in place. On failure the form stays open.
func (c *Controller) Submit(ctx context.Context, form models.ProductForm) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	case StateIdle:
		c.mu.Unlock()
		return ErrNotEditing
	}
	editing := c.editing
	c.state = StateSubmitting
	c.mu.Unlock()

	l := logging.FromContext(ctx).With("component", "admin.submit")

	if editing == nil {
		created, err := c.gw.CreateProduct(ctx, form)
		if err != nil {
			return c.submitFailed(ctx, err)
		}
		c.finishSubmit()
		l.Info("product_created", "sku", created.SKU)

		if err := c.Load(ctx); err != nil {
			l.Warn("product_list_refresh_failed", "error", err)
		}
		return nil
	}

	if _, err := c.gw.UpdateProduct(ctx, editing.SKU, form); err != nil {
		return c.submitFailed(ctx, err)
	}

	c.mu.Lock()
	if i := c.indexOf(editing.SKU); i >= 0 {
		c.products[i] = form.Apply(c.products[i])
		if !c.products[i].IsActive {
			c.products = append(c.products[:i:i], c.products[i+1:]...)
		}
	}
	c.mu.Unlock()
	c.finishSubmit()
	l.Info("product_updated", "sku", editing.SKU)
	return nil
}

func (c *Controller) submitFailed(ctx context.Context, err error) error {
	logging.FromContext(ctx).Error("product_submit_failed", "kind", apiclient.KindOf(err).String(), "error", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateEditing
	c.submitErr = err
	return err
}

func (c *Controller) finishSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.editing = nil
	c.submitErr = nil
}

func (c *Controller) RequestDelete(sku string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = sku
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	sku := c.pendingDelete
	c.pendingDelete = ""
	c.mu.Unlock()

	if sku == "" {
		return ErrNoPendingDelete
	}
	return c.Delete(ctx, sku)
}

// Delete removes the product on the gateway and drops it from the local list.
// A product the gateway no longer knows is dropped as well; the NotFound error
// is still returned so it can be shown.
func (c *Controller) Delete(ctx context.Context, sku string) error {
	l := logging.FromContext(ctx).With("component", "admin.delete", "sku", sku)

	err := c.gw.DeleteProduct(ctx, sku)
	if err != nil && !errors.Is(err, apiclient.ErrNotFound) {
		l.Error("product_delete_failed", "kind", apiclient.KindOf(err).String(), "error", err)
		return err
	}

	c.mu.Lock()
	if i := c.indexOf(sku); i >= 0 {
		c.products = append(c.products[:i:i], c.products[i+1:]...)
	}
	c.mu.Unlock()

	if err != nil {
		l.Warn("product_delete_not_found", "error", err)
		return err
	}
	l.Info("product_deleted")
	return nil
}

func activeOnly(items []models.Product) []models.Product {
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) indexOf(sku string) int {
	for i := range c.products {
		if c.products[i].SKU == sku {
			return i
		}
	}
	return -1
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.products...)
}

// Visible applies the admin search to the current list.
func (c *Controller) Visible(term string) []models.Product {
	return catalogview.Filter(c.Products(), catalogview.AdminQuery(term))
}

func (c *Controller) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

func (c *Controller) SubmitError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

func (c *Controller) PendingDelete() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingDelete
}
