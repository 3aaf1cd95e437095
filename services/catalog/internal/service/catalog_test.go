package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/ecommerce_hub/pkg/db"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/events"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/models"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/transport"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProductEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type fakeIndex struct {
	indexed []string
	err     error
	hits    []models.Product
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed = append(f.indexed, p.SKU)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, bool, int, int) (int64, []models.Product, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.hits)), f.hits, nil
}

func newService(t *testing.T) (*CatalogService, *recordingPublisher) {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))

	pub := &recordingPublisher{}
	return &CatalogService{Repo: r, Events: pub}, pub
}

func ptr[T any](v T) *T { return &v }

func TestCreateProduct(t *testing.T) {
	t.Parallel()
	svc, pub := newService(t)
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		SKU: " MUG-1 ", Name: "Mug", Category: "Kitchen", Price: ptr(0.0),
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "MUG-1", prod.SKU)
	assert.True(t, prod.IsActive)
	assert.Zero(t, prod.Quantity)
	assert.False(t, prod.CreatedAt.IsZero())

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{SKU: "MUG-1", Name: "Other", Price: ptr(1.0)}, "")
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, []string{events.ProductCreated}, pub.types())
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()
	svc, pub := newService(t)

	tests := []struct {
		name   string
		req    transport.CreateProductRequest
		reason string
	}{
		{name: "missing price", req: transport.CreateProductRequest{SKU: "A", Name: "A"}, reason: "price is required"},
		{name: "missing sku", req: transport.CreateProductRequest{Name: "A", Price: ptr(1.0)}, reason: "sku is required"},
		{name: "blank name", req: transport.CreateProductRequest{SKU: "A", Name: "  ", Price: ptr(1.0)}, reason: "name is required"},
		{name: "negative price", req: transport.CreateProductRequest{SKU: "A", Name: "A", Price: ptr(-1.0)}, reason: "price must be at least 0"},
		{name: "negative quantity", req: transport.CreateProductRequest{SKU: "A", Name: "A", Price: ptr(1.0), Quantity: ptr(-2)}, reason: "quantity must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.req, "")
			require.ErrorIs(t, err, ErrValidation)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.reason, fe.Reason)
		})
	}
	assert.Empty(t, pub.types())
}

func TestUpdateProduct_MergesAndKeepsSKU(t *testing.T) {
	t.Parallel()
	svc, pub := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{SKU: "A", Name: "Mug", Brand: "Acme", Price: ptr(5.0), Quantity: ptr(3)}, "")
	require.NoError(t, err)

	prod, err := svc.UpdateProduct(ctx, "A", transport.UpdateProductRequest{SKU: ptr("B"), Price: ptr(7.5)}, "")
	require.NoError(t, err)
	assert.Equal(t, "A", prod.SKU)
	assert.Equal(t, 7.5, prod.Price)
	assert.Equal(t, "Mug", prod.Name)
	assert.Equal(t, "Acme", prod.Brand)
	assert.Equal(t, 3, prod.Quantity)

	_, err = svc.GetProduct(ctx, "B")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateProduct(ctx, "missing", transport.UpdateProductRequest{Price: ptr(1.0)}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateProduct(ctx, "A", transport.UpdateProductRequest{Quantity: ptr(-1)}, "")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, []string{events.ProductCreated, events.ProductUpdated}, pub.types())
}

func TestDeleteProduct_SoftAndIdempotent(t *testing.T) {
	t.Parallel()
	svc, pub := newService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, transport.CreateProductRequest{SKU: "A", Name: "Mug", Price: ptr(5.0)}, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "A", "admin-1"))
	require.NoError(t, svc.DeleteProduct(ctx, "A", "admin-1"))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "missing", ""), ErrNotFound)

	prod, err := svc.GetProduct(ctx, "A")
	require.NoError(t, err)
	assert.False(t, prod.IsActive)

	total, active, err := svc.ListProducts(ctx, true, 0, -1)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, active)

	total, all, err := svc.ListProducts(ctx, false, 0, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, all, 1)

	assert.Equal(t, []string{events.ProductCreated, events.ProductDeleted, events.ProductDeleted}, pub.types())
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()
	svc, pub := newService(t)
	pub.err = errors.New("broker down")

	_, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{SKU: "A", Name: "Mug", Price: ptr(5.0)}, "")
	require.NoError(t, err)
}

func TestSearchProducts(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, "WATCH-001", ""))

	_, _, err = svc.SearchProducts(ctx, "  ", true, 0, 10)
	assert.ErrorIs(t, err, ErrValidation)

	total, items, err := svc.SearchProducts(ctx, "APPLE", true, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	total, _, err = svc.SearchProducts(ctx, "apple", false, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	total, _, err = svc.SearchProducts(ctx, "100%", false, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	idx := &fakeIndex{err: errors.New("es down")}
	svc.Search = idx
	total, _, err = svc.SearchProducts(ctx, "sony", true, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	idx.err = nil
	idx.hits = []models.Product{{SKU: "FROM-INDEX"}}
	_, items, err = svc.SearchProducts(ctx, "sony", true, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "FROM-INDEX", items[0].SKU)
}

func TestSeedAndReindex(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	idx := &fakeIndex{}
	svc.Search = idx
	n, err = svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "LAPTOP-001", idx.indexed[0])
}
