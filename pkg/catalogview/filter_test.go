package catalogview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

func skus(ps []models.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.SKU)
	}
	return out
}

func TestFilter_StoreView(t *testing.T) {
	t.Parallel()

	snapshot := []models.Product{
		{SKU: "A", Name: "Mug", Category: "Kitchen", IsActive: true},
		{SKU: "B", Name: "Mug Pro", Category: "Kitchen", IsActive: false},
	}

	assert.Equal(t, []string{"A"}, skus(Filter(snapshot, StoreQuery("mug", AllCategories))))
	assert.Equal(t, []string{"A"}, skus(Filter(snapshot, StoreQuery("MUG", "Kitchen"))))
	assert.Empty(t, Filter(snapshot, StoreQuery("mug", "Audio")))
	assert.Len(t, snapshot, 2)
}

func TestFilter_SearchFields(t *testing.T) {
	t.Parallel()

	snapshot := []models.Product{
		{SKU: "LAPTOP-001", Name: "MacBook Pro 14", Description: "Laptop de alto rendimiento", Category: "Electrónica", IsActive: true},
		{SKU: "CABLE-001", Name: "USB-C Braided Cable 3m", Description: "Cable USB-C de carga rápida", Category: "Accesorios", IsActive: true},
		{SKU: "OLD-001", Name: "Old laptop", Category: "Electrónica", IsActive: false},
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "store matches description", query: StoreQuery("rendimiento", AllCategories), want: []string{"LAPTOP-001"}},
		{name: "store ignores sku", query: StoreQuery("cable-001", AllCategories), want: []string{}},
		{name: "admin matches sku", query: AdminQuery("cable-001"), want: []string{"CABLE-001"}},
		{name: "admin ignores description", query: AdminQuery("rendimiento"), want: []string{}},
		{name: "admin shows inactive", query: AdminQuery("laptop"), want: []string{"LAPTOP-001", "OLD-001"}},
		{name: "empty term keeps all active", query: StoreQuery("  ", ""), want: []string{"LAPTOP-001", "CABLE-001"}},
		{name: "category only", query: StoreQuery("", "Accesorios"), want: []string{"CABLE-001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, skus(Filter(snapshot, tt.query)))
		})
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	snapshot := []models.Product{
		{SKU: "1", Category: "Electrónica"},
		{SKU: "2", Category: "Audio"},
		{SKU: "3", Category: "Electrónica"},
		{SKU: "4", Category: "Accesorios"},
	}
	assert.Equal(t, []string{"Electrónica", "Audio", "Accesorios"}, Categories(snapshot))
	assert.Empty(t, Categories(nil))
}
