package catalogview

import (
	"strings"

	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

// AllCategories disables the category filter.
const AllCategories = "all"

type Field int

const (
	FieldName Field = 1 << iota
	FieldDescription
	FieldSKU
)

type Query struct {
	Term       string
	Category   string
	Fields     Field
	ActiveOnly bool
}

// StoreQuery is what shoppers see: active products, searched by name and description.
func StoreQuery(term, category string) Query {
	return Query{Term: term, Category: category, Fields: FieldName | FieldDescription, ActiveOnly: true}
}

// AdminQuery lists every product, searched by name and sku.
func AdminQuery(term string) Query {
	return Query{Term: term, Category: AllCategories, Fields: FieldName | FieldSKU}
}

// Filter returns the products of snapshot matching q, in snapshot order.
// The snapshot is never modified.
func Filter(snapshot []models.Product, q Query) []models.Product {
	term := strings.ToLower(strings.TrimSpace(q.Term))
	out := make([]models.Product, 0, len(snapshot))
	for _, p := range snapshot {
		if q.ActiveOnly && !p.IsActive {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		if term != "" && !matches(p, term, q.Fields) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p models.Product, term string, fields Field) bool {
	if fields&FieldName != 0 && strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if fields&FieldDescription != 0 && strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	if fields&FieldSKU != 0 && strings.Contains(strings.ToLower(p.SKU), term) {
		return true
	}
	return false
}

// Categories returns the distinct categories of snapshot in first-seen order.
func Categories(snapshot []models.Product) []string {
	seen := make(map[string]struct{}, len(snapshot))
	out := make([]string, 0)
	for _, p := range snapshot {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
