package main

import (
	"flag"

	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
)

type productFlags struct {
	fs *flag.FlagSet

	sku, name, brand, category string
	description, imageURL      string
	price                      float64
	quantity                   int
	active                     bool
}

func newProductFlags(fs *flag.FlagSet) *productFlags {
	pf := &productFlags{fs: fs}
	fs.StringVar(&pf.sku, "sku", "", "product sku")
	fs.StringVar(&pf.name, "name", "", "product name")
	fs.StringVar(&pf.brand, "brand", "", "brand")
	fs.StringVar(&pf.category, "category", "", "category")
	fs.StringVar(&pf.description, "description", "", "description")
	fs.StringVar(&pf.imageURL, "image", "", "image url")
	fs.Float64Var(&pf.price, "price", 0, "price")
	fs.IntVar(&pf.quantity, "quantity", 0, "units in stock")
	fs.BoolVar(&pf.active, "active", true, "whether shoppers can see the product")
	return pf
}

// applyTo copies only the flags given on the command line onto form, so an
// edit keeps every field the user did not mention.
func (pf *productFlags) applyTo(form *models.ProductForm) {
	pf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sku":
			form.SKU = pf.sku
		case "name":
			form.Name = pf.name
		case "brand":
			form.Brand = pf.brand
		case "category":
			form.Category = pf.category
		case "description":
			form.Description = pf.description
		case "image":
			form.ImageURL = pf.imageURL
		case "price":
			v := pf.price
			form.Price = &v
		case "quantity":
			v := pf.quantity
			form.Quantity = &v
		case "active":
			v := pf.active
			form.IsActive = &v
		}
	})
}
