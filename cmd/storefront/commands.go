package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Skotchmaster/ecommerce_hub/pkg/admin"
	"github.com/Skotchmaster/ecommerce_hub/pkg/apiclient"
	"github.com/Skotchmaster/ecommerce_hub/pkg/catalogview"
	"github.com/Skotchmaster/ecommerce_hub/pkg/models"
	"github.com/Skotchmaster/ecommerce_hub/pkg/storefront"
)

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) login(ctx context.Context, args []string) int {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (default $STOREFRONT_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *password == "" {
		*password = os.Getenv("STOREFRONT_PASSWORD")
	}

	form := storefront.NewLoginForm(a.store)
	screen, err := form.Submit(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(a.errOut, "login failed: %s\n", form.Error())
		return 1
	}

	id, _ := a.store.Current()
	fmt.Fprintf(a.out, "Welcome, %s\n", displayName(id))
	if screen == storefront.ScreenAdmin {
		fmt.Fprintln(a.out, "Manage the catalog with: storefront admin list")
	} else {
		fmt.Fprintln(a.out, "Browse the catalog with: storefront products")
	}
	return 0
}

func (a *app) logout(ctx context.Context) int {
	if err := a.store.Logout(ctx); err != nil {
		fmt.Fprintf(a.errOut, "logout: %v\n", err)
		return 1
	}
	fmt.Fprintln(a.out, "Logged out")
	return 0
}

func (a *app) whoami() int {
	id, ok := a.store.Current()
	if !ok {
		fmt.Fprintln(a.errOut, "not logged in")
		return 1
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", displayName(id), id.Email, id.Role)
	return 0
}

// gate prints why want cannot be shown and reports whether the caller may go
// on. Admins asking for the store are sent to the admin table instead.
func (a *app) gate(want storefront.Screen) (storefront.Screen, bool) {
	got := storefront.Route(a.store, want)
	switch got {
	case want:
		return got, true
	case storefront.ScreenLogin:
		fmt.Fprintln(a.errOut, "please log in first: storefront login -email <email>")
	case storefront.ScreenCatalog:
		fmt.Fprintln(a.errOut, "admin access required")
	case storefront.ScreenAdmin:
		return got, true
	}
	return got, false
}

func (a *app) products(ctx context.Context, args []string) int {
	fs := a.flags("products")
	term := fs.String("q", "", "search name and description")
	category := fs.String("category", catalogview.AllCategories, "category filter")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	screen, ok := a.gate(storefront.ScreenCatalog)
	if !ok {
		return 1
	}
	if screen == storefront.ScreenAdmin {
		fmt.Fprintln(a.errOut, "admin accounts use the admin dashboard")
		return a.adminList(ctx, []string{"-q", *term})
	}

	page := storefront.NewCatalogPage(a.client)
	if err := page.Load(ctx); err != nil {
		return a.printPanel(page.ErrorPanel())
	}

	items := page.Visible(*term, *category)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No products match your search.")
		return 0
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tNAME\tBRAND\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.SKU, p.Name, p.Brand, p.Category, price(p.Price), stock(p))
	}
	_ = tw.Flush()
	return 0
}

func (a *app) categories(ctx context.Context) int {
	if _, ok := a.gate(storefront.ScreenCatalog); !ok {
		return 1
	}
	page := storefront.NewCatalogPage(a.client)
	if err := page.Load(ctx); err != nil {
		return a.printPanel(page.ErrorPanel())
	}
	for _, c := range page.Categories() {
		fmt.Fprintln(a.out, c)
	}
	return 0
}

func (a *app) printPanel(panel *storefront.ErrorPanel) int {
	if panel == nil {
		fmt.Fprintln(a.errOut, "failed to fetch products")
		return 1
	}
	fmt.Fprintf(a.errOut, "%s\n%s\n", panel.Message, panel.Hint)
	return 1
}

func (a *app) admin(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.errOut, "usage: storefront admin list|create|update|delete [flags]")
		return 2
	}
	switch args[0] {
	case "list":
		return a.adminList(ctx, args[1:])
	case "create":
		return a.adminCreate(ctx, args[1:])
	case "update":
		return a.adminUpdate(ctx, args[1:])
	case "delete":
		return a.adminDelete(ctx, args[1:])
	}
	fmt.Fprintf(a.errOut, "unknown admin command %q\n", args[0])
	return 2
}

// loadController gates on the admin screen and loads the product table.
func (a *app) loadController(ctx context.Context) (*admin.Controller, bool) {
	if _, ok := a.gate(storefront.ScreenAdmin); !ok {
		return nil, false
	}
	ctl := admin.NewController(a.client)
	if err := ctl.Load(ctx); err != nil {
		fmt.Fprintf(a.errOut, "%s\n", apiclient.Message(err))
		return nil, false
	}
	return ctl, true
}

func (a *app) adminList(ctx context.Context, args []string) int {
	fs := a.flags("admin list")
	term := fs.String("q", "", "search name and sku")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ctl, ok := a.loadController(ctx)
	if !ok {
		return 1
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tNAME\tCATEGORY\tPRICE\tQTY")
	for _, p := range ctl.Visible(*term) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.SKU, p.Name, p.Category, price(p.Price), p.Quantity)
	}
	_ = tw.Flush()
	return 0
}

func (a *app) adminCreate(ctx context.Context, args []string) int {
	pf := newProductFlags(a.flags("admin create"))
	if err := pf.fs.Parse(args); err != nil {
		return 2
	}
	ctl, ok := a.loadController(ctx)
	if !ok {
		return 1
	}
	if err := ctl.OpenCreate(); err != nil {
		fmt.Fprintln(a.errOut, err)
		return 1
	}

	form, _, err := ctl.Form()
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return 1
	}
	pf.applyTo(&form)
	if err := ctl.Submit(ctx, form); err != nil {
		fmt.Fprintf(a.errOut, "create failed: %s\n", apiclient.Message(err))
		return 1
	}
	fmt.Fprintf(a.out, "Created %s\n", form.SKU)
	return 0
}

func (a *app) adminUpdate(ctx context.Context, args []string) int {
	pf := newProductFlags(a.flags("admin update"))
	if err := pf.fs.Parse(args); err != nil {
		return 2
	}
	if pf.sku == "" {
		fmt.Fprintln(a.errOut, "-sku is required")
		return 2
	}
	ctl, ok := a.loadController(ctx)
	if !ok {
		return 1
	}
	if err := ctl.OpenEdit(pf.sku); err != nil {
		fmt.Fprintf(a.errOut, "%s: %v\n", pf.sku, err)
		return 1
	}

	form, _, err := ctl.Form()
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return 1
	}
	pf.applyTo(&form)
	if err := ctl.Submit(ctx, form); err != nil {
		fmt.Fprintf(a.errOut, "update failed: %s\n", apiclient.Message(err))
		return 1
	}
	fmt.Fprintf(a.out, "Updated %s\n", pf.sku)
	return 0
}

func (a *app) adminDelete(ctx context.Context, args []string) int {
	fs := a.flags("admin delete")
	sku := fs.String("sku", "", "product sku")
	yes := fs.Bool("yes", false, "confirm the deletion")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *sku == "" {
		fmt.Fprintln(a.errOut, "-sku is required")
		return 2
	}
	ctl, ok := a.loadController(ctx)
	if !ok {
		return 1
	}

	ctl.RequestDelete(*sku)
	if !*yes {
		ctl.CancelDelete()
		fmt.Fprintf(a.errOut, "really delete %s? re-run with -yes to confirm\n", *sku)
		return 1
	}
	if err := ctl.ConfirmDelete(ctx); err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			fmt.Fprintf(a.errOut, "%s no longer exists\n", *sku)
			return 1
		}
		fmt.Fprintf(a.errOut, "delete failed: %s\n", apiclient.Message(err))
		return 1
	}
	fmt.Fprintf(a.out, "Deleted %s\n", *sku)
	return 0
}

func displayName(id models.Identity) string {
	if id.FullName != "" {
		return id.FullName
	}
	return id.Email
}

func price(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func stock(p models.Product) string {
	if !p.InStock() {
		return "Out of stock"
	}
	return fmt.Sprintf("%d", p.Quantity)
}
