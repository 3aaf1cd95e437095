package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	middleware "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/auth"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/service"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/transport"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func actorID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxUserID).(string)
	return id
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	sku := c.Param("sku")
	product, err := h.Svc.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "sku", sku)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	if !product.IsActive && !middleware.IsAdmin(c) {
		l.Warn("get_product_failed", "status", 404, "reason", "product inactive", "sku", sku)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	// Deleted products are inactive rows; listings never show them, whatever the role.
	const activeOnly = true
	rawPage, rawSize := c.QueryParam("page"), c.QueryParam("size")

	if !util.Paginated(rawPage, rawSize) {
		total, items, err := h.Svc.ListProducts(ctx, activeOnly, 0, -1)
		if err != nil {
			l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch products")
		}
		return c.JSON(http.StatusOK, map[string]any{
			"data": items,
			"meta": map[string]any{"total": total},
		})
	}

	page := util.ParseIntDefault(rawPage, 1)
	size := util.ParseIntDefault(rawSize, util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	total, items, err := h.Svc.ListProducts(ctx, activeOnly, offset, limit)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pageMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), true, offset, limit)
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			l.Warn("search_products_error", "status", 400, "reason", fe.Reason)
			return echo.NewHTTPError(http.StatusBadRequest, fe.Reason)
		}
		l.Error("search_products_error", "status", 500, "reason", "cannot search products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"total": total,
		"data":  items,
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	created, err := h.Svc.CreateProduct(ctx, req, actorID(c))
	if err != nil {
		var fe *service.FieldError
		switch {
		case errors.As(err, &fe):
			l.Warn("product_create_error", "status", 400, "reason", fe.Reason)
			return echo.NewHTTPError(http.StatusBadRequest, fe.Reason)
		case errors.Is(err, service.ErrConflict):
			l.Warn("product_create_error", "status", 409, "reason", "duplicate sku", "sku", req.SKU)
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create product")
	}

	l.Info("create_product_success", "sku", created.SKU)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	sku := c.Param("sku")
	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, sku, req, actorID(c))
	if err != nil {
		var fe *service.FieldError
		switch {
		case errors.As(err, &fe):
			l.Warn("product_update_error", "status", 400, "reason", fe.Reason)
			return echo.NewHTTPError(http.StatusBadRequest, fe.Reason)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("product_update_error", "status", 404, "reason", "product not found", "sku", sku)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_update_error", "status", 500, "reason", "cannot update product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update product")
	}

	l.Info("update_product_success", "sku", sku)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	sku := c.Param("sku")
	if err := h.Svc.DeleteProduct(ctx, sku, actorID(c)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found", "sku", sku)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete product")
	}

	l.Info("delete_product_success", "sku", sku)
	return c.JSON(http.StatusOK, transport.DeleteProductResponse{Success: true})
}

func pageMeta(page, offset, limit int, total int64) map[string]any {
	return map[string]any{
		"page":        page,
		"size":        limit,
		"total":       total,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
		"has_prev":    page > 1,
		"has_next":    int64(offset+limit) < total,
	}
}
