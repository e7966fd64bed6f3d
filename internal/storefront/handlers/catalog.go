package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/storefront/catalog"
	"esports-store/internal/storefront/models"
)

// ============================================================
// Catalog Handlers
// ============================================================

// ListCategories возвращает все категории.
func (h *StoreHandler) ListCategories(c fiber.Ctx) error {
	categories, err := h.catalog.Categories(context.Background())
	if err != nil {
		return backendError(c, err, "list categories")
	}
	return c.JSON(categories)
}

// ListProducts возвращает товары; фильтры: category (slug),
// featured, min_price, max_price.
func (h *StoreHandler) ListProducts(c fiber.Ctx) error {
	ctx := context.Background()

	filter := catalog.ProductFilter{
		Featured: c.Query("featured") == "true",
	}

	if slug := c.Query("category"); slug != "" {
		category, err := h.catalog.CategoryBySlug(ctx, slug)
		if err != nil {
			return backendError(c, err, "resolve category")
		}
		filter.CategoryID = category.ID
	}

	products, err := h.catalog.Products(ctx, filter)
	if err != nil {
		return backendError(c, err, "list products")
	}

	products = filterByPrice(products, c.Query("min_price"), c.Query("max_price"))

	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct возвращает товар по slug.
func (h *StoreHandler) GetProduct(c fiber.Ctx) error {
	product, err := h.catalog.ProductBySlug(context.Background(), c.Params("slug"))
	if err != nil {
		return backendError(c, err, "get product")
	}
	return c.JSON(product)
}

func filterByPrice(products []models.Product, minStr, maxStr string) []models.Product {
	min, minOK := parsePrice(minStr)
	max, maxOK := parsePrice(maxStr)
	if !minOK && !maxOK {
		return products
	}

	out := products[:0]
	for _, p := range products {
		if minOK && p.Price < min {
			continue
		}
		if maxOK && p.Price > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ContactLink собирает deep link для продажного фоллоу-апа в мессенджере.
func (h *StoreHandler) ContactLink(c fiber.Ctx) error {
	message := c.Query("message")
	if message == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "message required"})
	}

	link := "https://wa.me/" + h.contactPhone + "?text=" + url.QueryEscape(message)
	return c.JSON(fiber.Map{"url": link})
}
