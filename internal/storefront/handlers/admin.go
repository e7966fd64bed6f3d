package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/storefront/catalog"
)

// ============================================================
// Admin CMS Handlers
// ============================================================

// requireAdmin пускает только сессии с ролью admin.
func (h *StoreHandler) requireAdmin(c fiber.Ctx) (bool, error) {
	session, ok := h.authorize(c)
	if !ok {
		return false, c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if !session.IsAdmin {
		return false, c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
	}
	return true, nil
}

// CreateCategory создаёт категорию.
func (h *StoreHandler) CreateCategory(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	var input catalog.CategoryInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if input.Name == "" || input.Slug == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name and slug required"})
	}

	created, err := h.catalog.CreateCategory(context.Background(), input)
	if err != nil {
		return backendError(c, err, "create category")
	}

	log.Printf("[ADMIN] Category created: %s", created.ID)
	return c.Status(http.StatusCreated).JSON(created)
}

// UpdateCategory обновляет категорию по id.
func (h *StoreHandler) UpdateCategory(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	var input catalog.CategoryInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if err := h.catalog.UpdateCategory(context.Background(), c.Params("id"), input); err != nil {
		return backendError(c, err, "update category")
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// DeleteCategory удаляет категорию по id.
func (h *StoreHandler) DeleteCategory(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	if err := h.catalog.DeleteCategory(context.Background(), c.Params("id")); err != nil {
		return backendError(c, err, "delete category")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// CreateProduct создаёт товар.
func (h *StoreHandler) CreateProduct(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	var input catalog.ProductInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if input.Name == "" || input.Slug == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name and slug required"})
	}
	if input.Price < 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "price must be non-negative"})
	}

	created, err := h.catalog.CreateProduct(context.Background(), input)
	if err != nil {
		return backendError(c, err, "create product")
	}

	log.Printf("[ADMIN] Product created: %s", created.ID)
	return c.Status(http.StatusCreated).JSON(created)
}

// UpdateProduct обновляет товар по id.
func (h *StoreHandler) UpdateProduct(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	var input catalog.ProductInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if input.Price < 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "price must be non-negative"})
	}

	if err := h.catalog.UpdateProduct(context.Background(), c.Params("id"), input); err != nil {
		return backendError(c, err, "update product")
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// DeleteProduct удаляет товар по id.
func (h *StoreHandler) DeleteProduct(c fiber.Ctx) error {
	if ok, resp := h.requireAdmin(c); !ok {
		return resp
	}

	if err := h.catalog.DeleteProduct(context.Background(), c.Params("id")); err != nil {
		return backendError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
