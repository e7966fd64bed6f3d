package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/storefront/cart"
)

// ============================================================
// Cart Handlers
// ============================================================

type cartResponse struct {
	Items  []cart.LineItem `json:"items"`
	Totals cart.Totals     `json:"totals"`
}

// GetCart возвращает строки и суммы корзины сессии.
func (h *StoreHandler) GetCart(c fiber.Ctx) error {
	session, ok := sessionID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	lines, totals, err := h.carts.View(context.Background(), session, h.shippingFee)
	if err != nil {
		log.Printf("[STORE] view cart: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(cartResponse{Items: lines, Totals: totals})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem кладёт товар в корзину; цена и имя снапшотятся
// из каталога в момент добавления.
func (h *StoreHandler) AddCartItem(c fiber.Ctx) error {
	session, ok := sessionID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	var req addItemRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.ProductID == "" || req.Size == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "product_id and size required"})
	}
	if req.Quantity < 1 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be at least 1"})
	}

	ctx := context.Background()
	product, err := h.catalog.ProductByID(ctx, req.ProductID)
	if err != nil {
		return backendError(c, err, "lookup product")
	}

	item := cart.LineItem{
		ProductID: product.ID,
		Size:      req.Size,
		UnitPrice: product.Price,
		Name:      product.Name,
		Image:     product.ImageURL,
	}
	if err := h.carts.AddItem(ctx, session, item, req.Quantity); err != nil {
		log.Printf("[STORE] add cart item: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return h.cartState(c, session, http.StatusCreated)
}

type quantityRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Delta     int    `json:"delta"`
}

// SetCartQuantity применяет дельту количества; ниже 1 не опускается.
func (h *StoreHandler) SetCartQuantity(c fiber.Ctx) error {
	session, ok := sessionID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	var req quantityRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.ProductID == "" || req.Size == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "product_id and size required"})
	}

	if err := h.carts.SetQuantity(context.Background(), session, req.ProductID, req.Size, req.Delta); err != nil {
		log.Printf("[STORE] set quantity: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return h.cartState(c, session, http.StatusOK)
}

// RemoveCartItem удаляет строку; отсутствие ключа — no-op.
func (h *StoreHandler) RemoveCartItem(c fiber.Ctx) error {
	session, ok := sessionID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	productID := c.Query("product_id")
	size := c.Query("size")
	if productID == "" || size == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "product_id and size required"})
	}

	if err := h.carts.RemoveItem(context.Background(), session, productID, size); err != nil {
		log.Printf("[STORE] remove cart item: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return h.cartState(c, session, http.StatusOK)
}

func (h *StoreHandler) cartState(c fiber.Ctx, session string, status int) error {
	lines, totals, err := h.carts.View(context.Background(), session, h.shippingFee)
	if err != nil {
		log.Printf("[STORE] view cart: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(status).JSON(cartResponse{Items: lines, Totals: totals})
}
