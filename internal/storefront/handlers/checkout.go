package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/storefront/models"
)

// ============================================================
// Checkout Handler
// ============================================================

type checkoutRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout отправляет заказ в бэкенд; корзина очищается только
// после успешной вставки, при ошибке остаётся нетронутой.
func (h *StoreHandler) Checkout(c fiber.Ctx) error {
	session, ok := sessionID(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "session id required"})
	}

	var req checkoutRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Address == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name, email, phone and address required"})
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "COD"
	}
	if req.PaymentMethod != "COD" && req.PaymentMethod != "UPI" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "payment_method must be COD or UPI"})
	}

	ctx := context.Background()
	lines, totals, err := h.carts.View(ctx, session, h.shippingFee)
	if err != nil {
		log.Printf("[STORE] view cart: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	if len(lines) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order := models.Order{
		CustomerName:    req.Name,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		CustomerAddress: req.Address,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     totals.Total,
		Items:           items,
		Status:          "pending",
	}

	created, err := h.catalog.SubmitOrder(ctx, order)
	if err != nil {
		return backendError(c, err, "submit order")
	}

	if err := h.carts.Clear(ctx, session); err != nil {
		log.Printf("[STORE] clear cart after checkout: %v", err)
	}

	log.Printf("[STORE] Order placed: %s", created.ID)
	return c.Status(http.StatusCreated).JSON(created)
}
