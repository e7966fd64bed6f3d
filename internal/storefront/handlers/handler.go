package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	authclient "esports-store/internal/auth/client"
	authmodels "esports-store/internal/auth/models"
	"esports-store/internal/backend"
	"esports-store/internal/storefront/cart"
	"esports-store/internal/storefront/catalog"
)

// ============================================================
// Store Handler
// ============================================================

type StoreHandler struct {
	catalog      *catalog.Service
	carts        *cart.Manager
	auth         *authclient.Client
	shippingFee  float64
	contactPhone string
}

func NewStoreHandler(catalogSvc *catalog.Service, carts *cart.Manager, auth *authclient.Client, shippingFee float64, contactPhone string) *StoreHandler {
	return &StoreHandler{
		catalog:      catalogSvc,
		carts:        carts,
		auth:         auth,
		shippingFee:  shippingFee,
		contactPhone: contactPhone,
	}
}

// ============================================================
// Helpers
// ============================================================

// sessionID — опак ключ корзины, который клиент держит у себя
// (аналог localStorage-ключа).
func sessionID(c fiber.Ctx) (string, bool) {
	id := c.Get("X-Session-ID")
	return id, id != ""
}

// authorize разрешает bearer-токен через auth-сервис; сессия дальше
// передаётся явно, амбиентного состояния нет.
func (h *StoreHandler) authorize(c fiber.Ctx) (*authmodels.Session, bool) {
	token, ok := bearerToken(c)
	if !ok {
		return nil, false
	}
	session, err := h.auth.Resolve(context.Background(), token)
	if err != nil {
		return nil, false
	}
	return session, true
}

func bearerToken(c fiber.Ctx) (string, bool) {
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return "", false
	}
	return auth[len(prefix):], true
}

// backendError транслирует ошибку бэкенда: 404 ряда наружу как 404,
// остальное как 502, локальное состояние не меняется.
func backendError(c fiber.Ctx, err error, tag string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	log.Printf("[STORE] %s: %v", tag, err)
	return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "backend unavailable"})
}
