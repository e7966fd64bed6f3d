package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Account Handlers
// ============================================================

// GetAccount возвращает профиль и флаг admin текущей сессии.
func (h *StoreHandler) GetAccount(c fiber.Ctx) error {
	session, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	profile, err := h.catalog.Profile(context.Background(), session.UserID)
	if err != nil {
		return backendError(c, err, "get profile")
	}

	return c.JSON(fiber.Map{
		"profile":  profile,
		"is_admin": session.IsAdmin,
	})
}

type updateProfileRequest struct {
	Gamertag string `json:"gamertag"`
}

// UpdateAccount обновляет gamertag профиля.
func (h *StoreHandler) UpdateAccount(c fiber.Ctx) error {
	session, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var req updateProfileRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Gamertag == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "gamertag required"})
	}

	if err := h.catalog.UpdateGamertag(context.Background(), session.UserID, req.Gamertag); err != nil {
		return backendError(c, err, "update profile")
	}

	log.Printf("[STORE] Profile updated: %s", session.UserID)
	return c.JSON(fiber.Map{"status": "updated"})
}
