package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/auth/models"
	"esports-store/internal/auth/service"
	"esports-store/internal/backend"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	client   *backend.Client
	sessions *service.SessionManager
}

func NewAuthHandler(client *backend.Client, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{
		client:   client,
		sessions: sessions,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Gamertag string `json:"gamertag"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

// SignUp регистрирует пользователя в auth-сервисе бэкенда
// и создаёт строку профиля.
func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	log.Printf("[AUTH] Sign-up request")

	var req signUpRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email and password required"})
	}

	backendSession, err := h.client.SignUp(context.Background(), req.Email, req.Password, req.Gamertag)
	if err != nil {
		return backendStatus(c, err, "sign-up failed")
	}

	profile := map[string]string{
		"id":       backendSession.User.ID,
		"email":    backendSession.User.Email,
		"gamertag": req.Gamertag,
	}
	if err := h.client.From("profiles").Insert(context.Background(), profile, nil); err != nil {
		log.Printf("[AUTH] create profile error: %v", err)
	}

	session := models.Session{
		UserID: backendSession.User.ID,
		Email:  backendSession.User.Email,
	}
	token := h.sessions.Issue(session, backendSession.AccessToken)

	return c.Status(http.StatusCreated).JSON(sessionResponse{Token: token, Session: session})
}

// SignIn обменивает email/password на локальный токен;
// флаг admin разрешается один раз при входе.
func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	log.Printf("[AUTH] Sign-in request")

	var req signInRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "email and password required"})
	}

	backendSession, err := h.client.SignIn(context.Background(), req.Email, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	session := models.Session{
		UserID:  backendSession.User.ID,
		Email:   backendSession.User.Email,
		IsAdmin: h.isAdmin(backendSession.User.ID),
	}
	token := h.sessions.Issue(session, backendSession.AccessToken)

	return c.JSON(sessionResponse{Token: token, Session: session})
}

// SignOut инвалидирует токен бэкенда и локальный токен.
func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if accessToken, ok := h.sessions.AccessToken(token); ok {
		if err := h.client.SignOut(context.Background(), accessToken); err != nil {
			log.Printf("[AUTH] backend sign-out error: %v", err)
		}
	}
	h.sessions.Revoke(token)

	return c.JSON(fiber.Map{"status": "signed out"})
}

// GetSession возвращает текущую сессию по токену.
func (h *AuthHandler) GetSession(c fiber.Ctx) error {
	token, ok := bearerToken(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	session, ok := h.sessions.Resolve(token)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.JSON(session)
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) isAdmin(userID string) bool {
	var roles []struct {
		Role string `json:"role"`
	}
	err := h.client.From("user_roles").
		Select("role").
		Eq("user_id", userID).
		Eq("role", "admin").
		Limit(1).
		Get(context.Background(), &roles)
	if err != nil {
		log.Printf("[AUTH] role lookup error: %v", err)
		return false
	}
	return len(roles) > 0
}

func bearerToken(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}

func backendStatus(c fiber.Ctx, err error, fallback string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
	}
	log.Printf("[AUTH] backend error: %v", err)
	return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": fallback})
}
