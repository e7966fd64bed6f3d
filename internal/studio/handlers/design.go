package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"esports-store/internal/studio/assets"
	"esports-store/internal/studio/design"
	"esports-store/internal/studio/scene"
	"esports-store/internal/studio/storage"
)

// ============================================================
// Design Handler
// ============================================================

type DesignHandler struct {
	designs *design.Manager
	loader  *assets.Loader
	logos   *storage.LogoStorage
}

func NewDesignHandler(designs *design.Manager, loader *assets.Loader, logos *storage.LogoStorage) *DesignHandler {
	return &DesignHandler{
		designs: designs,
		loader:  loader,
		logos:   logos,
	}
}

// Диапазоны авторинга; модель хранит свободные числа,
// границы применяются здесь, на входе.
const (
	minTextSize  = 0.1
	maxTextSize  = 1.0
	minLogoScale = 0.1
	maxLogoScale = 2.0
	maxAxis      = 2.0
)

type sessionResponse struct {
	ID      string          `json:"id"`
	Session *design.Session `json:"session"`
}

// CreateSession открывает новую дизайн-сессию.
func (h *DesignHandler) CreateSession(c fiber.Ctx) error {
	id, session := h.designs.Create()
	log.Printf("[STUDIO] Session created: %s", id)
	return c.Status(http.StatusCreated).JSON(sessionResponse{ID: id, Session: session})
}

// GetSession возвращает состояние сессии (восстанавливая из снапшота).
func (h *DesignHandler) GetSession(c fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.designs.Get(context.Background(), id)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

type selectProductRequest struct {
	ProductType string `json:"product_type"`
}

// SelectProduct меняет силуэт; существующие оверлеи сохраняются.
func (h *DesignHandler) SelectProduct(c fiber.Ctx) error {
	var req selectProductRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if !design.KnownProductType(req.ProductType) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown product type"})
	}

	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.SelectProduct(req.ProductType)
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

type setColorRequest struct {
	Color string `json:"color"`
}

// SetBaseColor меняет базовый цвет силуэта.
func (h *DesignHandler) SetBaseColor(c fiber.Ctx) error {
	var req setColorRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Color == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "color required"})
	}

	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.SetBaseColor(req.Color)
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

type addTextRequest struct {
	Text     string       `json:"text"`
	Color    string       `json:"color"`
	Size     float64      `json:"size"`
	Position *design.Vec3 `json:"position"`
}

// AddText добавляет текстовый оверлей.
func (h *DesignHandler) AddText(c fiber.Ctx) error {
	var req addTextRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "text required"})
	}

	if req.Color == "" {
		req.Color = "#000000"
	}
	if req.Size == 0 {
		req.Size = 0.3
	}
	position := design.Vec3{Z: 0.15}
	if req.Position != nil {
		position = clampPosition(*req.Position)
	}
	size := clamp(req.Size, minTextSize, maxTextSize)

	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.AddText(req.Text, req.Color, size, position)
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(sessionResponse{ID: id, Session: session})
}

type addLogoRequest struct {
	Ref      string       `json:"ref"`
	Scale    float64      `json:"scale"`
	Position *design.Vec3 `json:"position"`
}

// AddLogo добавляет логотип по URL или ref загруженного файла.
func (h *DesignHandler) AddLogo(c fiber.Ctx) error {
	var req addLogoRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if strings.TrimSpace(req.Ref) == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "ref required"})
	}

	if req.Scale == 0 {
		req.Scale = 0.5
	}
	position := design.Vec3{Y: 0.5, Z: 0.15}
	if req.Position != nil {
		position = clampPosition(*req.Position)
	}
	scale := clamp(req.Scale, minLogoScale, maxLogoScale)

	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.AddLogo(req.Ref, scale, position)
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(sessionResponse{ID: id, Session: session})
}

// UpdateElement сливает частичные поля в элемент; неизвестный id — no-op.
func (h *DesignHandler) UpdateElement(c fiber.Ctx) error {
	var upd design.ElementUpdate
	if err := json.Unmarshal(c.Body(), &upd); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if upd.Size != nil {
		v := clamp(*upd.Size, minTextSize, maxTextSize)
		upd.Size = &v
	}
	if upd.Scale != nil {
		v := clamp(*upd.Scale, minLogoScale, maxLogoScale)
		upd.Scale = &v
	}
	if upd.Position != nil {
		v := clampPosition(*upd.Position)
		upd.Position = &v
	}

	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.UpdateElement(c.Params("elementID"), upd)
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

// RemoveElement удаляет элемент из любой коллекции.
func (h *DesignHandler) RemoveElement(c fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.RemoveElement(c.Params("elementID"))
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

// Reset очищает оверлеи и базовый цвет; силуэт остаётся выбранным.
func (h *DesignHandler) Reset(c fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.designs.Mutate(context.Background(), id, func(s *design.Session) {
		s.Reset()
	})
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(sessionResponse{ID: id, Session: session})
}

// Save персистит снапшот сессии.
func (h *DesignHandler) Save(c fiber.Ctx) error {
	id := c.Params("id")
	snap, err := h.designs.Save(context.Background(), id, time.Now().UTC())
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":   "saved",
		"saved_at": snap.SavedAt,
	})
}

// RenderScene проецирует сессию в описание сцены.
func (h *DesignHandler) RenderScene(c fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.designs.Get(context.Background(), id)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(scene.Render(session, h.loader.Ensure))
}

// ============================================================
// Logo Upload
// ============================================================

// UploadLogo сохраняет изображение логотипа и возвращает ref.
func (h *DesignHandler) UploadLogo(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required"})
	}
	if !storage.AllowedExt(fileHeader.Filename) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image type"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	ref, err := h.logos.Save(fileHeader.Filename, data)
	if err != nil {
		log.Printf("[STUDIO] save logo error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"ref": ref})
}

// GetLogo отдаёт загруженное изображение.
func (h *DesignHandler) GetLogo(c fiber.Ctx) error {
	path := h.logos.Path(c.Params("name"))
	if _, err := os.Stat(path); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}
	return c.SendFile(path)
}

// ============================================================
// Helpers
// ============================================================

func sessionError(c fiber.Ctx, err error) error {
	if errors.Is(err, design.ErrSessionNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	log.Printf("[STUDIO] session error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampPosition(p design.Vec3) design.Vec3 {
	return design.Vec3{
		X: clamp(p.X, -maxAxis, maxAxis),
		Y: clamp(p.Y, -maxAxis, maxAxis),
		Z: clamp(p.Z, -maxAxis, maxAxis),
	}
}
