package design

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ============================================================
// Design Session
// ============================================================

const (
	DefaultProductType = "jersey"
	DefaultBaseColor   = "#ffffff"
)

// ProductTypes — фиксированный набор силуэтов.
var ProductTypes = []string{
	"jersey",
	"hoodie",
	"trousers",
	"mousepad",
	"cap",
	"t-shirt",
	"arm-sleeves",
	"finger-sleeves",
}

// KnownProductType проверяет тип по таблице силуэтов.
func KnownProductType(productType string) bool {
	for _, t := range ProductTypes {
		if t == productType {
			return true
		}
	}
	return false
}

// Session — состояние одного дизайна: силуэт, базовый цвет
// и две упорядоченные коллекции оверлеев.
type Session struct {
	ProductType string        `json:"product_type"`
	BaseColor   string        `json:"base_color"`
	Texts       []TextElement `json:"texts"`
	Logos       []LogoElement `json:"logos"`
}

func NewSession() *Session {
	return &Session{
		ProductType: DefaultProductType,
		BaseColor:   DefaultBaseColor,
	}
}

// SelectProduct заменяет силуэт; элементы и базовый цвет не трогаются —
// существующие оверлеи остаются даже если не подходят новому силуэту.
func (s *Session) SelectProduct(productType string) {
	s.ProductType = productType
}

// SetBaseColor заменяет базовый цвет силуэта.
func (s *Session) SetBaseColor(color string) {
	s.BaseColor = color
}

// AddText добавляет текстовый элемент; пустой текст — no-op.
func (s *Session) AddText(text, color string, size float64, position Vec3) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	id := uuid.NewString()
	s.Texts = append(s.Texts, TextElement{
		ID:       id,
		Text:     text,
		Color:    color,
		Size:     size,
		Position: position,
	})
	return id, true
}

// AddLogo добавляет логотип; пустой ref — no-op.
func (s *Session) AddLogo(ref string, scale float64, position Vec3) (string, bool) {
	if strings.TrimSpace(ref) == "" {
		return "", false
	}

	id := uuid.NewString()
	s.Logos = append(s.Logos, LogoElement{
		ID:       id,
		Ref:      ref,
		Scale:    scale,
		Position: position,
	})
	return id, true
}

// UpdateElement сливает поля в элемент с данным id; неизвестный id — no-op.
func (s *Session) UpdateElement(id string, upd ElementUpdate) bool {
	for i := range s.Texts {
		if s.Texts[i].ID == id {
			s.Texts[i].apply(upd)
			return true
		}
	}
	for i := range s.Logos {
		if s.Logos[i].ID == id {
			s.Logos[i].apply(upd)
			return true
		}
	}
	return false
}

// RemoveElement удаляет элемент из любой коллекции; неизвестный id — no-op.
func (s *Session) RemoveElement(id string) bool {
	for i := range s.Texts {
		if s.Texts[i].ID == id {
			s.Texts = append(s.Texts[:i], s.Texts[i+1:]...)
			return true
		}
	}
	for i := range s.Logos {
		if s.Logos[i].ID == id {
			s.Logos = append(s.Logos[:i], s.Logos[i+1:]...)
			return true
		}
	}
	return false
}

// Reset очищает оверлеи и возвращает базовый цвет к дефолту;
// выбранный силуэт сохраняется.
func (s *Session) Reset() {
	s.Texts = nil
	s.Logos = nil
	s.BaseColor = DefaultBaseColor
}

// ============================================================
// Snapshot
// ============================================================

// SchemaVersion — версия формата сохранённого снапшота дизайна.
const SchemaVersion = 1

// Snapshot — плоский снимок сессии для сохранения.
type Snapshot struct {
	ProductType string        `json:"product_type"`
	BaseColor   string        `json:"base_color"`
	Texts       []TextElement `json:"texts"`
	Logos       []LogoElement `json:"logos"`
	SavedAt     time.Time     `json:"saved_at"`
}

// Snapshot делает снимок текущего состояния.
func (s *Session) Snapshot(now time.Time) Snapshot {
	texts := make([]TextElement, len(s.Texts))
	copy(texts, s.Texts)
	logos := make([]LogoElement, len(s.Logos))
	copy(logos, s.Logos)

	return Snapshot{
		ProductType: s.ProductType,
		BaseColor:   s.BaseColor,
		Texts:       texts,
		Logos:       logos,
		SavedAt:     now,
	}
}

// Restore восстанавливает сессию из снимка.
func Restore(snap Snapshot) *Session {
	return &Session{
		ProductType: snap.ProductType,
		BaseColor:   snap.BaseColor,
		Texts:       snap.Texts,
		Logos:       snap.Logos,
	}
}
