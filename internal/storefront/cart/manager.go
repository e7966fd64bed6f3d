package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"esports-store/internal/common/kvstore"
)

// ============================================================
// Cart Manager
// ============================================================

// SchemaVersion — версия формата сохранённого снапшота корзины.
const SchemaVersion = 1

// Storage — слой персистентности снапшотов.
type Storage interface {
	Put(ctx context.Context, key string, schemaVersion int, payload []byte) error
	Get(ctx context.Context, key string) ([]byte, int, error)
	Delete(ctx context.Context, key string) error
}

// Manager держит корзины по сессиям и пишет каждый снапшот насквозь в Storage.
type Manager struct {
	mu    sync.Mutex
	store Storage
	carts map[string]*Cart
}

func NewManager(store Storage) *Manager {
	return &Manager{
		store: store,
		carts: make(map[string]*Cart),
	}
}

// AddItem добавляет товар в корзину сессии и сохраняет снапшот.
func (m *Manager) AddItem(ctx context.Context, sessionID string, item LineItem, qty int) error {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(item, qty)
	})
}

// SetQuantity меняет количество на дельту и сохраняет снапшот.
func (m *Manager) SetQuantity(ctx context.Context, sessionID, productID, size string, delta int) error {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.SetQuantity(productID, size, delta)
	})
}

// RemoveItem удаляет строку и сохраняет снапшот.
func (m *Manager) RemoveItem(ctx context.Context, sessionID, productID, size string) error {
	return m.mutate(ctx, sessionID, func(c *Cart) {
		c.RemoveItem(productID, size)
	})
}

// Clear опустошает корзину и удаляет снапшот (атомарно для вызывающего).
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.load(ctx, sessionID)
	if err != nil {
		return err
	}
	c.Clear()
	return m.store.Delete(ctx, cartKey(sessionID))
}

// View возвращает строки и суммы корзины.
func (m *Manager) View(ctx context.Context, sessionID string, shippingFee float64) ([]LineItem, Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.load(ctx, sessionID)
	if err != nil {
		return nil, Totals{}, err
	}
	return c.Lines(), c.Totals(shippingFee), nil
}

func (m *Manager) mutate(ctx context.Context, sessionID string, fn func(*Cart)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.load(ctx, sessionID)
	if err != nil {
		return err
	}
	fn(c)
	return m.persist(ctx, sessionID, c)
}

// load достаёт корзину из памяти или восстанавливает из снапшота.
func (m *Manager) load(ctx context.Context, sessionID string) (*Cart, error) {
	if c, ok := m.carts[sessionID]; ok {
		return c, nil
	}

	c := &Cart{}
	payload, version, err := m.store.Get(ctx, cartKey(sessionID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		// fresh cart
	case err != nil:
		return nil, fmt.Errorf("load cart: %w", err)
	default:
		lines, err := decodeLines(payload, version)
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		c.lines = lines
	}

	m.carts[sessionID] = c
	return c, nil
}

func (m *Manager) persist(ctx context.Context, sessionID string, c *Cart) error {
	payload, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := m.store.Put(ctx, cartKey(sessionID), SchemaVersion, payload); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// decodeLines — точка миграции старых версий снапшота.
func decodeLines(payload []byte, version int) ([]LineItem, error) {
	switch version {
	case SchemaVersion:
		var lines []LineItem
		if err := json.Unmarshal(payload, &lines); err != nil {
			return nil, err
		}
		return lines, nil
	default:
		return nil, fmt.Errorf("unknown cart schema version %d", version)
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}
