package design

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"esports-store/internal/common/kvstore"
)

// ============================================================
// Design Manager
// ============================================================

// ErrSessionNotFound возвращается для неизвестного id сессии.
var ErrSessionNotFound = errors.New("design session not found")

// Storage — слой персистентности снапшотов.
type Storage interface {
	Put(ctx context.Context, key string, schemaVersion int, payload []byte) error
	Get(ctx context.Context, key string) ([]byte, int, error)
	Delete(ctx context.Context, key string) error
}

// Manager держит дизайн-сессии по id. В отличие от корзины снапшот
// пишется только явным Save — "сохранить дизайн" это действие пользователя.
type Manager struct {
	mu       sync.Mutex
	store    Storage
	sessions map[string]*Session
}

func NewManager(store Storage) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Create открывает новую сессию с дефолтным силуэтом.
func (m *Manager) Create() (string, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	session := NewSession()
	m.sessions[id] = session
	return id, session.clone()
}

// Get возвращает копию состояния сессии; неизвестный id пробует
// восстановиться из сохранённого снапшота.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.clone(), nil
}

// Mutate применяет fn к сессии под блокировкой и возвращает новое состояние.
func (m *Manager) Mutate(ctx context.Context, id string, fn func(*Session)) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(session)
	return session.clone(), nil
}

// Save персистит снапшот сессии.
func (m *Manager) Save(ctx context.Context, id string, now time.Time) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.resolve(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}

	snap := session.Snapshot(now)
	payload, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode design snapshot: %w", err)
	}
	if err := m.store.Put(ctx, designKey(id), SchemaVersion, payload); err != nil {
		return Snapshot{}, fmt.Errorf("persist design snapshot: %w", err)
	}
	return snap, nil
}

func (m *Manager) resolve(ctx context.Context, id string) (*Session, error) {
	if session, ok := m.sessions[id]; ok {
		return session, nil
	}

	payload, version, err := m.store.Get(ctx, designKey(id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load design session: %w", err)
	}

	snap, err := decodeSnapshot(payload, version)
	if err != nil {
		return nil, fmt.Errorf("load design session: %w", err)
	}

	session := Restore(snap)
	m.sessions[id] = session
	return session, nil
}

// decodeSnapshot — точка миграции старых версий снапшота.
func decodeSnapshot(payload []byte, version int) (Snapshot, error) {
	switch version {
	case SchemaVersion:
		var snap Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			return Snapshot{}, err
		}
		return snap, nil
	default:
		return Snapshot{}, fmt.Errorf("unknown design schema version %d", version)
	}
}

func (s *Session) clone() *Session {
	out := &Session{
		ProductType: s.ProductType,
		BaseColor:   s.BaseColor,
	}
	if len(s.Texts) > 0 {
		out.Texts = make([]TextElement, len(s.Texts))
		copy(out.Texts, s.Texts)
	}
	if len(s.Logos) > 0 {
		out.Logos = make([]LogoElement, len(s.Logos))
		copy(out.Logos, s.Logos)
	}
	return out
}

func designKey(id string) string {
	return "design:" + id
}
