package service

import (
	"sync"

	"github.com/google/uuid"

	"esports-store/internal/auth/models"
)

// ============================================================
// Session Manager
// ============================================================

// sessionState хранит сессию вместе с токеном бэкенда.
type sessionState struct {
	session     models.Session
	accessToken string
}

type SessionManager struct {
	mu     sync.Mutex
	tokens map[string]sessionState // token -> state
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		tokens: make(map[string]sessionState),
	}
}

// Issue выдаёт локальный токен для сессии.
func (m *SessionManager) Issue(session models.Session, accessToken string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.tokens[token] = sessionState{session: session, accessToken: accessToken}
	return token
}

// Resolve возвращает сессию по токену.
func (m *SessionManager) Resolve(token string) (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.tokens[token]
	return state.session, ok
}

// AccessToken возвращает токен бэкенда для данного локального токена.
func (m *SessionManager) AccessToken(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.tokens[token]
	return state.accessToken, ok
}

// Revoke удаляет токен; отсутствие токена не ошибка.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, token)
}
