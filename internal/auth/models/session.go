package models

// ============================================================
// Session Model
// ============================================================

// Session — разрешённая сессия, передаётся хендлерам явно.
type Session struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
