package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ============================================================
// Auth API
// ============================================================

// AuthUser описывает пользователя auth-сервиса бэкенда.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession содержит токен бэкенда и пользователя.
type AuthSession struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// SignUp регистрирует пользователя; gamertag уходит в user metadata.
func (c *Client) SignUp(ctx context.Context, email, password, gamertag string) (*AuthSession, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"gamertag": gamertag},
	}

	var session AuthSession
	if err := c.authRequest(ctx, http.MethodPost, "/auth/v1/signup", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignIn обменивает пару email/password на сессию бэкенда.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session AuthSession
	if err := c.authRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut инвалидирует токен бэкенда.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.authRequest(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

// GetUser возвращает пользователя по токену бэкенда.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	var user AuthUser
	if err := c.authRequest(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) authRequest(ctx context.Context, method, path, token string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
