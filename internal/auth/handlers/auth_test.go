package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-store/internal/auth/service"
	"esports-store/internal/backend"
)

// authStub имитирует auth API бэкенда и таблицы profiles/user_roles.
type authStub struct {
	admins   map[string]bool
	profiles []map[string]string
}

func (s *authStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/auth/v1/signup":
			_, _ = w.Write([]byte(`{"access_token":"backend-tok","user":{"id":"u1","email":"new@example.com"}}`))

		case r.URL.Path == "/auth/v1/token":
			var creds struct {
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"msg":"invalid login credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"backend-tok","user":{"id":"u1","email":"a@b.c"}}`))

		case r.URL.Path == "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)

		case strings.HasPrefix(r.URL.Path, "/rest/v1/user_roles"):
			userID := strings.TrimPrefix(r.URL.Query().Get("user_id"), "eq.")
			if s.admins[userID] {
				_, _ = w.Write([]byte(`[{"role":"admin"}]`))
				return
			}
			_, _ = w.Write([]byte(`[]`))

		case strings.HasPrefix(r.URL.Path, "/rest/v1/profiles"):
			var profile map[string]string
			_ = json.NewDecoder(r.Body).Decode(&profile)
			s.profiles = append(s.profiles, profile)
			w.WriteHeader(http.StatusCreated)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newAuthApp(t *testing.T, stub *authStub) *fiber.App {
	t.Helper()

	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	client, err := backend.New(backend.Config{URL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	h := NewAuthHandler(client, service.NewSessionManager())

	app := fiber.New()
	app.Post("/signup", h.SignUp)
	app.Post("/signin", h.SignIn)
	app.Post("/signout", h.SignOut)
	app.Get("/session", h.GetSession)
	return app
}

func authRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestSignUpIssuesTokenAndProfile(t *testing.T) {
	stub := &authStub{admins: map[string]bool{}}
	app := newAuthApp(t, stub)

	resp, body := authRequest(t, app, http.MethodPost, "/signup", "", fiber.Map{
		"email":    "new@example.com",
		"password": "secret",
		"gamertag": "shadow",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out sessionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u1", out.Session.UserID)
	assert.False(t, out.Session.IsAdmin)

	require.Len(t, stub.profiles, 1)
	assert.Equal(t, "shadow", stub.profiles[0]["gamertag"])
}

func TestSignUpValidation(t *testing.T) {
	app := newAuthApp(t, &authStub{})

	resp, _ := authRequest(t, app, http.MethodPost, "/signup", "", fiber.Map{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignInResolvesAdminOnce(t *testing.T) {
	stub := &authStub{admins: map[string]bool{"u1": true}}
	app := newAuthApp(t, stub)

	resp, body := authRequest(t, app, http.MethodPost, "/signin", "", fiber.Map{
		"email":    "a@b.c",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out sessionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Session.IsAdmin)

	// сессия по токену отражает флаг, выданный при входе
	resp, body = authRequest(t, app, http.MethodGet, "/session", out.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session struct {
		IsAdmin bool `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(body, &session))
	assert.True(t, session.IsAdmin)
}

func TestSignInBadCredentials(t *testing.T) {
	app := newAuthApp(t, &authStub{})

	resp, _ := authRequest(t, app, http.MethodPost, "/signin", "", fiber.Map{
		"email":    "a@b.c",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignOutRevokesToken(t *testing.T) {
	app := newAuthApp(t, &authStub{})

	_, body := authRequest(t, app, http.MethodPost, "/signin", "", fiber.Map{
		"email":    "a@b.c",
		"password": "secret",
	})
	var out sessionResponse
	require.NoError(t, json.Unmarshal(body, &out))

	resp, _ := authRequest(t, app, http.MethodPost, "/signout", out.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = authRequest(t, app, http.MethodGet, "/session", out.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionWithoutToken(t *testing.T) {
	app := newAuthApp(t, &authStub{})

	resp, _ := authRequest(t, app, http.MethodGet, "/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
