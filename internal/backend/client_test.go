package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, status int, response string, capture *captured) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			capture.method = r.Method
			capture.path = r.URL.Path
			capture.query = r.URL.RawQuery
			capture.header = r.Header.Clone()
			capture.body, _ = io.ReadAll(r.Body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{URL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return client
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestQueryBuildsRestURL(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusOK, `[]`, &got)

	var dest []map[string]any
	err := client.From("products").
		Select("*").
		Eq("category_id", "42").
		Eq("featured", true).
		Order("name", true).
		Limit(5).
		Get(context.Background(), &dest)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/rest/v1/products", got.path)
	assert.Equal(t, "select=*&category_id=eq.42&featured=eq.true&order=name.asc&limit=5", got.query)
	assert.Equal(t, "test-key", got.header.Get("apikey"))
	assert.Equal(t, "Bearer test-key", got.header.Get("Authorization"))
}

func TestSingleSetsAcceptHeader(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusOK, `{"id":"1"}`, &got)

	var dest map[string]any
	err := client.From("products").Eq("slug", "pro-jersey").Single().Get(context.Background(), &dest)
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.pgrst.object+json", got.header.Get("Accept"))
	assert.Equal(t, "1", dest["id"])
}

func TestInsertAsksForRepresentation(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusCreated, `{"id":"7","status":"pending"}`, &got)

	var dest map[string]any
	err := client.From("orders").Single().Insert(context.Background(), map[string]any{"total_amount": 99.5}, &dest)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "return=representation", got.header.Get("Prefer"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "pending", dest["status"])
}

func TestUpdateAndDeleteRequireFilters(t *testing.T) {
	client := newTestClient(t, http.StatusOK, `[]`, nil)

	err := client.From("profiles").Update(context.Background(), map[string]string{"gamertag": "x"})
	assert.Error(t, err)

	err = client.From("profiles").Delete(context.Background())
	assert.Error(t, err)
}

func TestErrorResponseBecomesAPIError(t *testing.T) {
	client := newTestClient(t, http.StatusNotFound, `{"message":"row not found"}`, nil)

	var dest map[string]any
	err := client.From("products").Eq("id", "9").Single().Get(context.Background(), &dest)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "row not found", apiErr.Message)
}

func TestSignInParsesSession(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusOK, `{"access_token":"tok","user":{"id":"u1","email":"a@b.c"}}`, &got)

	session, err := client.SignIn(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/token", got.path)
	assert.Equal(t, "grant_type=password", got.query)
	assert.Equal(t, "tok", session.AccessToken)
	assert.Equal(t, "u1", session.User.ID)
}

func TestSignUpCarriesGamertagMetadata(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusOK, `{"access_token":"tok","user":{"id":"u1","email":"a@b.c"}}`, &got)

	_, err := client.SignUp(context.Background(), "a@b.c", "secret", "shadow")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/signup", got.path)
	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(got.body, &body))
	assert.Equal(t, "shadow", body.Data["gamertag"])
}

func TestGetUserSendsBearerToken(t *testing.T) {
	var got captured
	client := newTestClient(t, http.StatusOK, `{"id":"u1","email":"a@b.c"}`, &got)

	user, err := client.GetUser(context.Background(), "user-token")
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/user", got.path)
	assert.Equal(t, "Bearer user-token", got.header.Get("Authorization"))
	assert.Equal(t, "a@b.c", user.Email)
}

func TestSignInBadCredentials(t *testing.T) {
	client := newTestClient(t, http.StatusBadRequest, `{"msg":"invalid login credentials"}`, nil)

	_, err := client.SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid login credentials", apiErr.Message)
}
