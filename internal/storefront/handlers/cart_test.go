package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authclient "esports-store/internal/auth/client"
	"esports-store/internal/backend"
	"esports-store/internal/common/kvstore"
	"esports-store/internal/storefront/cart"
	"esports-store/internal/storefront/catalog"
	"esports-store/internal/storefront/models"
)

type memStore struct {
	versions map[string]int
	payloads map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{
		versions: make(map[string]int),
		payloads: make(map[string][]byte),
	}
}

func (m *memStore) Put(_ context.Context, key string, version int, payload []byte) error {
	m.versions[key] = version
	m.payloads[key] = append([]byte(nil), payload...)
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, int, error) {
	payload, ok := m.payloads[key]
	if !ok {
		return nil, 0, kvstore.ErrNotFound
	}
	return payload, m.versions[key], nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.payloads, key)
	delete(m.versions, key)
	return nil
}

// backendStub отвечает за row-level API: товары по id и вставку заказов.
type backendStub struct {
	products map[string]models.Product
	orders   []models.Order
}

func (b *backendStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/rest/v1/products"):
			id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
			product, ok := b.products[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"row not found"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(product)

		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/rest/v1/orders"):
			var order models.Order
			if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			order.ID = "order-1"
			b.orders = append(b.orders, order)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(order)

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no route"}`))
		}
	})
}

func newStoreApp(t *testing.T, stub *backendStub) *fiber.App {
	t.Helper()

	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	client, err := backend.New(backend.Config{URL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)

	h := NewStoreHandler(
		catalog.New(client),
		cart.NewManager(newMemStore()),
		authclient.New(server.URL),
		10.0,
		"1234567890",
	)

	app := fiber.New()
	app.Get("/cart", h.GetCart)
	app.Post("/cart/items", h.AddCartItem)
	app.Patch("/cart/items", h.SetCartQuantity)
	app.Delete("/cart/items", h.RemoveCartItem)
	app.Post("/checkout", h.Checkout)
	app.Get("/contact-link", h.ContactLink)
	return app
}

func storeRequest(t *testing.T, app *fiber.App, method, path, session string, body any) (*http.Response, []byte) {
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
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func testProduct() models.Product {
	return models.Product{
		ID:       "p1",
		Name:     "Pro Jersey",
		Slug:     "pro-jersey",
		Price:    79.99,
		ImageURL: "https://cdn.example.com/jersey.png",
		Sizes:    []string{"S", "M", "L"},
	}
}

func TestCartRequiresSessionID(t *testing.T) {
	app := newStoreApp(t, &backendStub{})

	resp, _ := storeRequest(t, app, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddCartItemSnapshotsProduct(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	resp, body := storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{
		"product_id": "p1",
		"size":       "M",
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out cartResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Pro Jersey", out.Items[0].Name)
	assert.Equal(t, 79.99, out.Items[0].UnitPrice)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.InDelta(t, 79.99*2+10, out.Totals.Total, 1e-9)
}

func TestAddCartItemValidation(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	resp, _ := storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "", "size": "M", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// неизвестный товар — 404 из каталога
	resp, _ = storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "ghost", "size": "M", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetQuantityDeltaFloorsAtOne(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 1})

	resp, body := storeRequest(t, app, http.MethodPatch, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "delta": -5})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out cartResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Items[0].Quantity)
}

func TestRemoveCartItem(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 1})

	resp, body := storeRequest(t, app, http.MethodDelete, "/cart/items?product_id=p1&size=M", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out cartResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Empty(t, out.Items)
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 2})

	resp, body := storeRequest(t, app, http.MethodPost, "/checkout", "s1", fiber.Map{
		"name":    "Player One",
		"email":   "p1@example.com",
		"phone":   "5550001",
		"address": "1 Arcade Way",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Order
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "order-1", created.ID)
	assert.Equal(t, "COD", created.PaymentMethod)
	assert.Equal(t, "pending", created.Status)
	require.Len(t, created.Items, 1)
	assert.InDelta(t, 79.99*2+10, created.TotalAmount, 1e-9)

	// корзина очищена после успешного заказа
	resp, body = storeRequest(t, app, http.MethodGet, "/cart", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out cartResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Empty(t, out.Items)
}

func TestCheckoutValidation(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	app := newStoreApp(t, stub)

	// пустая корзина
	resp, _ := storeRequest(t, app, http.MethodPost, "/checkout", "s1", fiber.Map{
		"name": "A", "email": "a@b.c", "phone": "1", "address": "X",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 1})

	// незаполненные контакты
	resp, _ = storeRequest(t, app, http.MethodPost, "/checkout", "s1", fiber.Map{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// неподдерживаемый способ оплаты
	resp, _ = storeRequest(t, app, http.MethodPost, "/checkout", "s1", fiber.Map{
		"name": "A", "email": "a@b.c", "phone": "1", "address": "X", "payment_method": "CARD",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutBackendFailureKeepsCart(t *testing.T) {
	stub := &backendStub{products: map[string]models.Product{"p1": testProduct()}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/rest/v1/orders") {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"insert failed"}`))
			return
		}
		stub.handler().ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := backend.New(backend.Config{URL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	h := NewStoreHandler(catalog.New(client), cart.NewManager(newMemStore()), authclient.New(server.URL), 10.0, "1234567890")

	app := fiber.New()
	app.Get("/cart", h.GetCart)
	app.Post("/cart/items", h.AddCartItem)
	app.Post("/checkout", h.Checkout)

	storeRequest(t, app, http.MethodPost, "/cart/items", "s1", fiber.Map{"product_id": "p1", "size": "M", "quantity": 1})

	resp, _ := storeRequest(t, app, http.MethodPost, "/checkout", "s1", fiber.Map{
		"name": "A", "email": "a@b.c", "phone": "1", "address": "X",
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// заказа не было — корзина не тронута
	resp, body := storeRequest(t, app, http.MethodGet, "/cart", "s1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out cartResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Items, 1)
}

func TestContactLink(t *testing.T) {
	app := newStoreApp(t, &backendStub{})

	resp, body := storeRequest(t, app, http.MethodGet, "/contact-link?message=order+help", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "https://wa.me/1234567890?text=order+help", out.URL)
}
