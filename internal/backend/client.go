package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ============================================================
// Hosted Backend Client (row-level REST API)
// ============================================================

// Client общается с REST API хостед-бэкенда (PostgREST-стиль).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("backend url is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// APIError описывает ошибку бэкенда.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// ============================================================
// Query Builder
// ============================================================

// From начинает запрос к таблице.
func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table}
}

type Query struct {
	client  *Client
	table   string
	columns string
	filters []string
	orders  []string
	limit   int
	single  bool
}

// Select задаёт выбираемые колонки.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

// Eq добавляет фильтр равенства.
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// Order добавляет сортировку.
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.orders = append(q.orders, fmt.Sprintf("%s.%s", column, dir))
	return q
}

// Limit ограничивает число строк.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single требует ровно одну строку в ответе.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) url() string {
	var params []string
	if q.columns != "" {
		params = append(params, "select="+q.columns)
	}
	params = append(params, q.filters...)
	if len(q.orders) > 0 {
		params = append(params, "order="+strings.Join(q.orders, ","))
	}
	if q.limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", q.limit))
	}

	u := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}
	return u
}

// Get выполняет чтение и декодирует ответ в dest.
func (q *Query) Get(ctx context.Context, dest any) error {
	return q.client.do(ctx, http.MethodGet, q.url(), nil, q.single, dest)
}

// Insert вставляет запись; при non-nil dest возвращает созданную строку.
func (q *Query) Insert(ctx context.Context, record any, dest any) error {
	return q.client.do(ctx, http.MethodPost, q.url(), record, q.single, dest)
}

// Update обновляет строки по фильтрам.
func (q *Query) Update(ctx context.Context, record any) error {
	if len(q.filters) == 0 {
		return fmt.Errorf("update without filters")
	}
	return q.client.do(ctx, http.MethodPatch, q.url(), record, false, nil)
}

// Delete удаляет строки по фильтрам.
func (q *Query) Delete(ctx context.Context) error {
	if len(q.filters) == 0 {
		return fmt.Errorf("delete without filters")
	}
	return q.client.do(ctx, http.MethodDelete, q.url(), nil, false, nil)
}

// ============================================================
// Transport
// ============================================================

func (c *Client) do(ctx context.Context, method, url string, body any, single bool, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
	if dest != nil && method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
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

func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Msg != "" {
			return payload.Msg
		}
	}
	return strings.TrimSpace(string(data))
}
