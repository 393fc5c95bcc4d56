package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient implements Client over the REST API. It is safe for
// concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) LoggedIn() bool { return c.currentToken() != "" }

func (c *HTTPClient) Logout() { c.setToken("") }

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", false, nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) error {
	var tok tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", false, in, &tok); err != nil {
		return err
	}
	c.setToken(tok.Token)
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	var tok tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", false, body, &tok); err != nil {
		return err
	}
	c.setToken(tok.Token)
	return nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := c.do(ctx, http.MethodGet, "/api/categories", true, nil, &out)
	return out, err
}

func (c *HTTPClient) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, http.MethodGet, categoryPath(id), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	var out models.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) error {
	return c.do(ctx, http.MethodPut, categoryPath(id), true, in, nil)
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, categoryPath(id), true, nil, nil)
}

func (c *HTTPClient) ListTransactions(ctx context.Context, categoryID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	err := c.do(ctx, http.MethodGet, categoryPath(categoryID)+"/transactions", true, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateTransaction(ctx context.Context, categoryID int64, in models.TransactionInput) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.do(ctx, http.MethodPost, categoryPath(categoryID)+"/transactions", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTransaction(ctx context.Context, categoryID, id int64, in models.TransactionInput) error {
	return c.do(ctx, http.MethodPut, transactionPath(categoryID, id), true, in, nil)
}

func (c *HTTPClient) DeleteTransaction(ctx context.Context, categoryID, id int64) error {
	return c.do(ctx, http.MethodDelete, transactionPath(categoryID, id), true, nil, nil)
}

func (c *HTTPClient) GetBudget(ctx context.Context) (*models.Budget, error) {
	var out models.Budget
	if err := c.do(ctx, http.MethodGet, "/api/budget", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetBudget(ctx context.Context, total decimal.Decimal) (*models.Budget, error) {
	var out models.Budget
	body := map[string]decimal.Decimal{"totalBudget": total}
	if err := c.do(ctx, http.MethodPut, "/api/budget", true, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func categoryPath(id int64) string {
	return "/api/categories/" + strconv.FormatInt(id, 10)
}

func transactionPath(categoryID, id int64) string {
	return categoryPath(categoryID) + "/transactions/" + strconv.FormatInt(id, 10)
}

// do sends in as JSON and decodes a 2xx body into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.currentToken()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: e.Message}
}
