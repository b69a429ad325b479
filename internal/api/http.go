package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront/internal/models"
)

// tokenExpiredMessage is the message the backend puts in a 401 body when the
// bearer token has expired, as opposed to being absent or malformed.
const tokenExpiredMessage = "token expired"

// TokenSource supplies the current bearer token, or "" when the client is
// not authenticated. The session layer owns the token; the HTTP client only
// reads it per request.
type TokenSource func() string

// HTTPClient implements AuthAPI, CatalogAPI, and OrderAPI against the
// storefront REST backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

var (
	_ AuthAPI    = (*HTTPClient)(nil)
	_ CatalogAPI = (*HTTPClient)(nil)
	_ OrderAPI   = (*HTTPClient)(nil)
)

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. "http://127.0.0.1:5000"). token may be nil for anonymous use.
func NewHTTPClient(baseURL string, token TokenSource) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// errorBody is the JSON error envelope returned by the backend.
type errorBody struct {
	Message string `json:"message"`
}

// do performs a JSON request and decodes the response into out (out may be
// nil when the body is irrelevant). Transport failures map to ErrUnavailable,
// non-2xx statuses map to the package error taxonomy.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus converts a non-2xx response to the error taxonomy. The body is
// read best-effort; a missing or malformed body still yields the right class.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if eb.Message == tokenExpiredMessage {
			return ErrTokenExpired
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		msg := eb.Message
		if msg == "" {
			msg = resp.Status
		}
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}
}

// --- AuthAPI ---

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, error) {
	var u models.User
	in := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/users/login", nil, in, &u)
	return u, err
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (models.User, error) {
	var u models.User
	in := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/users", nil, in, &u)
	return u, err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/users/logout", nil, nil, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, nil, &u)
	return u, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email, password string) (models.User, error) {
	var u models.User
	in := map[string]string{"name": name, "email": email, "password": password}
	err := c.do(ctx, http.MethodPut, "/api/users/profile", nil, in, &u)
	return u, err
}

// --- CatalogAPI ---

func (c *HTTPClient) ListProducts(ctx context.Context, keyword string, page int) (ProductPage, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if page > 1 {
		q.Set("pageNumber", strconv.Itoa(page))
	}
	var p ProductPage
	err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &p)
	return p, err
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &p)
	return p, err
}

func (c *HTTPClient) SubmitReview(ctx context.Context, productID string, rating int, comment string) error {
	in := map[string]any{"rating": rating, "comment": comment}
	return c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(productID)+"/reviews", nil, in, nil)
}

// --- OrderAPI ---

func (c *HTTPClient) CreateOrder(ctx context.Context, draft OrderDraft) (models.Order, error) {
	var o models.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", nil, draft, &o)
	return o, err
}

func (c *HTTPClient) ListMine(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/mine", nil, nil, &orders)
	return orders, err
}

func (c *HTTPClient) Get(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil, &o)
	return o, err
}
