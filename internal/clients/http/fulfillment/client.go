// Package fulfillment is the HTTP client for the remote order/inventory
// service, the single source of truth every session reconciles against.
package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client wraps the remote REST API with typed calls and error classification.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient instantiates the fulfillment client with sane defaults.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("fulfillment base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// OrderFilter narrows ListOrders server-side.
type OrderFilter struct {
	Status     string
	AssignedTo string
	CreatedBy  string
}

// ListOrders fetches the order collection, optionally filtered.
func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]OrderDTO, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.AssignedTo != "" {
		query.Set("assignedTo", filter.AssignedTo)
	}
	if filter.CreatedBy != "" {
		query.Set("createdBy", filter.CreatedBy)
	}
	path := "/api/orders"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var orders []OrderDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder persists a new order and returns the authoritative record.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraftDTO) (OrderDTO, error) {
	var created OrderDTO
	if err := c.do(ctx, http.MethodPost, "/api/orders", draft, &created); err != nil {
		return OrderDTO{}, err
	}
	return created, nil
}

// UpdateOrder applies a lifecycle patch and returns the full post-update record.
func (c *Client) UpdateOrder(ctx context.Context, id string, patch OrderPatchDTO) (OrderDTO, error) {
	var updated OrderDTO
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id), patch, &updated); err != nil {
		return OrderDTO{}, err
	}
	return updated, nil
}

// MarkOrderPaid flags an order as paid remotely.
func (c *Client) MarkOrderPaid(ctx context.Context, id string) (OrderDTO, error) {
	var updated OrderDTO
	if err := c.do(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/payment", nil, &updated); err != nil {
		return OrderDTO{}, err
	}
	return updated, nil
}

// DeleteOrder removes an order permanently.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(id), nil, nil)
}

// ListProducts fetches the full inventory.
func (c *Client) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	var products []ProductDTO
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single inventory item.
func (c *Client) GetProduct(ctx context.Context, id string) (ProductDTO, error) {
	var product ProductDTO
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return ProductDTO{}, err
	}
	return product, nil
}

// CreateProduct adds an inventory item.
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraftDTO) (ProductDTO, error) {
	var created ProductDTO
	if err := c.do(ctx, http.MethodPost, "/api/products", draft, &created); err != nil {
		return ProductDTO{}, err
	}
	return created, nil
}

// UpdateProduct replaces an inventory item.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft ProductDraftDTO) (ProductDTO, error) {
	var updated ProductDTO
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), draft, &updated); err != nil {
		return ProductDTO{}, err
	}
	return updated, nil
}

// DeleteProduct removes an inventory item.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// AdjustStock shifts a product's stock count by delta (negative to decrement).
func (c *Client) AdjustStock(ctx context.Context, id string, delta int64) (ProductDTO, error) {
	var updated ProductDTO
	body := StockAdjustmentDTO{Delta: delta}
	if err := c.do(ctx, http.MethodPost, "/api/products/"+url.PathEscape(id)+"/stock", body, &updated); err != nil {
		return ProductDTO{}, err
	}
	return updated, nil
}

// ListStaff fetches the staff directory.
func (c *Client) ListStaff(ctx context.Context) ([]MemberDTO, error) {
	var members []MemberDTO
	if err := c.do(ctx, http.MethodGet, "/api/staff", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CreateStaff adds a staff member.
func (c *Client) CreateStaff(ctx context.Context, draft MemberDraftDTO) (MemberDTO, error) {
	var created MemberDTO
	if err := c.do(ctx, http.MethodPost, "/api/staff", draft, &created); err != nil {
		return MemberDTO{}, err
	}
	return created, nil
}

// UpdateStaff replaces a staff member record.
func (c *Client) UpdateStaff(ctx context.Context, id string, draft MemberDraftDTO) (MemberDTO, error) {
	var updated MemberDTO
	if err := c.do(ctx, http.MethodPut, "/api/staff/"+url.PathEscape(id), draft, &updated); err != nil {
		return MemberDTO{}, err
	}
	return updated, nil
}

// DeleteStaff removes a staff member.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/staff/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c == nil || c.http == nil {
		return errors.New("fulfillment client not configured")
	}
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			// An undecodable success body means we cannot trust what the
			// remote applied, so it classifies as transport failure.
			return unavailable(op, err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return rejected(op, remoteMessage(resp.Body, resp.Status))
	default:
		return unavailable(op, fmt.Errorf("unexpected status %s", resp.Status))
	}
}

func remoteMessage(body io.Reader, fallback string) string {
	var envelope errorBody
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(envelope.Message); msg != "" {
		return msg
	}
	return fallback
}
