// Package apiclient talks to the storefront /api routes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL. A nil httpClient uses a
// client with a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type submitResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderID"`
	Message string `json:"message"`
}

// SubmitOrder posts the order and returns the stored order id.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (string, error) {
	var out submitResponse
	status, err := c.do(ctx, http.MethodPost, "/api/submit-order", order, &out)
	if err != nil {
		return "", err
	}
	if !out.Success {
		return "", &APIError{Status: status, Message: out.Message}
	}
	return out.OrderID, nil
}

func (c *Client) AddItem(ctx context.Context, in catalogsvc.AddInput) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	if _, err := c.do(ctx, http.MethodPost, "/api/add-item", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, in catalogsvc.UpdateInput) (*domain.CatalogItem, error) {
	var out struct {
		Item domain.CatalogItem `json:"item"`
	}
	if _, err := c.do(ctx, http.MethodPut, "/api/update-item", in, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (c *Client) DeleteItems(ctx context.Context, storeID string, ids []string) (*catalogsvc.DeleteResult, error) {
	var out catalogsvc.DeleteResult
	in := catalogsvc.DeleteInput{StoreID: storeID, ItemIDs: ids}
	if _, err := c.do(ctx, http.MethodDelete, "/api/delete-item", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ViewItems(ctx context.Context, storeID string) ([]domain.CatalogItem, error) {
	var out struct {
		Items []domain.CatalogItem `json:"items"`
	}
	path := "/api/view-items?storeID=" + url.QueryEscape(storeID)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ExportItems copies the store's xlsx export into w.
func (c *Client) ExportItems(ctx context.Context, storeID string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/export-items?storeID="+url.QueryEscape(storeID), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("export items: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
