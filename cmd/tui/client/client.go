// Package client is a thin HTTP client for the catalog API. It keeps
// the JWT from login and attaches it to every product request.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnauthorized is returned when the API rejects the token; the UI
// uses it to drop back to the login screen.
var ErrUnauthorized = errors.New("session expired, please login again")

type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	InStock   bool    `json:"inStock"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ProductPatch struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	InStock  *bool    `json:"inStock,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) ClearToken() {
	c.token = ""
}

func (c *Client) Register(username, password string) error {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(http.MethodPost, "/api/register", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(username, password string) error {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(http.MethodPost, "/api/login", body, false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	c.token = tokenResp.Token
	return nil
}

func (c *Client) ListProducts() ([]Product, error) {
	resp, err := c.do(http.MethodGet, "/api/products", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (c *Client) SearchProducts(name string) ([]Product, error) {
	path := "/api/products/search?name=" + url.QueryEscape(name)
	resp, err := c.do(http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var searchResp struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return searchResp.Products, nil
}

func (c *Client) UpdateProduct(id string, patch ProductPatch) (*Product, error) {
	resp, err := c.do(http.MethodPut, "/api/products/"+url.PathEscape(id), patch, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var updateResp struct {
		Product Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updateResp); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}
	return &updateResp.Product, nil
}

func (c *Client) DeleteProduct(id string) error {
	resp, err := c.do(http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func (c *Client) do(method, path string, body interface{}, withAuth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func checkAuth(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// apiError extracts the server's message or error field from a failed
// response.
func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return errors.New(body.Message)
		}
		if body.Error != "" {
			return errors.New(body.Error)
		}
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
