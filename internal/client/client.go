// Package client is a typed consumer of the userdir REST API. Client wraps
// the HTTP calls; Controller layers the form/list state an admin frontend
// keeps between calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PabloPavan/userdir_api/internal"
	"github.com/PabloPavan/userdir_api/internal/users"
)

const DefaultBaseURL = "http://localhost:8080"

// UserPayload is the body for create and update calls: the full replacement
// shape, same as the server expects.
type UserPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New reads the API base URL from USERDIR_API_URL, falling back to the
// local default.
func New() *Client {
	return &Client{
		BaseURL: internal.Env("USERDIR_API_URL", DefaultBaseURL),
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) List(ctx context.Context) ([]users.User, error) {
	var out []users.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*users.User, error) {
	var out users.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, p UserPayload) (*users.User, error) {
	var out users.User
	if err := c.do(ctx, http.MethodPost, "/api/users", &p, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, p UserPayload) (*users.User, error) {
	var out users.User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+id, &p, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &APIError{StatusCode: res.StatusCode, Message: string(bytes.TrimSpace(msg))}
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}
