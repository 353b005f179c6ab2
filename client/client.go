// Package client is a typed HTTP client for the private notes API. Each call
// performs exactly one request-response exchange; there are no retries and no
// caching. The session cookie set on login is retained in an in-memory cookie
// jar and sent on every subsequent request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/Amke0501/Private-Notes-App/internal/models"
)

// APIError is a non-2xx response, carrying the server-provided message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

type userEnvelope struct {
	User *models.User `json:"user"`
}

type noteEnvelope struct {
	Note *models.Note `json:"note"`
}

type notesEnvelope struct {
	Notes []models.Note `json:"notes"`
}

func (c *Client) Signup(ctx context.Context, email, password string) (*models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

// Login authenticates and stores the returned session cookie in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var out notesEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	var out noteEnvelope
	err := c.do(ctx, http.MethodPost, "/api/notes",
		map[string]string{"title": title, "content": content}, &out)
	if err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error) {
	var out noteEnvelope
	err := c.do(ctx, http.MethodPut, "/api/notes/"+id,
		map[string]string{"title": title, "content": content}, &out)
	if err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
