// Package remote is a client for the account and file storage backend.
package remote

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

	"github.com/ukaji3/sheetviz-go/pkg/sheetviz/models"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// Client talks to the backend. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithToken sets the bearer token attached to file requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the backend at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use.
func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token. An empty token logs out.
func (c *Client) SetToken(token string) { c.token = token }

// Login exchanges credentials for a user and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var resp loginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", loginRequest{email, password}, &resp); err != nil {
		return User{}, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// RequestOTP asks the backend to email a registration code.
func (c *Client) RequestOTP(ctx context.Context, email string) error {
	return c.do(ctx, "request-otp", http.MethodPost, "/api/auth/register/request-otp", otpRequest{email}, nil)
}

// Register completes registration with the emailed code.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, "register", http.MethodPost, "/api/auth/register/verify", reg, nil)
}

// Upload stores a dataset.
func (c *Client) Upload(ctx context.Context, ds *models.Dataset) error {
	return c.do(ctx, "upload", http.MethodPost, "/api/files/upload", RecordFromDataset(ds), nil)
}

// List returns every dataset owned by the authenticated user.
func (c *Client) List(ctx context.Context) ([]*models.Dataset, error) {
	var records []FileRecord
	if err := c.do(ctx, "list", http.MethodGet, "/api/files/all", nil, &records); err != nil {
		return nil, err
	}

	datasets := make([]*models.Dataset, 0, len(records))
	for _, rec := range records {
		ds, err := rec.Dataset()
		if err != nil {
			return nil, &RemoteError{Op: "list", Status: http.StatusOK, Err: err}
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// Delete removes a stored dataset.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/api/files/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg messageResponse
		_ = json.Unmarshal(data, &msg)
		return &RemoteError{Op: op, Status: resp.StatusCode, Message: msg.text()}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
