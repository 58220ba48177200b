// Package client talks to the catalog API.
package client

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

	"github.com/baharkarakas/program-catalog/internal/catalog"
	"github.com/baharkarakas/program-catalog/internal/models"
)

const (
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
	userAgent         = "catalogctl/1.0"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithToken returns a copy of c that sends the bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// do sends one request and unwraps the envelope into T.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	op := method + " " + path

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return zero, &TransportError{Op: op, Err: err}
	}
	req.Header.Set(headerUserAgent, userAgent)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return zero, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unreadable response: %w", err)}
	}
	if resp.StatusCode >= 400 || !env.Success {
		return zero, &Error{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Error}
	}
	return env.Data, nil
}

func programPath(id string) string { return "/programs/" + url.PathEscape(id) }
func userPath(id string) string    { return "/users/" + url.PathEscape(id) }

func (c *Client) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return do[[]models.Program](ctx, c, http.MethodGet, "/programs", nil)
}

func (c *Client) GetProgram(ctx context.Context, id string) (models.Program, error) {
	return do[models.Program](ctx, c, http.MethodGet, programPath(id), nil)
}

func (c *Client) CreateProgram(ctx context.Context, d models.ProgramDraft) (models.Program, error) {
	return do[models.Program](ctx, c, http.MethodPost, "/programs", d)
}

func (c *Client) UpdateProgram(ctx context.Context, id string, patch models.ProgramPatch) (models.Program, error) {
	return do[models.Program](ctx, c, http.MethodPut, programPath(id), patch)
}

func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodDelete, programPath(id), nil)
	return err
}

func (c *Client) Catalog(ctx context.Context) (catalog.View, error) {
	return do[catalog.View](ctx, c, http.MethodGet, "/catalog", nil)
}

func (c *Client) EmbedURL(ctx context.Context, id string) (string, error) {
	out, err := do[struct {
		EmbedURL string `json:"embedUrl"`
	}](ctx, c, http.MethodGet, programPath(id)+"/embed", nil)
	return out.EmbedURL, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return do[[]models.User](ctx, c, http.MethodGet, "/users", nil)
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	return do[models.User](ctx, c, http.MethodGet, userPath(id), nil)
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	return do[models.User](ctx, c, http.MethodPost, "/users", reg)
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	return do[models.User](ctx, c, http.MethodPut, userPath(id), patch)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodDelete, userPath(id), nil)
	return err
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.Identity, error) {
	return do[models.Identity](ctx, c, http.MethodPost, "/auth/login", creds)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := do[json.RawMessage](ctx, c, http.MethodPost, "/auth/logout", nil)
	return err
}
