package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Credentials supplies the bearer token, if any, for outgoing requests.
type Credentials interface {
	Get() (string, bool)
}

// Client talks to the remote ledger authority. It never retries and imposes
// no timeout of its own; both are up to the injected *http.Client and the caller.
type Client struct {
	baseURL string
	client  *http.Client
	creds   Credentials
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// NewClient creates a client for the API rooted at baseURL (including any version prefix).
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/", nil, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions/", req, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, req UpdateTransactionRequest) (*Transaction, error) {
	var tx Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), req, &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	var tok Token

	req := LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &tok); err != nil {
		return nil, err
	}

	return &tok, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.creds != nil {
		if token, ok := c.creds.Get(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newResponseError(resp, respBody)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decoding response: %v", err),
			Err:        err,
		}
	}

	return nil
}
