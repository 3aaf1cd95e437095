package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/ecommerce_hub/pkg/validation"
)

const maxErrorBody = 64 << 10

// TokenSource supplies the bearer token attached to requests. An empty token
// means the request is sent anonymously.
type TokenSource interface {
	AccessToken() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) AccessToken() string { return f() }

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validate   *validator.Validate
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// NewClient builds a client for the gateway at baseURL (for example
// "http://localhost:8080/api"). Requests carry no client-side timeout; callers
// bound them through ctx.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		validate: validation.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type operation struct {
	name     string
	fallback string
}

func (op operation) err(kind Kind, status int, msg string, cause error) *Error {
	return &Error{Op: op.name, Kind: kind, Status: status, Message: msg, Err: cause}
}

func (c *Client) check(op operation, v any) error {
	if err := c.validate.Struct(v); err != nil {
		return op.err(KindValidationFailed, 0, validation.Describe(err), nil)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op operation, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return op.err(KindValidationFailed, 0, "cannot encode request", fmt.Errorf("encode request: %w", err))
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return op.err(KindRequestFailed, 0, op.fallback, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.AccessToken(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return op.err(KindTransport, 0, "network error: backend unavailable", fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return op.err(KindInvalidResponse, resp.StatusCode, "malformed response", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func statusError(op operation, resp *http.Response) *Error {
	msg := op.fallback
	if resp.StatusCode == http.StatusUnauthorized {
		msg = "authentication failed"
		if op == opLogin {
			msg = "invalid credentials"
		}
	}

	var eb errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Error != "":
			msg = eb.Error
		case eb.Message != "":
			msg = eb.Message
		}
	}
	return op.err(kindForStatus(resp.StatusCode), resp.StatusCode, msg, nil)
}
