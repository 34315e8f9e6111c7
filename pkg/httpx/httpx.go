package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 2 << 20
)

type Config struct {
	Timeout      time.Duration `split_words:"true" default:"10s"`
	MaxBodyBytes int64         `split_words:"true" default:"2097152"`
}

type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Option customizes Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.headers[key] = value
		}
	}
}

// Client issues GET requests with a bounded timeout and body size.
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
	headers      map[string]string
}

func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	client := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxBodyBytes: maxBody,
		headers:      map[string]string{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Get returns the response for any status code; only transport failures are errors.
func (c *Client) Get(ctx context.Context, rawURL string, headers ...map[string]string) (*Response, error) {
	if c == nil {
		return nil, errors.New("nil http client")
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("invalid request url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}, nil
}

// BuildURL joins base and path and encodes query in key order.
func BuildURL(base, path string, query url.Values) string {
	u := strings.TrimRight(strings.TrimSpace(base), "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) == 0 {
		return u
	}
	return u + "?" + query.Encode()
}
