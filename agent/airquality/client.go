package airquality

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/cities"
	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

type Config struct {
	APIKey   string `split_words:"true" required:"true"`
	BaseURL  string `split_words:"true" default:"https://www.airnowapi.org"`
	Distance int    `split_words:"true" default:"10"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: airnow api key is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: airnow base url is required", contractx.ErrConfiguration)
	}
	return nil
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithNormalizer(n Normalizer) ClientOption {
	return func(c *Client) {
		if n != nil {
			c.normalizer = n
		}
	}
}

func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

type Client struct {
	cfg        Config
	http       *httpx.Client
	normalizer Normalizer
	now        func() time.Time
}

func NewClient(cfg Config, httpClient *httpx.Client, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Distance <= 0 {
		cfg.Distance = 10
	}
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.Config{})
	}

	c := &Client{
		cfg:        cfg,
		http:       httpClient,
		normalizer: PositionalNormalizer{},
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Forecast fetches today's forecast near coord.
func (c *Client) Forecast(ctx context.Context, coord cities.Coordinate) (Record, error) {
	q := url.Values{}
	q.Set("format", "application/json")
	q.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	q.Set("date", c.now().Format("2006-01-02"))
	q.Set("distance", strconv.Itoa(c.cfg.Distance))
	q.Set("API_KEY", strings.TrimSpace(c.cfg.APIKey))

	resp, err := c.http.Get(ctx, httpx.BuildURL(c.cfg.BaseURL, "/aq/forecast/latLong/", q))
	if err != nil {
		return Record{}, fmt.Errorf("fetch air quality: %w", err)
	}
	if !resp.OK() {
		log.Warn().Str("provider", providerName).Int("status", resp.StatusCode).Msg("air quality provider returned non-success status")
		return Record{}, &contractx.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}

	rec, err := c.normalizer.Normalize(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("provider", providerName).Msg("air quality payload rejected")
		return Record{}, err
	}
	return rec, nil
}
