package weather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/cities"
	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

type Config struct {
	APIKey  string `split_words:"true" required:"true"`
	BaseURL string `split_words:"true" default:"https://api.openweathermap.org/data/2.5"`
	Units   string `split_words:"true" default:"imperial"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: weather api key is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: weather base url is required", contractx.ErrConfiguration)
	}
	return nil
}

type Client struct {
	cfg  Config
	http *httpx.Client
	opts []NormalizeOption
}

func NewClient(cfg Config, httpClient *httpx.Client, opts ...NormalizeOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.Config{})
	}
	if strings.TrimSpace(cfg.Units) == "" {
		cfg.Units = "imperial"
	}
	return &Client{cfg: cfg, http: httpClient, opts: opts}, nil
}

// Current fetches and normalizes current conditions at coord. A non-200
// reply yields a *contract.ProviderError carrying the raw body.
func (c *Client) Current(ctx context.Context, coord cities.Coordinate) (Record, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	q.Set("units", c.cfg.Units)
	q.Set("appid", strings.TrimSpace(c.cfg.APIKey))

	resp, err := c.http.Get(ctx, httpx.BuildURL(c.cfg.BaseURL, "/weather", q))
	if err != nil {
		return Record{}, fmt.Errorf("fetch weather: %w", err)
	}
	if !resp.OK() {
		log.Warn().Str("provider", providerName).Int("status", resp.StatusCode).Msg("weather provider returned non-success status")
		return Record{}, &contractx.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}

	rec, err := Normalize(resp.Body, c.opts...)
	if err != nil {
		log.Warn().Err(err).Str("provider", providerName).Msg("weather payload rejected")
		return Record{}, err
	}
	return rec, nil
}
