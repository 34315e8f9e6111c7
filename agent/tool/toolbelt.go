package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/airquality"
	"github.com/tanpawarit/gala-concierge/agent/cities"
	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/agent/guest"
	"github.com/tanpawarit/gala-concierge/agent/weather"
)

const (
	MaxGuestResults = 3
	GuestSeparator  = "\n\n"
	NoGuestMatch    = "No matching results in the guest book"
)

type GuestSearcher interface {
	Search(query string) []guest.Record
}

type CityLookup interface {
	Lookup(city string) (cities.City, bool)
}

type WeatherFetcher interface {
	Current(ctx context.Context, coord cities.Coordinate) (weather.Record, error)
}

type AirQualityFetcher interface {
	Forecast(ctx context.Context, coord cities.Coordinate) (airquality.Record, error)
}

// Deps are the collaborators a Toolbelt is built from.
type Deps struct {
	Guests     GuestSearcher
	Cities     CityLookup
	Weather    WeatherFetcher
	AirQuality AirQualityFetcher
	Web        contractx.WebSearcher
}

// Toolbelt is the set of operations offered to the dispatcher. Every method
// returns text; failures are rendered, never returned.
type Toolbelt struct {
	guests     GuestSearcher
	cities     CityLookup
	weather    WeatherFetcher
	airQuality AirQualityFetcher
	web        contractx.WebSearcher
}

func NewToolbelt(d Deps) (*Toolbelt, error) {
	switch {
	case d.Guests == nil:
		return nil, fmt.Errorf("%w: guest index is required", contractx.ErrConfiguration)
	case d.Cities == nil:
		return nil, fmt.Errorf("%w: city table is required", contractx.ErrConfiguration)
	case d.Weather == nil:
		return nil, fmt.Errorf("%w: weather client is required", contractx.ErrConfiguration)
	case d.AirQuality == nil:
		return nil, fmt.Errorf("%w: air quality client is required", contractx.ErrConfiguration)
	case d.Web == nil:
		return nil, fmt.Errorf("%w: web searcher is required", contractx.ErrConfiguration)
	}

	return &Toolbelt{
		guests:     d.Guests,
		cities:     d.Cities,
		weather:    d.Weather,
		airQuality: d.AirQuality,
		web:        d.Web,
	}, nil
}

func (t *Toolbelt) SearchGuests(query string) string {
	found := t.guests.Search(strings.TrimSpace(query))
	if len(found) == 0 {
		return NoGuestMatch
	}
	if len(found) > MaxGuestResults {
		found = found[:MaxGuestResults]
	}

	texts := make([]string, len(found))
	for i, r := range found {
		texts[i] = r.Text()
	}
	return strings.Join(texts, GuestSeparator)
}

// resolveCity maps a user-supplied city onto the table. Unknown cities fail
// with contract.ErrUnsupportedCity.
func (t *Toolbelt) resolveCity(city string) (cities.City, error) {
	c, ok := t.cities.Lookup(city)
	if !ok {
		return cities.City{}, fmt.Errorf("%w: %s", contractx.ErrUnsupportedCity, city)
	}
	return c, nil
}

func (t *Toolbelt) GetWeather(ctx context.Context, city string) string {
	c, err := t.resolveCity(city)
	if err != nil {
		log.Info().Err(err).Str("tool", ToolGetWeather).Msg("city rejected")
		return fmt.Sprintf("Supplied location: %s is not allowed for searching", city)
	}

	rec, err := t.weather.Current(ctx, c.Coordinate)
	if err != nil {
		return renderFailure("Weather", c.Name, err)
	}
	return weather.Render(rec)
}

func (t *Toolbelt) GetAirQuality(ctx context.Context, city string) string {
	c, err := t.resolveCity(city)
	if err != nil {
		log.Info().Err(err).Str("tool", ToolGetAirQuality).Msg("city rejected")
		return fmt.Sprintf("Supplied location: %s is not allowed for searching AQI", city)
	}

	rec, err := t.airQuality.Forecast(ctx, c.Coordinate)
	if err != nil {
		return renderFailure("Air quality", c.Name, err)
	}
	return airquality.Render(rec)
}

func (t *Toolbelt) WebSearch(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	out, err := t.web.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("tool", ToolWebSearch).Msg("web search failed")
		return fmt.Sprintf("Web search failed for %q: %v", query, err)
	}
	if strings.TrimSpace(out) == "" {
		return fmt.Sprintf("No web results found for: %s", query)
	}
	return out
}

// renderFailure turns a provider failure into tool output. Non-success
// responses are relayed verbatim.
func renderFailure(kind, city string, err error) string {
	var perr *contractx.ProviderError
	if errors.As(err, &perr) {
		return perr.Body
	}
	if errors.Is(err, contractx.ErrMalformedResponse) {
		return fmt.Sprintf("%s data for %s was received but could not be read (%v)", kind, city, err)
	}
	log.Warn().Err(err).Str("city", city).Msg("provider request failed")
	return fmt.Sprintf("%s service is unavailable for %s right now: %v", kind, city, err)
}
