// Package bootstrap builds the tool surface from environment configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/airquality"
	"github.com/tanpawarit/gala-concierge/agent/cities"
	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/agent/guest"
	toolx "github.com/tanpawarit/gala-concierge/agent/tool"
	"github.com/tanpawarit/gala-concierge/agent/weather"
	"github.com/tanpawarit/gala-concierge/agent/websearch"
	configx "github.com/tanpawarit/gala-concierge/pkg/config"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

// datasetAuth reads the optional token used for private guest datasets.
type datasetAuth struct {
	Token string `split_words:"true"`
}

// Load reads a config section and tags failures as configuration errors.
func Load[T any](prefix string) (*T, error) {
	conf, err := configx.New[T](prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrConfiguration, err)
	}
	return conf, nil
}

// Toolbelt loads every provider config, builds the guest index and returns
// the assembled tool surface. The returned close func releases the guest
// source when it holds a connection.
func Toolbelt(ctx context.Context) (*toolx.Toolbelt, func(), error) {
	noop := func() {}

	httpCfg, err := Load[httpx.Config]("HTTP")
	if err != nil {
		return nil, noop, err
	}
	weatherCfg, err := Load[weather.Config]("OPEN_WEATHER")
	if err != nil {
		return nil, noop, err
	}
	airCfg, err := Load[airquality.Config]("AIRNOW")
	if err != nil {
		return nil, noop, err
	}
	cityCfg, err := Load[cities.Config]("CITIES")
	if err != nil {
		return nil, noop, err
	}
	guestCfg, err := Load[guest.Config]("GUESTS")
	if err != nil {
		return nil, noop, err
	}
	webCfg, err := Load[websearch.Config]("WEB_SEARCH")
	if err != nil {
		return nil, noop, err
	}
	auth, err := Load[datasetAuth]("HF")
	if err != nil {
		return nil, noop, err
	}

	httpClient := httpx.NewClient(*httpCfg)

	table, err := cities.Load(*cityCfg)
	if err != nil {
		return nil, noop, fmt.Errorf("%w: city table: %v", contractx.ErrConfiguration, err)
	}
	log.Info().Int("cities", table.Len()).Msg("city table loaded")

	weatherClient, err := weather.NewClient(*weatherCfg, httpClient)
	if err != nil {
		return nil, noop, err
	}
	airClient, err := airquality.NewClient(*airCfg, httpClient)
	if err != nil {
		return nil, noop, err
	}

	src, err := guest.NewSource(*guestCfg, httpClient, auth.Token)
	if err != nil {
		return nil, noop, err
	}
	closeFn := noop
	if c, ok := src.(io.Closer); ok {
		closeFn = func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("close guest source")
			}
		}
	}

	index, err := guest.BuildIndex(ctx, src, guestCfg.IndexOptions()...)
	if err != nil {
		closeFn()
		return nil, noop, err
	}

	belt, err := toolx.NewToolbelt(toolx.Deps{
		Guests:     index,
		Cities:     table,
		Weather:    weatherClient,
		AirQuality: airClient,
		Web:        websearch.NewDuckDuckGo(*webCfg, httpClient),
	})
	if err != nil {
		closeFn()
		return nil, noop, err
	}
	return belt, closeFn, nil
}
