// Package autoload configures the global logger from LOG_* variables when imported.
// Values in ./.env are honoured; the -env flag is read later by config.New.
package autoload

import (
	"github.com/rs/zerolog/log"

	configx "github.com/tanpawarit/gala-concierge/pkg/config"
	logx "github.com/tanpawarit/gala-concierge/pkg/logger"
)

func init() {
	Configure()
}

func Configure() {
	exportErr := configx.ExportDefault()

	conf, err := configx.Process[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		log.Warn().Err(err).Msg("invalid LOG_* configuration, using defaults")
	} else {
		logx.Init(*conf)
	}

	if exportErr != nil {
		log.Warn().Err(exportErr).Msg("could not read .env")
	}
}
