// Command toolcheck calls the weather and air-quality tools once for a city
// without involving the language model.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/gala-concierge/agent/bootstrap"
	configx "github.com/tanpawarit/gala-concierge/pkg/config"
	_ "github.com/tanpawarit/gala-concierge/pkg/logger/autoload"
)

func main() {
	city := flag.String("city", "portland", "city to check")
	guestQuery := flag.String("guest", "", "optional guest book query")
	configx.ParseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, *city, *guestQuery)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("toolcheck failed")
	}
}

func run(ctx context.Context, city, guestQuery string) error {
	belt, closeGuests, err := bootstrap.Toolbelt(ctx)
	if err != nil {
		return fmt.Errorf("build toolbelt: %w", err)
	}
	defer closeGuests()

	divider := strings.Repeat("-", 15)
	fmt.Println(divider)
	fmt.Printf("Weather Forecast:\n %s\n", belt.GetWeather(ctx, city))
	fmt.Println(divider)
	fmt.Printf("AQI Forecast:\n %s\n", belt.GetAirQuality(ctx, city))
	fmt.Println(divider)

	if q := strings.TrimSpace(guestQuery); q != "" {
		fmt.Printf("Guest Search:\n %s\n", belt.SearchGuests(q))
		fmt.Println(divider)
	}
	return nil
}
