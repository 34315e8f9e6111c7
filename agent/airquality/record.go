// Package airquality fetches AirNow forecasts and normalizes them into Record values.
package airquality

import "fmt"

// Record is the normalized ozone and PM2.5 forecast for one reporting area.
type Record struct {
	CityName        string
	OverallCategory string
	PM25AQI         int
	PM25Category    string
	O3AQI           int
	O3Category      string
}

func formatCategory(number int64, name string) string {
	return fmt.Sprintf("Number: %d | Category: %s", number, name)
}
