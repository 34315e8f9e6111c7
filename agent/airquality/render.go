package airquality

import (
	"strconv"
	"strings"
)

// Render formats r as the multi-line text returned by the air-quality tool.
func Render(r Record) string {
	var b strings.Builder
	b.WriteString("AQI Forecast for " + r.CityName + ": \n")
	b.WriteString(" Air Quality Category: " + r.OverallCategory + " \n\n")
	b.WriteString(" PM2.5 Air Quality: \n")
	b.WriteString(" AQI: " + strconv.Itoa(r.PM25AQI) + " \n")
	b.WriteString(" Risk Levels: " + r.PM25Category + " \n")
	b.WriteString(" O3 Air Quality: \n")
	b.WriteString(" AQI: " + strconv.Itoa(r.O3AQI) + " \n")
	b.WriteString(" Risk Levels: " + r.O3Category)
	return b.String()
}
