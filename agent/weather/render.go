package weather

import (
	"strconv"
	"strings"
)

// Render formats r as the multi-line text returned by the weather tool.
func Render(r Record) string {
	forecast := r.Description
	if r.HasEmoji() {
		forecast = r.ConditionEmoji + " " + r.Description
	}

	var b strings.Builder
	b.WriteString("City: " + r.CityName + "\n")
	b.WriteString(" Forecast: " + forecast + " \n")
	b.WriteString(" Temperature: " + formatFloat(r.Temperature) + " \n")
	b.WriteString(" Feels Likes: " + formatFloat(r.FeelsLike) + " \n")
	b.WriteString(" Sunrise: " + r.Sunrise + " \n")
	b.WriteString(" Sunset: " + r.Sunset)
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
