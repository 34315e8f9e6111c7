package weather

// OpenWeather icon codes, day (d) and night (n) variants.
var conditionSymbols = map[string]string{
	"01d": "☀️",
	"01n": "🌙",
	"02d": "🌤️",
	"02n": "☁️",
	"03d": "⛅",
	"03n": "☁️",
	"04d": "☁️",
	"04n": "☁️",
	"09d": "🌧️",
	"09n": "🌧️",
	"10d": "🌦️",
	"10n": "🌧️",
	"11d": "⛈️",
	"11n": "⛈️",
	"13d": "❄️",
	"13n": "❄️",
	"50d": "🌫️",
	"50n": "🌫️",
}

func symbolFor(icon string) (string, bool) {
	s, ok := conditionSymbols[icon]
	return s, ok
}
