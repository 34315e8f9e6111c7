// Package weather fetches current conditions from OpenWeather and normalizes
// them into Record values.
package weather

// Record is the normalized form of one current-weather payload.
type Record struct {
	CityName       string
	Description    string
	ConditionEmoji string // empty when the icon code has no known symbol
	Temperature    float64
	FeelsLike      float64
	Sunrise        string // HH:MM local
	Sunset         string // HH:MM local
}

func (r Record) HasEmoji() bool {
	return r.ConditionEmoji != ""
}
