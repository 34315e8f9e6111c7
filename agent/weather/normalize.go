package weather

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

const providerName = "openweather"

const (
	pathName        = "name"
	pathDescription = "weather.0.description"
	pathIcon        = "weather.0.icon"
	pathTemp        = "main.temp"
	pathFeelsLike   = "main.feels_like"
	pathSunrise     = "sys.sunrise"
	pathSunset      = "sys.sunset"
)

type normalizeOptions struct {
	loc *time.Location
}

type NormalizeOption func(*normalizeOptions)

// WithLocation renders sunrise and sunset in loc instead of time.Local.
func WithLocation(loc *time.Location) NormalizeOption {
	return func(o *normalizeOptions) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// Normalize converts a raw current-weather payload into a Record.
func Normalize(raw []byte, opts ...NormalizeOption) (Record, error) {
	o := normalizeOptions{loc: time.Local}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if !gjson.ValidBytes(raw) {
		return Record{}, &contractx.MalformedError{Provider: providerName, Path: "$", Reason: "is not valid json"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return Record{}, &contractx.MalformedError{Provider: providerName, Path: "$", Reason: "is not an object"}
	}

	name, err := requireString(doc, pathName)
	if err != nil {
		return Record{}, err
	}
	desc, err := requireString(doc, pathDescription)
	if err != nil {
		return Record{}, err
	}
	temp, err := requireNumber(doc, pathTemp)
	if err != nil {
		return Record{}, err
	}
	feelsLike, err := requireNumber(doc, pathFeelsLike)
	if err != nil {
		return Record{}, err
	}
	sunrise, err := requireNumber(doc, pathSunrise)
	if err != nil {
		return Record{}, err
	}
	sunset, err := requireNumber(doc, pathSunset)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		CityName:    name,
		Description: capitalize(desc),
		Temperature: temp.Float(),
		FeelsLike:   feelsLike.Float(),
		Sunrise:     clock(sunrise.Int(), o.loc),
		Sunset:      clock(sunset.Int(), o.loc),
	}

	icon := doc.Get(pathIcon).String()
	if symbol, ok := symbolFor(icon); ok {
		rec.ConditionEmoji = symbol
	} else {
		log.Debug().Str("icon", icon).Str("conditions", rec.Description).Msg("no symbol for weather icon")
	}

	return rec, nil
}

func requireString(doc gjson.Result, path string) (string, error) {
	v := doc.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return "", &contractx.MalformedError{Provider: providerName, Path: path}
	}
	if v.Type != gjson.String {
		return "", &contractx.MalformedError{Provider: providerName, Path: path, Reason: "is not a string"}
	}
	return v.String(), nil
}

func requireNumber(doc gjson.Result, path string) (gjson.Result, error) {
	v := doc.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return gjson.Result{}, &contractx.MalformedError{Provider: providerName, Path: path}
	}
	if v.Type != gjson.Number {
		return gjson.Result{}, &contractx.MalformedError{Provider: providerName, Path: path, Reason: "is not a number"}
	}
	return v, nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func clock(unix int64, loc *time.Location) string {
	return time.Unix(unix, 0).In(loc).Format("15:04")
}
