package airquality

import (
	"strconv"

	"github.com/tidwall/gjson"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

const providerName = "airnow"

// AirNow returns one forecast entry per pollutant in a fixed order.
const (
	ozoneIndex = 1
	pm25Index  = 2
	minEntries = pm25Index + 1
)

// Normalizer turns a raw forecast payload into a Record. PositionalNormalizer
// is the only implementation; callers depend on the interface so a
// schema-aware parser can replace it.
type Normalizer interface {
	Normalize(raw []byte) (Record, error)
}

type PositionalNormalizer struct{}

var _ Normalizer = PositionalNormalizer{}

func (PositionalNormalizer) Normalize(raw []byte) (Record, error) {
	return Normalize(raw)
}

// Normalize reads the ozone entry at index 1 and the PM2.5 entry at index 2.
// The overall category is taken from the PM2.5 entry.
func Normalize(raw []byte) (Record, error) {
	if !gjson.ValidBytes(raw) {
		return Record{}, &contractx.MalformedError{Provider: providerName, Path: "$", Reason: "is not valid json"}
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return Record{}, &contractx.MalformedError{Provider: providerName, Path: "$", Reason: "is not an array"}
	}
	entries := doc.Array()
	if len(entries) < minEntries {
		return Record{}, &contractx.MalformedError{
			Provider: providerName,
			Path:     "$",
			Reason:   "has " + strconv.Itoa(len(entries)) + " entries, want at least " + strconv.Itoa(minEntries),
		}
	}

	o3 := entries[ozoneIndex]
	pm25 := entries[pm25Index]

	city, err := requireString(o3, ozoneIndex, "ReportingArea")
	if err != nil {
		return Record{}, err
	}
	o3AQI, err := requireNumber(o3, ozoneIndex, "AQI")
	if err != nil {
		return Record{}, err
	}
	o3Name, err := requireString(o3, ozoneIndex, "Category.Name")
	if err != nil {
		return Record{}, err
	}
	o3Number, err := requireNumber(o3, ozoneIndex, "Category.Number")
	if err != nil {
		return Record{}, err
	}

	pm25AQI, err := requireNumber(pm25, pm25Index, "AQI")
	if err != nil {
		return Record{}, err
	}
	pm25Name, err := requireString(pm25, pm25Index, "Category.Name")
	if err != nil {
		return Record{}, err
	}
	pm25Number, err := requireNumber(pm25, pm25Index, "Category.Number")
	if err != nil {
		return Record{}, err
	}

	return Record{
		CityName:        city,
		OverallCategory: pm25Name,
		PM25AQI:         int(pm25AQI),
		PM25Category:    formatCategory(pm25Number, pm25Name),
		O3AQI:           int(o3AQI),
		O3Category:      formatCategory(o3Number, o3Name),
	}, nil
}

func requireString(entry gjson.Result, index int, path string) (string, error) {
	v := entry.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return "", &contractx.MalformedError{Provider: providerName, Path: entryPath(index, path)}
	}
	if v.Type != gjson.String {
		return "", &contractx.MalformedError{Provider: providerName, Path: entryPath(index, path), Reason: "is not a string"}
	}
	return v.String(), nil
}

func requireNumber(entry gjson.Result, index int, path string) (int64, error) {
	v := entry.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return 0, &contractx.MalformedError{Provider: providerName, Path: entryPath(index, path)}
	}
	if v.Type != gjson.Number {
		return 0, &contractx.MalformedError{Provider: providerName, Path: entryPath(index, path), Reason: "is not a number"}
	}
	return v.Int(), nil
}

func entryPath(index int, path string) string {
	return strconv.Itoa(index) + "." + path
}
