// Package cities holds the read-only city name to coordinate table used to
// validate weather and air-quality lookups.
package cities

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed data/city_locations.csv
var defaultTable []byte

type Config struct {
	File string `split_words:"true"`
}

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

type City struct {
	Name       string
	Coordinate Coordinate
}

// Table is built once and never mutated, so concurrent reads are safe.
type Table struct {
	byKey map[string]City
}

// Load reads the table from cfg.File, or the embedded table when unset.
func Load(cfg Config) (*Table, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return Parse(bytes.NewReader(defaultTable))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open city table: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads rows shaped `"City, ST", latitude, longitude`. The key is the
// text before the first comma of the first column; later rows replace earlier
// rows with the same key.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 3

	t := &Table{byKey: make(map[string]City, 64)}
	line := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read city table line %d: %w", line, err)
		}

		name := strings.TrimSpace(strings.SplitN(row[0], ",", 2)[0])
		if name == "" {
			return nil, fmt.Errorf("city table line %d: empty city name", line)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("city table line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("city table line %d: longitude: %w", line, err)
		}

		key := normalize(name)
		if _, dup := t.byKey[key]; dup {
			log.Warn().Str("city", name).Int("line", line).Msg("duplicate city in table, replacing")
		}
		t.byKey[key] = City{
			Name:       name,
			Coordinate: Coordinate{Latitude: lat, Longitude: lon},
		}
	}

	if len(t.byKey) == 0 {
		return nil, errors.New("city table is empty")
	}
	return t, nil
}

// Lookup matches the city exactly after trimming and case folding.
func (t *Table) Lookup(city string) (City, bool) {
	if t == nil {
		return City{}, false
	}
	c, ok := t.byKey[normalize(city)]
	return c, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}

// Names returns the display names in alphabetical order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.byKey))
	for _, c := range t.byKey {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func normalize(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
