package airquality

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanpawarit/gala-concierge/agent/cities"
	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

const portlandForecast = `[{}, {"ReportingArea":"Portland","AQI":30,"Category":{"Name":"Good","Number":1}}, {"AQI":42,"Category":{"Name":"Moderate","Number":2}}]`

func TestNormalizePortland(t *testing.T) {
	t.Parallel()

	rec, err := Normalize([]byte(portlandForecast))
	require.NoError(t, err)

	assert.Equal(t, Record{
		CityName:        "Portland",
		OverallCategory: "Moderate",
		PM25AQI:         42,
		PM25Category:    "Number: 2 | Category: Moderate",
		O3AQI:           30,
		O3Category:      "Number: 1 | Category: Good",
	}, rec)
}

func TestNormalizeRequiresThreeEntries(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		`[]`,
		`[{}]`,
		`[{}, {"ReportingArea":"Portland","AQI":30,"Category":{"Name":"Good","Number":1}}]`,
	} {
		_, err := Normalize([]byte(payload))
		assert.ErrorIs(t, err, contractx.ErrMalformedResponse, payload)
	}
}

func TestNormalizeMissingFieldNamesPath(t *testing.T) {
	t.Parallel()

	payload := `[{}, {"ReportingArea":"Portland","AQI":30,"Category":{"Name":"Good","Number":1}}, {"AQI":42,"Category":{"Number":2}}]`
	_, err := Normalize([]byte(payload))
	require.ErrorIs(t, err, contractx.ErrMalformedResponse)

	var merr *contractx.MalformedError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "2.Category.Name", merr.Path)
}

func TestNormalizeRejectsNonArray(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{"AQI":1}`, `oops`} {
		_, err := Normalize([]byte(payload))
		assert.ErrorIs(t, err, contractx.ErrMalformedResponse, payload)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	rec, err := Normalize([]byte(portlandForecast))
	require.NoError(t, err)

	want := "AQI Forecast for Portland: \n Air Quality Category: Moderate \n\n PM2.5 Air Quality: \n AQI: 42 \n Risk Levels: Number: 2 | Category: Moderate \n O3 Air Quality: \n AQI: 30 \n Risk Levels: Number: 1 | Category: Good"
	assert.Equal(t, want, Render(rec))
}

func TestClientForecast(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/aq/forecast/latLong/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "application/json", q.Get("format"))
		assert.Equal(t, "45.52", q.Get("latitude"))
		assert.Equal(t, "-122.68", q.Get("longitude"))
		assert.Equal(t, "2024-06-08", q.Get("date"))
		assert.Equal(t, "10", q.Get("distance"))
		assert.Equal(t, "key", q.Get("API_KEY"))
		fmt.Fprint(w, portlandForecast)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(
		Config{APIKey: "key", BaseURL: server.URL},
		httpx.NewClient(httpx.Config{}, httpx.WithHTTPClient(server.Client())),
		WithClock(func() time.Time { return time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)

	rec, err := client.Forecast(context.Background(), cities.Coordinate{Latitude: 45.52, Longitude: -122.68})
	require.NoError(t, err)
	assert.Equal(t, "Moderate", rec.OverallCategory)
}

type stubNormalizer struct {
	calls int
}

func (s *stubNormalizer) Normalize(raw []byte) (Record, error) {
	s.calls++
	return Record{CityName: "Stub"}, nil
}

func TestClientForecastUsesInjectedNormalizer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"schema":"v2"}`)
	}))
	t.Cleanup(server.Close)

	stub := &stubNormalizer{}
	client, err := NewClient(Config{APIKey: "key", BaseURL: server.URL}, nil, WithNormalizer(stub))
	require.NoError(t, err)

	rec, err := client.Forecast(context.Background(), cities.Coordinate{})
	require.NoError(t, err)
	assert.Equal(t, "Stub", rec.CityName)
	assert.Equal(t, 1, stub.calls)
}

func TestClientForecastProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"WebServiceError":[{"Message":"Invalid API key"}]}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "bad", BaseURL: server.URL}, nil)
	require.NoError(t, err)

	_, err = client.Forecast(context.Background(), cities.Coordinate{})
	var perr *contractx.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Body, "Invalid API key")
}
