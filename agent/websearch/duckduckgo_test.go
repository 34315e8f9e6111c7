package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

func TestDuckDuckGoSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daft punk robot", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		fmt.Fprint(w, `{
			"Heading":"Daft Punk",
			"AbstractText":"Daft Punk were a French electronic music duo.",
			"AbstractURL":"https://en.wikipedia.org/wiki/Daft_Punk",
			"RelatedTopics":[
				{"Text":"Thomas Bangalter - silver helmet"},
				{"Name":"group","Topics":[]},
				{"Text":"Guy-Manuel de Homem-Christo - gold helmet"},
				{"Text":"Third"}
			]
		}`)
	}))
	t.Cleanup(server.Close)

	ddg := NewDuckDuckGo(Config{BaseURL: server.URL, MaxResults: 2}, httpx.NewClient(httpx.Config{}, httpx.WithHTTPClient(server.Client())))
	out, err := ddg.Search(context.Background(), "daft punk robot")
	require.NoError(t, err)

	want := "Daft Punk: Daft Punk were a French electronic music duo.\n" +
		"Source: https://en.wikipedia.org/wiki/Daft_Punk\n" +
		"- Thomas Bangalter - silver helmet\n" +
		"- Guy-Manuel de Homem-Christo - gold helmet"
	assert.Equal(t, want, out)
}

func TestDuckDuckGoSearchEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Heading":"","AbstractText":"","RelatedTopics":[]}`)
	}))
	t.Cleanup(server.Close)

	out, err := NewDuckDuckGo(Config{BaseURL: server.URL}, nil).Search(context.Background(), "qwertyuiop")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDuckDuckGoSearchProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	_, err := NewDuckDuckGo(Config{BaseURL: server.URL}, nil).Search(context.Background(), "x")
	assert.ErrorIs(t, err, contractx.ErrProviderHTTP)
}
