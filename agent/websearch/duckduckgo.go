// Package websearch answers free-text questions from the DuckDuckGo Instant Answer API.
package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

const providerName = "duckduckgo"

type Config struct {
	BaseURL    string `split_words:"true" default:"https://api.duckduckgo.com"`
	MaxResults int    `split_words:"true" default:"5"`
}

type DuckDuckGo struct {
	baseURL    string
	maxResults int
	http       *httpx.Client
}

var _ contractx.WebSearcher = (*DuckDuckGo)(nil)

func NewDuckDuckGo(cfg Config, httpClient *httpx.Client) *DuckDuckGo {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.duckduckgo.com"
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.Config{})
	}
	return &DuckDuckGo{baseURL: baseURL, maxResults: maxResults, http: httpClient}
}

// Search returns the instant answer for query as plain text, or an empty
// string when DuckDuckGo has nothing for it.
func (d *DuckDuckGo) Search(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	resp, err := d.http.Get(ctx, httpx.BuildURL(d.baseURL, "/", q))
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	if !resp.OK() {
		return "", &contractx.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}
	if !gjson.ValidBytes(resp.Body) {
		return "", &contractx.MalformedError{Provider: providerName, Path: "$", Reason: "is not valid json"}
	}

	return d.render(gjson.ParseBytes(resp.Body)), nil
}

func (d *DuckDuckGo) render(doc gjson.Result) string {
	lines := make([]string, 0, d.maxResults+2)

	heading := strings.TrimSpace(doc.Get("Heading").String())
	abstract := strings.TrimSpace(doc.Get("AbstractText").String())
	if abstract != "" {
		if heading != "" {
			lines = append(lines, heading+": "+abstract)
		} else {
			lines = append(lines, abstract)
		}
		if src := strings.TrimSpace(doc.Get("AbstractURL").String()); src != "" {
			lines = append(lines, "Source: "+src)
		}
	}
	if answer := strings.TrimSpace(doc.Get("Answer").String()); answer != "" {
		lines = append(lines, "Answer: "+answer)
	}

	related := 0
	doc.Get("RelatedTopics").ForEach(func(_, topic gjson.Result) bool {
		if related >= d.maxResults {
			return false
		}
		text := strings.TrimSpace(topic.Get("Text").String())
		if text == "" {
			return true
		}
		lines = append(lines, "- "+text)
		related++
		return true
	})

	return strings.Join(lines, "\n")
}
