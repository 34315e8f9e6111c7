package guest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

const maxRowsPageSize = 100

// HuggingFaceSource pages through the datasets-server rows API.
type HuggingFaceSource struct {
	baseURL  string
	dataset  string
	split    string
	pageSize int
	token    string
	http     *httpx.Client
}

func NewHuggingFaceSource(cfg Config, httpClient *httpx.Client, token string) (*HuggingFaceSource, error) {
	dataset := strings.TrimSpace(cfg.Dataset)
	if dataset == "" {
		return nil, fmt.Errorf("%w: guest dataset is required", contractx.ErrConfiguration)
	}
	baseURL := strings.TrimSpace(cfg.RowsURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%w: dataset rows url is required", contractx.ErrConfiguration)
	}
	split := strings.TrimSpace(cfg.Split)
	if split == "" {
		split = "train"
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxRowsPageSize {
		pageSize = maxRowsPageSize
	}
	if httpClient == nil {
		httpClient = httpx.NewClient(httpx.Config{})
	}

	return &HuggingFaceSource{
		baseURL:  baseURL,
		dataset:  dataset,
		split:    split,
		pageSize: pageSize,
		token:    strings.TrimSpace(token),
		http:     httpClient,
	}, nil
}

func (s *HuggingFaceSource) Load(ctx context.Context) ([]Record, error) {
	var (
		names, relations, descriptions, emails []string
		offset                                 int
	)

	for {
		page, total, err := s.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		for _, row := range page {
			names = append(names, row.Get("name").String())
			relations = append(relations, row.Get("relation").String())
			descriptions = append(descriptions, row.Get("description").String())
			emails = append(emails, row.Get("email").String())
		}

		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}

	return fromColumns(names, relations, descriptions, emails)
}

func (s *HuggingFaceSource) fetchPage(ctx context.Context, offset int) ([]gjson.Result, int, error) {
	q := url.Values{}
	q.Set("dataset", s.dataset)
	q.Set("config", "default")
	q.Set("split", s.split)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("length", strconv.Itoa(s.pageSize))

	var headers map[string]string
	if s.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + s.token}
	}

	resp, err := s.http.Get(ctx, httpx.BuildURL(s.baseURL, "/rows", q), headers)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch dataset rows: %w", err)
	}
	if !resp.OK() {
		return nil, 0, &contractx.ProviderError{
			Provider:   "huggingface",
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, 0, errors.New("dataset rows response is not valid json")
	}

	doc := gjson.ParseBytes(resp.Body)
	rows := doc.Get("rows.#.row")
	if !rows.Exists() {
		return nil, 0, &contractx.MalformedError{Provider: "huggingface", Path: "rows"}
	}
	return rows.Array(), int(doc.Get("num_rows_total").Int()), nil
}
