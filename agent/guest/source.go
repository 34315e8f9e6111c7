package guest

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
	"github.com/tanpawarit/gala-concierge/pkg/httpx"
)

const (
	SourceHuggingFace = "huggingface"
	SourceFile        = "file"
	SourcePostgres    = "postgres"
)

type Config struct {
	Source      string `split_words:"true" default:"huggingface"`
	Dataset     string `split_words:"true" default:"agents-course/unit3-invitees"`
	Split       string `split_words:"true" default:"train"`
	RowsURL     string `split_words:"true" default:"https://datasets-server.huggingface.co"`
	PageSize    int    `split_words:"true" default:"100"`
	File        string `split_words:"true"`
	PostgresDSN string `split_words:"true"`

	RankK1   float64 `split_words:"true" default:"1.5"`
	RankB    float64 `split_words:"true" default:"0.75"`
	MinScore float64 `split_words:"true" default:"0"`
}

// IndexOptions returns the ranking options configured for the guest index.
func (c Config) IndexOptions() []IndexOption {
	return []IndexOption{
		WithBM25(c.RankK1, c.RankB),
		WithMinScore(c.MinScore),
	}
}

// Source yields the guest collection once at startup.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// NewSource picks the source named by cfg.Source. token authenticates
// dataset requests and may be empty for public datasets.
func NewSource(cfg Config, httpClient *httpx.Client, token string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "", SourceHuggingFace:
		return NewHuggingFaceSource(cfg, httpClient, token)
	case SourceFile:
		if strings.TrimSpace(cfg.File) == "" {
			return nil, fmt.Errorf("%w: guests file is required for source=file", contractx.ErrConfiguration)
		}
		return NewFileSource(cfg.File), nil
	case SourcePostgres:
		return NewPostgresSource(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: unknown guest source=%q", contractx.ErrConfiguration, cfg.Source)
	}
}

// BuildIndex loads the collection from src and indexes it.
func BuildIndex(ctx context.Context, src Source, opts ...IndexOption) (*Index, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: guest source is nil", contractx.ErrIndexBuild)
	}

	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load guests: %v", contractx.ErrIndexBuild, err)
	}
	for _, r := range records {
		log.Debug().Str("guest", r.Name).Msg("guest added")
	}

	ix, err := NewIndex(records, opts...)
	if err != nil {
		return nil, err
	}
	log.Info().Int("guests", ix.Len()).Msg("guest index built")
	return ix, nil
}

// fromColumns zips parallel name/relation/description/email columns.
func fromColumns(names, relations, descriptions, emails []string) ([]Record, error) {
	n := len(names)
	if len(relations) != n || len(descriptions) != n || len(emails) != n {
		return nil, fmt.Errorf(
			"guest columns differ in length: name=%d relation=%d description=%d email=%d",
			len(names), len(relations), len(descriptions), len(emails),
		)
	}

	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = Record{
			Name:        names[i],
			Relation:    relations[i],
			Description: descriptions[i],
			Email:       emails[i],
		}
	}
	return out, nil
}
