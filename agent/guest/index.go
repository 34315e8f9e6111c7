package guest

import (
	"fmt"
	"math"
	"sort"
	"strings"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

const (
	defaultK1 = 1.5
	defaultB  = 0.75
)

// Index is a BM25 index over a frozen set of guest records. It is safe for
// concurrent Search calls.
type Index struct {
	records  []Record
	termFreq []map[string]int
	docLen   []int
	avgLen   float64
	docFreq  map[string]int
	k1       float64
	b        float64
	minScore float64
}

type IndexOption func(*Index)

// WithBM25 overrides the term-saturation (k1) and length-normalization (b) parameters.
func WithBM25(k1, b float64) IndexOption {
	return func(ix *Index) {
		if k1 > 0 {
			ix.k1 = k1
		}
		if b >= 0 && b <= 1 {
			ix.b = b
		}
	}
}

// WithMinScore drops results scoring at or below floor.
func WithMinScore(floor float64) IndexOption {
	return func(ix *Index) {
		if floor >= 0 {
			ix.minScore = floor
		}
	}
}

func NewIndex(records []Record, opts ...IndexOption) (*Index, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: guest collection is empty", contractx.ErrIndexBuild)
	}

	ix := &Index{
		records:  append([]Record(nil), records...),
		termFreq: make([]map[string]int, len(records)),
		docLen:   make([]int, len(records)),
		docFreq:  make(map[string]int, 256),
		k1:       defaultK1,
		b:        defaultB,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}

	total := 0
	for i, rec := range ix.records {
		tokens := tokenize(rec.Text())
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for tok := range tf {
			ix.docFreq[tok]++
		}
		ix.termFreq[i] = tf
		ix.docLen[i] = len(tokens)
		total += len(tokens)
	}
	ix.avgLen = float64(total) / float64(len(ix.records))
	if ix.avgLen == 0 {
		ix.avgLen = 1
	}

	return ix, nil
}

func (ix *Index) Len() int {
	return len(ix.records)
}

// Search returns the records matching query in descending relevance. Equal
// scores keep insertion order. A query with no indexed terms returns nil.
func (ix *Index) Search(query string) []Record {
	if ix == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	terms := uniqueTerms(tokenize(query))
	if len(terms) == 0 {
		return nil
	}

	type hit struct {
		pos   int
		score float64
	}
	hits := make([]hit, 0, len(ix.records))
	for i := range ix.records {
		score := ix.score(i, terms)
		if score > ix.minScore {
			hits = append(hits, hit{pos: i, score: score})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].score > hits[b].score
	})

	out := make([]Record, len(hits))
	for i, h := range hits {
		out[i] = ix.records[h.pos]
	}
	return out
}

func (ix *Index) score(doc int, terms []string) float64 {
	n := float64(len(ix.records))
	norm := 1 - ix.b + ix.b*float64(ix.docLen[doc])/ix.avgLen

	var score float64
	for _, term := range terms {
		f := float64(ix.termFreq[doc][term])
		if f == 0 {
			continue
		}
		df := float64(ix.docFreq[term])
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		score += idf * f * (ix.k1 + 1) / (f + ix.k1*norm)
	}
	return score
}

func uniqueTerms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
