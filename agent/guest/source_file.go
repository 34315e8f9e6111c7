package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads a JSON document holding parallel columns:
//
//	{"name": [...], "relation": [...], "description": [...], "email": [...]}
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type columnsDoc struct {
	Name        []string `json:"name"`
	Relation    []string `json:"relation"`
	Description []string `json:"description"`
	Email       []string `json:"email"`
}

func (s *FileSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read guests file %q: %w", s.path, err)
	}

	var doc columnsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode guests file %q: %w", s.path, err)
	}
	return fromColumns(doc.Name, doc.Relation, doc.Description, doc.Email)
}
