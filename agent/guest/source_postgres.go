package guest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

type guestRow struct {
	bun.BaseModel `bun:"table:guests,alias:g"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull"`
	Relation    string `bun:"relation"`
	Description string `bun:"description"`
	Email       string `bun:"email"`
}

// PostgresSource reads the guests table in id order. It is read once at
// startup; nothing is written back.
type PostgresSource struct {
	db *bun.DB
}

func NewPostgresSource(dsn string) (*PostgresSource, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("%w: guests postgres dsn is required", contractx.ErrConfiguration)
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &PostgresSource{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	var rows []guestRow
	if err := s.db.NewSelect().Model(&rows).OrderExpr("g.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select guests: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, Record{
			Name:        row.Name,
			Relation:    row.Relation,
			Description: row.Description,
			Email:       row.Email,
		})
	}
	return out, nil
}

func (s *PostgresSource) Close() error {
	return s.db.Close()
}
