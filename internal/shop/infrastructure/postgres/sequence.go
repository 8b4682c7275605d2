package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustabee/honey-marketplace/pkg/idgen"
)

var sequences = map[string]string{
	idgen.OrderPrefix:  "order_number_seq",
	idgen.SamplePrefix: "sample_number_seq",
}

// Sequence is an idgen.Generator backed by Postgres sequences.
type Sequence struct {
	pool *pgxpool.Pool
}

func NewSequence(pool *pgxpool.Pool) *Sequence {
	return &Sequence{pool: pool}
}

func (s *Sequence) Next(ctx context.Context, prefix string) (string, error) {
	seq, ok := sequences[prefix]
	if !ok {
		return "", fmt.Errorf("no sequence for prefix %q", prefix)
	}
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT nextval($1::regclass)`, seq).Scan(&n); err != nil {
		return "", fmt.Errorf("nextval %s: %w", seq, err)
	}
	return idgen.Format(prefix, n), nil
}
