package genesis

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const genesisQuery = `SELECT account, balance::text FROM genesis_balances ORDER BY account`

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads allocations from a genesis_balances(account text,
// balance numeric) table.
type PostgresSource struct {
	DB Querier
}

// Load implements Source.
func (s PostgresSource) Load(ctx context.Context) ([]Allocation, error) {
	rows, err := s.DB.Query(ctx, genesisQuery)
	if err != nil {
		return nil, fmt.Errorf("query genesis balances: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entry, error) {
		var e entry
		err := row.Scan(&e.Account, &e.Balance)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan genesis balances: %w", err)
	}
	return parseEntries(entries)
}
