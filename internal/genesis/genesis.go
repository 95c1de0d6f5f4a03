// Package genesis seeds a ledger with its initial balances.
//
// Balances are decimal strings so values beyond 64 bits survive every source
// format. Genesis only reads its source; the ledger keeps nothing on disk.
package genesis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/holiman/uint256"

	"github.com/congo-pay/balances/internal/ledger"
)

// ErrInvalidGenesis wraps every validation failure of a genesis source.
var ErrInvalidGenesis = errors.New("invalid genesis")

// Allocation is the initial balance of one account.
type Allocation struct {
	Account string
	Balance *uint256.Int
}

// Source yields the allocations to apply at boot.
type Source interface {
	Load(ctx context.Context) ([]Allocation, error)
}

// entry is the raw form shared by all sources before validation.
type entry struct {
	Account string `yaml:"account"`
	Balance string `yaml:"balance"`
}

func parseEntries(entries []entry) ([]Allocation, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Allocation, 0, len(entries))
	for i, e := range entries {
		account := strings.TrimSpace(e.Account)
		if account == "" {
			return nil, fmt.Errorf("%w: entry %d has no account", ErrInvalidGenesis, i)
		}
		if _, dup := seen[account]; dup {
			return nil, fmt.Errorf("%w: duplicate account %q", ErrInvalidGenesis, account)
		}
		seen[account] = struct{}{}

		raw := strings.TrimSpace(e.Balance)
		if raw == "" {
			return nil, fmt.Errorf("%w: account %q has no balance", ErrInvalidGenesis, account)
		}
		// Same grammar as transfer amounts: digits only, no sign.
		bal, err := ledger.ParseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: account %q balance %q: %v", ErrInvalidGenesis, account, raw, err)
		}
		out = append(out, Allocation{Account: account, Balance: bal})
	}
	return out, nil
}

// Apply loads src and writes every allocation with SetBalance.
func Apply(ctx context.Context, src Source, led ledger.Ledger, logger *slog.Logger) error {
	allocs, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load genesis: %w", err)
	}

	total := new(uint256.Int)
	for _, a := range allocs {
		if err := led.SetBalance(ctx, a.Account, a.Balance); err != nil {
			return fmt.Errorf("seed %s: %w", a.Account, err)
		}
		// Saturate rather than wrap; the figure is only logged.
		if _, overflow := total.AddOverflow(total, a.Balance); overflow {
			total.SetAllOne()
		}
	}

	logger.Info("genesis applied", slog.Int("accounts", len(allocs)), slog.String("total", total.Dec()))
	return nil
}
