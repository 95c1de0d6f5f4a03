package accounts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/congo-pay/balances/internal/ledger"
)

// Service exposes account balance operations backed by the ledger.
type Service struct {
	ledger ledger.Ledger
	logger *slog.Logger
}

// NewService builds an account service instance.
func NewService(ledger ledger.Ledger, logger *slog.Logger) *Service {
	return &Service{ledger: ledger, logger: logger}
}

// Balance returns the ledger balance for the account. Unknown accounts report zero.
func (s *Service) Balance(ctx context.Context, account string) (Balance, error) {
	account = strings.TrimSpace(account)
	amount, err := s.ledger.Balance(ctx, account)
	if err != nil {
		return Balance{}, err
	}
	return Balance{Account: account, Amount: amount, AsOf: time.Now().UTC()}, nil
}

// SetBalance overwrites the balance of an account. No fee is charged.
func (s *Service) SetBalance(ctx context.Context, account, amount string) (Balance, error) {
	account = strings.TrimSpace(account)
	value, err := ledger.ParseAmount(amount)
	if err != nil {
		return Balance{}, err
	}
	if err := s.ledger.SetBalance(ctx, account, value); err != nil {
		return Balance{}, err
	}
	s.logger.InfoContext(ctx, "balance set", slog.String("account", account), slog.String("amount", value.Dec()))
	return Balance{Account: account, Amount: value, AsOf: time.Now().UTC()}, nil
}

// List returns every account with a stored balance, ordered by account.
func (s *Service) List(ctx context.Context) ([]Balance, error) {
	entries, err := s.ledger.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]Balance, 0, len(entries))
	for _, e := range entries {
		out = append(out, Balance{Account: e.Account, Amount: e.Balance, AsOf: now})
	}
	return out, nil
}
